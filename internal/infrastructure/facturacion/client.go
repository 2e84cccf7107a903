// Package facturacion implementa el cliente HTTP hacia el API REST del
// proveedor de facturación electrónica (OSE). El proveedor firma y declara
// ante SUNAT; esta aplicación solo arma el payload y consume el API.
package facturacion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
	appfact "github.com/tu-usuario/tesoreria-api/internal/application/facturacion"
	"github.com/tu-usuario/tesoreria-api/internal/domain"
	"github.com/tu-usuario/tesoreria-api/pkg/logger"
)

var _ appfact.BoletaAPI = (*RESTClient)(nil)

// RESTClient implementa BoletaAPI contra el API REST del proveedor.
// Autenticación por bearer token; el proveedor puede tardar varios segundos
// en emitir, de ahí el timeout generoso.
type RESTClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logger.Logger
}

// NewRESTClient construye el cliente. baseURL sin slash final.
func NewRESTClient(baseURL, token string, log *logger.Logger) *RESTClient {
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        log,
	}
}

// Emitir envía la boleta al proveedor. Cualquier rechazo (HTTP no-2xx o
// success=false) o fallo de red se devuelve como *domain.IssuanceError con el
// mensaje del proveedor; nunca se reintenta aquí.
func (c *RESTClient) Emitir(ctx context.Context, payload *dto.ProveedorBoletaJSON) (*appfact.BoletaEmitida, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &domain.IssuanceError{Err: fmt.Errorf("marshal payload: %w", err)}
	}

	respBody, status, err := c.do(ctx, http.MethodPost, "/boletas", body)
	if err != nil {
		return nil, &domain.IssuanceError{Err: err}
	}

	var resp dto.ProveedorRespuestaJSON
	if jsonErr := json.Unmarshal(respBody, &resp); jsonErr != nil && status < 300 {
		return nil, &domain.IssuanceError{Err: fmt.Errorf("respuesta ilegible del proveedor: %w", jsonErr)}
	}

	if status >= 300 || !resp.Success {
		mensaje := resp.Message
		if mensaje == "" {
			mensaje = fmt.Sprintf("HTTP %d del proveedor", status)
		}
		c.log.Warn().Int("status", status).Str("mensaje", mensaje).Msg("Emisión rechazada por el proveedor")
		return nil, &domain.IssuanceError{Mensaje: mensaje}
	}

	c.log.Info().
		Int64("boleta_id", resp.Data.ID).
		Str("numero", resp.Data.NumeroCompleto).
		Msg("Boleta emitida por el proveedor")

	return &appfact.BoletaEmitida{
		ID:             resp.Data.ID,
		NumeroCompleto: resp.Data.NumeroCompleto,
	}, nil
}

// GenerarPDF solicita la generación de la representación impresa.
func (c *RESTClient) GenerarPDF(ctx context.Context, boletaID int64, formato appfact.FormatoPDF) error {
	body, _ := json.Marshal(map[string]string{"format": string(formato)})
	ruta := fmt.Sprintf("/boletas/%d/generate-pdf", boletaID)
	respBody, status, err := c.do(ctx, http.MethodPost, ruta, body)
	if err != nil {
		return fmt.Errorf("generar pdf: %w", err)
	}
	if status >= 300 {
		return fmt.Errorf("generar pdf: HTTP %d del proveedor: %s", status, truncar(respBody))
	}
	return nil
}

// DescargarPDF descarga el PDF generado como binario.
func (c *RESTClient) DescargarPDF(ctx context.Context, boletaID int64, formato appfact.FormatoPDF) ([]byte, error) {
	ruta := fmt.Sprintf("/boletas/%d/download-pdf?format=%s", boletaID, formato)
	respBody, status, err := c.do(ctx, http.MethodGet, ruta, nil)
	if err != nil {
		return nil, fmt.Errorf("descargar pdf: %w", err)
	}
	if status >= 300 {
		return nil, fmt.Errorf("descargar pdf: HTTP %d del proveedor: %s", status, truncar(respBody))
	}
	if len(respBody) == 0 {
		return nil, fmt.Errorf("descargar pdf: respuesta vacía del proveedor")
	}
	return respBody, nil
}

// do ejecuta la petición con el bearer token y devuelve el body y el status.
func (c *RESTClient) do(ctx context.Context, metodo, ruta string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, metodo, c.baseURL+ruta, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("crear request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("llamada al proveedor: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("leer respuesta: %w", err)
	}
	return respBody, resp.StatusCode, nil
}

// truncar acota el body de error para logs y mensajes.
func truncar(b []byte) string {
	const max = 300
	s := string(b)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
