package facturacion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
	"github.com/tu-usuario/tesoreria-api/internal/domain"
	"github.com/tu-usuario/tesoreria-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mocks de los puertos de salida
// ──────────────────────────────────────────────────────────────────────────────

type mockBoletaAPI struct {
	emitirCalls   int
	ultimoPayload *dto.ProveedorBoletaJSON
	emitirErr     error

	generarCalls int
	generarErr   error

	descargarCalls int
	descargarErr   error
	pdf            []byte
}

func (m *mockBoletaAPI) Emitir(ctx context.Context, payload *dto.ProveedorBoletaJSON) (*BoletaEmitida, error) {
	m.emitirCalls++
	m.ultimoPayload = payload
	if m.emitirErr != nil {
		return nil, m.emitirErr
	}
	return &BoletaEmitida{ID: 42, NumeroCompleto: payload.Serie + "-00042"}, nil
}

func (m *mockBoletaAPI) GenerarPDF(ctx context.Context, boletaID int64, formato FormatoPDF) error {
	m.generarCalls++
	return m.generarErr
}

func (m *mockBoletaAPI) DescargarPDF(ctx context.Context, boletaID int64, formato FormatoPDF) ([]byte, error) {
	m.descargarCalls++
	if m.descargarErr != nil {
		return nil, m.descargarErr
	}
	return m.pdf, nil
}

type mockArchivoStore struct {
	uploads map[string][]byte
	err     error
}

func (m *mockArchivoStore) Upload(ctx context.Context, ruta string, contenido []byte, contentType string, sobrescribir bool) error {
	if m.err != nil {
		return m.err
	}
	if m.uploads == nil {
		m.uploads = make(map[string][]byte)
	}
	m.uploads[ruta] = contenido
	return nil
}

func (m *mockArchivoStore) Download(ctx context.Context, ruta string) ([]byte, string, error) {
	return nil, "", domain.ErrNotFound
}

func (m *mockArchivoStore) Delete(ctx context.Context, ruta string) error { return nil }

func nuevoOrquestador(api BoletaAPI, archivos ArchivoStore) *Orquestador {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return NewOrquestador(api, archivos, Config{Serie: "B001", CompanyID: 1, BranchID: 1}, log)
}

// ──────────────────────────────────────────────────────────────────────────────
// Emisión
// ──────────────────────────────────────────────────────────────────────────────

func TestEmitir_FlujoCompleto(t *testing.T) {
	api := &mockBoletaAPI{}
	orq := nuevoOrquestador(api, &mockArchivoStore{})

	out, err := orq.Emitir(context.Background(), "user-1", solicitudValida())
	require.NoError(t, err)

	assert.Equal(t, int64(42), out.ID)
	assert.Equal(t, "B001-00042", out.NumeroCompleto)
	assert.True(t, out.PDFSolicitado)
	assert.Equal(t, 1, api.emitirCalls)
	assert.Equal(t, 1, api.generarCalls)
	assert.Equal(t, EstadoReady, orq.Estado(42))
}

func TestEmitir_PayloadConValorBaseYSerieDefecto(t *testing.T) {
	api := &mockBoletaAPI{}
	orq := nuevoOrquestador(api, &mockArchivoStore{})

	_, err := orq.Emitir(context.Background(), "user-1", solicitudValida())
	require.NoError(t, err)
	require.NotNil(t, api.ultimoPayload)

	p := api.ultimoPayload
	assert.Equal(t, "B001", p.Serie, "sin serie en la solicitud se usa la configurada")
	assert.Equal(t, "user-1", p.UsuarioCreacion)
	assert.Equal(t, 1, p.CompanyID)
	require.Len(t, p.Detalles, 1)
	// 250.00 con IGV → 211.86 sin IGV en el cable
	assert.True(t, dec("211.86").Equal(p.Detalles[0].MtoValorUnitario),
		"mto_valor_unitario debe ir sin IGV, obtuve %s", p.Detalles[0].MtoValorUnitario)
}

func TestEmitir_SolicitudInvalidaNoTocaLaRed(t *testing.T) {
	api := &mockBoletaAPI{}
	orq := nuevoOrquestador(api, &mockArchivoStore{})

	_, err := orq.Emitir(context.Background(), "user-1", dto.EmitirBoletaRequest{})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, api.emitirCalls)
}

func TestEmitir_RechazoDelProveedorPermiteReenvio(t *testing.T) {
	api := &mockBoletaAPI{emitirErr: &domain.IssuanceError{Mensaje: "El número de documento del cliente no es válido"}}
	orq := nuevoOrquestador(api, &mockArchivoStore{})

	_, err := orq.Emitir(context.Background(), "user-1", solicitudValida())

	var ierr *domain.IssuanceError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "El número de documento del cliente no es válido", ierr.Mensaje)
	assert.Equal(t, "", string(orq.Estado(42)), "el rechazo no deja boleta en vuelo")

	// Corregido el dato, el reenvío funciona sin estado residual.
	api.emitirErr = nil
	out, err := orq.Emitir(context.Background(), "user-1", solicitudValida())
	require.NoError(t, err)
	assert.Equal(t, int64(42), out.ID)
	assert.Equal(t, 2, api.emitirCalls, "nunca hay reintento automático, solo el reenvío explícito")
}

func TestEmitir_FalloDePDFNoRevierteLaEmision(t *testing.T) {
	api := &mockBoletaAPI{generarErr: errors.New("timeout del proveedor")}
	orq := nuevoOrquestador(api, &mockArchivoStore{})

	out, err := orq.Emitir(context.Background(), "user-1", solicitudValida())
	require.NoError(t, err, "el comprobante ya quedó emitido en el proveedor")

	assert.False(t, out.PDFSolicitado)
	assert.Equal(t, EstadoReady, orq.Estado(out.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Descarga y archivado
// ──────────────────────────────────────────────────────────────────────────────

func TestDescargarYArchivar_ArchivaBajoElSocio(t *testing.T) {
	api := &mockBoletaAPI{pdf: []byte("%PDF-1.7 contenido")}
	store := &mockArchivoStore{}
	orq := nuevoOrquestador(api, store)

	_, err := orq.Emitir(context.Background(), "user-1", solicitudValida())
	require.NoError(t, err)

	contenido, nombre, err := orq.DescargarYArchivar(context.Background(), 42, FormatoA4)
	require.NoError(t, err)

	assert.Equal(t, "B001-00042.pdf", nombre)
	assert.Equal(t, api.pdf, contenido)
	assert.Equal(t, api.pdf, store.uploads["socio-1/B001-00042.pdf"])
	assert.Equal(t, EstadoReady, orq.Estado(42))
}

func TestDescargarYArchivar_BoletaDesconocida(t *testing.T) {
	orq := nuevoOrquestador(&mockBoletaAPI{}, &mockArchivoStore{})

	_, _, err := orq.DescargarYArchivar(context.Background(), 999, FormatoA4)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDescargarYArchivar_SinSocioFallaRapido(t *testing.T) {
	api := &mockBoletaAPI{}
	orq := nuevoOrquestador(api, &mockArchivoStore{})

	in := solicitudValida()
	in.Cliente.SocioID = ""
	_, err := orq.Emitir(context.Background(), "user-1", in)
	require.NoError(t, err)

	_, _, err = orq.DescargarYArchivar(context.Background(), 42, FormatoA4)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, api.descargarCalls)
}

func TestDescargarYArchivar_FalloEsReintentable(t *testing.T) {
	api := &mockBoletaAPI{pdf: []byte("pdf"), descargarErr: errors.New("503")}
	store := &mockArchivoStore{}
	orq := nuevoOrquestador(api, store)

	_, err := orq.Emitir(context.Background(), "user-1", solicitudValida())
	require.NoError(t, err)

	_, _, err = orq.DescargarYArchivar(context.Background(), 42, FormatoA4)
	require.Error(t, err)
	assert.Equal(t, EstadoReady, orq.Estado(42), "el fallo deja el flujo listo para reintentar")

	api.descargarErr = nil
	_, nombre, err := orq.DescargarYArchivar(context.Background(), 42, FormatoA4)
	require.NoError(t, err)
	assert.Equal(t, "B001-00042.pdf", nombre)
}

func TestDescartar_OlvidaLaBoletaEnVuelo(t *testing.T) {
	orq := nuevoOrquestador(&mockBoletaAPI{}, &mockArchivoStore{})

	_, err := orq.Emitir(context.Background(), "user-1", solicitudValida())
	require.NoError(t, err)
	require.Equal(t, EstadoReady, orq.Estado(42))

	orq.Descartar(42)
	assert.Equal(t, EstadoEmision(""), orq.Estado(42))
}
