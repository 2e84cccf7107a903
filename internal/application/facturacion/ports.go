package facturacion

import (
	"context"

	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
)

// FormatoPDF formato de la representación impresa del comprobante.
type FormatoPDF string

const (
	FormatoA4     FormatoPDF = "A4"
	FormatoTicket FormatoPDF = "TICKET"
)

// BoletaEmitida resultado de una emisión exitosa. Vive en memoria lo que dure
// el flujo (generación/descarga de PDF); el sistema de registro es el
// proveedor externo, no esta aplicación.
type BoletaEmitida struct {
	ID             int64
	NumeroCompleto string // serie-correlativo, ej. B001-00042
}

// BoletaAPI puerto de salida hacia el API REST de facturación electrónica.
// La implementación concreta usa HTTP con bearer token; para tests se inyecta
// un mock.
type BoletaAPI interface {
	// Emitir envía la boleta. En rechazo o fallo de red retorna *domain.IssuanceError.
	Emitir(ctx context.Context, payload *dto.ProveedorBoletaJSON) (*BoletaEmitida, error)
	// GenerarPDF solicita al proveedor la generación del PDF del comprobante.
	GenerarPDF(ctx context.Context, boletaID int64, formato FormatoPDF) error
	// DescargarPDF descarga el PDF generado como binario.
	DescargarPDF(ctx context.Context, boletaID int64, formato FormatoPDF) ([]byte, error)
}

// ArchivoStore puerto de salida hacia el object storage (archivo de PDFs y
// documentos de socios).
type ArchivoStore interface {
	// Upload sube el contenido a la ruta. Con sobrescribir=false falla si ya existe.
	Upload(ctx context.Context, ruta string, contenido []byte, contentType string, sobrescribir bool) error
	// Download baja el contenido de la ruta y su content type.
	Download(ctx context.Context, ruta string) ([]byte, string, error)
	// Delete elimina el objeto de la ruta.
	Delete(ctx context.Context, ruta string) error
}
