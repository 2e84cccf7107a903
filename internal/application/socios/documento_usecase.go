package socios

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
	"github.com/tu-usuario/tesoreria-api/internal/application/facturacion"
	"github.com/tu-usuario/tesoreria-api/internal/domain"
	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
	"github.com/tu-usuario/tesoreria-api/internal/domain/repository"
)

// tiposDocumentoSocio tipos admitidos para documentos obligatorios.
var tiposDocumentoSocio = map[string]struct{}{
	"dni": {}, "contrato": {}, "poder": {}, "otros": {},
}

// DocumentoUseCase gestiona los documentos obligatorios de un socio: el
// metadato vive en la DB y el binario en el object storage bajo
// {socioID}/docs/{nombre}.
type DocumentoUseCase struct {
	socios   repository.SocioRepository
	docs     repository.DocumentoRepository
	archivos facturacion.ArchivoStore
}

// NewDocumentoUseCase construye el caso de uso.
func NewDocumentoUseCase(
	socios repository.SocioRepository,
	docs repository.DocumentoRepository,
	archivos facturacion.ArchivoStore,
) *DocumentoUseCase {
	return &DocumentoUseCase{socios: socios, docs: docs, archivos: archivos}
}

// Subir guarda el binario en storage y registra el metadato. El socio debe
// existir: nunca se sube a una ruta sin clave de socio.
func (uc *DocumentoUseCase) Subir(ctx context.Context, socioID, tipo, nombre, contentType string, contenido []byte, subidoPor string) (*dto.DocumentoResponse, error) {
	if socioID == "" || nombre == "" || len(contenido) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, ok := tiposDocumentoSocio[tipo]; !ok {
		return nil, domain.ErrInvalidInput
	}
	// Nombre plano: sin separadores de ruta que escapen del prefijo del socio.
	if strings.ContainsAny(nombre, "/\\") {
		return nil, domain.ErrInvalidInput
	}
	socio, err := uc.socios.GetByID(ctx, socioID)
	if err != nil {
		return nil, err
	}
	if socio == nil {
		return nil, domain.ErrNotFound
	}

	ruta := fmt.Sprintf("%s/docs/%s", socioID, nombre)
	if err := uc.archivos.Upload(ctx, ruta, contenido, contentType, true); err != nil {
		return nil, fmt.Errorf("subir documento a %s: %w", ruta, err)
	}

	doc := &entity.SocioDocumento{
		ID:          uuid.New().String(),
		SocioID:     socioID,
		Tipo:        tipo,
		Nombre:      nombre,
		RutaStorage: ruta,
		ContentType: contentType,
		TamanoBytes: int64(len(contenido)),
		SubidoPor:   subidoPor,
		CreatedAt:   time.Now(),
	}
	if err := uc.docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	return toDocumentoResponse(doc), nil
}

// ListBySocio lista los documentos de un socio.
func (uc *DocumentoUseCase) ListBySocio(ctx context.Context, socioID string) ([]*dto.DocumentoResponse, error) {
	if socioID == "" {
		return nil, domain.ErrInvalidInput
	}
	docs, err := uc.docs.ListBySocio(ctx, socioID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DocumentoResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentoResponse(d))
	}
	return out, nil
}

// Descargar baja el binario del documento.
func (uc *DocumentoUseCase) Descargar(ctx context.Context, docID string) (contenido []byte, nombre, contentType string, err error) {
	doc, err := uc.docs.GetByID(ctx, docID)
	if err != nil {
		return nil, "", "", err
	}
	if doc == nil {
		return nil, "", "", domain.ErrNotFound
	}
	contenido, contentType, err = uc.archivos.Download(ctx, doc.RutaStorage)
	if err != nil {
		return nil, "", "", fmt.Errorf("descargar documento %s: %w", doc.RutaStorage, err)
	}
	if contentType == "" {
		contentType = doc.ContentType
	}
	return contenido, doc.Nombre, contentType, nil
}

// Eliminar borra el binario y el metadato. Si el borrado en storage falla,
// el metadato se conserva para no dejar objetos huérfanos.
func (uc *DocumentoUseCase) Eliminar(ctx context.Context, docID string) error {
	doc, err := uc.docs.GetByID(ctx, docID)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	if err := uc.archivos.Delete(ctx, doc.RutaStorage); err != nil {
		return fmt.Errorf("eliminar documento %s del storage: %w", doc.RutaStorage, err)
	}
	return uc.docs.Delete(ctx, docID)
}

func toDocumentoResponse(d *entity.SocioDocumento) *dto.DocumentoResponse {
	return &dto.DocumentoResponse{
		ID:          d.ID,
		SocioID:     d.SocioID,
		Tipo:        d.Tipo,
		Nombre:      d.Nombre,
		ContentType: d.ContentType,
		TamanoBytes: d.TamanoBytes,
		SubidoPor:   d.SubidoPor,
		CreatedAt:   d.CreatedAt,
	}
}
