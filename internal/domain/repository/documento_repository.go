package repository

import (
	"context"

	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
)

// DocumentoRepository define el puerto de persistencia para el metadato de
// documentos de socios (el binario vive en object storage).
type DocumentoRepository interface {
	Create(ctx context.Context, doc *entity.SocioDocumento) error
	GetByID(ctx context.Context, id string) (*entity.SocioDocumento, error)
	ListBySocio(ctx context.Context, socioID string) ([]*entity.SocioDocumento, error)
	Delete(ctx context.Context, id string) error
}
