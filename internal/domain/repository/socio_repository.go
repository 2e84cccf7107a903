package repository

import (
	"context"

	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
)

// SocioRepository define el puerto de persistencia para socios titulares.
type SocioRepository interface {
	Create(ctx context.Context, socio *entity.SocioTitular) error
	GetByID(ctx context.Context, id string) (*entity.SocioTitular, error)
	// GetByNumeroDocumento busca por número de documento. (nil, nil) si no existe.
	GetByNumeroDocumento(ctx context.Context, numeroDoc string) (*entity.SocioTitular, error)
	List(ctx context.Context, limit, offset int) ([]*entity.SocioTitular, error)
	Update(ctx context.Context, socio *entity.SocioTitular) error
	Delete(ctx context.Context, id string) error
}
