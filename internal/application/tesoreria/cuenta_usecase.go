package tesoreria

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
	"github.com/tu-usuario/tesoreria-api/internal/domain"
	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
	"github.com/tu-usuario/tesoreria-api/internal/domain/repository"
)

// CuentaUseCase casos de uso para cuentas de banco/caja.
type CuentaUseCase struct {
	repo repository.CuentaRepository
}

// NewCuentaUseCase construye el caso de uso.
func NewCuentaUseCase(repo repository.CuentaRepository) *CuentaUseCase {
	return &CuentaUseCase{repo: repo}
}

// Create crea una cuenta con saldo cero.
func (uc *CuentaUseCase) Create(ctx context.Context, in dto.CreateCuentaRequest) (*dto.CuentaResponse, error) {
	if in.Nombre == "" || in.Moneda == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Tipo != entity.CuentaBanco && in.Tipo != entity.CuentaCaja {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	cuenta := &entity.Cuenta{
		ID:        uuid.New().String(),
		Nombre:    in.Nombre,
		Tipo:      in.Tipo,
		Moneda:    in.Moneda,
		Saldo:     decimal.Zero,
		Estado:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, cuenta); err != nil {
		return nil, err
	}
	return toCuentaResponse(cuenta), nil
}

// List lista todas las cuentas.
func (uc *CuentaUseCase) List(ctx context.Context) ([]*dto.CuentaResponse, error) {
	cuentas, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CuentaResponse, 0, len(cuentas))
	for _, c := range cuentas {
		out = append(out, toCuentaResponse(c))
	}
	return out, nil
}

// GetByID obtiene una cuenta.
func (uc *CuentaUseCase) GetByID(ctx context.Context, id string) (*dto.CuentaResponse, error) {
	cuenta, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cuenta == nil {
		return nil, domain.ErrNotFound
	}
	return toCuentaResponse(cuenta), nil
}

func toCuentaResponse(c *entity.Cuenta) *dto.CuentaResponse {
	return &dto.CuentaResponse{
		ID:     c.ID,
		Nombre: c.Nombre,
		Tipo:   c.Tipo,
		Moneda: c.Moneda,
		Saldo:  c.Saldo,
		Estado: c.Estado,
	}
}
