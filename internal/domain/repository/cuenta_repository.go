package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
)

// CuentaRepository define el puerto de persistencia para cuentas de banco/caja.
type CuentaRepository interface {
	Create(ctx context.Context, cuenta *entity.Cuenta) error
	GetByID(ctx context.Context, id string) (*entity.Cuenta, error)
	List(ctx context.Context) ([]*entity.Cuenta, error)
	Update(ctx context.Context, cuenta *entity.Cuenta) error
	Delete(ctx context.Context, id string) error
	// AjustarSaldo suma delta (positivo o negativo) al saldo de la cuenta.
	// Debe ejecutarse dentro de la misma transacción que el movimiento.
	AjustarSaldo(ctx context.Context, cuentaID string, delta decimal.Decimal) error
}
