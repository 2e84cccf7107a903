package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
)

// ResumenCategoria total por categoría de movimiento en un rango (para el reporte de caja).
type ResumenCategoria struct {
	Tipo      string
	Categoria string
	Total     decimal.Decimal
}

// MovimientoRepository define el puerto de persistencia para movimientos.
type MovimientoRepository interface {
	Create(ctx context.Context, mov *entity.Movimiento) error
	GetByID(ctx context.Context, id string) (*entity.Movimiento, error)
	// ListByCuenta lista movimientos de una cuenta, más recientes primero.
	ListByCuenta(ctx context.Context, cuentaID string, limit, offset int) ([]*entity.Movimiento, error)
	// ListByRango lista movimientos por tipo (vacío = todos) en [desde, hasta].
	ListByRango(ctx context.Context, tipo string, desde, hasta time.Time) ([]*entity.Movimiento, error)
	// ResumenPorCategoria agrega totales por (tipo, categoría) en [desde, hasta].
	ResumenPorCategoria(ctx context.Context, desde, hasta time.Time) ([]ResumenCategoria, error)
	Delete(ctx context.Context, id string) error
}
