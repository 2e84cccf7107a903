package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/tesoreria-api/internal/application/tesoreria"
	"github.com/tu-usuario/tesoreria-api/internal/domain/repository"
)

var _ tesoreria.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunTesoreria inicia una transacción, ejecuta fn con los repos de cuentas y
// movimientos atados a la tx y hace Commit o Rollback. El movimiento y el
// ajuste de saldo entran o salen juntos.
func (r *TxRunner) RunTesoreria(ctx context.Context, fn func(
	cuentaRepo repository.CuentaRepository,
	movRepo repository.MovimientoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cuentaRepo := NewCuentaRepository(tx)
	movRepo := NewMovimientoRepository(tx)

	if err := fn(cuentaRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
