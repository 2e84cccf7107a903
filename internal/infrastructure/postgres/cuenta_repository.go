package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tesoreria-api/internal/domain"
	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
	"github.com/tu-usuario/tesoreria-api/internal/domain/repository"
)

var _ repository.CuentaRepository = (*CuentaRepo)(nil)

// CuentaRepo implementación de CuentaRepository.
type CuentaRepo struct {
	q Querier
}

func NewCuentaRepository(q Querier) *CuentaRepo {
	return &CuentaRepo{q: q}
}

const cuentaColumns = `id, nombre, tipo, moneda, saldo, estado, created_at, updated_at`

func (r *CuentaRepo) Create(ctx context.Context, cuenta *entity.Cuenta) error {
	query := `
		INSERT INTO cuentas (` + cuentaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		cuenta.ID, cuenta.Nombre, cuenta.Tipo, cuenta.Moneda, cuenta.Saldo,
		cuenta.Estado, cuenta.CreatedAt, cuenta.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cuenta: %w", err)
	}
	return nil
}

func (r *CuentaRepo) GetByID(ctx context.Context, id string) (*entity.Cuenta, error) {
	query := `SELECT ` + cuentaColumns + ` FROM cuentas WHERE id = $1`
	var c entity.Cuenta
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Nombre, &c.Tipo, &c.Moneda, &c.Saldo, &c.Estado, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cuenta: %w", err)
	}
	return &c, nil
}

func (r *CuentaRepo) List(ctx context.Context) ([]*entity.Cuenta, error) {
	query := `SELECT ` + cuentaColumns + ` FROM cuentas ORDER BY nombre`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cuentas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cuenta
	for rows.Next() {
		var c entity.Cuenta
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Tipo, &c.Moneda, &c.Saldo, &c.Estado, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cuenta: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza los datos de la cuenta. El saldo NO se toca aquí:
// solo AjustarSaldo lo modifica, junto con su movimiento.
func (r *CuentaRepo) Update(ctx context.Context, cuenta *entity.Cuenta) error {
	query := `
		UPDATE cuentas SET nombre = $2, tipo = $3, moneda = $4, estado = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		cuenta.ID, cuenta.Nombre, cuenta.Tipo, cuenta.Moneda, cuenta.Estado, cuenta.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cuenta: %w", err)
	}
	return nil
}

func (r *CuentaRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM cuentas WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete cuenta: %w", err)
	}
	return nil
}

// AjustarSaldo suma delta al saldo. Debe correr dentro de la misma tx que el
// Create/Delete del movimiento que lo origina.
func (r *CuentaRepo) AjustarSaldo(ctx context.Context, cuentaID string, delta decimal.Decimal) error {
	query := `UPDATE cuentas SET saldo = saldo + $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, cuentaID, delta)
	if err != nil {
		return fmt.Errorf("ajustar saldo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
