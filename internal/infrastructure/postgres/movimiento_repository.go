package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/tesoreria-api/internal/domain"
	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
	"github.com/tu-usuario/tesoreria-api/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación de MovimientoRepository.
type MovimientoRepo struct {
	q Querier
}

func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

const movimientoColumns = `id, cuenta_id, tipo, categoria, monto, fecha, descripcion,
	socio_id, creado_por, created_at`

func (r *MovimientoRepo) Create(ctx context.Context, mov *entity.Movimiento) error {
	query := `
		INSERT INTO movimientos (` + movimientoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10)`
	_, err := r.q.Exec(ctx, query,
		mov.ID, mov.CuentaID, mov.Tipo, mov.Categoria, mov.Monto, mov.Fecha,
		mov.Descripcion, mov.SocioID, mov.CreadoPor, mov.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

func (r *MovimientoRepo) GetByID(ctx context.Context, id string) (*entity.Movimiento, error) {
	query := `
		SELECT id, cuenta_id, tipo, categoria, monto, fecha, descripcion,
			COALESCE(socio_id, ''), creado_por, created_at
		FROM movimientos WHERE id = $1`
	var m entity.Movimiento
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.CuentaID, &m.Tipo, &m.Categoria, &m.Monto, &m.Fecha,
		&m.Descripcion, &m.SocioID, &m.CreadoPor, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	return &m, nil
}

// ListByCuenta lista movimientos de una cuenta, más recientes primero.
func (r *MovimientoRepo) ListByCuenta(ctx context.Context, cuentaID string, limit, offset int) ([]*entity.Movimiento, error) {
	query := `
		SELECT id, cuenta_id, tipo, categoria, monto, fecha, descripcion,
			COALESCE(socio_id, ''), creado_por, created_at
		FROM movimientos
		WHERE cuenta_id = $1
		ORDER BY fecha DESC, created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, cuentaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	return scanMovimientos(rows)
}

// ListByRango lista movimientos por tipo (vacío = todos) en [desde, hasta].
func (r *MovimientoRepo) ListByRango(ctx context.Context, tipo string, desde, hasta time.Time) ([]*entity.Movimiento, error) {
	query := `
		SELECT id, cuenta_id, tipo, categoria, monto, fecha, descripcion,
			COALESCE(socio_id, ''), creado_por, created_at
		FROM movimientos
		WHERE fecha BETWEEN $1 AND $2 AND ($3 = '' OR tipo = $3)
		ORDER BY fecha, created_at`
	rows, err := r.q.Query(ctx, query, desde, hasta, tipo)
	if err != nil {
		return nil, fmt.Errorf("movimientos por rango: %w", err)
	}
	defer rows.Close()
	return scanMovimientos(rows)
}

func scanMovimientos(rows pgx.Rows) ([]*entity.Movimiento, error) {
	var list []*entity.Movimiento
	for rows.Next() {
		var m entity.Movimiento
		if err := rows.Scan(
			&m.ID, &m.CuentaID, &m.Tipo, &m.Categoria, &m.Monto, &m.Fecha,
			&m.Descripcion, &m.SocioID, &m.CreadoPor, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ResumenPorCategoria agrega totales por (tipo, categoría) en [desde, hasta].
func (r *MovimientoRepo) ResumenPorCategoria(ctx context.Context, desde, hasta time.Time) ([]repository.ResumenCategoria, error) {
	query := `
		SELECT tipo, categoria, SUM(monto)
		FROM movimientos
		WHERE fecha BETWEEN $1 AND $2
		GROUP BY tipo, categoria
		ORDER BY tipo, categoria`
	rows, err := r.q.Query(ctx, query, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("resumen por categoría: %w", err)
	}
	defer rows.Close()
	var list []repository.ResumenCategoria
	for rows.Next() {
		var res repository.ResumenCategoria
		if err := rows.Scan(&res.Tipo, &res.Categoria, &res.Total); err != nil {
			return nil, fmt.Errorf("scan resumen: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

func (r *MovimientoRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM movimientos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movimiento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
