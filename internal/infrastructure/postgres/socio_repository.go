package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/tesoreria-api/internal/domain"
	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
	"github.com/tu-usuario/tesoreria-api/internal/domain/repository"
)

var _ repository.SocioRepository = (*SocioRepo)(nil)

// SocioRepo implementación de SocioRepository.
type SocioRepo struct {
	q Querier
}

func NewSocioRepository(q Querier) *SocioRepo {
	return &SocioRepo{q: q}
}

const socioColumns = `id, tipo_documento, numero_documento, razon_social, nombre_comercial,
	direccion, distrito, provincia, departamento, telefono, email, created_at, updated_at`

// Create persiste un socio titular. Número de documento duplicado → ErrDuplicate.
func (r *SocioRepo) Create(ctx context.Context, socio *entity.SocioTitular) error {
	query := `
		INSERT INTO socio_titulares (` + socioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		socio.ID, socio.TipoDocumento, socio.NumeroDocumento, socio.RazonSocial,
		socio.NombreComercial, socio.Direccion, socio.Distrito, socio.Provincia,
		socio.Departamento, socio.Telefono, socio.Email, socio.CreatedAt, socio.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert socio: %w", err)
	}
	return nil
}

// GetByID obtiene un socio por ID. (nil, nil) si no existe.
func (r *SocioRepo) GetByID(ctx context.Context, id string) (*entity.SocioTitular, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

// GetByNumeroDocumento busca por número de documento. (nil, nil) si no existe.
func (r *SocioRepo) GetByNumeroDocumento(ctx context.Context, numeroDoc string) (*entity.SocioTitular, error) {
	return r.getBy(ctx, `WHERE numero_documento = $1`, numeroDoc)
}

func (r *SocioRepo) getBy(ctx context.Context, where string, arg any) (*entity.SocioTitular, error) {
	query := `SELECT ` + socioColumns + ` FROM socio_titulares ` + where
	var s entity.SocioTitular
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&s.ID, &s.TipoDocumento, &s.NumeroDocumento, &s.RazonSocial, &s.NombreComercial,
		&s.Direccion, &s.Distrito, &s.Provincia, &s.Departamento, &s.Telefono, &s.Email,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get socio: %w", err)
	}
	return &s, nil
}

// List lista socios por razón social con paginación.
func (r *SocioRepo) List(ctx context.Context, limit, offset int) ([]*entity.SocioTitular, error) {
	query := `SELECT ` + socioColumns + ` FROM socio_titulares ORDER BY razon_social LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list socios: %w", err)
	}
	defer rows.Close()
	var list []*entity.SocioTitular
	for rows.Next() {
		var s entity.SocioTitular
		if err := rows.Scan(
			&s.ID, &s.TipoDocumento, &s.NumeroDocumento, &s.RazonSocial, &s.NombreComercial,
			&s.Direccion, &s.Distrito, &s.Provincia, &s.Departamento, &s.Telefono, &s.Email,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan socio: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza un socio.
func (r *SocioRepo) Update(ctx context.Context, socio *entity.SocioTitular) error {
	query := `
		UPDATE socio_titulares SET
			tipo_documento = $2, numero_documento = $3, razon_social = $4,
			nombre_comercial = $5, direccion = $6, distrito = $7, provincia = $8,
			departamento = $9, telefono = $10, email = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		socio.ID, socio.TipoDocumento, socio.NumeroDocumento, socio.RazonSocial,
		socio.NombreComercial, socio.Direccion, socio.Distrito, socio.Provincia,
		socio.Departamento, socio.Telefono, socio.Email, socio.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update socio: %w", err)
	}
	return nil
}

// Delete elimina un socio. Con documentos o movimientos asociados → ErrConflict.
func (r *SocioRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM socio_titulares WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete socio: %w", err)
	}
	return nil
}
