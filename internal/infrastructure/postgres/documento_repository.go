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

var _ repository.DocumentoRepository = (*DocumentoRepo)(nil)

// DocumentoRepo implementación de DocumentoRepository (solo metadatos;
// el binario vive en object storage).
type DocumentoRepo struct {
	q Querier
}

func NewDocumentoRepository(q Querier) *DocumentoRepo {
	return &DocumentoRepo{q: q}
}

const documentoColumns = `id, socio_id, tipo, nombre, ruta_storage, content_type,
	tamano_bytes, subido_por, created_at`

func (r *DocumentoRepo) Create(ctx context.Context, doc *entity.SocioDocumento) error {
	query := `
		INSERT INTO socio_documentos (` + documentoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.SocioID, doc.Tipo, doc.Nombre, doc.RutaStorage,
		doc.ContentType, doc.TamanoBytes, doc.SubidoPor, doc.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert documento: %w", err)
	}
	return nil
}

func (r *DocumentoRepo) GetByID(ctx context.Context, id string) (*entity.SocioDocumento, error) {
	query := `SELECT ` + documentoColumns + ` FROM socio_documentos WHERE id = $1`
	var d entity.SocioDocumento
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.SocioID, &d.Tipo, &d.Nombre, &d.RutaStorage,
		&d.ContentType, &d.TamanoBytes, &d.SubidoPor, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get documento: %w", err)
	}
	return &d, nil
}

func (r *DocumentoRepo) ListBySocio(ctx context.Context, socioID string) ([]*entity.SocioDocumento, error) {
	query := `SELECT ` + documentoColumns + ` FROM socio_documentos WHERE socio_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, socioID)
	if err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}
	defer rows.Close()
	var list []*entity.SocioDocumento
	for rows.Next() {
		var d entity.SocioDocumento
		if err := rows.Scan(
			&d.ID, &d.SocioID, &d.Tipo, &d.Nombre, &d.RutaStorage,
			&d.ContentType, &d.TamanoBytes, &d.SubidoPor, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan documento: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *DocumentoRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM socio_documentos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete documento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
