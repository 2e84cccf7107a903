package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
	"github.com/tu-usuario/tesoreria-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación de RoleRepository sobre roles, user_roles
// y resource_permissions.
type RoleRepo struct {
	q Querier
}

func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// ListRoles lista todos los roles del sistema.
func (r *RoleRepo) ListRoles(ctx context.Context) ([]entity.Role, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre FROM roles ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	return scanRoles(rows)
}

// GetRolesByUser devuelve los roles del usuario vía user_roles.
// Un usuario sin membresías devuelve slice vacío, no error.
func (r *RoleRepo) GetRolesByUser(ctx context.Context, userID string) ([]entity.Role, error) {
	query := `
		SELECT r.id, r.nombre
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.nombre`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("roles de usuario: %w", err)
	}
	defer rows.Close()
	return scanRoles(rows)
}

func scanRoles(rows pgx.Rows) ([]entity.Role, error) {
	roles := []entity.Role{}
	for rows.Next() {
		var rol entity.Role
		if err := rows.Scan(&rol.ID, &rol.Nombre); err != nil {
			return nil, fmt.Errorf("scan rol: %w", err)
		}
		roles = append(roles, rol)
	}
	return roles, rows.Err()
}

// GetGrantsByRoles devuelve los grants con permitido=true de los roles dados.
// Con roleIDs vacío no consulta: cero roles es cero permisos.
func (r *RoleRepo) GetGrantsByRoles(ctx context.Context, roleIDs []string) ([]entity.ResourcePermission, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT role_id, ruta, permitido
		FROM resource_permissions
		WHERE role_id = ANY($1) AND permitido = true`
	rows, err := r.q.Query(ctx, query, roleIDs)
	if err != nil {
		return nil, fmt.Errorf("grants por roles: %w", err)
	}
	defer rows.Close()
	return scanGrants(rows)
}

// ListGrantsByRole devuelve todos los grants de un rol, incluidos los negados.
func (r *RoleRepo) ListGrantsByRole(ctx context.Context, roleID string) ([]entity.ResourcePermission, error) {
	query := `
		SELECT role_id, ruta, permitido
		FROM resource_permissions
		WHERE role_id = $1
		ORDER BY ruta`
	rows, err := r.q.Query(ctx, query, roleID)
	if err != nil {
		return nil, fmt.Errorf("grants de rol: %w", err)
	}
	defer rows.Close()
	return scanGrants(rows)
}

func scanGrants(rows pgx.Rows) ([]entity.ResourcePermission, error) {
	grants := []entity.ResourcePermission{}
	for rows.Next() {
		var g entity.ResourcePermission
		if err := rows.Scan(&g.RolID, &g.Ruta, &g.Permitido); err != nil {
			return nil, fmt.Errorf("scan grant: %w", err)
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

// SetGrant crea o reemplaza el grant (rol, ruta). El UPSERT garantiza a lo
// sumo un grant activo por par.
func (r *RoleRepo) SetGrant(ctx context.Context, grant entity.ResourcePermission) error {
	query := `
		INSERT INTO resource_permissions (role_id, ruta, permitido)
		VALUES ($1, $2, $3)
		ON CONFLICT (role_id, ruta) DO UPDATE SET permitido = EXCLUDED.permitido`
	_, err := r.q.Exec(ctx, query, grant.RolID, grant.Ruta, grant.Permitido)
	if err != nil {
		return fmt.Errorf("set grant: %w", err)
	}
	return nil
}

// AssignRole agrega la membresía usuario↔rol. Idempotente.
func (r *RoleRepo) AssignRole(ctx context.Context, userID, roleID string) error {
	query := `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING`
	_, err := r.q.Exec(ctx, query, userID, roleID)
	if err != nil {
		return fmt.Errorf("asignar rol: %w", err)
	}
	return nil
}

// RemoveRole elimina la membresía usuario↔rol.
func (r *RoleRepo) RemoveRole(ctx context.Context, userID, roleID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`, userID, roleID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("remover rol: %w", err)
	}
	return nil
}
