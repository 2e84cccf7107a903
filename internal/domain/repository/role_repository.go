package repository

import (
	"context"

	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
)

// RoleRepository define el puerto de lectura/escritura de roles y grants.
// Las membresías (user_roles) y los grants (resource_permissions) son la única
// fuente de verdad de autorización; el resolver los consulta en cada sesión.
type RoleRepository interface {
	// ListRoles lista todos los roles del sistema.
	ListRoles(ctx context.Context) ([]entity.Role, error)
	// GetRolesByUser devuelve los roles del usuario (cero o más).
	GetRolesByUser(ctx context.Context, userID string) ([]entity.Role, error)
	// GetGrantsByRoles devuelve los grants con permitido=true de los roles dados.
	// Con roleIDs vacío devuelve nil sin consultar.
	GetGrantsByRoles(ctx context.Context, roleIDs []string) ([]entity.ResourcePermission, error)
	// ListGrantsByRole devuelve todos los grants de un rol (incluye permitido=false).
	ListGrantsByRole(ctx context.Context, roleID string) ([]entity.ResourcePermission, error)
	// SetGrant crea o reemplaza el grant (rol, ruta): a lo sumo uno activo por par.
	SetGrant(ctx context.Context, grant entity.ResourcePermission) error
	// AssignRole agrega la membresía usuario↔rol (idempotente).
	AssignRole(ctx context.Context, userID, roleID string) error
	// RemoveRole elimina la membresía usuario↔rol.
	RemoveRole(ctx context.Context, userID, roleID string) error
}
