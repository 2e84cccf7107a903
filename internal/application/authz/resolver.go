package authz

import (
	"context"

	"github.com/tu-usuario/tesoreria-api/internal/domain"
	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
	"github.com/tu-usuario/tesoreria-api/internal/domain/repository"
)

// Resolution es el resultado de resolver la autorización de un actor:
// sus roles y su conjunto efectivo de rutas accesibles.
type Resolution struct {
	ActorID  string
	Roles    []entity.Role
	Permisos entity.PermissionSet
}

// Resolver calcula roles y permisos efectivos de un actor contra la DB.
//
// Política fail-closed: cualquier fallo de consulta aborta la resolución y
// produce roles vacíos y set ausente — datos de permisos ambiguos o parciales
// jamás se interpretan como más acceso. El error se propaga al caller, nunca
// se silencia.
type Resolver struct {
	roles repository.RoleRepository
}

// NewResolver construye el resolver.
func NewResolver(roles repository.RoleRepository) *Resolver {
	return &Resolver{roles: roles}
}

// Resolve calcula la resolución del actor:
//  1. Membresías de roles del actor (cero o más).
//  2. Cero roles → set vacío, fin (la raíz NO se concede implícitamente).
//  3. Grants con permitido=true de esos roles.
//  4. Unión de rutas en un set.
//  5. Set no vacío → se agrega la raíz "/" (cualquier acceso concedido implica
//     visibilidad del dashboard). Idempotente.
func (r *Resolver) Resolve(ctx context.Context, actorID string) (*Resolution, error) {
	roles, err := r.roles.GetRolesByUser(ctx, actorID)
	if err != nil {
		return nil, &domain.LookupError{Operacion: "roles del actor", Err: err}
	}
	if len(roles) == 0 {
		return &Resolution{ActorID: actorID, Roles: nil, Permisos: entity.NewPermissionSet()}, nil
	}

	roleIDs := make([]string, 0, len(roles))
	for _, rol := range roles {
		roleIDs = append(roleIDs, rol.ID)
	}
	grants, err := r.roles.GetGrantsByRoles(ctx, roleIDs)
	if err != nil {
		return nil, &domain.LookupError{Operacion: "grants de permisos", Err: err}
	}

	return &Resolution{
		ActorID:  actorID,
		Roles:    roles,
		Permisos: BuildPermissionSet(grants),
	}, nil
}

// BuildPermissionSet es la función pura de mapeo grants → set efectivo:
// unión de rutas con permitido=true, más la raíz si el resultado no es vacío.
func BuildPermissionSet(grants []entity.ResourcePermission) entity.PermissionSet {
	set := entity.NewPermissionSet()
	for _, g := range grants {
		if g.Permitido && g.Ruta != "" {
			set[g.Ruta] = struct{}{}
		}
	}
	if len(set) > 0 {
		set[entity.RutaRaiz] = struct{}{}
	}
	return set
}
