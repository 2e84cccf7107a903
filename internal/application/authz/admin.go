package authz

import (
	"context"

	"github.com/tu-usuario/tesoreria-api/internal/domain"
	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
	"github.com/tu-usuario/tesoreria-api/internal/domain/repository"
)

// rutasValidas vocabulario cerrado de rutas de recurso concedibles.
var rutasValidas = map[string]struct{}{
	entity.RutaSocios:          {},
	entity.RutaCuentas:         {},
	entity.RutaEgresos:         {},
	entity.RutaIngresos:        {},
	entity.RutaFacturacion:     {},
	entity.RutaDocumentosSocio: {},
	entity.RutaConfiguracion:   {},
}

// AdminUseCase administración de roles y grants (área de configuración).
type AdminUseCase struct {
	roles repository.RoleRepository
}

// NewAdminUseCase construye el caso de uso.
func NewAdminUseCase(roles repository.RoleRepository) *AdminUseCase {
	return &AdminUseCase{roles: roles}
}

// ListRoles lista los roles del sistema.
func (uc *AdminUseCase) ListRoles(ctx context.Context) ([]entity.Role, error) {
	return uc.roles.ListRoles(ctx)
}

// ListGrants lista los grants de un rol (incluye denegados).
func (uc *AdminUseCase) ListGrants(ctx context.Context, roleID string) ([]entity.ResourcePermission, error) {
	if roleID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.roles.ListGrantsByRole(ctx, roleID)
}

// SetGrant crea o reemplaza el grant (rol, ruta). La raíz "/" no se concede
// por grant: la agrega el resolver cuando el set efectivo no es vacío.
func (uc *AdminUseCase) SetGrant(ctx context.Context, grant entity.ResourcePermission) error {
	if grant.RolID == "" {
		return domain.ErrInvalidInput
	}
	if _, ok := rutasValidas[grant.Ruta]; !ok {
		return domain.ErrInvalidInput
	}
	return uc.roles.SetGrant(ctx, grant)
}

// AssignRole agrega la membresía usuario↔rol.
func (uc *AdminUseCase) AssignRole(ctx context.Context, userID, roleID string) error {
	if userID == "" || roleID == "" {
		return domain.ErrInvalidInput
	}
	return uc.roles.AssignRole(ctx, userID, roleID)
}

// RemoveRole elimina la membresía usuario↔rol.
func (uc *AdminUseCase) RemoveRole(ctx context.Context, userID, roleID string) error {
	if userID == "" || roleID == "" {
		return domain.ErrInvalidInput
	}
	return uc.roles.RemoveRole(ctx, userID, roleID)
}
