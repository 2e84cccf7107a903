package authz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tesoreria-api/internal/application/authz"
	"github.com/tu-usuario/tesoreria-api/internal/domain"
	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mock de RoleRepository con contadores de llamadas
// ──────────────────────────────────────────────────────────────────────────────

type mockRoleRepo struct {
	roles      []entity.Role
	rolesErr   error
	grants     []entity.ResourcePermission
	grantsErr  error
	rolesCalls int
	grantCalls int
}

func (m *mockRoleRepo) ListRoles(ctx context.Context) ([]entity.Role, error) { return m.roles, nil }

func (m *mockRoleRepo) GetRolesByUser(ctx context.Context, userID string) ([]entity.Role, error) {
	m.rolesCalls++
	return m.roles, m.rolesErr
}

func (m *mockRoleRepo) GetGrantsByRoles(ctx context.Context, roleIDs []string) ([]entity.ResourcePermission, error) {
	m.grantCalls++
	return m.grants, m.grantsErr
}

func (m *mockRoleRepo) ListGrantsByRole(ctx context.Context, roleID string) ([]entity.ResourcePermission, error) {
	return m.grants, nil
}

func (m *mockRoleRepo) SetGrant(ctx context.Context, grant entity.ResourcePermission) error {
	return nil
}
func (m *mockRoleRepo) AssignRole(ctx context.Context, userID, roleID string) error { return nil }
func (m *mockRoleRepo) RemoveRole(ctx context.Context, userID, roleID string) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// BuildPermissionSet
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildPermissionSet_VacioNoIncluyeRaiz(t *testing.T) {
	set := authz.BuildPermissionSet(nil)

	assert.Empty(t, set, "sin grants el set debe ser vacío")
	assert.False(t, set.Contains(entity.RutaRaiz), "la raíz no se concede implícitamente")
}

func TestBuildPermissionSet_ConGrantsIncluyeRaiz(t *testing.T) {
	grants := []entity.ResourcePermission{
		{RolID: "r1", Ruta: entity.RutaCuentas, Permitido: true},
		{RolID: "r1", Ruta: entity.RutaSocios, Permitido: true},
	}
	set := authz.BuildPermissionSet(grants)

	assert.True(t, set.Contains(entity.RutaCuentas))
	assert.True(t, set.Contains(entity.RutaSocios))
	assert.True(t, set.Contains(entity.RutaRaiz), "cualquier acceso concedido implica la raíz")
	assert.Len(t, set, 3)
}

func TestBuildPermissionSet_RaizExplicitaEsIdempotente(t *testing.T) {
	grants := []entity.ResourcePermission{
		{RolID: "r1", Ruta: entity.RutaRaiz, Permitido: true},
		{RolID: "r2", Ruta: entity.RutaRaiz, Permitido: true},
		{RolID: "r2", Ruta: entity.RutaFacturacion, Permitido: true},
	}
	set := authz.BuildPermissionSet(grants)

	assert.Len(t, set, 2, "la raíz aparece una sola vez aunque venga en varios grants")
}

func TestBuildPermissionSet_IgnoraGrantsDenegados(t *testing.T) {
	grants := []entity.ResourcePermission{
		{RolID: "r1", Ruta: entity.RutaCuentas, Permitido: false},
	}
	set := authz.BuildPermissionSet(grants)

	assert.Empty(t, set)
	assert.False(t, set.Contains(entity.RutaRaiz))
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolver.Resolve
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_SinRolesProduceSetVacioSinConsultarGrants(t *testing.T) {
	repo := &mockRoleRepo{}
	resolver := authz.NewResolver(repo)

	res, err := resolver.Resolve(context.Background(), "actor-1")

	require.NoError(t, err)
	assert.Empty(t, res.Permisos)
	assert.Empty(t, res.Roles)
	assert.Equal(t, 0, repo.grantCalls, "con cero roles no se consultan grants")
}

func TestResolve_ConRolesYGrants(t *testing.T) {
	repo := &mockRoleRepo{
		roles: []entity.Role{{ID: "r1", Nombre: "tesorero"}},
		grants: []entity.ResourcePermission{
			{RolID: "r1", Ruta: entity.RutaCuentas, Permitido: true},
			{RolID: "r1", Ruta: entity.RutaIngresos, Permitido: true},
		},
	}
	resolver := authz.NewResolver(repo)

	res, err := resolver.Resolve(context.Background(), "actor-1")

	require.NoError(t, err)
	assert.True(t, res.Permisos.Contains(entity.RutaCuentas))
	assert.True(t, res.Permisos.Contains(entity.RutaIngresos))
	assert.True(t, res.Permisos.Contains(entity.RutaRaiz))
	assert.False(t, res.Permisos.Contains(entity.RutaConfiguracion))
}

func TestResolve_FalloDeRolesEsFailClosed(t *testing.T) {
	repo := &mockRoleRepo{rolesErr: errors.New("db caída")}
	resolver := authz.NewResolver(repo)

	res, err := resolver.Resolve(context.Background(), "actor-1")

	require.Error(t, err)
	assert.Nil(t, res, "un fallo jamás produce una resolución parcial")
	var lErr *domain.LookupError
	assert.ErrorAs(t, err, &lErr)
}

func TestResolve_FalloDeGrantsEsFailClosed(t *testing.T) {
	repo := &mockRoleRepo{
		roles:     []entity.Role{{ID: "r1", Nombre: "admin"}},
		grantsErr: errors.New("timeout"),
	}
	resolver := authz.NewResolver(repo)

	res, err := resolver.Resolve(context.Background(), "actor-1")

	require.Error(t, err)
	assert.Nil(t, res)
}

// ──────────────────────────────────────────────────────────────────────────────
// Gate y máquina de navegación
// ──────────────────────────────────────────────────────────────────────────────

func TestIsAuthorized_SetNilNiegaTodo(t *testing.T) {
	rutas := []string{
		entity.RutaRaiz, entity.RutaSocios, entity.RutaCuentas,
		entity.RutaFacturacion, entity.RutaConfiguracion, "/cualquiera",
	}
	for _, ruta := range rutas {
		assert.False(t, authz.IsAuthorized(ruta, nil), "set nil debe negar %s", ruta)
	}
}

func TestIsAuthorized_SoloRutasDelSet(t *testing.T) {
	set := entity.NewPermissionSet(entity.RutaRaiz, entity.RutaCuentas)

	assert.True(t, authz.IsAuthorized(entity.RutaCuentas, set))
	assert.True(t, authz.IsAuthorized(entity.RutaRaiz, set))
	assert.False(t, authz.IsAuthorized(entity.RutaConfiguracion, set))
}

func TestNavigation_FlujoAutorizado(t *testing.T) {
	nav := authz.NewNavigation(entity.RutaCuentas)

	assert.Equal(t, authz.NavUnresolved, nav.Estado())
	assert.Equal(t, authz.NavLoading, nav.Begin())

	estado := nav.Complete(entity.NewPermissionSet(entity.RutaRaiz, entity.RutaCuentas))
	assert.Equal(t, authz.NavAuthorized, estado)
}

func TestNavigation_FlujoDenegado(t *testing.T) {
	nav := authz.NewNavigation(entity.RutaConfiguracion)
	nav.Begin()

	estado := nav.Complete(entity.NewPermissionSet(entity.RutaRaiz, entity.RutaCuentas))
	assert.Equal(t, authz.NavDenied, estado, "denegado se muestra en el lugar, sin redirect")
}

func TestNavigation_EstadosTerminalesSonDefinitivos(t *testing.T) {
	nav := authz.NewNavigation(entity.RutaCuentas)
	nav.Begin()
	nav.Complete(nil) // denegado: set nil

	assert.Equal(t, authz.NavDenied, nav.Estado())
	// Ni Begin ni Complete mueven un estado terminal.
	assert.Equal(t, authz.NavDenied, nav.Begin())
	assert.Equal(t, authz.NavDenied, nav.Complete(entity.NewPermissionSet(entity.RutaCuentas)))
}

func TestNavigation_CompleteSinBeginEsNoOp(t *testing.T) {
	nav := authz.NewNavigation(entity.RutaCuentas)

	estado := nav.Complete(entity.NewPermissionSet(entity.RutaCuentas))
	assert.Equal(t, authz.NavUnresolved, estado)
}
