package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tesoreria-api/internal/application/authz"
	"github.com/tu-usuario/tesoreria-api/internal/application/session"
	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
	apphttp "github.com/tu-usuario/tesoreria-api/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/tesoreria-api/pkg/jwt"
	"github.com/tu-usuario/tesoreria-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmail     = "tesorero@test.pe"
	testIssuer    = "tesoreria-api-test"
	testExpMin    = 60
)

// resolverFijo resuelve siempre el mismo set de permisos (o el mismo error).
type resolverFijo struct {
	permisos entity.PermissionSet
	err      error
}

func (r *resolverFijo) Resolve(ctx context.Context, actorID string) (*authz.Resolution, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &authz.Resolution{ActorID: actorID, Permisos: r.permisos}, nil
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequirePermission sobre la ruta de recurso dada
//   - Un handler dummy que devuelve 200 si pasa los middlewares
//
// iniciarSesion controla si se empuja el evento signed-in al Manager: sin él
// el token puede ser válido pero no hay sesión abierta.
func buildTestApp(t *testing.T, ruta string, resolver session.Resolver, iniciarSesion bool) *fiber.App {
	t.Helper()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	sesiones := session.NewManager(resolver, log)
	if iniciarSesion {
		sesiones.Handle(context.Background(), session.Event{
			Kind:  session.SignedIn,
			Actor: &entity.Actor{ID: testUserID, Email: testEmail, ExpiraEn: time.Now().Add(time.Hour)},
		})
	}

	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(ruta, sesiones),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":    true,
				"email": apphttp.GetEmail(c),
			})
		},
	)
	return app
}

func tokenDePrueba(t *testing.T) string {
	t.Helper()
	tok, _, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: la ruta está en el set efectivo del actor → HTTP 200.
func TestRequirePermission_RutaDelSetAccede(t *testing.T) {
	resolver := &resolverFijo{permisos: entity.NewPermissionSet(entity.RutaRaiz, entity.RutaCuentas)}
	app := buildTestApp(t, entity.RutaCuentas, resolver, true)

	resp := doRequest(t, app, tokenDePrueba(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, testEmail, body["email"])
}

// Caso 2: la ruta NO está en el set → HTTP 403 ACCESS_DENIED.
func TestRequirePermission_RutaFueraDelSetBloqueada(t *testing.T) {
	resolver := &resolverFijo{permisos: entity.NewPermissionSet(entity.RutaRaiz, entity.RutaCuentas)}
	app := buildTestApp(t, entity.RutaConfiguracion, resolver, true)

	resp := doRequest(t, app, tokenDePrueba(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "ACCESS_DENIED")
}

// Caso 3: token válido pero sin sesión abierta → HTTP 401 NO_SESSION.
func TestRequirePermission_SinSesionAbierta(t *testing.T) {
	resolver := &resolverFijo{permisos: entity.NewPermissionSet(entity.RutaRaiz, entity.RutaCuentas)}
	app := buildTestApp(t, entity.RutaCuentas, resolver, false)

	resp := doRequest(t, app, tokenDePrueba(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NO_SESSION")
}

// Caso 4: la resolución de permisos falló → HTTP 503, nada se autoriza.
func TestRequirePermission_ResolucionFallidaEsFailClosed(t *testing.T) {
	resolver := &resolverFijo{err: errors.New("padrón inaccesible")}
	app := buildTestApp(t, entity.RutaCuentas, resolver, true)

	resp := doRequest(t, app, tokenDePrueba(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "PERMISSION_RESOLUTION_FAILED")
}

// Caso 5: un set vacío (actor sin roles) niega todas las rutas.
func TestRequirePermission_SetVacioNiegaTodo(t *testing.T) {
	resolver := &resolverFijo{permisos: entity.NewPermissionSet()}
	app := buildTestApp(t, entity.RutaSocios, resolver, true)

	resp := doRequest(t, app, tokenDePrueba(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	resolver := &resolverFijo{permisos: entity.NewPermissionSet(entity.RutaCuentas)}
	app := buildTestApp(t, entity.RutaCuentas, resolver, true)

	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	resolver := &resolverFijo{permisos: entity.NewPermissionSet(entity.RutaCuentas)}
	app := buildTestApp(t, entity.RutaCuentas, resolver, true)

	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_FormatoNoBearer_Retorna401(t *testing.T) {
	resolver := &resolverFijo{permisos: entity.NewPermissionSet(entity.RutaCuentas)}
	app := buildTestApp(t, entity.RutaCuentas, resolver, true)

	resp := doRequest(t, app, "Basic dXNlcjpwYXNz")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, exp, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, email, expiresAt, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testEmail, email)
	assert.WithinDuration(t, exp, expiresAt, time.Second)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, _, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, _, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
