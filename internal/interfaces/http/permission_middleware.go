package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/tesoreria-api/internal/application/authz"
	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
	"github.com/tu-usuario/tesoreria-api/internal/application/session"
)

// RequirePermission devuelve un middleware Fiber que verifica que la sesión
// del actor tenga acceso a la ruta de recurso dada. Debe usarse DESPUÉS de
// AuthMiddleware (necesita LocalUserID).
//
// Comportamiento:
//   - Espera mientras la resolución de permisos esté en vuelo (no decide sobre
//     un estado intermedio).
//   - 401 → sin sesión abierta (el token es válido pero no hubo sign-in).
//   - 503 → la resolución falló: sin permisos conocidos nada se autoriza.
//   - 403 ACCESS_DENIED → la ruta no está en el set efectivo del actor.
func RequirePermission(ruta string, sesiones *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID := GetUserID(c)
		if actorID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "identidad no encontrada en el token",
			})
		}

		snap, err := sesiones.Snapshot(c.Context(), actorID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "SESSION_WAIT_FAILED",
				Message: "no se pudo obtener la sesión, intente más tarde",
			})
		}
		if snap.Actor == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "NO_SESSION",
				Message: "sesión no iniciada",
			})
		}
		if snap.Err != nil {
			// Resolución fallida: sin set de permisos nada se autoriza.
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_RESOLUTION_FAILED",
				Message: "no se pudieron resolver los permisos, intente más tarde",
			})
		}
		if !authz.IsAuthorized(ruta, snap.Permisos) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "ACCESS_DENIED",
				Message: "sin acceso al recurso '" + ruta + "'",
			})
		}
		return c.Next()
	}
}
