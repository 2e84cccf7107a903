package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/tesoreria-api/internal/application/authz"
	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
	"github.com/tu-usuario/tesoreria-api/internal/domain"
	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
)

// RolesHandler administra roles, grants y membresías (área de configuración).
// Los cambios aplican a las sesiones en su próximo sign-in: los permisos ya
// resueltos de un actor no se recalculan en caliente.
type RolesHandler struct {
	uc *authz.AdminUseCase
}

// NewRolesHandler construye el handler.
func NewRolesHandler(uc *authz.AdminUseCase) *RolesHandler {
	return &RolesHandler{uc: uc}
}

type setGrantRequest struct {
	Ruta      string `json:"ruta"`
	Permitido bool   `json:"permitido"`
}

type membershipRequest struct {
	UserID string `json:"user_id"`
}

// ListRoles GET /api/roles
func (h *RolesHandler) ListRoles(c *fiber.Ctx) error {
	roles, err := h.uc.ListRoles(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]fiber.Map, 0, len(roles))
	for _, r := range roles {
		out = append(out, fiber.Map{"id": r.ID, "nombre": r.Nombre})
	}
	return c.JSON(out)
}

// ListGrants GET /api/roles/:id/grants
func (h *RolesHandler) ListGrants(c *fiber.Ctx) error {
	grants, err := h.uc.ListGrants(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de rol requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]fiber.Map, 0, len(grants))
	for _, g := range grants {
		out = append(out, fiber.Map{"ruta": g.Ruta, "permitido": g.Permitido})
	}
	return c.JSON(out)
}

// SetGrant PUT /api/roles/:id/grants
func (h *RolesHandler) SetGrant(c *fiber.Ctx) error {
	var in setGrantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	grant := entity.ResourcePermission{RolID: c.Params("id"), Ruta: in.Ruta, Permitido: in.Permitido}
	if err := h.uc.SetGrant(c.Context(), grant); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ruta de recurso desconocida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AssignRole POST /api/roles/:id/members
func (h *RolesHandler) AssignRole(c *fiber.Ctx) error {
	var in membershipRequest
	if err := c.BodyParser(&in); err != nil || in.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "user_id requerido"})
	}
	if err := h.uc.AssignRole(c.Context(), in.UserID, c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveRole DELETE /api/roles/:id/members/:userId
func (h *RolesHandler) RemoveRole(c *fiber.Ctx) error {
	if err := h.uc.RemoveRole(c.Context(), c.Params("userId"), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
