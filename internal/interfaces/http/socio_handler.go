package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
	"github.com/tu-usuario/tesoreria-api/internal/application/socios"
	"github.com/tu-usuario/tesoreria-api/internal/domain"
)

// SocioHandler maneja el padrón de socios titulares.
type SocioHandler struct {
	uc *socios.UseCase
}

// NewSocioHandler construye el handler.
func NewSocioHandler(uc *socios.UseCase) *SocioHandler {
	return &SocioHandler{uc: uc}
}

// Create POST /api/socios
func (h *SocioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSocioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	socio, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return socioError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(socio)
}

// List GET /api/socios?limit=20&offset=0
func (h *SocioHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID GET /api/socios/:id
func (h *SocioHandler) GetByID(c *fiber.Ctx) error {
	socio, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return socioError(c, err)
	}
	return c.JSON(socio)
}

// Update PUT /api/socios/:id
func (h *SocioHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateSocioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	socio, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return socioError(c, err)
	}
	return c.JSON(socio)
}

// Delete DELETE /api/socios/:id
func (h *SocioHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return socioError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func socioError(c *fiber.Ctx, err error) error {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: vErr.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del socio inválidos"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un socio con ese número de documento"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "socio no encontrado"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el socio tiene documentos o movimientos asociados"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
