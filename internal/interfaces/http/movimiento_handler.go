package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
	"github.com/tu-usuario/tesoreria-api/internal/application/tesoreria"
	"github.com/tu-usuario/tesoreria-api/internal/domain"
	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
)

// MovimientoHandler maneja ingresos y egresos de las cuentas.
type MovimientoHandler struct {
	uc *tesoreria.MovimientoUseCase
}

// NewMovimientoHandler construye el handler.
func NewMovimientoHandler(uc *tesoreria.MovimientoUseCase) *MovimientoHandler {
	return &MovimientoHandler{uc: uc}
}

// RegistrarIngreso POST /api/ingresos
func (h *MovimientoHandler) RegistrarIngreso(c *fiber.Ctx) error {
	return h.registrar(c, entity.MovIngreso)
}

// RegistrarEgreso POST /api/egresos
func (h *MovimientoHandler) RegistrarEgreso(c *fiber.Ctx) error {
	return h.registrar(c, entity.MovEgreso)
}

// registrar fija el tipo según la ruta de entrada: el body no decide el gate.
func (h *MovimientoHandler) registrar(c *fiber.Ctx, tipo string) error {
	var in dto.RegistrarMovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.Tipo = tipo
	mov, err := h.uc.Registrar(c.Context(), GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cuenta_id, tipo (ingreso|egreso), categoría y monto positivo son requeridos"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la cuenta no existe"})
		case errors.Is(err, domain.ErrSaldoInsuficiente):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_FUNDS", Message: "el egreso excede el saldo de la cuenta"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(mov)
}

// ListByCuenta GET /api/cuentas/:id/movimientos?limit=50&offset=0
func (h *MovimientoHandler) ListByCuenta(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.ListByCuenta(c.Context(), c.Params("id"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Eliminar DELETE /api/movimientos/:id — revierte el ajuste de saldo.
func (h *MovimientoHandler) Eliminar(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
