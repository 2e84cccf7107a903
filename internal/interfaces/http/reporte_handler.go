package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
	"github.com/tu-usuario/tesoreria-api/internal/application/tesoreria"
	"github.com/tu-usuario/tesoreria-api/internal/domain"
)

// ReporteHandler maneja el reporte de caja por rango de fechas.
type ReporteHandler struct {
	uc *tesoreria.ReporteUseCase
}

// NewReporteHandler construye el handler.
func NewReporteHandler(uc *tesoreria.ReporteUseCase) *ReporteHandler {
	return &ReporteHandler{uc: uc}
}

// Generar GET /api/reportes/caja?desde=2026-01-01&hasta=2026-01-31
func (h *ReporteHandler) Generar(c *fiber.Ctx) error {
	reporte, err := h.uc.Generar(c.Context(), c.Query("desde"), c.Query("hasta"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde y hasta (yyyy-mm-dd, desde <= hasta) son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(reporte.ToResponse())
}

// GenerarPDF GET /api/reportes/caja/pdf?desde=...&hasta=...
func (h *ReporteHandler) GenerarPDF(c *fiber.Ctx) error {
	pdf, nombre, err := h.uc.GenerarPDF(c.Context(), c.Query("desde"), c.Query("hasta"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde y hasta (yyyy-mm-dd, desde <= hasta) son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`"`)
	return c.Send(pdf)
}
