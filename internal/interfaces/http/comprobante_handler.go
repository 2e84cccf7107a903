package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
	"github.com/tu-usuario/tesoreria-api/internal/application/facturacion"
	"github.com/tu-usuario/tesoreria-api/internal/domain"
)

// ComprobanteHandler maneja la emisión de boletas electrónicas: búsqueda del
// receptor por documento, emisión vía el proveedor, y descarga/archivo del PDF.
type ComprobanteHandler struct {
	orq    *facturacion.Orquestador
	lookup *facturacion.LookupUseCase
}

// NewComprobanteHandler construye el handler.
func NewComprobanteHandler(orq *facturacion.Orquestador, lookup *facturacion.LookupUseCase) *ComprobanteHandler {
	return &ComprobanteHandler{orq: orq, lookup: lookup}
}

// BuscarCliente GET /api/comprobantes/clientes/:numeroDoc
// Prellena el receptor desde el padrón. 404 limpio si el documento no existe
// o es demasiado corto para buscar.
func (h *ComprobanteHandler) BuscarCliente(c *fiber.Ctx) error {
	cliente, err := h.lookup.FindByDocument(c.Context(), c.Params("numeroDoc"))
	if err != nil {
		var lErr *domain.LookupError
		if errors.As(err, &lErr) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "LOOKUP_FAILED", Message: "no se pudo consultar el padrón, intente más tarde"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if cliente == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "socio no encontrado"})
	}
	return c.JSON(cliente)
}

// Emitir POST /api/comprobantes
// Emite la boleta en el proveedor. En rechazo NO hay reintento automático:
// el formulario del usuario sigue intacto para corregir y reenviar.
func (h *ComprobanteHandler) Emitir(c *fiber.Ctx) error {
	var in dto.EmitirBoletaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.orq.Emitir(c.Context(), GetUserID(c), in)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: vErr.Error()})
		}
		var iErr *domain.IssuanceError
		if errors.As(err, &iErr) {
			// 502: el rechazo vino del proveedor; el mensaje va íntegro al usuario.
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "ISSUANCE_REJECTED", Message: iErr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Estado GET /api/comprobantes/:id/estado
func (h *ComprobanteHandler) Estado(c *fiber.Ctx) error {
	boletaID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de boleta inválido"})
	}
	estado := h.orq.Estado(boletaID)
	if estado == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la boleta no está en un flujo activo"})
	}
	return c.JSON(fiber.Map{"id": boletaID, "estado": string(estado)})
}

// DescargarPDF GET /api/comprobantes/:id/pdf?format=A4|TICKET
// Descarga el PDF del proveedor, lo archiva en el storage y lo entrega.
func (h *ComprobanteHandler) DescargarPDF(c *fiber.Ctx) error {
	boletaID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de boleta inválido"})
	}
	formato := facturacion.FormatoPDF(c.Query("format", string(facturacion.FormatoA4)))
	if formato != facturacion.FormatoA4 && formato != facturacion.FormatoTicket {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser A4 o TICKET"})
	}

	contenido, nombre, err := h.orq.DescargarYArchivar(c.Context(), boletaID, formato)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la boleta no está en un flujo activo"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "PDF_DOWNLOAD_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`"`)
	return c.Send(contenido)
}

// Descartar DELETE /api/comprobantes/:id
// Olvida el flujo en vuelo; el comprobante sigue existiendo en el proveedor.
func (h *ComprobanteHandler) Descartar(c *fiber.Ctx) error {
	boletaID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de boleta inválido"})
	}
	h.orq.Descartar(boletaID)
	return c.SendStatus(fiber.StatusNoContent)
}
