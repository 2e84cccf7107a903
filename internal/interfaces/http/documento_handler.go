package http

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
	"github.com/tu-usuario/tesoreria-api/internal/application/socios"
	"github.com/tu-usuario/tesoreria-api/internal/domain"
)

// DocumentoHandler maneja los documentos obligatorios de los socios.
// El binario viaja por multipart; el metadato por JSON.
type DocumentoHandler struct {
	uc *socios.DocumentoUseCase
}

// NewDocumentoHandler construye el handler.
func NewDocumentoHandler(uc *socios.DocumentoUseCase) *DocumentoHandler {
	return &DocumentoHandler{uc: uc}
}

// Subir POST /api/socios/:id/documentos (multipart: file + tipo)
func (h *DocumentoHandler) Subir(c *fiber.Ctx) error {
	socioID := c.Params("id")
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "campo multipart 'file' requerido"})
	}
	tipo := c.FormValue("tipo", "otros")

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()
	contenido, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	doc, err := h.uc.Subir(c.Context(), socioID, tipo, fileHeader.Filename, contentType, contenido, GetUserID(c))
	if err != nil {
		return documentoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// List GET /api/socios/:id/documentos
func (h *DocumentoHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListBySocio(c.Context(), c.Params("id"))
	if err != nil {
		return documentoError(c, err)
	}
	return c.JSON(list)
}

// Descargar GET /api/documentos/:docId/descargar
func (h *DocumentoHandler) Descargar(c *fiber.Ctx) error {
	contenido, nombre, contentType, err := h.uc.Descargar(c.Context(), c.Params("docId"))
	if err != nil {
		return documentoError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`"`)
	return c.Send(contenido)
}

// Eliminar DELETE /api/documentos/:docId
func (h *DocumentoHandler) Eliminar(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Context(), c.Params("docId")); err != nil {
		return documentoError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func documentoError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento o socio no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un documento con ese nombre"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
