package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/tesoreria-api/internal/application/auth"
	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
	"github.com/tu-usuario/tesoreria-api/internal/application/session"
	"github.com/tu-usuario/tesoreria-api/internal/domain"
)

// AuthHandler maneja login, logout, refresh y gestión de usuarios.
type AuthHandler struct {
	uc       *auth.AuthUseCase
	sesiones *session.Manager
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, sesiones *session.Manager) *AuthHandler {
	return &AuthHandler{uc: uc, sesiones: sesiones}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email y password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	resp, err := h.uc.Login(c.Context(), in)
	if err != nil {
		switch err {
		case domain.ErrUserNotFound, domain.ErrUnauthorized:
			// Misma respuesta para usuario inexistente y password incorrecto.
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "credenciales inválidas"})
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "USER_DISABLED", Message: "el usuario no está activo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// Refresh POST /api/auth/refresh — renueva el token del actor autenticado.
// La sesión conserva sus permisos: mismo actor, sin re-consulta de roles.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	resp, err := h.uc.Refresh(c.Context(), GetUserID(c))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "usuario no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// Logout POST /api/auth/logout — cierra la sesión y limpia sus permisos.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.uc.Logout(c.Context(), GetUserID(c), GetEmail(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// Session GET /api/auth/session — snapshot de la sesión del actor: identidad
// y permisos siempre del mismo instante. Espera si la resolución está en vuelo.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	actorID := GetUserID(c)
	snap, err := h.sesiones.Snapshot(c.Context(), actorID)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SESSION_WAIT_FAILED", Message: "no se pudo obtener la sesión"})
	}
	if snap.Actor == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "sesión no iniciada"})
	}

	out := dto.SessionResponse{
		UserID:    snap.Actor.ID,
		Email:     snap.Actor.Email,
		ExpiresAt: snap.Actor.ExpiraEn,
		Roles:     []string{},
		Permisos:  []string{},
		Cargando:  snap.Cargando,
	}
	for _, rol := range snap.Roles {
		out.Roles = append(out.Roles, rol.Nombre)
	}
	if snap.Permisos != nil {
		out.Permisos = snap.Permisos.Rutas()
	}
	if snap.Err != nil {
		out.Error = snap.Err.Error()
	}
	return c.JSON(out)
}

// CreateUser POST /api/users — alta de usuario con roles iniciales.
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	user, err := h.uc.CreateUser(c.Context(), in)
	if err != nil {
		if err == domain.ErrEmailAlreadyExists {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// ListUsers GET /api/users?limit=20&offset=0
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.ListUsers(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}
