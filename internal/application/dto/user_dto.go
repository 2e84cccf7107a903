package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Nombre   string   `json:"nombre" validate:"required,min=1,max=200"`
	Roles    []string `json:"roles,omitempty"` // IDs de roles a asignar
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Nombre    string    `json:"nombre"`
	Estado    string    `json:"estado"`
	Roles     []string  `json:"roles,omitempty"` // nombres de roles resueltos
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y su ventana de validez.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// SessionResponse snapshot de la sesión: actor + autorización derivada.
// Permisos null significa resolución ausente o fallida: fail-closed.
type SessionResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	Roles     []string  `json:"roles"`
	Permisos  []string  `json:"permisos"`
	Cargando  bool      `json:"cargando"`
	Error     string    `json:"error,omitempty"`
}
