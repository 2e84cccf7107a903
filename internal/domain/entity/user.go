package entity

import "time"

// Estados válidos para User.
const (
	UserActivo    = "active"
	UserInactivo  = "inactive"
	UserSuspended = "suspended"
)

// User representa un usuario del sistema. Sus capacidades NO viven aquí:
// se derivan de user_roles + resource_permissions vía el resolver de permisos.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Nombre       string
	Estado       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
