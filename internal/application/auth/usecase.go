package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/tesoreria-api/internal/application/dto"
	"github.com/tu-usuario/tesoreria-api/internal/application/session"
	"github.com/tu-usuario/tesoreria-api/internal/domain"
	"github.com/tu-usuario/tesoreria-api/internal/domain/entity"
	"github.com/tu-usuario/tesoreria-api/internal/domain/repository"
	"github.com/tu-usuario/tesoreria-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, logout, refresh y alta de
// usuarios. Cada cambio de autenticación se empuja como evento al registro de
// sesiones, que re-deriva (o limpia) los permisos del actor.
type AuthUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	sesiones *session.Manager
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository, sesiones *session.Manager, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, roleRepo: roleRepo, sesiones: sesiones, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y emite el evento signed-in para
// que la sesión resuelva roles y permisos.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Estado != entity.UserActivo {
		return nil, domain.ErrForbidden
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	uc.sesiones.Handle(ctx, session.Event{
		Kind:  session.SignedIn,
		Actor: &entity.Actor{ID: user.ID, Email: user.Email, ExpiraEn: exp},
	})

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      *uc.toUserResponse(ctx, user),
	}, nil
}

// Refresh emite un token nuevo para el actor vigente. Como el actor es el
// mismo, la sesión solo actualiza su ventana de validez: los permisos NO se
// vuelven a consultar.
func (uc *AuthUseCase) Refresh(ctx context.Context, userID string) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.sesiones.Handle(ctx, session.Event{
		Kind:  session.TokenRefreshed,
		Actor: &entity.Actor{ID: user.ID, Email: user.Email, ExpiraEn: exp},
	})
	return &dto.LoginResponse{Token: token, ExpiresAt: exp, User: *uc.toUserResponse(ctx, user)}, nil
}

// Logout desmonta la sesión del actor: actor y permisos se limpian por completo.
func (uc *AuthUseCase) Logout(ctx context.Context, userID, email string) {
	uc.sesiones.Handle(ctx, session.Event{
		Kind:  session.SignedOut,
		Actor: &entity.Actor{ID: userID, Email: email},
	})
}

// CreateUser crea un usuario (solo administración): hashea el password con
// bcrypt, persiste y asigna las membresías de rol indicadas.
func (uc *AuthUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	nombre := in.Nombre
	if nombre == "" {
		nombre = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Nombre:       nombre,
		Estado:       entity.UserActivo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	for _, roleID := range in.Roles {
		if err := uc.roleRepo.AssignRole(ctx, user.ID, roleID); err != nil {
			return nil, err
		}
	}
	return uc.toUserResponse(ctx, user), nil
}

// ListUsers lista usuarios con sus roles.
func (uc *AuthUseCase) ListUsers(ctx context.Context, limit, offset int) ([]*dto.UserResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	users, err := uc.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, uc.toUserResponse(ctx, u))
	}
	return out, nil
}

func (uc *AuthUseCase) toUserResponse(ctx context.Context, u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	resp := &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Nombre:    u.Nombre,
		Estado:    u.Estado,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	// Los roles en la respuesta son informativos; si la consulta falla se
	// omiten (la autorización real nunca sale de aquí).
	if roles, err := uc.roleRepo.GetRolesByUser(ctx, u.ID); err == nil {
		for _, r := range roles {
			resp.Roles = append(resp.Roles, r.Nombre)
		}
	}
	return resp
}
