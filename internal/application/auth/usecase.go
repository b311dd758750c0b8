// Package auth implementa el alta y autenticación de empleados con bcrypt
// y sesiones JWT. El token lleva rol y departamento para que el middleware
// RBAC decida sin tocar la base de datos.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gcharles/autoshop-inventory/internal/application/dto"
	"github.com/gcharles/autoshop-inventory/internal/domain"
	"github.com/gcharles/autoshop-inventory/internal/domain/access"
	"github.com/gcharles/autoshop-inventory/internal/domain/entity"
	"github.com/gcharles/autoshop-inventory/internal/domain/repository"
	"github.com/gcharles/autoshop-inventory/pkg/jwt"
	"github.com/gcharles/autoshop-inventory/pkg/logger"
)

const (
	minPasswordLen = 8
	defaultRole    = access.RoleSales // rol de menor privilegio por defecto

	statusActive   = "active"
	statusInactive = "inactive"
)

// Options parámetros de emisión de tokens.
type Options struct {
	JWTSecret     string
	JWTIssuer     string
	JWTExpMinutes int
}

// UseCase casos de uso de autenticación.
type UseCase struct {
	users repository.UserRepository
	log   *logger.Logger
	opts  Options
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(users repository.UserRepository, log *logger.Logger, opts Options) *UseCase {
	return &UseCase{users: users, log: log, opts: opts}
}

// Register da de alta un empleado. El password se guarda con bcrypt; el rol
// debe existir en la política de acceso (vacío → rol por defecto).
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: el password debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = defaultRole
	}
	if access.AllowedDashboards(role) == nil {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}

	existing, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
		Department:   in.Department,
		Status:       statusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("empleado registrado")
	return toUserResponse(user), nil
}

// Login autentica por email+password y emite el JWT de sesión. Credenciales
// inválidas y usuarios inactivos responden lo mismo: ErrUnauthorized.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son requeridos", domain.ErrInvalidInput)
	}

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != statusActive {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.opts.JWTSecret, user.ID, user.Role, user.Department, uc.opts.JWTIssuer, uc.opts.JWTExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login exitoso")
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Department: u.Department,
		Status:     u.Status,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
