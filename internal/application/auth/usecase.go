package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/verduras-pro/internal/application/dto"
	"github.com/jhoicas/verduras-pro/internal/application/usecase"
	"github.com/jhoicas/verduras-pro/internal/domain"
	"github.com/jhoicas/verduras-pro/internal/domain/entity"
	"github.com/jhoicas/verduras-pro/internal/domain/repository"
	"github.com/jhoicas/verduras-pro/pkg/jwt"
	"github.com/jhoicas/verduras-pro/pkg/logger"
)

const minPasswordLen = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo        repository.UserRepository
	jwtCfg          JWTConfig
	defaultCurrency string
	log             *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, defaultCurrency string, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, defaultCurrency: defaultCurrency, log: log.Named("auth")}
}

// RegisterUser crea un usuario: valida, hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el username o el email ya existen.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if len(username) < 3 {
		return nil, fmt.Errorf("%w: el usuario debe tener al menos 3 caracteres", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	for _, login := range []string{username, email} {
		existing, err := uc.userRepo.FindByLogin(ctx, login)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = username
	}
	role := in.Role
	if role == "" {
		role = entity.RoleVendedor
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Business:     strings.TrimSpace(in.Business),
		Role:         role,
		Settings:     entity.UserSettings{Currency: uc.defaultCurrency, Notifications: true},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("username", user.Username).Str("role", user.Role).Msg("usuario registrado")
	return usecase.ToUserResponse(user), nil
}

// Login verifica usuario (o email) y password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByLogin(ctx, strings.TrimSpace(in.Login))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Warn().Str("login", in.Login).Msg("contraseña incorrecta")
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.ToUserResponse(user),
	}, nil
}

// SeedAdmin crea el administrador inicial si aún no existe. Devuelve true si lo creó.
func (uc *AuthUseCase) SeedAdmin(ctx context.Context, in dto.RegisterRequest) (bool, error) {
	existing, err := uc.userRepo.FindByLogin(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	in.Role = entity.RoleAdmin
	if _, err := uc.RegisterUser(ctx, in); err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return true, nil
}
