package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"

	"github.com/jhoicas/verduras-pro/internal/application/dto"
	"github.com/jhoicas/verduras-pro/internal/domain"
	"github.com/jhoicas/verduras-pro/internal/domain/entity"
	"github.com/jhoicas/verduras-pro/internal/domain/repository"
)

// UserUseCase perfil y preferencias del usuario autenticado.
type UserUseCase struct {
	repo            repository.UserRepository
	defaultCurrency string
}

// NewUserUseCase construye el caso de uso. defaultCurrency se usa si el usuario no tiene moneda.
func NewUserUseCase(repo repository.UserRepository, defaultCurrency string) *UserUseCase {
	return &UserUseCase{repo: repo, defaultCurrency: defaultCurrency}
}

// Me devuelve el perfil del usuario.
func (uc *UserUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// UpdateSettings cambia moneda y notificaciones. La moneda debe ser un código ISO conocido.
func (uc *UserUseCase) UpdateSettings(ctx context.Context, userID string, in dto.UpdateSettingsRequest) (*dto.SettingsDTO, error) {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Currency != nil {
		code := strings.ToUpper(strings.TrimSpace(*in.Currency))
		if len(code) != 3 || money.GetCurrency(code) == nil {
			return nil, fmt.Errorf("%w: moneda %q no soportada", domain.ErrInvalidInput, *in.Currency)
		}
		user.Settings.Currency = code
	}
	if in.Notifications != nil {
		user.Settings.Notifications = *in.Notifications
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return &dto.SettingsDTO{Currency: user.Settings.Currency, Notifications: user.Settings.Notifications}, nil
}

// CurrencyFor moneda con la que se formatean los montos para userID.
// Ante cualquier error se usa la moneda del negocio.
func (uc *UserUseCase) CurrencyFor(ctx context.Context, userID string) string {
	if userID == "" {
		return uc.defaultCurrency
	}
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil || user == nil || user.Settings.Currency == "" {
		return uc.defaultCurrency
	}
	return user.Settings.Currency
}

// ToUserResponse convierte la entidad a DTO (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Business:  u.Business,
		Role:      u.Role,
		Settings:  dto.SettingsDTO{Currency: u.Settings.Currency, Notifications: u.Settings.Notifications},
		CreatedAt: u.CreatedAt,
	}
}
