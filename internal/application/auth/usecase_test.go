package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/verduras-pro/internal/application/auth"
	"github.com/jhoicas/verduras-pro/internal/application/dto"
	"github.com/jhoicas/verduras-pro/internal/domain"
	"github.com/jhoicas/verduras-pro/internal/domain/entity"
	"github.com/jhoicas/verduras-pro/internal/infrastructure/sqlite"
	"github.com/jhoicas/verduras-pro/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return auth.NewAuthUseCase(sqlite.NewUserRepository(db), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "verduras-pro"}, "MXN", nil)
}

func TestRegisterAndLogin(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Username: "ana", Email: " Ana@Example.com ", Password: "verduras123", Name: "Ana", Business: "La Huerta",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, u.Role)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, "MXN", u.Settings.Currency)
	assert.True(t, u.Settings.Notifications)

	for _, login := range []string{"ana", "ANA@example.com"} {
		out, err := uc.Login(ctx, dto.LoginRequest{Login: login, Password: "verduras123"})
		require.NoError(t, err, login)
		claims, err := jwt.Parse(secret, out.Token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UserID)
		assert.Equal(t, "ana", claims.Username)
		assert.Equal(t, entity.RoleVendedor, claims.Role)
	}

	_, err = uc.Login(ctx, dto.LoginRequest{Login: "ana", Password: "otra-cosa"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Login: "nadie", Password: "verduras123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegister_Validation(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Email: "ana@example.com", Password: "verduras123", Name: "Ana"})
	require.NoError(t, err)

	cases := []struct {
		name string
		in   dto.RegisterRequest
		want error
	}{
		{"usuario corto", dto.RegisterRequest{Username: "ab", Email: "x@example.com", Password: "12345678"}, domain.ErrInvalidInput},
		{"email inválido", dto.RegisterRequest{Username: "beto", Email: "beto", Password: "12345678"}, domain.ErrInvalidInput},
		{"password corta", dto.RegisterRequest{Username: "beto", Email: "beto@example.com", Password: "1234"}, domain.ErrInvalidInput},
		{"usuario repetido", dto.RegisterRequest{Username: "ANA", Email: "otra@example.com", Password: "12345678"}, domain.ErrEmailAlreadyExists},
		{"email repetido", dto.RegisterRequest{Username: "beto", Email: "ana@example.com", Password: "12345678"}, domain.ErrEmailAlreadyExists},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := uc.RegisterUser(ctx, c.in)
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestSeedAdmin_Idempotent(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()
	in := dto.RegisterRequest{Username: "admin", Email: "admin@verduraspro.com", Password: "admin1234", Name: "Administrador"}

	created, err := uc.SeedAdmin(ctx, in)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.SeedAdmin(ctx, in)
	require.NoError(t, err)
	assert.False(t, created)

	out, err := uc.Login(ctx, dto.LoginRequest{Login: "admin", Password: "admin1234"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	_, err = uc.SeedAdmin(ctx, dto.RegisterRequest{Username: "root", Email: "root@verduraspro.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin contraseña configurada")
}
