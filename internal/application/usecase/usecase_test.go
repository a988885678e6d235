package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/verduras-pro/internal/application/dto"
	"github.com/jhoicas/verduras-pro/internal/application/usecase"
	"github.com/jhoicas/verduras-pro/internal/domain"
	"github.com/jhoicas/verduras-pro/internal/domain/entity"
	"github.com/jhoicas/verduras-pro/internal/infrastructure/sqlite"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

func newProductUseCase(t *testing.T) *usecase.ProductUseCase {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return usecase.NewProductUseCase(sqlite.NewProductRepository(db), nil)
}

func TestProductUseCase_CreateDefaultsAndValidation(t *testing.T) {
	uc := newProductUseCase(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "  Tomates ", AvgCost: d("2.00")})
	require.NoError(t, err)
	assert.Equal(t, "Tomates", p.Name)
	assert.Equal(t, entity.UnitKg, p.Unit)
	assert.True(t, p.Active)
	assert.True(t, p.Stock.IsZero())

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "TOMATES", AvgCost: d("1")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: " ", AvgCost: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Papas", AvgCost: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Papas", Unit: "litro", AvgCost: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_SeedDefaultsIsIdempotent(t *testing.T) {
	uc := newProductUseCase(t)
	ctx := context.Background()

	first, err := uc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Len(t, first.Created, len(usecase.DefaultCatalogue))
	assert.Empty(t, first.Skipped)

	second, err := uc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Empty(t, second.Created)
	assert.Len(t, second.Skipped, len(usecase.DefaultCatalogue))

	list, err := uc.List(ctx, dto.ProductListRequest{PageRequest: dto.PageRequest{Limit: 100}})
	require.NoError(t, err)
	assert.Equal(t, 9, list.Page.Total)
	assert.Equal(t, "Calabazas", list.Items[0].Name)
}

func TestProductUseCase_ListSearchIgnoresAccents(t *testing.T) {
	uc := newProductUseCase(t)
	ctx := context.Background()
	for _, name := range []string{"Limón", "Plátano", "Lechugas", "Jitomate"} {
		_, err := uc.Create(ctx, dto.CreateProductRequest{Name: name, Category: "Frutas", AvgCost: d("1")})
		require.NoError(t, err)
	}

	got, err := uc.List(ctx, dto.ProductListRequest{Search: "limon"})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Limón", got.Items[0].Name)

	got, err = uc.List(ctx, dto.ProductListRequest{Search: "FRUTAS", PageRequest: dto.PageRequest{Limit: 2, Offset: 1}})
	require.NoError(t, err)
	assert.Equal(t, 4, got.Page.Total)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Lechugas", got.Items[0].Name)
	assert.Equal(t, "Limón", got.Items[1].Name)

	got, err = uc.List(ctx, dto.ProductListRequest{PageRequest: dto.PageRequest{Offset: 50}})
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestProductUseCase_UpdateDeleteReset(t *testing.T) {
	uc := newProductUseCase(t)
	ctx := context.Background()
	a, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Papas", AvgCost: d("1.50")})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Chiles", AvgCost: d("3")})
	require.NoError(t, err)

	cost := d("1.75")
	inactive := false
	upd, err := uc.Update(ctx, a.ID, dto.UpdateProductRequest{AvgCost: &cost, Active: &inactive, Category: strPtr("Tubérculos")})
	require.NoError(t, err)
	assert.True(t, upd.AvgCost.Equal(cost))
	assert.False(t, upd.Active)
	assert.Equal(t, "Tubérculos", upd.Category)

	_, err = uc.Update(ctx, a.ID, dto.UpdateProductRequest{Name: strPtr("chiles")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	missing, err := uc.Update(ctx, "nope", dto.UpdateProductRequest{Name: strPtr("X")})
	require.NoError(t, err)
	assert.Nil(t, missing)

	active, err := uc.List(ctx, dto.ProductListRequest{OnlyActive: true})
	require.NoError(t, err)
	assert.Equal(t, 1, active.Page.Total)

	require.NoError(t, uc.Delete(ctx, a.ID))
	assert.ErrorIs(t, uc.Delete(ctx, a.ID), domain.ErrProductNotFound)

	require.NoError(t, uc.Reset(ctx))
	all, err := uc.List(ctx, dto.ProductListRequest{})
	require.NoError(t, err)
	assert.Zero(t, all.Page.Total)
}

func TestUserUseCase_Settings(t *testing.T) {
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, repo.Create(ctx, &entity.User{
		ID: "u1", Username: "ana", Email: "ana@example.com", PasswordHash: "x", Name: "Ana",
		Role: entity.RoleVendedor, Settings: entity.UserSettings{Currency: "MXN", Notifications: true},
		CreatedAt: now, UpdatedAt: now,
	}))
	uc := usecase.NewUserUseCase(repo, "MXN")

	me, err := uc.Me(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "ana", me.Username)

	off := false
	s, err := uc.UpdateSettings(ctx, "u1", dto.UpdateSettingsRequest{Currency: strPtr("usd"), Notifications: &off})
	require.NoError(t, err)
	assert.Equal(t, "USD", s.Currency)
	assert.False(t, s.Notifications)
	assert.Equal(t, "USD", uc.CurrencyFor(ctx, "u1"))

	_, err = uc.UpdateSettings(ctx, "u1", dto.UpdateSettingsRequest{Currency: strPtr("XYZ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Me(ctx, "u2")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Equal(t, "MXN", uc.CurrencyFor(ctx, "u2"))
	assert.Equal(t, "MXN", uc.CurrencyFor(ctx, ""))
}
