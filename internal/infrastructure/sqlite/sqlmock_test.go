package sqlite_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/verduras-pro/internal/domain"
	"github.com/jhoicas/verduras-pro/internal/domain/entity"
	"github.com/jhoicas/verduras-pro/internal/domain/repository"
	"github.com/jhoicas/verduras-pro/internal/infrastructure/sqlite"
)

func TestProductRepo_Create_UniqueMessageMapsToDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products")).
		WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: index 'products_name_lower_idx' (2067)"))

	err = sqlite.NewProductRepository(db).Create(context.Background(), newProduct("p1", "Tomates", "2"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_GetByID_WrapsDriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ?")).
		WithArgs("p1").
		WillReturnError(errors.New("disk I/O error"))

	got, err := sqlite.NewProductRepository(db).GetByID(context.Background(), "p1")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get product")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleRepo_List_ScansRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "product_id", "product_name", "quantity", "unit_price", "total", "unit_cost",
		"total_cost", "profit", "margin", "customer", "date", "user_id", "created_at"}
	rows := sqlmock.NewRows(cols).
		AddRow("s1", "p1", "Tomates", "10", "3.50", "35.00", "2.00", "20.00", "15.00", "42.8571", "", int64(1773144000000000000), "u1", int64(1773144000000000000))

	mock.ExpectQuery(regexp.QuoteMeta("FROM sales WHERE product_id = ? ORDER BY date DESC, created_at DESC")).
		WithArgs("p1").
		WillReturnRows(rows)

	list, err := sqlite.NewSaleRepository(db).List(context.Background(), repository.TradeFilter{ProductID: "p1"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "15.00", list[0].Profit.StringFixed(2))
	assert.Equal(t, 2026, list[0].Date.Year())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Update_NoRowsIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET")).WillReturnResult(sqlmock.NewResult(0, 0))

	err = sqlite.NewUserRepository(db).Update(context.Background(), &entity.User{ID: "u404", Name: "Nadie", Role: entity.RoleVendedor})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
