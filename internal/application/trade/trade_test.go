package trade_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/verduras-pro/internal/application/dto"
	"github.com/jhoicas/verduras-pro/internal/application/trade"
	"github.com/jhoicas/verduras-pro/internal/domain"
	"github.com/jhoicas/verduras-pro/internal/domain/entity"
	"github.com/jhoicas/verduras-pro/internal/domain/repository"
	"github.com/jhoicas/verduras-pro/internal/infrastructure/sqlite"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	db       *sql.DB
	products *sqlite.ProductRepo
	sales    *sqlite.SaleRepo
	purchase *trade.RegisterPurchaseUseCase
	sale     *trade.RegisterSaleUseCase
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tx := sqlite.NewTxRunner(db)
	f := &fixture{
		db:       db,
		products: sqlite.NewProductRepository(db),
		sales:    sqlite.NewSaleRepository(db),
		purchase: trade.NewRegisterPurchaseUseCase(tx, trade.FixedCurrency("MXN"), nil),
		sale:     trade.NewRegisterSaleUseCase(tx, trade.FixedCurrency("MXN"), nil),
	}
	return f
}

func (f *fixture) addProduct(t *testing.T, id, name, cost, stock string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.products.Create(context.Background(), &entity.Product{
		ID: id, Name: name, Unit: entity.UnitKg, AvgCost: d(cost), Stock: d(stock), Active: true,
		CreatedAt: now, UpdatedAt: now,
	}))
}

func TestRegisterPurchase_UpdatesWeightedAverageCost(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.addProduct(t, "p1", "Tomates", "2.00", "50")

	out, err := f.purchase.Execute(ctx, "u1", dto.RegisterPurchaseRequest{
		ProductID: "p1", Quantity: d("100"), UnitPrice: d("1.50"), Supplier: " Central de Abasto ",
	})
	require.NoError(t, err)
	assert.Equal(t, "150.00", out.Total.StringFixed(2))
	assert.Equal(t, "$150.00", out.TotalFormatted)
	assert.Equal(t, "Central de Abasto", out.Supplier)
	assert.Equal(t, "Tomates", out.ProductName)
	assert.Equal(t, "1.6667", out.NewAvgCost.StringFixed(4))
	assert.True(t, out.NewStock.Equal(d("150")))

	p, err := f.products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "1.6667", p.AvgCost.StringFixed(4))
	assert.True(t, p.Stock.Equal(d("150")))
}

func TestRegisterPurchase_NegativeStockCountsAsZero(t *testing.T) {
	f := setup(t)
	f.addProduct(t, "p1", "Papas", "9.99", "-5")

	out, err := f.purchase.Execute(context.Background(), "u1", dto.RegisterPurchaseRequest{
		ProductID: "p1", Quantity: d("20"), UnitPrice: d("1.50"), Supplier: "Rancho",
	})
	require.NoError(t, err)
	assert.Equal(t, "1.5000", out.NewAvgCost.StringFixed(4))
	assert.True(t, out.NewStock.Equal(d("20")))
}

func TestRegisterPurchase_Validation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.addProduct(t, "p1", "Tomates", "2", "0")

	cases := []struct {
		name string
		in   dto.RegisterPurchaseRequest
		want error
	}{
		{"sin producto", dto.RegisterPurchaseRequest{Quantity: d("1"), UnitPrice: d("1"), Supplier: "x"}, domain.ErrInvalidInput},
		{"cantidad cero", dto.RegisterPurchaseRequest{ProductID: "p1", Quantity: d("0"), UnitPrice: d("1"), Supplier: "x"}, domain.ErrInvalidInput},
		{"precio negativo", dto.RegisterPurchaseRequest{ProductID: "p1", Quantity: d("1"), UnitPrice: d("-1"), Supplier: "x"}, domain.ErrInvalidInput},
		{"sin proveedor", dto.RegisterPurchaseRequest{ProductID: "p1", Quantity: d("1"), UnitPrice: d("1"), Supplier: "  "}, domain.ErrInvalidInput},
		{"producto inexistente", dto.RegisterPurchaseRequest{ProductID: "zz", Quantity: d("1"), UnitPrice: d("1"), Supplier: "x"}, domain.ErrProductNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := f.purchase.Execute(ctx, "u1", c.in)
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestRegisterPurchase_InactiveProduct(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.addProduct(t, "p1", "Chiles", "3", "0")
	p, _ := f.products.GetByID(ctx, "p1")
	p.Active = false
	require.NoError(t, f.products.Update(ctx, p))

	_, err := f.purchase.Execute(ctx, "u1", dto.RegisterPurchaseRequest{ProductID: "p1", Quantity: d("1"), UnitPrice: d("3"), Supplier: "x"})
	assert.ErrorIs(t, err, domain.ErrInactiveProduct)
}

func TestRegisterSale_ProfitAgainstAverageCost(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.addProduct(t, "p1", "Tomates", "2.00", "50")
	date := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	out, err := f.sale.Execute(ctx, "u1", dto.RegisterSaleRequest{
		ProductID: "p1", Quantity: d("10"), UnitPrice: d("3.50"), Customer: "Doña Mari", Date: &date,
	})
	require.NoError(t, err)
	assert.Equal(t, "35.00", out.Total.StringFixed(2))
	assert.Equal(t, "20.00", out.TotalCost.StringFixed(2))
	assert.Equal(t, "15.00", out.Profit.StringFixed(2))
	assert.True(t, out.Profit.Equal(out.Total.Sub(out.TotalCost)))
	assert.True(t, out.IsProfit)
	assert.Equal(t, "$15.00", out.ProfitFormatted)
	assert.Equal(t, "42.9%", out.MarginFormatted)
	assert.True(t, date.Equal(out.Date))

	p, err := f.products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, p.Stock.Equal(d("40")))
	assert.Equal(t, "3.5000", p.AvgSalePrice.StringFixed(4))

	sales, err := f.sales.List(ctx, repository.TradeFilter{ProductID: "p1"})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "Doña Mari", sales[0].Customer)
	assert.Equal(t, "u1", sales[0].UserID)
}

func TestRegisterSale_AvgSalePriceIsWeighted(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.addProduct(t, "p1", "Papas", "1.50", "100")

	_, err := f.sale.Execute(ctx, "u1", dto.RegisterSaleRequest{ProductID: "p1", Quantity: d("10"), UnitPrice: d("2.00")})
	require.NoError(t, err)
	_, err = f.sale.Execute(ctx, "u1", dto.RegisterSaleRequest{ProductID: "p1", Quantity: d("30"), UnitPrice: d("3.00")})
	require.NoError(t, err)

	p, err := f.products.GetByID(ctx, "p1")
	require.NoError(t, err)
	// (10*2 + 30*3) / 40
	assert.Equal(t, "2.7500", p.AvgSalePrice.StringFixed(4))
	assert.True(t, p.Stock.Equal(d("60")))
}

func TestRegisterSale_LossAndStockFloor(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.addProduct(t, "p1", "Lechugas", "2.50", "3")

	out, err := f.sale.Execute(ctx, "u1", dto.RegisterSaleRequest{ProductID: "p1", Quantity: d("5"), UnitPrice: d("2.40")})
	require.NoError(t, err)
	assert.False(t, out.IsProfit)
	assert.Equal(t, "-0.50", out.Profit.StringFixed(2))
	assert.Equal(t, "-4.2%", out.MarginFormatted)

	p, err := f.products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, p.Stock.IsZero(), "el stock no baja de 0")
}

func TestRegisterSale_Validation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.sale.Execute(ctx, "u1", dto.RegisterSaleRequest{ProductID: "p1", Quantity: d("-1"), UnitPrice: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.sale.Execute(ctx, "u1", dto.RegisterSaleRequest{ProductID: "p1", Quantity: d("1"), UnitPrice: d("1")})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	sales, err := f.sales.List(ctx, repository.TradeFilter{})
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestRegisterSale_AverageSalePriceIsIncremental(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.addProduct(t, "p1", "Cebollas", "1.80", "100")

	for _, in := range []dto.RegisterSaleRequest{
		{ProductID: "p1", Quantity: d("10"), UnitPrice: d("3.50")},
		{ProductID: "p1", Quantity: d("30"), UnitPrice: d("2.50")},
	} {
		_, err := f.sale.Execute(ctx, "u1", in)
		require.NoError(t, err)
	}
	p, err := f.products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "2.7500", p.AvgSalePrice.StringFixed(4))
	assert.True(t, p.SoldQty.Equal(d("40")))

	_, err = f.sale.Execute(ctx, "u1", dto.RegisterSaleRequest{ProductID: "p1", Quantity: d("20"), UnitPrice: d("4")})
	require.NoError(t, err)
	p, err = f.products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "3.1667", p.AvgSalePrice.StringFixed(4))
	assert.True(t, p.SoldQty.Equal(d("60")))
	assert.True(t, p.Stock.Equal(d("40")))
}

// recordingTx registra qué lecturas de producto hacen los casos de uso dentro de la transacción.
type recordingTx struct {
	inner trade.TxRunner
	reads []string
}

func (r *recordingTx) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	purchases repository.PurchaseRepository,
	sales repository.SaleRepository,
) error) error {
	return r.inner.Run(ctx, func(p repository.ProductRepository, pu repository.PurchaseRepository, s repository.SaleRepository) error {
		return fn(&recordingProducts{ProductRepository: p, reads: &r.reads}, pu, s)
	})
}

type recordingProducts struct {
	repository.ProductRepository
	reads *[]string
}

func (r *recordingProducts) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	*r.reads = append(*r.reads, "GetByID")
	return r.ProductRepository.GetByID(ctx, id)
}

func (r *recordingProducts) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	*r.reads = append(*r.reads, "GetForUpdate")
	return r.ProductRepository.GetForUpdate(ctx, id)
}

func TestTrade_LocksProductRow(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.addProduct(t, "p1", "Tomates", "2.00", "50")
	tx := &recordingTx{inner: sqlite.NewTxRunner(f.db)}
	purchase := trade.NewRegisterPurchaseUseCase(tx, trade.FixedCurrency("MXN"), nil)
	sale := trade.NewRegisterSaleUseCase(tx, trade.FixedCurrency("MXN"), nil)

	_, err := purchase.Execute(ctx, "u1", dto.RegisterPurchaseRequest{ProductID: "p1", Quantity: d("10"), UnitPrice: d("2"), Supplier: "Rancho"})
	require.NoError(t, err)
	_, err = sale.Execute(ctx, "u1", dto.RegisterSaleRequest{ProductID: "p1", Quantity: d("5"), UnitPrice: d("3")})
	require.NoError(t, err)

	assert.Equal(t, []string{"GetForUpdate", "GetForUpdate"}, tx.reads)
}

func TestTrade_ConcurrentMovementsKeepEveryUpdate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.addProduct(t, "p1", "Tomates", "2.00", "50")

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, 2*workers)
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := f.purchase.Execute(ctx, "u1", dto.RegisterPurchaseRequest{ProductID: "p1", Quantity: d("10"), UnitPrice: d("2"), Supplier: "Rancho"})
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := f.sale.Execute(ctx, "u1", dto.RegisterSaleRequest{ProductID: "p1", Quantity: d("1"), UnitPrice: d("3")})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	p, err := f.products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, p.Stock.Equal(d("122")), "stock %s", p.Stock)
	assert.Equal(t, "2.0000", p.AvgCost.StringFixed(4))
	assert.True(t, p.SoldQty.Equal(d("8")))

	purchases, err := sqlite.NewPurchaseRepository(f.db).List(ctx, repository.TradeFilter{ProductID: "p1"})
	require.NoError(t, err)
	assert.Len(t, purchases, workers)
}
