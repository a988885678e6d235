// Package finance agrupa los cálculos de negocio de la verdulería: costo promedio
// ponderado, margen, ganancia por venta, ROI y rotación de inventario.
//
// Todas las funciones son puras y totales. Cuando una división no está definida
// (divisor cero) el resultado es cero; nunca se devuelve error ni NaN, y los
// llamadores (formularios y reportes) cuentan con ese cero.
package finance

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// PurchaseLine una compra vista como par (cantidad, precio unitario).
type PurchaseLine struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// SaleResult desglose derivado de una venta; no se persiste desde aquí.
type SaleResult struct {
	Total  decimal.Decimal // cantidad * precio de venta
	Cost   decimal.Decimal // cantidad * costo de compra
	Profit decimal.Decimal // Total - Cost
	Margin decimal.Decimal // porcentaje sobre el precio de venta
}

// WeightedAverageCost = Σ(cantidad·precio) / Σcantidad.
// Devuelve 0 si no hay compras o la cantidad total es 0.
func WeightedAverageCost(lines []PurchaseLine) decimal.Decimal {
	if len(lines) == 0 {
		return decimal.Zero
	}
	spent := decimal.Zero
	qty := decimal.Zero
	for _, l := range lines {
		spent = spent.Add(l.Quantity.Mul(l.UnitPrice))
		qty = qty.Add(l.Quantity)
	}
	if !qty.IsPositive() {
		return decimal.Zero
	}
	return spent.Div(qty)
}

// AddToAverageCost recalcula el costo promedio al entrar un lote nuevo:
// ((stock * costo) + (entrada * costoEntrada)) / (stock + entrada).
func AddToAverageCost(stock, cost, qtyIn, costIn decimal.Decimal) decimal.Decimal {
	return WeightedAverageCost([]PurchaseLine{
		{Quantity: stock, UnitPrice: cost},
		{Quantity: qtyIn, UnitPrice: costIn},
	})
}

// Margin = (venta - compra) / venta * 100. Con precio de venta 0 devuelve 0.
func Margin(salePrice, purchasePrice decimal.Decimal) decimal.Decimal {
	if salePrice.IsZero() {
		return decimal.Zero
	}
	return salePrice.Sub(purchasePrice).Div(salePrice).Mul(hundred)
}

// SaleProfit calcula total, costo, ganancia y margen de una venta.
func SaleProfit(quantity, salePrice, purchasePrice decimal.Decimal) SaleResult {
	total := quantity.Mul(salePrice)
	cost := quantity.Mul(purchasePrice)
	return SaleResult{
		Total:  total,
		Cost:   cost,
		Profit: total.Sub(cost),
		Margin: Margin(salePrice, purchasePrice),
	}
}

// ROI = ganancia / inversión * 100. Con inversión 0 devuelve 0.
func ROI(profit, investment decimal.Decimal) decimal.Decimal {
	if investment.IsZero() {
		return decimal.Zero
	}
	return profit.Div(investment).Mul(hundred)
}

// TurnoverDays días necesarios para vender lo comprado al ritmo observado:
// díasEnStock / (vendido / comprado). Devuelve 0 si alguna cantidad es 0.
func TurnoverDays(daysInStock, quantitySold, quantityPurchased decimal.Decimal) decimal.Decimal {
	if quantitySold.IsZero() || quantityPurchased.IsZero() {
		return decimal.Zero
	}
	rate := quantitySold.Div(quantityPurchased)
	return daysInStock.Div(rate)
}
