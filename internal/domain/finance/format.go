package finance

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency moneda del negocio cuando no se indica otra.
const DefaultCurrency = "MXN"

// MaxPercentDecimals tope de decimales de FormatPercentage.
const MaxPercentDecimals = 100

var (
	minMinorUnits = decimal.NewFromInt(math.MinInt64)
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
)

// FormatCurrency formatea value como moneda (estilo es-MX: "$1,234.50", "-$15.00").
// Un código vacío usa MXN. Otras monedas con símbolo "$" llevan el código ("USD 12.30")
// y un código desconocido produce "COD 1234.50".
func FormatCurrency(value decimal.Decimal, currencyCode string) string {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if code == "" {
		code = DefaultCurrency
	}
	cur := money.GetCurrency(code)
	if cur == nil {
		return code + " " + value.StringFixed(2)
	}
	f := cur.Formatter()
	if code != DefaultCurrency && cur.Grapheme == "$" {
		f.Grapheme = code + " "
	}
	minor := value.Shift(int32(cur.Fraction)).Round(0)
	if minor.GreaterThanOrEqual(minMinorUnits) && minor.LessThanOrEqual(maxMinorUnits) {
		return f.Format(minor.IntPart())
	}
	return formatMinorDigits(f, minor.Abs().String(), minor.IsNegative())
}

// formatMinorDigits aplica el formato de f a una cantidad en unidades menores que no cabe en int64.
func formatMinorDigits(f *money.Formatter, digits string, negative bool) string {
	if len(digits) <= f.Fraction {
		digits = strings.Repeat("0", f.Fraction-len(digits)+1) + digits
	}
	if f.Thousand != "" {
		for i := len(digits) - f.Fraction - 3; i > 0; i -= 3 {
			digits = digits[:i] + f.Thousand + digits[i:]
		}
	}
	if f.Fraction > 0 {
		digits = digits[:len(digits)-f.Fraction] + f.Decimal + digits[len(digits)-f.Fraction:]
	}
	out := strings.Replace(f.Template, "1", digits, 1)
	out = strings.Replace(out, "$", f.Grapheme, 1)
	if negative {
		out = "-" + out
	}
	return out
}

// FormatPercentage formatea value con decimals decimales fijos y sufijo "%".
// decimals se acota a [0, MaxPercentDecimals].
func FormatPercentage(value decimal.Decimal, decimals int) string {
	decimals = max(0, min(decimals, MaxPercentDecimals))
	return value.StringFixed(int32(decimals)) + "%"
}
