package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/verduras-pro/internal/domain/finance"
)

type calcCmd struct {
	currency string
	decimals int
}

func newCalcCmd() *cobra.Command {
	cc := &calcCmd{}
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculadora de costos, márgenes y ganancias",
	}
	cmd.PersistentFlags().StringVar(&cc.currency, "moneda", finance.DefaultCurrency, "Código ISO de la moneda para formatear montos")
	cmd.PersistentFlags().IntVar(&cc.decimals, "decimales", 1, "Decimales de los porcentajes")

	cmd.AddCommand(&cobra.Command{
		Use:     "promedio CANTIDADxPRECIO...",
		Short:   "Costo promedio ponderado de varias compras",
		Example: "  verduras calc promedio 50x2 100x1.5",
		Args:    cobra.MinimumNArgs(1),
		RunE:    cc.average,
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "margen PRECIO_VENTA PRECIO_COMPRA",
		Short:   "Margen porcentual sobre el precio de venta",
		Example: "  verduras calc margen 3.50 2.00",
		Args:    cobra.ExactArgs(2),
		RunE:    cc.margin,
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "venta CANTIDAD PRECIO_VENTA PRECIO_COMPRA",
		Short:   "Total, costo, ganancia y margen de una venta",
		Example: "  verduras calc venta 10 3.50 2.00",
		Args:    cobra.ExactArgs(3),
		RunE:    cc.sale,
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "roi GANANCIA INVERSION",
		Short:   "Retorno sobre la inversión",
		Example: "  verduras calc roi 15 20",
		Args:    cobra.ExactArgs(2),
		RunE:    cc.roi,
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "rotacion DIAS VENDIDO COMPRADO",
		Short:   "Días de rotación del inventario",
		Example: "  verduras calc rotacion 30 175 200",
		Args:    cobra.ExactArgs(3),
		RunE:    cc.turnover,
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "moneda VALOR",
		Short:   "Formatea un valor como moneda y como porcentaje",
		Example: "  verduras calc moneda 1234.5 --moneda USD",
		Args:    cobra.ExactArgs(1),
		RunE:    cc.format,
	})
	return cmd
}

func (cc *calcCmd) money(v decimal.Decimal) string {
	return finance.FormatCurrency(v, cc.currency)
}

func (cc *calcCmd) pct(v decimal.Decimal) string {
	return finance.FormatPercentage(v, cc.decimals)
}

func (cc *calcCmd) average(cmd *cobra.Command, args []string) error {
	lines := make([]finance.PurchaseLine, 0, len(args))
	for _, arg := range args {
		line, err := parsePurchaseLine(arg)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}
	avg := finance.WeightedAverageCost(lines)
	fmt.Fprintf(cmd.OutOrStdout(), "Costo promedio: %s (%s)\n", cc.money(avg), avg.StringFixed(4))
	return nil
}

func (cc *calcCmd) margin(cmd *cobra.Command, args []string) error {
	nums, err := parseDecimals(args, "precio de venta", "precio de compra")
	if err != nil {
		return err
	}
	m := finance.Margin(nums[0], nums[1])
	fmt.Fprintf(cmd.OutOrStdout(), "Margen: %s (%s)\n", cc.pct(m), finance.ClassifyStatus(m))
	return nil
}

func (cc *calcCmd) sale(cmd *cobra.Command, args []string) error {
	nums, err := parseDecimals(args, "cantidad", "precio de venta", "precio de compra")
	if err != nil {
		return err
	}
	r := finance.SaleProfit(nums[0], nums[1], nums[2])
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total:    %s\n", cc.money(r.Total))
	fmt.Fprintf(out, "Costo:    %s\n", cc.money(r.Cost))
	fmt.Fprintf(out, "Ganancia: %s\n", cc.money(r.Profit))
	fmt.Fprintf(out, "Margen:   %s\n", cc.pct(r.Margin))
	if r.Profit.IsNegative() {
		fmt.Fprintln(out, "Atención: la venta deja pérdida")
	}
	return nil
}

func (cc *calcCmd) roi(cmd *cobra.Command, args []string) error {
	nums, err := parseDecimals(args, "ganancia", "inversión")
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ROI: %s\n", cc.pct(finance.ROI(nums[0], nums[1])))
	return nil
}

func (cc *calcCmd) turnover(cmd *cobra.Command, args []string) error {
	nums, err := parseDecimals(args, "días", "cantidad vendida", "cantidad comprada")
	if err != nil {
		return err
	}
	days := finance.TurnoverDays(nums[0], nums[1], nums[2])
	fmt.Fprintf(cmd.OutOrStdout(), "Rotación: %s días (%s)\n", days.StringFixed(1), finance.ClassifyVelocity(days))
	return nil
}

func (cc *calcCmd) format(cmd *cobra.Command, args []string) error {
	nums, err := parseDecimals(args, "valor")
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cc.money(nums[0]))
	fmt.Fprintln(out, cc.pct(nums[0]))
	return nil
}

// parsePurchaseLine interpreta "CANTIDADxPRECIO" (también acepta "@" o "*").
func parsePurchaseLine(s string) (finance.PurchaseLine, error) {
	sep := strings.IndexAny(strings.ToLower(s), "x@*")
	if sep <= 0 || sep == len(s)-1 {
		return finance.PurchaseLine{}, fmt.Errorf("compra %q inválida (use CANTIDADxPRECIO, p. ej. 50x2.00)", s)
	}
	qty, err := decimal.NewFromString(strings.TrimSpace(s[:sep]))
	if err != nil {
		return finance.PurchaseLine{}, fmt.Errorf("cantidad inválida en %q", s)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(s[sep+1:]))
	if err != nil {
		return finance.PurchaseLine{}, fmt.Errorf("precio inválido en %q", s)
	}
	return finance.PurchaseLine{Quantity: qty, UnitPrice: price}, nil
}

func parseDecimals(args []string, names ...string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(args))
	for i, a := range args {
		v, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(a), "$"))
		if err != nil {
			return nil, fmt.Errorf("%s inválido: %q", names[i], a)
		}
		out[i] = v
	}
	return out, nil
}
