// Package pdf genera el reporte imprimible del historial de compras y ventas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Negocio + título    │  Período + fecha de emisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COMPRAS: Fecha | Producto | Cant. | P.Unit | Total | Prov.  │
//	│  VENTAS:  Fecha | Producto | Cant. | P.Unit | Total | Gan.   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Invertido / Vendido / Ganancia / ROI               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/verduras-pro/internal/application/analytics"
	"github.com/jhoicas/verduras-pro/internal/application/dto"
	"github.com/jhoicas/verduras-pro/internal/application/report"
	"github.com/jhoicas/verduras-pro/internal/domain/finance"
)

var _ report.HistoryPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLoss    = &props.Color{Red: 220, Green: 38, Blue: 38}
)

// MarotoPDFGenerator implementa report.HistoryPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateHistoryPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateHistoryPDF(_ context.Context, r report.HistoryReport) ([]byte, error) {
	if r.History == nil {
		return nil, fmt.Errorf("pdf: historial vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Historial de compras y ventas", true).
		WithAuthor(r.BusinessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	var purchases, sales []dto.HistoryEntry
	for _, e := range r.History.Entries {
		if e.Kind == analytics.KindPurchase {
			purchases = append(purchases, e)
		} else {
			sales = append(sales, e)
		}
	}

	m.AddRows(sectionTitle(fmt.Sprintf("COMPRAS (%d)", len(purchases))))
	m.AddRows(tableHeaderRow("Proveedor"))
	m.AddRows(entryRows(purchases, r.Currency, false)...)

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitle(fmt.Sprintf("VENTAS (%d)", len(sales))))
	m.AddRows(tableHeaderRow("Ganancia"))
	m.AddRows(entryRows(sales, r.Currency, true)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(r.History, r.Currency))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r report.HistoryReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(r.BusinessName, "Verdulería"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Historial de compras y ventas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Período: "+periodLabel(r.History.Period), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Emitido: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func tableHeaderRow(last string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Fecha", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Cant.", 1, align.Right),
		h("P. Unit.", 2, align.Right),
		h("Total", 2, align.Right),
		h(last, 2, align.Right),
	)
}

// entryRows una fila por movimiento; en ventas la última columna es la ganancia (roja si hay pérdida).
func entryRows(entries []dto.HistoryEntry, currency string, isSale bool) []core.Row {
	if len(entries) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin movimientos en el período", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		))}
	}
	cell := func(a align.Type) props.Text {
		return props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}
	}
	rows := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		last := text.New(e.Counterpart, cell(align.Right))
		if isSale {
			p := cell(align.Right)
			if e.Profit.IsNegative() {
				p.Color = colorLoss
			}
			last = text.New(finance.FormatCurrency(e.Profit, currency), p)
		}
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(e.Date.Format("02/01/2006"), cell(align.Left))),
			col.New(3).Add(text.New(e.ProductName, cell(align.Left))),
			col.New(1).Add(text.New(e.Quantity.String(), cell(align.Right))),
			col.New(2).Add(text.New(finance.FormatCurrency(e.UnitPrice, currency), cell(align.Right))),
			col.New(2).Add(text.New(finance.FormatCurrency(e.Total, currency), cell(align.Right))),
			col.New(2).Add(last),
		))
	}
	return rows
}

func totalsRow(h *dto.HistoryResponse, currency string) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	profit := props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Top: 12, Color: colorPrimary}
	if h.TotalProfit.IsNegative() {
		profit.Color = colorLoss
	}
	return row.New(24).Add(
		col.New(6),
		col.New(3).Add(
			label("Invertido:", 2),
			label("Vendido:", 7),
			label("Ganancia:", 12),
			label("ROI:", 18),
		),
		col.New(3).Add(
			value(finance.FormatCurrency(h.TotalSpent, currency), 2),
			value(finance.FormatCurrency(h.TotalRevenue, currency), 7),
			text.New(finance.FormatCurrency(h.TotalProfit, currency), profit),
			value(finance.FormatPercentage(h.ROI, 1), 18),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func periodLabel(p dto.PeriodDTO) string {
	switch {
	case p.From == "" && p.To == "":
		return "todo"
	case p.From == "":
		return "hasta " + p.To
	case p.To == "":
		return "desde " + p.From
	default:
		return p.From + " a " + p.To
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
