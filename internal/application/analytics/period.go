// Package analytics contiene los casos de uso de reportes del negocio: el resumen del
// dashboard, el análisis por producto y el historial de compras y ventas.
package analytics

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jhoicas/verduras-pro/internal/application/dto"
	"github.com/jhoicas/verduras-pro/internal/domain"
)

const dateLayout = "2006-01-02"

// CurrencyResolver moneda con la que se formatean los montos de un usuario.
type CurrencyResolver interface {
	CurrencyFor(ctx context.Context, userID string) string
}

// Period rango [From, To). Un extremo cero significa sin límite.
type Period struct {
	From time.Time
	To   time.Time
}

// Days cantidad de días del período (mínimo 1). 0 si no tiene inicio.
func (p Period) Days() int {
	if p.From.IsZero() || p.To.IsZero() {
		return 0
	}
	days := int(math.Round(p.To.Sub(p.From).Hours() / 24))
	return max(days, 1)
}

// DTO devuelve el período con fin inclusivo, en YYYY-MM-DD.
func (p Period) DTO() dto.PeriodDTO {
	var out dto.PeriodDTO
	if !p.From.IsZero() {
		out.From = p.From.Format(dateLayout)
	}
	if !p.To.IsZero() {
		out.To = p.To.AddDate(0, 0, -1).Format(dateLayout)
	}
	return out
}

// ParsePeriod interpreta from/to (YYYY-MM-DD, to inclusivo) en la zona de now.
// Sin from, el período arranca defaultDays antes de to; con defaultDays 0 queda abierto.
// Sin to, termina hoy.
func ParsePeriod(from, to string, defaultDays int, now time.Time) (Period, error) {
	loc := now.Location()
	var p Period
	if s := strings.TrimSpace(to); s != "" {
		t, err := time.ParseInLocation(dateLayout, s, loc)
		if err != nil {
			return Period{}, fmt.Errorf("%w: fecha 'to' inválida %q (use YYYY-MM-DD)", domain.ErrInvalidInput, s)
		}
		p.To = t.AddDate(0, 0, 1)
	} else if defaultDays > 0 || strings.TrimSpace(from) != "" {
		p.To = startOfDay(now).AddDate(0, 0, 1)
	}
	if s := strings.TrimSpace(from); s != "" {
		f, err := time.ParseInLocation(dateLayout, s, loc)
		if err != nil {
			return Period{}, fmt.Errorf("%w: fecha 'from' inválida %q (use YYYY-MM-DD)", domain.ErrInvalidInput, s)
		}
		p.From = f
	} else if defaultDays > 0 {
		p.From = p.To.AddDate(0, 0, -defaultDays)
	}
	if !p.From.IsZero() && !p.To.IsZero() && !p.From.Before(p.To) {
		return Period{}, fmt.Errorf("%w: 'from' debe ser anterior o igual a 'to'", domain.ErrInvalidInput)
	}
	return p, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

var weekdays = [...]string{"Dom", "Lun", "Mar", "Mié", "Jue", "Vie", "Sáb"}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
