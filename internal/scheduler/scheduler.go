// Package scheduler ejecuta los trabajos programados de la API (cierre diario).
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/verduras-pro/internal/application/dto"
	"github.com/jhoicas/verduras-pro/pkg/logger"
)

const jobTimeout = 2 * time.Minute

// Summarizer calcula el resumen del negocio a un momento dado.
type Summarizer interface {
	GetSummary(ctx context.Context, userID string, now time.Time) (*dto.DashboardSummaryDTO, error)
}

// Scheduler administra los trabajos cron.
type Scheduler struct {
	cron       *cron.Cron
	summarizer Summarizer
	dailyClose string
	log        *logger.Logger
	now        func() time.Time
}

// New crea el scheduler. dailyClose es una expresión cron de 5 campos; vacía deshabilita el cierre.
func New(summarizer Summarizer, dailyClose string, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron:       cron.New(),
		summarizer: summarizer,
		dailyClose: dailyClose,
		log:        log.Named("scheduler"),
		now:        time.Now,
	}
}

// Start registra los trabajos y arranca el cron.
func (s *Scheduler) Start() error {
	if s.dailyClose == "" {
		s.log.Info().Msg("cierre diario deshabilitado")
		return nil
	}
	if _, err := s.cron.AddFunc(s.dailyClose, s.dailyCloseJob); err != nil {
		return fmt.Errorf("programar cierre diario %q: %w", s.dailyClose, err)
	}
	s.cron.Start()
	s.log.Info().Str("cron", s.dailyClose).Msg("scheduler iniciado")
	return nil
}

// Stop detiene el cron y espera a que terminen los trabajos en curso o venza ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	s.log.Info().Msg("deteniendo scheduler")
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn().Msg("trabajos en curso no terminaron a tiempo")
	}
}

func (s *Scheduler) dailyCloseJob() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if _, err := s.RunDailyClose(ctx); err != nil {
		s.log.Error().Err(err).Msg("cierre diario falló")
	}
}

// RunDailyClose calcula el resumen del día y lo deja en el log. Los productos en rojo se reportan como warning.
func (s *Scheduler) RunDailyClose(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := s.now()
	summary, err := s.summarizer.GetSummary(ctx, "", now)
	if err != nil {
		return nil, fmt.Errorf("cierre diario: %w", err)
	}
	s.log.Info().
		Str("fecha", now.Format("2006-01-02")).
		Str("ganancia_hoy", summary.Formatted.ProfitToday).
		Str("ganancia_semana", summary.Formatted.ProfitWeek).
		Str("ganancia_mes", summary.Formatted.ProfitMonth).
		Str("margen_promedio", summary.Formatted.AverageMargin).
		Str("inventario", summary.Formatted.InventoryValue).
		Msg("cierre diario")
	for _, r := range summary.Recommendations.Red {
		s.log.Warn().Str("producto", r.Name).Str("margen", r.Margin.StringFixed(2)).Str("accion", r.Action).Msg("producto en rojo")
	}
	return summary, nil
}
