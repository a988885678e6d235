// Package report exporta el historial de compras y ventas como documento descargable.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/verduras-pro/internal/application/analytics"
	"github.com/jhoicas/verduras-pro/internal/application/dto"
	"github.com/jhoicas/verduras-pro/pkg/logger"
)

// HistoryReport datos que necesita el generador del PDF.
type HistoryReport struct {
	BusinessName string
	Currency     string
	GeneratedAt  time.Time
	History      *dto.HistoryResponse
}

// HistoryPDFGenerator puerto de salida para renderizar el PDF.
type HistoryPDFGenerator interface {
	GenerateHistoryPDF(ctx context.Context, report HistoryReport) ([]byte, error)
}

// ReportUseCase arma el reporte del historial y lo delega al generador.
type ReportUseCase struct {
	history      *analytics.HistoryUseCase
	generator    HistoryPDFGenerator
	currency     analytics.CurrencyResolver
	businessName string
	log          *logger.Logger
	now          func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	history *analytics.HistoryUseCase,
	generator HistoryPDFGenerator,
	currency analytics.CurrencyResolver,
	businessName string,
	log *logger.Logger,
) *ReportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportUseCase{
		history:      history,
		generator:    generator,
		currency:     currency,
		businessName: businessName,
		log:          log.Named("reportes"),
		now:          time.Now,
	}
}

// HistoryPDF genera el PDF del historial filtrado y sugiere un nombre de archivo.
func (uc *ReportUseCase) HistoryPDF(ctx context.Context, userID string, in dto.TradeListRequest) ([]byte, string, error) {
	hist, err := uc.history.List(ctx, userID, in)
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	doc, err := uc.generator.GenerateHistoryPDF(ctx, HistoryReport{
		BusinessName: uc.businessName,
		Currency:     uc.currency.CurrencyFor(ctx, userID),
		GeneratedAt:  now,
		History:      hist,
	})
	if err != nil {
		return nil, "", fmt.Errorf("reporte historial: %w", err)
	}
	uc.log.Info().Int("movimientos", len(hist.Entries)).Int("bytes", len(doc)).Msg("PDF de historial generado")
	return doc, fmt.Sprintf("historial-%s.pdf", now.Format("20060102-1504")), nil
}
