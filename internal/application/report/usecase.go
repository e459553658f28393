package report

import (
	"context"
	"time"

	"github.com/tu-usuario/almacen-stock/internal/domain/entity"
	"github.com/tu-usuario/almacen-stock/internal/domain/repository"
)

// StockReportGenerator genera el documento del informe de stock (PDF).
// Lo implementa infrastructure/pdf.
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, data *StockReportData) ([]byte, error)
}

// StockReportData datos ya resueltos para el informe: catálogo completo y
// actividad reciente del ledger, más reciente primero.
type StockReportData struct {
	GeneratedAt time.Time
	Items       []*entity.Item
	Recent      []*entity.LedgerEntry
}

// UseCase arma los datos del informe de stock y delega el render.
type UseCase struct {
	items       repository.ItemStore
	ledger      repository.LedgerStore
	generator   StockReportGenerator
	recentLimit int
}

// NewUseCase construye el caso de uso. recentLimit <= 0 usa 20.
func NewUseCase(items repository.ItemStore, ledger repository.LedgerStore, generator StockReportGenerator, recentLimit int) *UseCase {
	if recentLimit <= 0 {
		recentLimit = 20
	}
	return &UseCase{items: items, ledger: ledger, generator: generator, recentLimit: recentLimit}
}

// GenerateStockReport resuelve catálogo + actividad reciente y genera el PDF.
func (uc *UseCase) GenerateStockReport(ctx context.Context) ([]byte, error) {
	items, err := uc.items.List(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := uc.ledger.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	// Más reciente primero, truncado: misma proyección que la vista en pantalla.
	recent := make([]*entity.LedgerEntry, 0, uc.recentLimit)
	for i := len(entries) - 1; i >= 0 && len(recent) < uc.recentLimit; i-- {
		recent = append(recent, entries[i])
	}
	data := &StockReportData{
		GeneratedAt: time.Now(),
		Items:       items,
		Recent:      recent,
	}
	return uc.generator.GenerateStockReport(ctx, data)
}
