package movement

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/application/query"
	"github.com/jhoicas/farmacia-console/internal/application/validation"
	"github.com/jhoicas/farmacia-console/internal/domain/inventory"
)

// EntryUseCase registra entradas de lotes.
type EntryUseCase struct {
	v     *validation.Validator
	api   EntryAPI
	cache Invalidator
	log   zerolog.Logger
}

// EntrySummary resumen que la consola muestra tras registrar la entrada.
type EntrySummary struct {
	Batches     int              `json:"batches"`
	Units       int              `json:"units"`
	TotalCost   *decimal.Decimal `json:"totalCost,omitempty"`
	AverageCost *decimal.Decimal `json:"averageUnitCost,omitempty"`
}

func NewEntryUseCase(v *validation.Validator, api EntryAPI, cache Invalidator, log zerolog.Logger) *EntryUseCase {
	return &EntryUseCase{v: v, api: api, cache: cache, log: log}
}

// Register valida y envía la entrada tal cual el formulario.
func (uc *EntryUseCase) Register(ctx context.Context, form dto.EntryForm) (*EntrySummary, error) {
	if err := uc.v.Validate(form); err != nil {
		return nil, err
	}
	if err := uc.api.Register(ctx, form); err != nil {
		uc.log.Warn().Err(err).Str("stock_id", form.StockID).Msg("entrada rechazada")
		return nil, err
	}
	uc.cache.Invalidate(query.EntityEntries, query.EntityInventory, query.EntityBatches, query.EntityDashboard)
	return Summarize(form), nil
}

// Summarize cuenta lotes y unidades y calcula el costo total y promedio si hay costos.
func Summarize(form dto.EntryForm) *EntrySummary {
	s := &EntrySummary{}
	var lines []inventory.LineCost
	for _, m := range form.Medicines {
		for _, b := range m.Batches {
			s.Batches++
			s.Units += b.Quantity
			lines = append(lines, inventory.LineCost{Quantity: b.Quantity, UnitCost: b.UnitCost})
		}
	}
	if total, avg, priced := inventory.EntryCost(lines); priced {
		s.TotalCost = &total
		s.AverageCost = &avg
	}
	return s
}
