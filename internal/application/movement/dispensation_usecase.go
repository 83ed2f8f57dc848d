package movement

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/application/query"
	"github.com/jhoicas/farmacia-console/internal/application/session"
	"github.com/jhoicas/farmacia-console/internal/application/validation"
	"github.com/jhoicas/farmacia-console/internal/domain"
)

// DispensationUseCase arma el borrador de dispensación con los lotes que propone el
// backend y lo envía. La consola no reparte cantidades entre lotes.
type DispensationUseCase struct {
	v     *validation.Validator
	api   DispensationAPI
	draft *session.Draft
	cache Invalidator
	log   zerolog.Logger
}

// NewDispensationUseCase construye el caso de uso sobre el borrador de la sesión.
func NewDispensationUseCase(v *validation.Validator, api DispensationAPI, draft *session.Draft, cache Invalidator, log zerolog.Logger) *DispensationUseCase {
	return &DispensationUseCase{v: v, api: api, draft: draft, cache: cache, log: log}
}

// AddMedicine pide la vista previa y guarda los lotes devueltos sin modificarlos.
func (uc *DispensationUseCase) AddMedicine(ctx context.Context, form dto.AddDispensationMedicineForm) (session.DraftItem, error) {
	if err := uc.v.Validate(form); err != nil {
		return session.DraftItem{}, err
	}
	batches, err := uc.api.Preview(ctx, form.MedicineStockID, form.QuantityRequired)
	if err != nil {
		return session.DraftItem{}, err
	}
	item := session.DraftItem{
		MedicineStockID:  form.MedicineStockID,
		QuantityRequired: form.QuantityRequired,
		Batches:          batches,
	}
	uc.draft.Put(item)
	return item, nil
}

// RemoveMedicine quita un medicamento del borrador.
func (uc *DispensationUseCase) RemoveMedicine(medicineStockID string) error {
	if !uc.draft.Remove(medicineStockID) {
		return fmt.Errorf("%w: medicamento %s no está en la dispensación", domain.ErrNotFound, medicineStockID)
	}
	return nil
}

// Draft estado actual del borrador.
func (uc *DispensationUseCase) Draft() session.DraftSnapshot {
	return uc.draft.Snapshot()
}

// Submit envía {stockId, userId, fecha, lotes} con quantity = toDispensation de cada
// lote de la vista previa. El borrador solo se vacía si el backend acepta.
func (uc *DispensationUseCase) Submit(ctx context.Context, header dto.DispensationHeaderForm) error {
	if err := uc.v.Validate(header); err != nil {
		return err
	}
	uc.draft.SetHeader(session.DraftHeader{StockID: header.StockID, UserID: header.UserID, Date: header.Date})

	snap := uc.draft.Snapshot()
	if len(snap.Items) == 0 {
		return domain.ErrEmptyDraft
	}
	req := dto.RegisterDispensationRequest{
		StockID:          header.StockID,
		UserID:           header.UserID,
		DispensationDate: header.Date,
		Batches:          DispensationBatches(snap.Items),
	}
	if err := uc.api.Register(ctx, req); err != nil {
		uc.log.Warn().Err(err).Str("stock_id", header.StockID).Msg("dispensación rechazada")
		return err
	}

	uc.draft.Clear()
	uc.cache.Invalidate(query.EntityDispensations, query.EntityInventory, query.EntityBatches, query.EntityDashboard)
	uc.log.Info().Str("stock_id", header.StockID).Int("batches", len(req.Batches)).Msg("dispensación registrada")
	return nil
}

// DispensationBatches lotes a enviar, en orden de medicamento y de lote.
func DispensationBatches(items []session.DraftItem) []dto.BatchQuantity {
	var out []dto.BatchQuantity
	for _, it := range items {
		for _, b := range it.Batches {
			out = append(out, dto.BatchQuantity{BatchStockID: b.BatchStockID, Quantity: b.Quantity.ToDispensation})
		}
	}
	return out
}
