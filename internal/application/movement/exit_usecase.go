package movement

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/application/query"
	"github.com/jhoicas/farmacia-console/internal/application/validation"
	"github.com/jhoicas/farmacia-console/internal/domain"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

// ExitUseCase registra salidas manuales. Los lotes y cantidades los elige el operador;
// solo se comprueba 0 < cantidad <= totalCurrent del lote.
type ExitUseCase struct {
	v         *validation.Validator
	exits     ExitAPI
	transfers TransferAPI
	cache     Invalidator
	log       zerolog.Logger
}

// NewExitUseCase construye el caso de uso. v debe tener las reglas de RegisterRules.
func NewExitUseCase(v *validation.Validator, exits ExitAPI, transfers TransferAPI, cache Invalidator, log zerolog.Logger) *ExitUseCase {
	return &ExitUseCase{v: v, exits: exits, transfers: transfers, cache: cache, log: log}
}

// Submit valida y envía la salida. Un error de validación no llega a la red; un error
// del backend se devuelve tal cual para que el formulario se conserve.
func (uc *ExitUseCase) Submit(ctx context.Context, form dto.ExitForm) error {
	req, err := NewExitRequest(uc.v, form)
	if err != nil {
		return err
	}

	switch r := req.(type) {
	case TransferExit:
		err = uc.transfers.Create(ctx, dto.CreateTransferRequest{
			StockOriginID:      r.StockID,
			StockDestinationID: r.StockDestinationID,
			TransferDate:       r.Date,
			Batches:            r.Batches,
		})
	case MovementTypeExit:
		err = uc.exits.Register(ctx, dto.RegisterExitRequest{
			StockID:        r.StockID,
			ExitType:       entity.ExitTypeMovementType,
			ExitDate:       r.Date,
			MovementTypeID: r.MovementTypeID,
			Batches:        r.Batches,
		})
	case DonationExit:
		err = uc.exits.Register(ctx, dto.RegisterExitRequest{
			StockID:                  r.StockID,
			ExitType:                 entity.ExitTypeDonation,
			ExitDate:                 r.Date,
			DestinationInstitutionID: r.DestinationInstitutionID,
			Batches:                  r.Batches,
		})
	default:
		return fmt.Errorf("%w: %T", domain.ErrUnknownExitType, req)
	}
	if err != nil {
		uc.log.Warn().Err(err).Str("exit_type", string(form.ExitType)).Msg("salida rechazada")
		return err
	}

	uc.cache.Invalidate(query.EntityExits, query.EntityTransfers, query.EntityInventory, query.EntityBatches, query.EntityDashboard)
	uc.log.Info().Str("exit_type", string(form.ExitType)).Int("batches", len(req.Common().Batches)).Msg("salida registrada")
	return nil
}
