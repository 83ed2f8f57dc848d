// Package movement implementa el flujo de salidas, dispensaciones y entradas de stock.
package movement

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/application/validation"
	"github.com/jhoicas/farmacia-console/internal/domain"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

// ExitCommon campos compartidos por todas las salidas manuales.
type ExitCommon struct {
	StockID string
	Date    time.Time
	Batches []dto.BatchQuantity
}

// ExitRequest salida validada: MovementTypeExit, DonationExit o TransferExit.
type ExitRequest interface {
	Common() ExitCommon
	exitRequest()
}

// MovementTypeExit salida por un tipo de movimiento configurado.
type MovementTypeExit struct {
	ExitCommon
	MovementTypeID string
}

// DonationExit donación a otra institución.
type DonationExit struct {
	ExitCommon
	DestinationInstitutionID string
}

// TransferExit traslado a otro stock; se registra por el endpoint de traslados.
type TransferExit struct {
	ExitCommon
	StockDestinationID string
}

func (r MovementTypeExit) Common() ExitCommon { return r.ExitCommon }
func (r DonationExit) Common() ExitCommon     { return r.ExitCommon }
func (r TransferExit) Common() ExitCommon     { return r.ExitCommon }

func (MovementTypeExit) exitRequest() {}
func (DonationExit) exitRequest()     {}
func (TransferExit) exitRequest()     {}

// RegisterRules registra en v las reglas entre campos del formulario de salida.
func RegisterRules(v *validation.Validator) {
	v.RegisterStructRule(exitFormRule, dto.ExitForm{})
}

// exitFormRule exige el campo que depende del tipo de salida.
func exitFormRule(sl validator.StructLevel) {
	f := sl.Current().Interface().(dto.ExitForm)
	switch f.ExitType {
	case entity.ExitTypeMovementType:
		if f.MovementTypeID == "" {
			sl.ReportError(f.MovementTypeID, "movementTypeId", "MovementTypeID", "required_for_exit_type", string(f.ExitType))
		}
	case entity.ExitTypeDonation:
		if f.DestinationInstitutionID == "" {
			sl.ReportError(f.DestinationInstitutionID, "destinationInstitutionId", "DestinationInstitutionID", "required_for_exit_type", string(f.ExitType))
		}
	case entity.ExitTypeTransfer:
		switch {
		case f.StockDestinationID == "":
			sl.ReportError(f.StockDestinationID, "stockDestinationId", "StockDestinationID", "required_for_exit_type", string(f.ExitType))
		case f.StockDestinationID == f.StockID:
			sl.ReportError(f.StockDestinationID, "stockDestinationId", "StockDestinationID", "nefield", "stockId")
		}
	}
}

// FlattenBatches aplana medicines[].batches[] en orden, un par por lote elegido.
func FlattenBatches(medicines []dto.ExitMedicineForm) []dto.BatchQuantity {
	n := 0
	for _, m := range medicines {
		n += len(m.Batches)
	}
	out := make([]dto.BatchQuantity, 0, n)
	for _, m := range medicines {
		for _, b := range m.Batches {
			out = append(out, dto.BatchQuantity{BatchStockID: b.BatchStockID, Quantity: b.Quantity})
		}
	}
	return out
}

// NewExitRequest valida el formulario y construye la variante según exitType.
// v debe tener registradas las reglas de RegisterRules.
func NewExitRequest(v *validation.Validator, form dto.ExitForm) (ExitRequest, error) {
	if err := v.Validate(form); err != nil {
		return nil, err
	}
	common := ExitCommon{StockID: form.StockID, Date: form.Date, Batches: FlattenBatches(form.Medicines)}
	switch form.ExitType {
	case entity.ExitTypeMovementType:
		return MovementTypeExit{ExitCommon: common, MovementTypeID: form.MovementTypeID}, nil
	case entity.ExitTypeDonation:
		return DonationExit{ExitCommon: common, DestinationInstitutionID: form.DestinationInstitutionID}, nil
	case entity.ExitTypeTransfer:
		return TransferExit{ExitCommon: common, StockDestinationID: form.StockDestinationID}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownExitType, form.ExitType)
	}
}
