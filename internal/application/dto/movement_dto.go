package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

// ExitBatchForm lote elegido manualmente en una salida.
// TotalCurrent viene de la búsqueda de lotes y acota la cantidad.
type ExitBatchForm struct {
	BatchStockID string `json:"batchStockId" validate:"required"`
	Code         string `json:"code,omitempty"`
	Quantity     int    `json:"quantity" validate:"gt=0,ltefield=TotalCurrent"`
	TotalCurrent int    `json:"totalCurrent" validate:"gt=0"`
}

// ExitMedicineForm medicamento de una salida con sus lotes.
type ExitMedicineForm struct {
	MedicineStockID string          `json:"medicineStockId" validate:"required"`
	Batches         []ExitBatchForm `json:"batches" validate:"required,min=1,dive"`
}

// ExitForm formulario de salida manual. El campo dependiente de ExitType se exige
// con una regla a nivel de struct.
type ExitForm struct {
	StockID                  string             `json:"stockId" validate:"required"`
	ExitType                 entity.ExitType    `json:"exitType" validate:"required,oneof=MOVEMENT_TYPE DONATION TRANSFER"`
	Date                     time.Time          `json:"date" validate:"required"`
	MovementTypeID           string             `json:"movementTypeId,omitempty"`
	DestinationInstitutionID string             `json:"destinationInstitutionId,omitempty"`
	StockDestinationID       string             `json:"stockDestinationId,omitempty"`
	Medicines                []ExitMedicineForm `json:"medicines" validate:"required,min=1,dive"`
}

// BatchQuantity par lote/cantidad enviado al backend.
type BatchQuantity struct {
	BatchStockID string `json:"batchStockId"`
	Quantity     int    `json:"quantity"`
}

// RegisterExitRequest cuerpo de POST /medicines/exits.
type RegisterExitRequest struct {
	StockID                  string          `json:"stockId"`
	ExitType                 entity.ExitType `json:"exitType"`
	ExitDate                 time.Time       `json:"exitDate"`
	MovementTypeID           string          `json:"movementTypeId,omitempty"`
	DestinationInstitutionID string          `json:"destinationInstitutionId,omitempty"`
	Batches                  []BatchQuantity `json:"batches"`
}

// CreateTransferRequest cuerpo de POST /transfers.
type CreateTransferRequest struct {
	StockOriginID      string          `json:"stockOriginId"`
	StockDestinationID string          `json:"stockDestinationId"`
	TransferDate       time.Time       `json:"transferDate"`
	Batches            []BatchQuantity `json:"batches"`
}

// DispensationHeaderForm datos generales del borrador de dispensación.
type DispensationHeaderForm struct {
	StockID string    `json:"stockId" validate:"required"`
	UserID  string    `json:"userId" validate:"required"`
	Date    time.Time `json:"date" validate:"required"`
}

// AddDispensationMedicineForm medicamento y cantidad pedida para la vista previa.
type AddDispensationMedicineForm struct {
	MedicineStockID  string `json:"medicineStockId" validate:"required"`
	QuantityRequired int    `json:"quantityRequired" validate:"gt=0"`
}

// RegisterDispensationRequest cuerpo de POST /dispensations.
type RegisterDispensationRequest struct {
	StockID          string          `json:"stockId"`
	UserID           string          `json:"userId"`
	DispensationDate time.Time       `json:"dispensationDate"`
	Batches          []BatchQuantity `json:"batches"`
}

// EntryBatchForm lote recibido en una entrada.
type EntryBatchForm struct {
	Code           string           `json:"code" validate:"required,max=50"`
	ExpirationDate time.Time        `json:"expirationDate" validate:"required"`
	ManufacturerID string           `json:"manufacturerId" validate:"required"`
	Quantity       int              `json:"quantity" validate:"gt=0"`
	UnitCost       *decimal.Decimal `json:"unitCost,omitempty"`
}

// EntryMedicineForm variante recibida con sus lotes.
type EntryMedicineForm struct {
	MedicineVariantID string           `json:"medicineVariantId" validate:"required"`
	Batches           []EntryBatchForm `json:"batches" validate:"required,min=1,dive"`
}

// EntryForm formulario de entrada; se envía tal cual a POST /medicines/entries.
type EntryForm struct {
	StockID        string              `json:"stockId" validate:"required"`
	MovementTypeID string              `json:"movementTypeId" validate:"required"`
	EntryDate      time.Time           `json:"entryDate" validate:"required"`
	NFNumber       string              `json:"nfNumber,omitempty" validate:"omitempty,max=50"`
	Medicines      []EntryMedicineForm `json:"medicines" validate:"required,min=1,dive"`
}
