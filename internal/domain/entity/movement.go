package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dirección de un tipo de movimiento.
const (
	MovementDirectionEntry = "ENTRY"
	MovementDirectionExit  = "EXIT"
)

// MovementType categoría configurable de entrada o salida.
type MovementType struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Direction string `json:"direction"`
}

// ExitType clasifica una salida de stock.
type ExitType string

const (
	ExitTypeMovementType ExitType = "MOVEMENT_TYPE"
	ExitTypeDonation     ExitType = "DONATION"
	ExitTypeTransfer     ExitType = "TRANSFER"
	ExitTypeDispensation ExitType = "DISPENSATION" // flujo propio de dispensación
)

// BatchMovement lote y cantidad debitada en un movimiento registrado.
type BatchMovement struct {
	BatchStockID string `json:"batchStockId"`
	Code         string `json:"code,omitempty"`
	Medicine     string `json:"medicine,omitempty"`
	Quantity     int    `json:"quantity"`
}

// Dispensation entrega de medicamentos a un paciente.
type Dispensation struct {
	ID       string          `json:"id"`
	Date     time.Time       `json:"dispensationDate"`
	User     string          `json:"user"`
	Operator string          `json:"operator"`
	Stock    string          `json:"stock"`
	Batches  []BatchMovement `json:"batches,omitempty"`
}

// MedicineExit salida de stock que no es dispensación.
type MedicineExit struct {
	ID           string          `json:"id"`
	ExitDate     time.Time       `json:"exitDate"`
	ExitType     ExitType        `json:"exitType"`
	MovementType string          `json:"movementType,omitempty"`
	Stock        string          `json:"stock"`
	Operator     string          `json:"operator"`
	Batches      []BatchMovement `json:"batches,omitempty"`
}

// MedicineEntry entrada de lotes a un stock.
type MedicineEntry struct {
	ID           string    `json:"id"`
	EntryDate    time.Time `json:"entryDate"`
	MovementType string    `json:"movementType"`
	Stock        string    `json:"stock"`
	Operator     string    `json:"operator"`
	Quantity     int       `json:"quantity"`

	// Valor total informado por el backend, si la entrada registró costos.
	TotalCost *decimal.Decimal `json:"totalCost,omitempty"`
}

// Transfer traslado entre stocks de instituciones.
type Transfer struct {
	ID                 string    `json:"id"`
	Status             string    `json:"status"`
	StockOriginID      string    `json:"stockOriginId"`
	StockDestinationID string    `json:"stockDestinationId"`
	CreatedAt          time.Time `json:"createdAt"`
}
