package entity

import (
	"encoding/json"
	"time"
)

// Medicine entrada del catálogo.
type Medicine struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	TherapeuticClassID string   `json:"therapeuticClassId,omitempty"`
	PathologyIDs       []string `json:"pathologiesIds,omitempty"`
}

// MedicineVariant combinación concreta de dosis, forma farmacéutica y unidad.
type MedicineVariant struct {
	ID                   string `json:"id"`
	MedicineID           string `json:"medicineId"`
	Medicine             string `json:"medicine,omitempty"`
	Dosage               string `json:"dosage"`
	PharmaceuticalFormID string `json:"pharmaceuticalFormId"`
	UnitMeasureID        string `json:"unitMeasureId"`
}

// MedicineStockQuantity cantidades agregadas de una variante en un stock.
type MedicineStockQuantity struct {
	Available   int `json:"available"`
	Unavailable int `json:"unavailable"`
}

// MedicineStock agregado por stock de una variante.
type MedicineStock struct {
	MedicineStockID string                `json:"medicineStockId"`
	MedicineVariant string                `json:"medicineVariant"`
	Medicine        string                `json:"medicine"`
	Dosage          string                `json:"dosage"`
	Stock           string                `json:"stock"`
	Quantity        MedicineStockQuantity `json:"quantity"`

	// Flags calculados por el backend; la consola solo los muestra.
	LowStock     bool `json:"lowStock"`
	NearExpiring bool `json:"nearExpiring"`
}

// MedicineStockDetails detalle de inventario de una variante con sus lotes.
type MedicineStockDetails struct {
	MedicineStock
	Batches []BatchStock `json:"batchesStocks"`
}

// BatchQuantity cantidades de un lote.
type BatchQuantity struct {
	TotalCurrent   int `json:"totalCurrent"`
	ToDispensation int `json:"toDispensation"`
}

// BatchStock lote asignable de una variante en un stock.
type BatchStock struct {
	ID             string        `json:"id"`
	Code           string        `json:"code"`
	Quantity       BatchQuantity `json:"quantity"`
	ExpirationDate time.Time     `json:"expirationDate"`
	Manufacturer   string        `json:"manufacturer"`
}

// PreviewBatch lote propuesto por la vista previa de dispensación. El backend lo
// identifica con batchStockId; id se acepta como alternativa.
type PreviewBatch struct {
	BatchStockID   string        `json:"batchStockId"`
	Code           string        `json:"code"`
	Quantity       BatchQuantity `json:"quantity"`
	ExpirationDate time.Time     `json:"expirationDate"`
	Manufacturer   string        `json:"manufacturer"`
}

func (b *PreviewBatch) UnmarshalJSON(data []byte) error {
	type plain PreviewBatch
	var raw struct {
		plain
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = PreviewBatch(raw.plain)
	if b.BatchStockID == "" {
		b.BatchStockID = raw.ID
	}
	return nil
}
