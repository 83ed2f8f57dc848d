package backend

import (
	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

// API agrupa todos los módulos del backend sobre un mismo cliente (y token).
type API struct {
	Auth                *AuthAPI
	Operators           *Resource[entity.Operator, dto.CreateOperatorRequest, dto.UpdateOperatorRequest]
	Institutions        *Resource[entity.Institution, dto.InstitutionRequest, dto.InstitutionRequest]
	Stocks              *Resource[entity.Stock, dto.StockRequest, dto.StockRequest]
	Medicines           *Resource[entity.Medicine, dto.MedicineRequest, dto.MedicineRequest]
	MedicineVariants    *Resource[entity.MedicineVariant, dto.MedicineVariantRequest, dto.MedicineVariantRequest]
	Pathologies         *Resource[entity.Pathology, dto.PathologyRequest, dto.PathologyRequest]
	PharmaceuticalForms *Resource[entity.PharmaceuticalForm, dto.PharmaceuticalFormRequest, dto.PharmaceuticalFormRequest]
	UnitMeasures        *Resource[entity.UnitMeasure, dto.UnitMeasureRequest, dto.UnitMeasureRequest]
	TherapeuticClasses  *Resource[entity.TherapeuticClass, dto.TherapeuticClassRequest, dto.TherapeuticClassRequest]
	Manufacturers       *Resource[entity.Manufacturer, dto.ManufacturerRequest, dto.ManufacturerRequest]
	MovementTypes       *Resource[entity.MovementType, dto.MovementTypeRequest, dto.MovementTypeRequest]
	Users               *Resource[entity.User, dto.UserRequest, dto.UserRequest]
	Inventory           *InventoryAPI
	Dispensations       *DispensationAPI
	Exits               *ExitAPI
	Entries             *EntryAPI
	Transfers           *TransferAPI
	Metrics             *MetricsAPI
	Reports             *ReportAPI
}

// NewAPI construye todos los módulos sobre c.
func NewAPI(c *Client) *API {
	return &API{
		Auth:                &AuthAPI{c: c},
		Operators:           NewResource[entity.Operator, dto.CreateOperatorRequest, dto.UpdateOperatorRequest](c, "/operators", "operators"),
		Institutions:        NewResource[entity.Institution, dto.InstitutionRequest, dto.InstitutionRequest](c, "/institutions", "institutions"),
		Stocks:              NewResource[entity.Stock, dto.StockRequest, dto.StockRequest](c, "/stocks", "stocks"),
		Medicines:           NewResource[entity.Medicine, dto.MedicineRequest, dto.MedicineRequest](c, "/medicines", "medicines"),
		MedicineVariants:    NewResource[entity.MedicineVariant, dto.MedicineVariantRequest, dto.MedicineVariantRequest](c, "/medicines/variants", "medicine_variants"),
		Pathologies:         NewResource[entity.Pathology, dto.PathologyRequest, dto.PathologyRequest](c, "/pathologies", "pathologies"),
		PharmaceuticalForms: NewResource[entity.PharmaceuticalForm, dto.PharmaceuticalFormRequest, dto.PharmaceuticalFormRequest](c, "/pharmaceutical-forms", "pharmaceutical_forms"),
		UnitMeasures:        NewResource[entity.UnitMeasure, dto.UnitMeasureRequest, dto.UnitMeasureRequest](c, "/unit-measures", "unit_measures"),
		TherapeuticClasses:  NewResource[entity.TherapeuticClass, dto.TherapeuticClassRequest, dto.TherapeuticClassRequest](c, "/therapeutic-classes", "therapeutic_classes"),
		Manufacturers:       NewResource[entity.Manufacturer, dto.ManufacturerRequest, dto.ManufacturerRequest](c, "/manufacturers", "manufacturers"),
		MovementTypes:       NewResource[entity.MovementType, dto.MovementTypeRequest, dto.MovementTypeRequest](c, "/movement-types", "movement_types"),
		Users:               NewResource[entity.User, dto.UserRequest, dto.UserRequest](c, "/users", "users"),
		Inventory:           &InventoryAPI{c: c},
		Dispensations:       &DispensationAPI{c: c},
		Exits:               &ExitAPI{c: c},
		Entries:             &EntryAPI{c: c},
		Transfers:           &TransferAPI{c: c},
		Metrics:             &MetricsAPI{c: c},
		Reports:             &ReportAPI{c: c},
	}
}

// For API ligada al token de ts.
func (c *Client) For(ts TokenSource) *API {
	return NewAPI(c.WithTokens(ts))
}
