package dto

import "time"

// CreateOperatorRequest alta de operador.
type CreateOperatorRequest struct {
	Name            string   `json:"name" validate:"required,max=200"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=8"`
	Role            string   `json:"role" validate:"required,oneof=SUPER_ADMIN MANAGER COMMON"`
	InstitutionsIDs []string `json:"institutionsIds" validate:"omitempty,dive,required"`
}

// UpdateOperatorRequest edición de operador (sin password).
type UpdateOperatorRequest struct {
	Name            string   `json:"name" validate:"required,max=200"`
	Email           string   `json:"email" validate:"required,email"`
	Role            string   `json:"role" validate:"required,oneof=SUPER_ADMIN MANAGER COMMON"`
	Active          *bool    `json:"active,omitempty"`
	InstitutionsIDs []string `json:"institutionsIds" validate:"omitempty,dive,required"`
}

// InstitutionRequest alta/edición de institución.
type InstitutionRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	CNPJ         string `json:"cnpj" validate:"required,len=14,numeric"`
	Type         string `json:"type" validate:"required,oneof=PUBLIC PRIVATE"`
	ControlStock bool   `json:"controlStock"`
}

// StockRequest alta/edición de stock.
type StockRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	InstitutionID string `json:"institutionId" validate:"required"`
	Status        *bool  `json:"status,omitempty"`
}

// MedicineRequest alta/edición de medicamento.
type MedicineRequest struct {
	Name               string   `json:"name" validate:"required,max=200"`
	TherapeuticClassID string   `json:"therapeuticClassId" validate:"omitempty"`
	PathologiesIDs     []string `json:"pathologiesIds" validate:"omitempty,dive,required"`
}

// MedicineVariantRequest alta/edición de variante.
type MedicineVariantRequest struct {
	MedicineID           string `json:"medicineId" validate:"required"`
	Dosage               string `json:"dosage" validate:"required,max=50"`
	PharmaceuticalFormID string `json:"pharmaceuticalFormId" validate:"required"`
	UnitMeasureID        string `json:"unitMeasureId" validate:"required"`
}

// PathologyRequest alta/edición de patología.
type PathologyRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Code string `json:"code" validate:"required,max=20"`
}

// PharmaceuticalFormRequest alta/edición de forma farmacéutica.
type PharmaceuticalFormRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// UnitMeasureRequest alta/edición de unidad de medida.
type UnitMeasureRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Acronym string `json:"acronym" validate:"required,max=10"`
}

// TherapeuticClassRequest alta/edición de clase terapéutica.
type TherapeuticClassRequest struct {
	Description string `json:"description" validate:"required,max=200"`
}

// ManufacturerRequest alta/edición de fabricante.
type ManufacturerRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	CNPJ string `json:"cnpj" validate:"required,len=14,numeric"`
}

// MovementTypeRequest alta/edición de tipo de movimiento.
type MovementTypeRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Direction string `json:"direction" validate:"required,oneof=ENTRY EXIT"`
}

// UserRequest alta/edición de paciente.
type UserRequest struct {
	Name           string     `json:"name" validate:"required,max=200"`
	CPF            string     `json:"cpf" validate:"required,len=11,numeric"`
	SUS            string     `json:"sus" validate:"omitempty,len=15,numeric"`
	Birth          *time.Time `json:"birth,omitempty"`
	Gender         string     `json:"gender" validate:"required,oneof=M F O"`
	PathologiesIDs []string   `json:"pathologiesIds" validate:"omitempty,dive,required"`
}
