package entity

// Institution unidad que delimita stocks y movimientos.
type Institution struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CNPJ         string `json:"cnpj"`
	Type         string `json:"type"`
	ControlStock bool   `json:"controlStock"`
}

// Stock ubicación física o lógica de inventario dentro de una institución.
type Stock struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Status        bool   `json:"status"`
	InstitutionID string `json:"institutionId"`
}

// InstitutionRef institución dueña del stock.
func (s Stock) InstitutionRef() string { return s.InstitutionID }
