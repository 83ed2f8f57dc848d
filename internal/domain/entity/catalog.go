package entity

// Pathology patología asociable a medicamentos.
type Pathology struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// PharmaceuticalForm forma farmacéutica (comprimido, jarabe, ...).
type PharmaceuticalForm struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UnitMeasure unidad de medida de la dosis.
type UnitMeasure struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Acronym string `json:"acronym"`
}

// TherapeuticClass clase terapéutica.
type TherapeuticClass struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Manufacturer fabricante de lotes.
type Manufacturer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	CNPJ string `json:"cnpj"`
}
