package entity

import "time"

// User paciente que recibe dispensaciones.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CPF       string     `json:"cpf"`
	SUS       string     `json:"sus"`
	Birth     *time.Time `json:"birth,omitempty"`
	Gender    string     `json:"gender"`
	Pathology []string   `json:"pathologiesIds,omitempty"`
}
