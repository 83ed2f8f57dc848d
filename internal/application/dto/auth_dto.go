package dto

// SignInRequest credenciales del formulario de acceso.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignInResponse token emitido por el backend.
type SignInResponse struct {
	Token string `json:"token"`
}

// ValidateTokenResponse respuesta de auth/validate-token.
type ValidateTokenResponse struct {
	Valid bool `json:"valid"`
}

// SelectInstitutionRequest selección de institución ("" = ninguna).
type SelectInstitutionRequest struct {
	InstitutionID string `json:"institutionId"`
}
