package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrNoSession         = errors.New("sesión sin token")
	ErrNoInstitution     = errors.New("ninguna institución seleccionada")
	ErrEmptyDraft        = errors.New("la dispensación no tiene medicamentos")
	ErrUnknownExitType   = errors.New("tipo de salida desconocido")
	ErrUnknownReportKind = errors.New("tipo de reporte desconocido")
)
