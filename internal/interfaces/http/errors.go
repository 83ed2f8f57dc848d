package http

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/application/validation"
	"github.com/jhoicas/farmacia-console/internal/domain"
	"github.com/jhoicas/farmacia-console/internal/infrastructure/backend"
)

// writeError traduce err a dto.ErrorResponse. form se devuelve para que la consola
// conserve lo que el operador envió.
func writeError(c *fiber.Ctx, err error, form interface{}) error {
	status, resp := errorResponse(err)
	resp.Form = form
	return c.Status(status).JSON(resp)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	if verrs, ok := validation.AsErrors(err); ok {
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "VALIDATION", Message: "revise los campos marcados", Fields: verrs.Fields}
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status >= http.StatusInternalServerError {
			status = fiber.StatusBadGateway
		}
		return status, dto.ErrorResponse{Code: "BACKEND_ERROR", Message: backend.ExtractMessage(err)}
	}

	switch {
	case errors.Is(err, domain.ErrNoInstitution):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "NO_INSTITUTION", Message: "seleccione una institución"}
	case errors.Is(err, domain.ErrEmptyDraft):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "EMPTY_DISPENSATION", Message: err.Error()}
	case errors.Is(err, domain.ErrUnknownExitType):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_EXIT_TYPE", Message: err.Error()}
	case errors.Is(err, domain.ErrUnknownReportKind):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "UNKNOWN_REPORT", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrNoSession):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión expirada, inicie sesión nuevamente"}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: backend.ExtractMessage(err)}
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
