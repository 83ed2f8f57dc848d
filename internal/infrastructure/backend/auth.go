package backend

import (
	"context"
	"net/http"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

// AuthAPI endpoints de autenticación.
type AuthAPI struct {
	c *Client
}

// SignIn POST /auth/login; devuelve el token emitido.
func (a *AuthAPI) SignIn(ctx context.Context, req dto.SignInRequest) (string, error) {
	var out dto.SignInResponse
	if err := a.c.Do(ctx, http.MethodPost, "/auth/login", nil, req, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// ValidateToken GET /auth/validate-token.
func (a *AuthAPI) ValidateToken(ctx context.Context) (bool, error) {
	var out dto.ValidateTokenResponse
	if err := a.c.Do(ctx, http.MethodGet, "/auth/validate-token", nil, nil, &out); err != nil {
		return false, err
	}
	return out.Valid, nil
}

// Me GET /operators/me.
func (a *AuthAPI) Me(ctx context.Context) (*entity.Operator, error) {
	var out entity.Operator
	if err := a.c.Do(ctx, http.MethodGet, "/operators/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
