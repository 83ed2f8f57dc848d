package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT el token no tiene formato JWT (tokens opacos del backend).
var ErrNotJWT = errors.New("jwt: token sin formato JWT")

// Claims campos que la consola lee del token emitido por el backend.
// La firma la valida el backend (auth/validate-token); aquí solo se inspecciona.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// Inspect decodifica el token sin verificar la firma.
// Devuelve ErrNotJWT si el token no es un JWT.
func Inspect(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJWT, err)
	}
	return claims, nil
}

// Expired indica si el token es un JWT con exp vencido respecto a now.
// Los tokens opacos o sin exp nunca se consideran vencidos: lo decide el backend.
func Expired(tokenString string, now time.Time) bool {
	claims, err := Inspect(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}
