package jwt_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/farmacia-console/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

// sign emite un token HS256 como lo haría el backend.
func sign(t *testing.T, subject, role string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, pkgjwt.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func TestInspect_LeeClaimsSinVerificarFirma(t *testing.T) {
	tok := sign(t, "operator-1", "MANAGER", time.Hour)

	claims, err := pkgjwt.Inspect(tok)
	require.NoError(t, err)
	assert.Equal(t, "operator-1", claims.Subject)
	assert.Equal(t, "MANAGER", claims.Role)
}

func TestInspect_TokenOpaco(t *testing.T) {
	_, err := pkgjwt.Inspect("opaque-session-token")
	assert.ErrorIs(t, err, pkgjwt.ErrNotJWT)
}

func TestExpired(t *testing.T) {
	vigente := sign(t, "op", "COMMON", time.Hour)
	vencido := sign(t, "op", "COMMON", -time.Minute)

	now := time.Now()
	assert.False(t, pkgjwt.Expired(vigente, now))
	assert.True(t, pkgjwt.Expired(vencido, now))
	assert.False(t, pkgjwt.Expired("opaque-session-token", now), "los tokens opacos los decide el backend")
}

func TestExpired_SinExp(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, pkgjwt.Claims{Role: "COMMON"}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	assert.False(t, pkgjwt.Expired(tok, time.Now()))
}
