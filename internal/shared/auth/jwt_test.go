package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_TTL_HOURS", "2")

	token, err := SignJWT(Claims{Sub: "user-1", Email: "owner@example.com", Name: "Owner"})
	require.NoError(t, err)

	claims, err := VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Sub)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.InDelta(t, time.Now().Add(2*time.Hour).Unix(), claims.Exp, 5)
}

func TestVerifyRejectsTamperedAndExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	expired, err := SignJWT(Claims{Sub: "user-1", Exp: time.Now().Add(-time.Minute).Unix()})
	require.NoError(t, err)
	_, err = VerifyJWT(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	good, err := SignJWT(Claims{Sub: "user-1"})
	require.NoError(t, err)
	t.Setenv("JWT_SECRET", "other-secret")
	_, err = VerifyJWT(good)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = VerifyJWT("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1"})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = VerifyJWT(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSecretRequiredInProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := SignJWT(Claims{Sub: "user-1"})
	assert.True(t, errors.Is(err, errMissingSecret))
}
