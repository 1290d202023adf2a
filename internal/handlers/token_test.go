package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/mhafidz976/penjadwalan2/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, userID uint, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(ttl).Unix(),
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JwtKey)
	require.NoError(t, err)
	return tokenStr
}

func TestExpiredTokenRejected(t *testing.T) {
	env := setupEnv(t)

	token := signToken(t, env.staff.ID, -time.Hour)
	w := env.do(t, http.MethodGet, "/api/schedules", token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenForMissingUserRejected(t *testing.T) {
	env := setupEnv(t)

	token := signToken(t, 9999, time.Hour)
	w := env.do(t, http.MethodGet, "/api/schedules", token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenSignedWithWrongKeyRejected(t *testing.T) {
	env := setupEnv(t)

	claims := jwt.MapClaims{
		"user_id": env.staff.ID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("another-secret"))
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/api/schedules", tokenStr, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
