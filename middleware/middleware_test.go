package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventconnect/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, userID string) string {
	t.Helper()
	claims := Claims{
		Username: "ada",
		UserID:   userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	require.NoError(t, err)
	return token
}

func captureUserID(userID *string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if v, ok := r.Context().Value(globals.UserIDKey).(string); ok {
			*userID = v
		}
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	var userID string
	req := httptest.NewRequest("GET", "/api/profile", nil)
	rec := httptest.NewRecorder()

	Authenticate(captureUserID(&userID))(rec, req, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, userID)
}

func TestAuthenticateSetsUserID(t *testing.T) {
	var userID string
	req := httptest.NewRequest("GET", "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "u42"))
	rec := httptest.NewRecorder()

	Authenticate(captureUserID(&userID))(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u42", userID)
}

func TestOptionalAuthProceedsWithoutToken(t *testing.T) {
	var userID string
	req := httptest.NewRequest("GET", "/api/events/e1", nil)
	rec := httptest.NewRecorder()

	OptionalAuth(captureUserID(&userID))(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, userID)
}

func TestOptionalAuthSetsUserIDWhenTokenValid(t *testing.T) {
	var userID string
	req := httptest.NewRequest("GET", "/api/events/e1", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "u42"))
	rec := httptest.NewRecorder()

	OptionalAuth(captureUserID(&userID))(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u42", userID)
}

func TestOptionalAuthIgnoresGarbageToken(t *testing.T) {
	var userID string
	req := httptest.NewRequest("GET", "/api/events/e1", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()

	OptionalAuth(captureUserID(&userID))(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, userID)
}
