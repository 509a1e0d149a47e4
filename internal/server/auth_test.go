package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/modu-soho/buzz_dashboard/internal/biz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-key"

func signToken(t *testing.T, role string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-1",
		"email": "hong@example.com",
		"role":  role,
		"exp":   exp.Unix(),
	})
	signed, err := token.SignedString([]byte(testKey))
	require.NoError(t, err)
	return signed
}

func TestJWTAuthMissingToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without a token")
	})
	rec := httptest.NewRecorder()

	JWTAuth(testKey)(next).ServeHTTP(rec, httptest.NewRequest("GET", "/api/reports/daily", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Authentication required"}`, rec.Body.String())
}

func TestJWTAuthMalformedToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/reports/daily", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()

	JWTAuth(testKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run with a malformed token")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/reports/daily", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user", time.Now().Add(-time.Hour)))
	rec := httptest.NewRecorder()

	JWTAuth(testKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run with an expired token")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongKey(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/reports/daily", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user", time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()

	JWTAuth("other-key")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run with a token signed by another key")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthAttachesPrincipal(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/reports/daily", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "admin", time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()

	var got *biz.Principal
	JWTAuth(testKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = biz.PrincipalFromContext(r.Context())
	})).ServeHTTP(rec, req)

	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "hong@example.com", got.Email)
	assert.Equal(t, "admin", got.Role)
}

func TestRequireAdminForbidsUsers(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/reports/daily", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user", time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()

	chain := JWTAuth(testKey)(RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for a non-admin principal")
	})))
	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Admin role required"}`, rec.Body.String())
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/reports/daily", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "admin", time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()

	ran := false
	chain := JWTAuth(testKey)(RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
		w.WriteHeader(http.StatusCreated)
	})))
	chain.ServeHTTP(rec, req)

	assert.True(t, ran)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRateLimitRejectsBeyondBurst(t *testing.T) {
	handler := RateLimit(1, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/reports/daily", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
	assert.Equal(t, http.StatusTooManyRequests, codes[3])
}
