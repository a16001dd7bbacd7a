package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalpark/stadium-booking/internal/utils"
)

const testSecret = "test-secret"

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured echo.Context
	h := mw(func(c echo.Context) error {
		captured = c
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, captured
}

func bearer(t *testing.T, userID uint64, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, userID, role, 5)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func TestJWTAuth(t *testing.T) {
	t.Run("valid token injects identity", func(t *testing.T) {
		rec, c := doRequest(t, JWTAuth(testSecret), bearer(t, 7, RoleCustomer))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, RoleCustomer, c.Get("role"))
		uid := UserIDFromContext(c)
		require.NotNil(t, uid)
		assert.Equal(t, uint64(7), *uid)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		rec, _ := doRequest(t, JWTAuth(testSecret), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		rec, _ := doRequest(t, JWTAuth(testSecret), "Bearer not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		tok, err := utils.NewAccessToken("other-secret", 7, RoleCustomer, 5)
		require.NoError(t, err)
		rec, _ := doRequest(t, JWTAuth(testSecret), "Bearer "+tok.Token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalJWT(t *testing.T) {
	t.Run("no token passes as guest", func(t *testing.T) {
		rec, c := doRequest(t, OptionalJWT(testSecret), "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, UserIDFromContext(c))
		assert.Equal(t, "guest", userID(c))
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		rec, c := doRequest(t, OptionalJWT(testSecret), bearer(t, 9, RoleCustomer))
		assert.Equal(t, http.StatusOK, rec.Code)
		uid := UserIDFromContext(c)
		require.NotNil(t, uid)
		assert.Equal(t, uint64(9), *uid)
	})

	t.Run("malformed token still rejected", func(t *testing.T) {
		rec, _ := doRequest(t, OptionalJWT(testSecret), "Bearer broken")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	chain := func(next echo.HandlerFunc) echo.HandlerFunc {
		return JWTAuth(testSecret)(RequireRole(RoleAdmin)(next))
	}

	t.Run("admin allowed", func(t *testing.T) {
		rec, _ := doRequest(t, chain, bearer(t, 1, RoleAdmin))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("customer forbidden", func(t *testing.T) {
		rec, _ := doRequest(t, chain, bearer(t, 2, RoleCustomer))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
