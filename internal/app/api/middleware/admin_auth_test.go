package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/stockbrief/membership/pkg/config"
)

const testSecret = "test-secret"

func signAdminToken(t *testing.T, claims AdminClaims, secret string, method jwt.SigningMethod) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func adminTestRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Admin.JWTSecret = secret

	r := gin.New()
	g := r.Group("/admin")
	g.Use(AdminAuthMiddleware(cfg))
	g.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"operator_id": c.GetString("operatorID")})
	})
	return r
}

func TestAdminAuthMiddleware(t *testing.T) {
	valid := signAdminToken(t, AdminClaims{
		OperatorID: "op-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret, jwt.SigningMethodHS256)

	expired := signAdminToken(t, AdminClaims{
		OperatorID: "op-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}, testSecret, jwt.SigningMethodHS256)

	wrongSecret := signAdminToken(t, AdminClaims{OperatorID: "op-1"}, "other-secret", jwt.SigningMethodHS256)

	noOperator := signAdminToken(t, AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret, jwt.SigningMethodHS256)

	cases := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not a bearer token", valid, http.StatusUnauthorized},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + wrongSecret, http.StatusUnauthorized},
		{"missing operator id", "Bearer " + noOperator, http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
	}

	r := adminTestRouter(testSecret)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestAdminAuthMiddleware_UnconfiguredSecretRejectsAll(t *testing.T) {
	r := adminTestRouter("")
	token := signAdminToken(t, AdminClaims{OperatorID: "op-1"}, "anything", jwt.SigningMethodHS256)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthMiddleware_ExposesOperatorID(t *testing.T) {
	r := adminTestRouter(testSecret)
	token := signAdminToken(t, AdminClaims{
		OperatorID: "op-42",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret, jwt.SigningMethodHS256)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "op-42")
}
