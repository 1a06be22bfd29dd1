package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestApiReferralInit_RejectsMissingUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/referrals/init", ApiReferralInit(nil))

	w := postJSON(t, r, "/api/referrals/init", map[string]any{"referral_code": "JANE48212026"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "error")
}

func TestApiReferralComplete_RejectsMissingCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/referrals/complete", ApiReferralComplete(nil))

	w := postJSON(t, r, "/api/referrals/complete", map[string]any{"referred_user_id": "user-2"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApiSubscriptionStatus_RejectsMissingUserHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/subscription/status", ApiSubscriptionStatus(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/subscription/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "x-user-id")
}

func TestApiSubscriptionSync_RejectsIncompleteBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/subscription/sync", ApiSubscriptionSync(nil))

	w := postJSON(t, r, "/api/subscription/sync", map[string]any{"user_id": "user-1", "tier": "gold"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
