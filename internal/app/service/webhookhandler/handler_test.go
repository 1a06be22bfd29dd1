package webhookhandler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stockbrief/membership/pkg/config"
)

func testContext(t *testing.T, authorization, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/revenuecat", strings.NewReader(body))
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	c.Request = req
	return c
}

func TestHandleRevenueCat_RejectsWrongSecret(t *testing.T) {
	cfg := &config.Config{}
	cfg.RevenueCat.WebhookSecret = "shared-secret"
	h := NewHandler(cfg, nil, nil, zap.NewNop().Sugar())

	c := testContext(t, "wrong-secret", `{"event":{"type":"TEST"}}`)
	err := h.HandleRevenueCat(c)
	require.Error(t, err)
	require.Contains(t, err.Error(), "authorization")
}

func TestHandleRevenueCat_RejectsMissingSecret(t *testing.T) {
	cfg := &config.Config{}
	cfg.RevenueCat.WebhookSecret = "shared-secret"
	h := NewHandler(cfg, nil, nil, zap.NewNop().Sugar())

	c := testContext(t, "", `{"event":{"type":"TEST"}}`)
	require.Error(t, h.HandleRevenueCat(c))
}

func TestHandleRevenueCat_RejectsMalformedBody(t *testing.T) {
	cfg := &config.Config{}
	cfg.RevenueCat.WebhookSecret = "shared-secret"
	h := NewHandler(cfg, nil, nil, zap.NewNop().Sugar())

	c := testContext(t, "shared-secret", `{not json`)
	err := h.HandleRevenueCat(c)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse")
}
