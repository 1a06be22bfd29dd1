package handlers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func routeSet(r *gin.Engine) map[string]bool {
	set := make(map[string]bool)
	for _, rt := range r.Routes() {
		set[rt.Method+" "+rt.Path] = true
	}
	return set
}

func TestRegisterReferralRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterReferralRoutes(r.Group("/api"), nil)

	routes := routeSet(r)
	require.True(t, routes["POST /api/referrals/init"])
	require.True(t, routes["POST /api/referrals/complete"])
}

func TestRegisterSubscriptionRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterSubscriptionRoutes(r.Group("/api"), nil)
	RegisterSubscriptionV1Routes(r.Group("/api/v1"), nil)

	routes := routeSet(r)
	require.True(t, routes["GET /api/subscription/status"])
	require.True(t, routes["POST /api/subscription/sync"])
	require.True(t, routes["POST /api/v1/subscription/verify_receipt"])
	require.True(t, routes["POST /api/v1/subscription/refresh"])
}

func TestRegisterTrendingRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterTrendingRoutes(r.Group("/api/v1"), nil)

	routes := routeSet(r)
	require.True(t, routes["GET /api/v1/trending"])
	require.True(t, routes["POST /api/v1/trending/mentions"])
}

func TestRegisterAdminRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterAdminRoutes(r.Group("/api/v1/admin"), nil, nil)

	routes := routeSet(r)
	require.True(t, routes["POST /api/v1/admin/list_referrals"])
	require.True(t, routes["POST /api/v1/admin/grant_premium_days"])
	require.True(t, routes["POST /api/v1/admin/get_membership_statistic"])
}

func TestRegisterWebhookRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterWebhookRoutes(r.Group("/api/v1/webhooks"), nil)

	routes := routeSet(r)
	require.True(t, routes["POST /api/v1/webhooks/revenuecat"])
}

func TestRegisterHealthRoutes_RegistersEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterHealthRoutes(r)

	require.True(t, routeSet(r)["GET /healthz"])
}
