package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockbrief/membership/internal/app/service/webhookhandler"
	"github.com/stockbrief/membership/pkg/logctx"
	"github.com/stockbrief/membership/pkg/response"
)

// @Summary      RevenueCat Webhook
// @Description  Handles RevenueCat server notifications. Requires the shared Authorization secret.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        payload body webhookhandler.RevenueCatPayload true "RevenueCat webhook payload"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/webhooks/revenuecat [post]
func ApiRevenueCatWebhook(h *webhookhandler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		logctx.FromCtx(c, h.Logger).Infow("webhook_revenuecat_received")

		if err := h.HandleRevenueCat(c); err != nil {
			logctx.FromCtx(c, h.Logger).Errorw("webhook_revenuecat_handle_error", "error", err.Error())
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		logctx.FromCtx(c, h.Logger).Infow("webhook_revenuecat_handled")
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

func RegisterWebhookRoutes(r gin.IRouter, h *webhookhandler.Handler) {
	r.POST("/revenuecat", ApiRevenueCatWebhook(h))
}
