package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stockbrief/membership/internal/app/api/middleware"
	"github.com/stockbrief/membership/internal/app/service/entitlement"
	"github.com/stockbrief/membership/pkg/response"
	"github.com/stockbrief/membership/pkg/types"
)

// @Summary      Subscription status
// @Description  Resolves the caller's active entitlement at request time.
// @Tags         Subscription
// @Produce      json
// @Param        x-user-id header string true "User ID"
// @Success      200  {object}  entitlement.StatusResult
// @Failure      404  {object}  ErrorResponse
// @Router       /api/subscription/status [get]
func ApiSubscriptionStatus(svc *entitlement.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(middleware.UserIDHeader)
		if userID == "" {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing x-user-id header"})
			return
		}

		res, err := svc.Status(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, entitlement.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
			return
		}

		c.JSON(http.StatusOK, res)
	}
}

type SubscriptionSyncRequest struct {
	UserID         string    `json:"user_id" binding:"required"`
	Tier           string    `json:"tier" binding:"required"`
	ProductID      string    `json:"product_id" binding:"required"`
	ExpirationDate time.Time `json:"expiration_date" binding:"required"`
}

type SubscriptionSyncResponse struct {
	Success bool `json:"success"`
}

// @Summary      Sync store subscription
// @Description  Overwrites the caller's store-subscription state after a purchase event.
// @Tags         Subscription
// @Accept       json
// @Produce      json
// @Param        request body SubscriptionSyncRequest true "Subscription sync request"
// @Success      200  {object}  SubscriptionSyncResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/subscription/sync [post]
func ApiSubscriptionSync(svc *entitlement.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubscriptionSyncRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		err := svc.SyncStoreSubscription(c.Request.Context(), &entitlement.StoreSyncRequest{
			UserID:         req.UserID,
			Tier:           types.Tier(req.Tier),
			ProductID:      req.ProductID,
			ExpirationDate: req.ExpirationDate,
			Reason:         types.EntitlementChangeReasonStoreSync,
		})
		if err != nil {
			switch {
			case errors.Is(err, entitlement.ErrUserNotFound):
				c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
			case errors.Is(err, entitlement.ErrUnknownTier):
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, SubscriptionSyncResponse{Success: true})
	}
}

func RegisterSubscriptionRoutes(r gin.IRouter, svc *entitlement.Service) {
	r.GET("/subscription/status", ApiSubscriptionStatus(svc))
	r.POST("/subscription/sync", ApiSubscriptionSync(svc))
}

type VerifyReceiptRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	ReceiptData string `json:"receipt_data" binding:"required"`
}

// @Summary      Verify App Store receipt
// @Description  Verifies an Apple receipt and applies the purchased subscription.
// @Tags         Subscription
// @Accept       json
// @Produce      json
// @Param        request body VerifyReceiptRequest true "Receipt verification request"
// @Success      200  {object}  RespOK
// @Router       /api/v1/subscription/verify_receipt [post]
func ApiVerifyReceipt(svc *entitlement.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyReceiptRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		if err := svc.VerifyAppleReceipt(c.Request.Context(), req.UserID, req.ReceiptData); err != nil {
			switch {
			case errors.Is(err, entitlement.ErrUserNotFound):
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeNotFound, err.Error()))
			case errors.Is(err, entitlement.ErrNoActivePurchase), errors.Is(err, entitlement.ErrUnknownProduct):
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			default:
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			}
			return
		}

		c.JSON(http.StatusOK, response.OKT(map[string]bool{"success": true}))
	}
}

type RefreshSubscriptionRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// @Summary      Refresh subscription from store
// @Description  Pulls the subscriber from RevenueCat and applies the current entitlement.
// @Tags         Subscription
// @Accept       json
// @Produce      json
// @Param        request body RefreshSubscriptionRequest true "Refresh request"
// @Success      200  {object}  RespOK
// @Router       /api/v1/subscription/refresh [post]
func ApiRefreshSubscription(svc *entitlement.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshSubscriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		if err := svc.RefreshFromStore(c.Request.Context(), req.UserID); err != nil {
			if errors.Is(err, entitlement.ErrUserNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeNotFound, err.Error()))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}

		c.JSON(http.StatusOK, response.OKT(map[string]bool{"success": true}))
	}
}

func RegisterSubscriptionV1Routes(r gin.IRouter, svc *entitlement.Service) {
	r.POST("/subscription/verify_receipt", ApiVerifyReceipt(svc))
	r.POST("/subscription/refresh", ApiRefreshSubscription(svc))
}
