package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockbrief/membership/internal/app/service/entitlement"
	"github.com/stockbrief/membership/internal/app/service/referral"
)

// The mobile-facing referral endpoints speak plain JSON with real HTTP
// status codes rather than the internal envelope.

type ReferralInitRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	ReferralCode string `json:"referral_code"`
}

type ReferralInitResponse struct {
	Success       bool    `json:"success"`
	ReferralCode  string  `json:"referral_code"`
	PremiumDays   int     `json:"premium_days"`
	PremiumExpiry *string `json:"premium_expiry"`
}

// @Summary      Initialize referral state
// @Description  Ensures the caller has a referral code and optionally redeems another user's code.
// @Tags         Referral
// @Accept       json
// @Produce      json
// @Param        request body ReferralInitRequest true "Referral init request"
// @Success      200  {object}  ReferralInitResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/referrals/init [post]
func ApiReferralInit(svc *referral.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReferralInitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		res, err := svc.Init(c.Request.Context(), req.UserID, req.ReferralCode)
		if err != nil {
			switch {
			case errors.Is(err, entitlement.ErrUserNotFound):
				c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
			case errors.Is(err, referral.ErrInvalidReferralCode), errors.Is(err, referral.ErrSelfReferral):
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, ReferralInitResponse{
			Success:       true,
			ReferralCode:  res.ReferralCode,
			PremiumDays:   res.PremiumDays,
			PremiumExpiry: formatTimePtr(res.PremiumExpiry),
		})
	}
}

type ReferralCompleteRequest struct {
	ReferralCode   string `json:"referral_code" binding:"required"`
	ReferredUserID string `json:"referred_user_id"`
}

type ReferralCompleteResponse struct {
	Success            bool   `json:"success"`
	ReferrerID         string `json:"referrer_id"`
	CompletedReferrals int    `json:"completed_referrals"`
	TotalDaysEarned    int    `json:"total_days_earned"`
}

// @Summary      Complete referrals and apply rewards
// @Description  Promotes pending referrals for a code, recounts and applies the earned premium.
// @Tags         Referral
// @Accept       json
// @Produce      json
// @Param        request body ReferralCompleteRequest true "Referral complete request"
// @Success      200  {object}  ReferralCompleteResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /api/referrals/complete [post]
func ApiReferralComplete(svc *referral.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReferralCompleteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		res, err := svc.Complete(c.Request.Context(), req.ReferralCode, req.ReferredUserID)
		if err != nil {
			if errors.Is(err, referral.ErrInvalidReferralCode) {
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
			return
		}

		c.JSON(http.StatusOK, ReferralCompleteResponse{
			Success:            true,
			ReferrerID:         res.ReferrerID,
			CompletedReferrals: res.CompletedReferrals,
			TotalDaysEarned:    res.TotalDaysEarned,
		})
	}
}

func RegisterReferralRoutes(r gin.IRouter, svc *referral.Service) {
	r.POST("/referrals/init", ApiReferralInit(svc))
	r.POST("/referrals/complete", ApiReferralComplete(svc))
}
