package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockbrief/membership/internal/app/service/entitlement"
	"github.com/stockbrief/membership/internal/app/service/referral"
	"github.com/stockbrief/membership/internal/app/service/statistics"
	"github.com/stockbrief/membership/pkg/response"
)

// @Summary      List Referrals (Admin)
// @Description  Retrieves a paginated and filterable list of referral edges.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body referral.ScanReferralsRequest true "List referrals request with filters, pagination, and sorting"
// @Success      200  {object}  handlers.RespListReferrals
// @Router       /api/v1/admin/list_referrals [post]
func ApiListReferrals(svc *referral.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req referral.ScanReferralsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.ScanReferrals(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

type GrantPremiumDaysRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Days   int    `json:"days" binding:"required"`
}

// @Summary      Grant Premium Days (Admin)
// @Description  Manually extends a user's referral premium by the given day count.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body GrantPremiumDaysRequest true "Manual premium grant request"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/grant_premium_days [post]
func ApiGrantPremiumDays(svc *referral.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GrantPremiumDaysRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if req.Days <= 0 {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "days must be positive"))
			return
		}

		operatorID := c.GetString("operatorID")
		if err := svc.GrantPremiumDays(c.Request.Context(), req.UserID, req.Days, operatorID); err != nil {
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

// @Summary      Get Membership Statistics (Admin)
// @Description  Retrieves daily membership statistics.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body statistics.MembershipStatisticRequest true "Statistic request parameters"
// @Success      200  {object}  handlers.RespMembershipStatistic
// @Router       /api/v1/admin/get_membership_statistic [post]
func ApiGetMembershipStatistic(svc *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statistics.MembershipStatisticRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.GetMembershipStatistic(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterAdminRoutes(r gin.IRouter, refSvc *referral.Service, statSvc *statistics.Service) {
	r.POST("/list_referrals", ApiListReferrals(refSvc))
	r.POST("/grant_premium_days", ApiGrantPremiumDays(refSvc))
	r.POST("/get_membership_statistic", ApiGetMembershipStatistic(statSvc))
}
