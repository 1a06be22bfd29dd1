package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stockbrief/membership/internal/app/service/trending"
	"github.com/stockbrief/membership/pkg/response"
)

type TrendingResponse struct {
	WindowHours int                     `json:"window_hours"`
	Items       []*trending.TickerCount `json:"items"`
}

// @Summary      Trending tickers
// @Description  Returns the most mentioned ticker symbols within the window.
// @Tags         Trending
// @Produce      json
// @Param        window_hours query int false "Aggregation window in hours"
// @Param        limit query int false "Maximum number of symbols"
// @Success      200  {object}  RespOK
// @Router       /api/v1/trending [get]
func ApiTrending(svc *trending.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		windowHours := 0
		if v := c.Query("window_hours"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "invalid window_hours"))
				return
			}
			windowHours = n
		}
		limit := 0
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "invalid limit"))
				return
			}
			limit = n
		}

		items, err := svc.Trending(c.Request.Context(), windowHours, limit)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(&TrendingResponse{WindowHours: windowHours, Items: items}))
	}
}

type RecordMentionsRequest struct {
	PostID      string    `json:"post_id" binding:"required"`
	UserID      string    `json:"user_id" binding:"required"`
	Symbols     []string  `json:"symbols" binding:"required"`
	MentionedAt time.Time `json:"mentioned_at"`
}

type RecordMentionsResponse struct {
	Recorded int `json:"recorded"`
}

// @Summary      Record ticker mentions
// @Description  Ingests the ticker symbols mentioned by a post.
// @Tags         Trending
// @Accept       json
// @Produce      json
// @Param        request body RecordMentionsRequest true "Mention ingest request"
// @Success      200  {object}  RespOK
// @Router       /api/v1/trending/mentions [post]
func ApiRecordMentions(svc *trending.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RecordMentionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		n, err := svc.Record(c.Request.Context(), req.PostID, req.UserID, req.Symbols, req.MentionedAt)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(&RecordMentionsResponse{Recorded: n}))
	}
}

func RegisterTrendingRoutes(r gin.IRouter, svc *trending.Service) {
	r.GET("/trending", ApiTrending(svc))
	r.POST("/trending/mentions", ApiRecordMentions(svc))
}
