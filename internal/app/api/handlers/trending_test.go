package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestApiTrending_RejectsInvalidWindow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/v1/trending", ApiTrending(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trending?window_hours=abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "invalid window_hours")
}

func TestApiTrending_RejectsInvalidLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/v1/trending", ApiTrending(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trending?limit=-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "invalid limit")
}

func TestApiRecordMentions_RejectsMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/trending/mentions", ApiRecordMentions(nil))

	w := postJSON(t, r, "/api/v1/trending/mentions", map[string]any{"post_id": "post-1"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "40000")
}
