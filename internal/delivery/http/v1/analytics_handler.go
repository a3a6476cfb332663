package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-storefront-backend/internal/delivery/http/response"
	"go-storefront-backend/internal/domain"
	"go-storefront-backend/pkg/apperror"
)

type AnalyticsHandler struct {
	analyticsUC domain.AnalyticsUsecase
}

func NewAnalyticsHandler(public *gin.RouterGroup, admin *gin.RouterGroup, analyticsUC domain.AnalyticsUsecase) {
	handler := &AnalyticsHandler{analyticsUC: analyticsUC}

	// Page-view tracking is fire-and-forget from the storefront.
	public.POST("/track", handler.Track)

	stats := admin.Group("/stats")
	{
		stats.GET("", handler.GetStats)
		stats.POST("/flush", handler.Flush)
	}
}

type TrackRequest struct {
	Path string `json:"path"`
}

// Track godoc
// @Summary      Record a page view
// @Description  Best-effort counter; always returns 202
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Param        body  body      TrackRequest  true  "Page JSON"
// @Success      202  {object}  response.Response
// @Router       /track [post]
func (h *AnalyticsHandler) Track(c *gin.Context) {
	var req TrackRequest
	_ = c.ShouldBindJSON(&req)

	// Errors are swallowed inside the usecase; tracking never breaks
	// the storefront.
	_ = h.analyticsUC.TrackPageView(c, req.Path)
	response.Success(c, http.StatusAccepted, "Recorded", nil)
}

// GetStats godoc
// @Summary      Daily stats rollup (admin)
// @Tags         admin
// @Produce      json
// @Param        from  query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to    query     string  false  "End date (YYYY-MM-DD)"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /admin/stats [get]
// @Security     BearerAuth
func (h *AnalyticsHandler) GetStats(c *gin.Context) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if s := c.Query("from"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid from date, expected YYYY-MM-DD"))
			return
		}
		from = parsed
	}
	if s := c.Query("to"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid to date, expected YYYY-MM-DD"))
			return
		}
		to = parsed
	}

	stats, err := h.analyticsUC.GetStats(c, from, to)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Daily stats", stats)
}

// Flush godoc
// @Summary      Flush page-view counters into daily stats (admin)
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /admin/stats/flush [post]
// @Security     BearerAuth
func (h *AnalyticsHandler) Flush(c *gin.Context) {
	if err := h.analyticsUC.FlushPageViews(c); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Page views flushed", nil)
}
