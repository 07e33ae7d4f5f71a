package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sekolahdata/tatatertib/internal/middleware"
	"github.com/sekolahdata/tatatertib/internal/services"
	"github.com/sekolahdata/tatatertib/pkg/response"
	"gorm.io/gorm"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{
		statsService: services.NewStatsService(db),
	}
}

// Overview returns the aggregate dashboard for the range: the category
// distribution and the point leaderboard
// GET /api/statistics
func (h *StatsHandler) Overview(c *gin.Context) {
	sc := middleware.GetScope(c)
	dateRange := c.Query("date_range")

	dist, err := h.statsService.CategoryDistribution(sc, dateRange)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	top, err := h.statsService.TopViolators(sc, dateRange, limit)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"distribution":  dist,
		"top_violators": top,
	})
}

// TopViolators returns the point leaderboard for the range
// GET /api/statistics/top-violators
func (h *StatsHandler) TopViolators(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	top, err := h.statsService.TopViolators(middleware.GetScope(c), c.Query("date_range"), limit)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, top)
}

// trendWindows are the selectable trailing windows of the trend chart.
var trendWindows = map[int]bool{7: true, 30: true, 90: true, 180: true}

// Trend returns the gap-free daily series for a trailing window
// GET /api/statistics/trend
func (h *StatsHandler) Trend(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || !trendWindows[days] {
		response.BadRequest(c, "days must be one of 7, 30, 90, 180")
		return
	}

	series, err := h.statsService.TrendSeries(middleware.GetScope(c), days)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, series)
}

// Today returns the live widget data for the current day
// GET /api/statistics/today
func (h *StatsHandler) Today(c *gin.Context) {
	summary, err := h.statsService.Today(middleware.GetScope(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, summary)
}
