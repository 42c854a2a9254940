// internal/handler/stats.go
package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"expense-tracker/internal/domain"
	"expense-tracker/internal/stats"
	"expense-tracker/internal/storage"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	store storage.ExpenseStorage
	now   func() time.Time
}

func NewStatsHandler(store storage.ExpenseStorage) *StatsHandler {
	return &StatsHandler{store: store, now: time.Now}
}

// targetMonth resolves the month query parameter, defaulting to the current
// calendar month (server local date).
func (h *StatsHandler) targetMonth(c *gin.Context) string {
	if month := strings.TrimSpace(c.Query("month")); month != "" {
		return month
	}
	return h.now().Format("2006-01")
}

// MonthlySummary handles GET /stats/monthly?month
func (h *StatsHandler) MonthlySummary(c *gin.Context) {
	month := h.targetMonth(c)
	expenses, err := h.store.List(c.Request.Context(), storage.ExpenseFilter{Month: month})
	if err != nil {
		slog.Error("MonthlySummary failed", "error", err, "month", month)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, stats.MonthlySummary(month, expenses))
}

// DailyBreakdown handles GET /stats/daily?month
func (h *StatsHandler) DailyBreakdown(c *gin.Context) {
	month := h.targetMonth(c)
	expenses, err := h.store.List(c.Request.Context(), storage.ExpenseFilter{Month: month})
	if err != nil {
		slog.Error("DailyBreakdown failed", "error", err, "month", month)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, stats.DailyBreakdown(month, expenses))
}

// Trend handles GET /stats/trend: the six calendar months ending with the
// current one, oldest first, empty months reported with total 0.
func (h *StatsHandler) Trend(c *gin.Context) {
	trend := make([]domain.TrendPoint, 0, stats.TrendLength)
	for _, month := range stats.TrendMonths(h.now()) {
		expenses, err := h.store.List(c.Request.Context(), storage.ExpenseFilter{Month: month})
		if err != nil {
			slog.Error("Trend failed", "error", err, "month", month)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		trend = append(trend, domain.TrendPoint{
			Month: month,
			Total: stats.MonthlySummary(month, expenses).Total,
		})
	}
	c.JSON(http.StatusOK, trend)
}
