// internal/handler/budget.go
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"expense-tracker/internal/domain"
	"expense-tracker/internal/stats"
	"expense-tracker/internal/storage"

	"github.com/gin-gonic/gin"
)

// BudgetStore is what the budget endpoints need: budgets plus the month's
// expenses to derive spent/remaining/percentage on every read.
type BudgetStore interface {
	storage.BudgetStorage
	storage.ExpenseStorage
}

type BudgetHandler struct {
	store BudgetStore
}

func NewBudgetHandler(store BudgetStore) *BudgetHandler {
	return &BudgetHandler{store: store}
}

// ListBudgets handles GET /budgets?month. Without a month it returns the raw
// budget records; with one, each budget is joined against that month's
// expenses.
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	month := strings.TrimSpace(c.Query("month"))

	budgets, err := h.store.ListBudgets(c.Request.Context(), month)
	if err != nil {
		slog.Error("ListBudgets failed", "error", err, "month", month)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	if month == "" {
		c.JSON(http.StatusOK, budgets)
		return
	}

	expenses, err := h.store.List(c.Request.Context(), storage.ExpenseFilter{Month: month})
	if err != nil {
		slog.Error("ListBudgets failed", "error", err, "month", month)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, stats.BudgetStatuses(budgets, expenses))
}

// SetBudget handles POST /budgets. A write for an existing (category, month)
// key replaces the limit instead of creating a duplicate.
func (h *BudgetHandler) SetBudget(c *gin.Context) {
	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget, err := h.store.UpsertBudget(c.Request.Context(), domain.Budget{
		Category: req.Category,
		Month:    req.Month,
		Limit:    req.Limit,
	})
	if err != nil {
		slog.Error("SetBudget failed", "error", err, "category", req.Category, "month", req.Month)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	slog.Info("Budget set", "id", budget.ID, "category", budget.Category, "month", budget.Month, "limit", budget.Limit)
	c.JSON(http.StatusCreated, budget)
}

// DeleteBudget handles DELETE /budgets/:id
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteBudget(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
			return
		}
		slog.Error("DeleteBudget failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted", "id": id})
}

// === DTO ===

type SetBudgetRequest struct {
	Category string  `json:"category" validate:"required,category"`
	Month    string  `json:"month" validate:"required,yearmonth"`
	Limit    float64 `json:"limit" validate:"required,gte=1"`
}
