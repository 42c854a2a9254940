// internal/handler/expense.go
package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"expense-tracker/internal/domain"
	"expense-tracker/internal/storage"

	val "expense-tracker/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ExpenseHandler struct {
	store storage.ExpenseStorage
}

func NewExpenseHandler(store storage.ExpenseStorage) *ExpenseHandler {
	return &ExpenseHandler{store: store}
}

// ParseExpenseFilter normalizes list query parameters into a store filter:
// "All" collapses to no category filter, sortBy falls back to date and order
// to desc. Semantic checks stay in the store/validation layer.
func ParseExpenseFilter(c *gin.Context) storage.ExpenseFilter {
	f := storage.ExpenseFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Month:    strings.TrimSpace(c.Query("month")),
		Search:   strings.TrimSpace(c.Query("search")),
		SortBy:   c.Query("sortBy"),
		Order:    c.Query("order"),
	}
	if f.Category == "All" {
		f.Category = ""
	}
	if f.SortBy != storage.SortByAmount {
		f.SortBy = storage.SortByDate
	}
	if f.Order != storage.OrderAsc {
		f.Order = storage.OrderDesc
	}
	return f
}

// ListExpenses handles GET /expenses?category&month&search&sortBy&order
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	expenses, err := h.store.List(c.Request.Context(), ParseExpenseFilter(c))
	if err != nil {
		slog.Error("ListExpenses failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// GetExpense handles GET /expenses/:id
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	expense, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		slog.Error("GetExpense failed", "error", err, "id", c.Param("id"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, expense)
}

// CreateExpense handles POST /expenses
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	if req.Category == "" {
		req.Category = domain.DefaultCategory
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := h.store.Create(c.Request.Context(), domain.Expense{
		Title:    strings.TrimSpace(req.Title),
		Amount:   req.Amount,
		Category: req.Category,
		Date:     req.Date,
		Note:     strings.TrimSpace(req.Note),
	})
	if err != nil {
		slog.Error("CreateExpense failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	slog.Info("Expense created", "id", expense.ID, "category", expense.Category, "amount", expense.Amount)
	c.JSON(http.StatusCreated, expense)
}

// UpdateExpense handles PUT /expenses/:id. Supplied fields are merged into
// the stored record and the result re-validated before the write.
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		slog.Error("UpdateExpense failed", "error", err, "id", c.Param("id"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	merged := *existing
	if req.Title != nil {
		merged.Title = strings.TrimSpace(*req.Title)
	}
	if req.Amount != nil {
		merged.Amount = *req.Amount
	}
	if req.Category != nil {
		merged.Category = *req.Category
	}
	if req.Date != nil {
		merged.Date = *req.Date
	}
	if req.Note != nil {
		merged.Note = strings.TrimSpace(*req.Note)
	}

	updated, err := h.store.Update(c.Request.Context(), merged)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		slog.Error("UpdateExpense failed", "error", err, "id", merged.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteExpense handles DELETE /expenses/:id
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		slog.Error("DeleteExpense failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully", "id": id})
}

// BulkDeleteExpenses handles DELETE /expenses/bulk. Ids that do not match are
// silently not counted; the response only carries the removed count.
func (h *ExpenseHandler) BulkDeleteExpenses(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide an array of ids"})
		return
	}

	deleted, err := h.store.DeleteMany(c.Request.Context(), req.IDs)
	if err != nil {
		slog.Error("BulkDeleteExpenses failed", "error", err, "ids", len(req.IDs))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	slog.Info("Expenses bulk deleted", "requested", len(req.IDs), "deleted", deleted)
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// === DTO ===

type CreateExpenseRequest struct {
	Title    string  `json:"title" validate:"required,notblank,max=80"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Category string  `json:"category" validate:"required,category"`
	Date     string  `json:"date" validate:"required,isodate"`
	Note     string  `json:"note" validate:"max=200"`
}

type UpdateExpenseRequest struct {
	Title    *string  `json:"title" validate:"omitempty,notblank,max=80"`
	Amount   *float64 `json:"amount" validate:"omitempty,gt=0"`
	Category *string  `json:"category" validate:"omitempty,category"`
	Date     *string  `json:"date" validate:"omitempty,isodate"`
	Note     *string  `json:"note" validate:"omitempty,max=200"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

func validateStruct(v any) error {
	if err := val.Validate.Struct(v); err != nil {
		var errs []string
		for _, e := range err.(validator.ValidationErrors) {
			errs = append(errs, fieldErrorToString(e))
		}
		return errors.New(strings.Join(errs, ", "))
	}
	return nil
}

func fieldErrorToString(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", e.Field())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", e.Field(), e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "category":
		return fmt.Sprintf("%s must be one of: %s", e.Field(), strings.Join(domain.Categories, ", "))
	case "isodate":
		return fmt.Sprintf("%s must be in YYYY-MM-DD format", e.Field())
	case "yearmonth":
		return fmt.Sprintf("%s must be in YYYY-MM format", e.Field())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
