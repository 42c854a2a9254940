// internal/storage/storage.go
package storage

import (
	"context"
	"errors"

	"expense-tracker/internal/domain"
)

// ErrNotFound is returned when an id does not resolve to a record.
var ErrNotFound = errors.New("record not found")

// Sort fields accepted by ExpenseFilter.
const (
	SortByDate   = "date"
	SortByAmount = "amount"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ExpenseFilter is the normalized query built from request parameters.
// Zero values mean "no filter". Month is a YYYY-MM prefix matched lexically
// against the stored date string.
type ExpenseFilter struct {
	Category string
	Month    string
	Search   string // case-insensitive substring on title
	SortBy   string // SortByDate (default) or SortByAmount
	Order    string // OrderAsc or OrderDesc (default)
}

type ExpenseStorage interface {
	List(ctx context.Context, f ExpenseFilter) ([]domain.Expense, error)
	Get(ctx context.Context, id string) (*domain.Expense, error)
	Create(ctx context.Context, e domain.Expense) (*domain.Expense, error)
	Update(ctx context.Context, e domain.Expense) (*domain.Expense, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

type BudgetStorage interface {
	// ListBudgets returns budgets sorted by category ascending; empty month means all.
	ListBudgets(ctx context.Context, month string) ([]domain.Budget, error)
	// UpsertBudget creates or replaces the limit for the (category, month) key.
	UpsertBudget(ctx context.Context, b domain.Budget) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, id string) error
}
