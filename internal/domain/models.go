// internal/domain/models.go
package domain

import "time"

// Categories is the closed set shared by expenses, budgets and validation.
// Writes with any other value are rejected.
var Categories = []string{"Food", "Travel", "Shopping", "Rent", "Health", "Entertainment", "Other"}

// DefaultCategory is applied when a new expense carries no category.
const DefaultCategory = "Other"

func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

type Expense struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Date      string    `json:"date"` // YYYY-MM-DD, matched lexically
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Budget struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Month     string    `json:"month"` // YYYY-MM
	Limit     float64   `json:"limit"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BudgetStatus is a Budget joined with the month's expense aggregates.
// Never persisted, recomputed on every read.
type BudgetStatus struct {
	Budget
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage int     `json:"percentage"`
}

type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type MonthlySummary struct {
	Month      string             `json:"month"`
	Total      float64            `json:"total"`
	ByCategory map[string]float64 `json:"byCategory"`
	ChartData  []CategoryAmount   `json:"chartData"`
}

type DayBucket struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type DailyBreakdown struct {
	Month  string               `json:"month"`
	ByDate map[string]DayBucket `json:"byDate"`
}

type TrendPoint struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}
