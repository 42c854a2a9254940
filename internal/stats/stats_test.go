package stats

import (
	"testing"
	"time"

	"expense-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expense(title string, amount float64, category, date string) domain.Expense {
	return domain.Expense{Title: title, Amount: amount, Category: category, Date: date}
}

func TestMonthlySummary(t *testing.T) {
	expenses := []domain.Expense{
		expense("Groceries", 42.555, "Food", "2025-06-01"),
		expense("Lunch", 7.4, "Food", "2025-06-03"),
		expense("Train", 15.0, "Travel", "2025-06-03"),
	}

	s := MonthlySummary("2025-06", expenses)

	assert.Equal(t, "2025-06", s.Month)
	assert.InDelta(t, 64.96, s.Total, 0.001)
	assert.InDelta(t, 49.96, s.ByCategory["Food"], 0.001)
	assert.InDelta(t, 15.0, s.ByCategory["Travel"], 0.001)
	require.Len(t, s.ChartData, 2)

	// Total matches the sum of chartData amounts, both at 2 decimals.
	var chartSum float64
	for _, row := range s.ChartData {
		chartSum += row.Amount
	}
	assert.InDelta(t, s.Total, Round2(chartSum), 0.001)
}

func TestMonthlySummaryEmptyMonth(t *testing.T) {
	s := MonthlySummary("2025-01", nil)

	assert.Zero(t, s.Total)
	assert.Empty(t, s.ByCategory)
	assert.NotNil(t, s.ByCategory)
	assert.Empty(t, s.ChartData)
	assert.NotNil(t, s.ChartData)
}

func TestDailyBreakdown(t *testing.T) {
	expenses := []domain.Expense{
		expense("Coffee", 3.5, "Food", "2025-06-15"),
		expense("Lunch", 12.0, "Food", "2025-06-15"),
		expense("Snack", 2.25, "Food", "2025-06-15"),
		expense("Cinema", 18.0, "Entertainment", "2025-06-20"),
	}

	b := DailyBreakdown("2025-06", expenses)

	require.Contains(t, b.ByDate, "2025-06-15")
	assert.Equal(t, 3, b.ByDate["2025-06-15"].Count)
	assert.InDelta(t, 17.75, b.ByDate["2025-06-15"].Total, 0.001)
	assert.Equal(t, 1, b.ByDate["2025-06-20"].Count)
	assert.Len(t, b.ByDate, 2)
}

func TestBudgetStatuses(t *testing.T) {
	tests := []struct {
		name           string
		limit          float64
		spent          float64
		wantRemaining  float64
		wantPercentage int
	}{
		{name: "under budget", limit: 1000, spent: 700, wantRemaining: 300, wantPercentage: 70},
		{name: "over budget clamps percentage", limit: 1000, spent: 1250, wantRemaining: -250, wantPercentage: 100},
		{name: "untouched budget", limit: 500, spent: 0, wantRemaining: 500, wantPercentage: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budgets := []domain.Budget{{Category: "Food", Month: "2025-06", Limit: tt.limit}}
			var expenses []domain.Expense
			if tt.spent > 0 {
				expenses = append(expenses, expense("Groceries", tt.spent, "Food", "2025-06-10"))
			}

			statuses := BudgetStatuses(budgets, expenses)
			require.Len(t, statuses, 1)
			assert.InDelta(t, tt.spent, statuses[0].Spent, 0.001)
			assert.InDelta(t, tt.wantRemaining, statuses[0].Remaining, 0.001)
			assert.Equal(t, tt.wantPercentage, statuses[0].Percentage)
		})
	}
}

func TestBudgetStatusesIgnoresOtherCategories(t *testing.T) {
	budgets := []domain.Budget{{Category: "Rent", Month: "2025-06", Limit: 900}}
	expenses := []domain.Expense{expense("Groceries", 120, "Food", "2025-06-02")}

	statuses := BudgetStatuses(budgets, expenses)
	require.Len(t, statuses, 1)
	assert.Zero(t, statuses[0].Spent)
	assert.InDelta(t, 900.0, statuses[0].Remaining, 0.001)
}

func TestTrendMonths(t *testing.T) {
	now := time.Date(2025, time.June, 30, 12, 0, 0, 0, time.UTC)

	months := TrendMonths(now)

	require.Len(t, months, 6)
	assert.Equal(t, []string{"2025-01", "2025-02", "2025-03", "2025-04", "2025-05", "2025-06"}, months)
}

func TestTrendMonthsCrossesYearBoundary(t *testing.T) {
	now := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)

	months := TrendMonths(now)

	assert.Equal(t, []string{"2024-09", "2024-10", "2024-11", "2024-12", "2025-01", "2025-02"}, months)
}

func TestTrendMonthsEndOfLongMonth(t *testing.T) {
	// Day 31 must not skip short months when stepping back.
	now := time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC)

	months := TrendMonths(now)

	assert.Equal(t, []string{"2025-02", "2025-03", "2025-04", "2025-05", "2025-06", "2025-07"}, months)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 12.35, Round2(12.345001))
	assert.Equal(t, 12.34, Round2(12.344))
	assert.Equal(t, 0.0, Round2(0))
}
