// internal/stats/stats.go
//
// Pure aggregation over already-fetched expense records. Nothing here touches
// storage; handlers fetch a month's records and reduce them with these
// functions on every request.
package stats

import (
	"math"
	"time"

	"expense-tracker/internal/domain"
)

// TrendLength is the number of calendar months covered by the trend view.
const TrendLength = 6

// Round2 rounds to two decimals, half away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// MonthlySummary computes the month total and the per-category split.
// ChartData carries one entry per category present, in the fixed category
// order; consumers sort as they see fit.
func MonthlySummary(month string, expenses []domain.Expense) domain.MonthlySummary {
	byCategory := make(map[string]float64)
	var total float64
	for _, e := range expenses {
		total += e.Amount
		byCategory[e.Category] += e.Amount
	}

	chartData := make([]domain.CategoryAmount, 0, len(byCategory))
	for _, c := range domain.Categories {
		amount, ok := byCategory[c]
		if !ok {
			continue
		}
		byCategory[c] = Round2(amount)
		chartData = append(chartData, domain.CategoryAmount{Category: c, Amount: Round2(amount)})
	}

	return domain.MonthlySummary{
		Month:      month,
		Total:      Round2(total),
		ByCategory: byCategory,
		ChartData:  chartData,
	}
}

// DailyBreakdown buckets expenses by their exact date string.
func DailyBreakdown(month string, expenses []domain.Expense) domain.DailyBreakdown {
	byDate := make(map[string]domain.DayBucket)
	for _, e := range expenses {
		b := byDate[e.Date]
		b.Total += e.Amount
		b.Count++
		byDate[e.Date] = b
	}
	for d, b := range byDate {
		b.Total = Round2(b.Total)
		byDate[d] = b
	}
	return domain.DailyBreakdown{Month: month, ByDate: byDate}
}

// BudgetStatuses joins each budget against the month's expenses. Remaining
// may go negative when over budget; the displayed percentage is capped at 100
// while the underlying spent stays unclamped.
func BudgetStatuses(budgets []domain.Budget, expenses []domain.Expense) []domain.BudgetStatus {
	spentByCategory := make(map[string]float64)
	for _, e := range expenses {
		spentByCategory[e.Category] += e.Amount
	}

	statuses := make([]domain.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := spentByCategory[b.Category]
		percentage := int(math.Round(spent / b.Limit * 100))
		if percentage > 100 {
			percentage = 100
		}
		statuses = append(statuses, domain.BudgetStatus{
			Budget:     b,
			Spent:      spent,
			Remaining:  b.Limit - spent,
			Percentage: percentage,
		})
	}
	return statuses
}

// TrendMonths returns the YYYY-MM keys of the TrendLength calendar months
// ending with the month of now, oldest first. Month boundaries follow now's
// location.
func TrendMonths(now time.Time) []string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	months := make([]string, 0, TrendLength)
	for i := TrendLength - 1; i >= 0; i-- {
		months = append(months, first.AddDate(0, -i, 0).Format("2006-01"))
	}
	return months
}
