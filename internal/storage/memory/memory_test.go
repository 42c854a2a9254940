package memory

import (
	"context"
	"testing"

	"expense-tracker/internal/domain"
	"expense-tracker/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s *Store) map[string]string {
	t.Helper()
	ids := map[string]string{}
	for _, e := range []domain.Expense{
		{Title: "Groceries", Amount: 42.5, Category: "Food", Date: "2025-06-01"},
		{Title: "Coffee beans", Amount: 9.9, Category: "Food", Date: "2025-06-20"},
		{Title: "Train ticket", Amount: 15.0, Category: "Travel", Date: "2025-06-05"},
		{Title: "Rent", Amount: 800.0, Category: "Rent", Date: "2025-05-01"},
	} {
		created, err := s.Create(context.Background(), e)
		require.NoError(t, err)
		ids[e.Title] = created.ID
	}
	return ids
}

func TestListFiltering(t *testing.T) {
	s := New()
	seed(t, s)

	tests := []struct {
		name   string
		filter storage.ExpenseFilter
		want   int
	}{
		{name: "no filter", filter: storage.ExpenseFilter{}, want: 4},
		{name: "by category", filter: storage.ExpenseFilter{Category: "Food"}, want: 2},
		{name: "by month prefix", filter: storage.ExpenseFilter{Month: "2025-06"}, want: 3},
		{name: "search case-insensitive", filter: storage.ExpenseFilter{Search: "coffee"}, want: 1},
		{name: "search no match", filter: storage.ExpenseFilter{Search: "pizza"}, want: 0},
		{name: "combined", filter: storage.ExpenseFilter{Category: "Food", Month: "2025-06", Search: "bean"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := s.List(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Len(t, out, tt.want)
		})
	}
}

func TestListSorting(t *testing.T) {
	s := New()
	seed(t, s)

	out, err := s.List(context.Background(), storage.ExpenseFilter{SortBy: storage.SortByDate, Order: storage.OrderDesc})
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, "2025-06-20", out[0].Date)
	assert.Equal(t, "2025-05-01", out[3].Date)

	out, err = s.List(context.Background(), storage.ExpenseFilter{SortBy: storage.SortByAmount, Order: storage.OrderAsc})
	require.NoError(t, err)
	assert.Equal(t, 9.9, out[0].Amount)
	assert.Equal(t, 800.0, out[3].Amount)
}

func TestGetUpdateDelete(t *testing.T) {
	s := New()
	ids := seed(t, s)

	got, err := s.Get(context.Background(), ids["Groceries"])
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Title)

	got.Amount = 50
	updated, err := s.Update(context.Background(), *got)
	require.NoError(t, err)
	assert.Equal(t, 50.0, updated.Amount)
	assert.Equal(t, got.CreatedAt, updated.CreatedAt)

	require.NoError(t, s.Delete(context.Background(), ids["Groceries"]))
	_, err = s.Get(context.Background(), ids["Groceries"])
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.Delete(context.Background(), ids["Groceries"]), storage.ErrNotFound)
}

func TestDeleteMany(t *testing.T) {
	s := New()
	ids := seed(t, s)

	deleted, err := s.DeleteMany(context.Background(), []string{ids["Groceries"], ids["Rent"], "ghost"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	remaining, err := s.List(context.Background(), storage.ExpenseFilter{})
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func TestBudgetUpsert(t *testing.T) {
	s := New()

	first, err := s.UpsertBudget(context.Background(), domain.Budget{Category: "Food", Month: "2025-06", Limit: 300})
	require.NoError(t, err)

	second, err := s.UpsertBudget(context.Background(), domain.Budget{Category: "Food", Month: "2025-06", Limit: 450})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 450.0, second.Limit)

	// Same category in another month is its own record.
	_, err = s.UpsertBudget(context.Background(), domain.Budget{Category: "Food", Month: "2025-07", Limit: 100})
	require.NoError(t, err)

	june, err := s.ListBudgets(context.Background(), "2025-06")
	require.NoError(t, err)
	require.Len(t, june, 1)
	assert.Equal(t, 450.0, june[0].Limit)

	all, err := s.ListBudgets(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListBudgetsSortedByCategory(t *testing.T) {
	s := New()
	for _, c := range []string{"Travel", "Food", "Rent"} {
		_, err := s.UpsertBudget(context.Background(), domain.Budget{Category: c, Month: "2025-06", Limit: 100})
		require.NoError(t, err)
	}

	out, err := s.ListBudgets(context.Background(), "2025-06")
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"Food", "Rent", "Travel"}, []string{out[0].Category, out[1].Category, out[2].Category})
}

func TestDeleteBudget(t *testing.T) {
	s := New()
	b, err := s.UpsertBudget(context.Background(), domain.Budget{Category: "Food", Month: "2025-06", Limit: 100})
	require.NoError(t, err)

	require.NoError(t, s.DeleteBudget(context.Background(), b.ID))
	assert.ErrorIs(t, s.DeleteBudget(context.Background(), b.ID), storage.ErrNotFound)
}
