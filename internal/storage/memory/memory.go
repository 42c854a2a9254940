// internal/storage/memory/memory.go
//
// In-memory store with the same contract as the Postgres one, used by the
// handler tests. Sorting and month matching mirror the SQL semantics
// (lexical prefix on the date string).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"expense-tracker/internal/domain"
	"expense-tracker/internal/storage"

	"github.com/google/uuid"
)

type Store struct {
	mu       sync.Mutex
	expenses map[string]domain.Expense
	budgets  map[string]domain.Budget
}

func New() *Store {
	return &Store{
		expenses: make(map[string]domain.Expense),
		budgets:  make(map[string]domain.Budget),
	}
}

// === ExpenseStorage ===

func (s *Store) List(_ context.Context, f storage.ExpenseFilter) ([]domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Expense{}
	for _, e := range s.expenses {
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if f.Month != "" && !strings.HasPrefix(e.Date, f.Month) {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, e)
	}

	asc := f.Order == storage.OrderAsc
	sort.SliceStable(out, func(i, j int) bool {
		if f.SortBy == storage.SortByAmount {
			if asc {
				return out[i].Amount < out[j].Amount
			}
			return out[i].Amount > out[j].Amount
		}
		if asc {
			return out[i].Date < out[j].Date
		}
		return out[i].Date > out[j].Date
	})
	return out, nil
}

func (s *Store) Get(_ context.Context, id string) (*domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.expenses[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &e, nil
}

func (s *Store) Create(_ context.Context, e domain.Expense) (*domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = uuid.NewString()
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	s.expenses[e.ID] = e
	return &e, nil
}

func (s *Store) Update(_ context.Context, e domain.Expense) (*domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.expenses[e.ID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	e.CreatedAt = old.CreatedAt
	e.UpdatedAt = time.Now()
	s.expenses[e.ID] = e
	return &e, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.expenses, id)
	return nil
}

func (s *Store) DeleteMany(_ context.Context, ids []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for _, id := range ids {
		if _, ok := s.expenses[id]; ok {
			delete(s.expenses, id)
			deleted++
		}
	}
	return deleted, nil
}

// === BudgetStorage ===

func (s *Store) ListBudgets(_ context.Context, month string) ([]domain.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Budget{}
	for _, b := range s.budgets {
		if month != "" && b.Month != month {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (s *Store) UpsertBudget(_ context.Context, b domain.Budget) (*domain.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, existing := range s.budgets {
		if existing.Category == b.Category && existing.Month == b.Month {
			existing.Limit = b.Limit
			existing.UpdatedAt = now
			s.budgets[id] = existing
			return &existing, nil
		}
	}
	b.ID = uuid.NewString()
	b.CreatedAt = now
	b.UpdatedAt = now
	s.budgets[b.ID] = b
	return &b, nil
}

func (s *Store) DeleteBudget(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.budgets[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.budgets, id)
	return nil
}
