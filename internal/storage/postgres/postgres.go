// internal/storage/postgres/postgres.go
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"expense-tracker/internal/domain"
	"expense-tracker/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Storage struct {
	db *pgxpool.Pool
}

func NewStorage(db *pgxpool.Pool) *Storage {
	return &Storage{db: db}
}

// === ExpenseStorage ===

func (s *Storage) List(ctx context.Context, f storage.ExpenseFilter) ([]domain.Expense, error) {
	query := `
		SELECT id, title, amount, category, date, note, created_at, updated_at
		FROM expenses
		WHERE 1=1`
	args := []any{}

	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if f.Month != "" {
		// Lexical prefix match on the YYYY-MM-DD text column, on purpose:
		// keeps month filtering free of timezone math.
		args = append(args, f.Month+"%")
		query += fmt.Sprintf(" AND date LIKE $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}

	sortField := "date"
	if f.SortBy == storage.SortByAmount {
		sortField = "amount"
	}
	direction := "DESC"
	if f.Order == storage.OrderAsc {
		direction = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortField, direction)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.Title, &e.Amount, &e.Category, &e.Date, &e.Note, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (s *Storage) Get(ctx context.Context, id string) (*domain.Expense, error) {
	var e domain.Expense
	err := s.db.QueryRow(ctx, `
		SELECT id, title, amount, category, date, note, created_at, updated_at
		FROM expenses WHERE id = $1
	`, id).Scan(&e.ID, &e.Title, &e.Amount, &e.Category, &e.Date, &e.Note, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

func (s *Storage) Create(ctx context.Context, e domain.Expense) (*domain.Expense, error) {
	e.ID = uuid.NewString()
	err := s.db.QueryRow(ctx, `
		INSERT INTO expenses (id, title, amount, category, date, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, e.ID, e.Title, e.Amount, e.Category, e.Date, e.Note).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	slog.Debug("Expense created", "id", e.ID, "category", e.Category, "date", e.Date)
	return &e, nil
}

func (s *Storage) Update(ctx context.Context, e domain.Expense) (*domain.Expense, error) {
	err := s.db.QueryRow(ctx, `
		UPDATE expenses
		SET title = $2, amount = $3, category = $4, date = $5, note = $6, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, e.ID, e.Title, e.Amount, e.Category, e.Date, e.Note).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return &e, nil
}

func (s *Storage) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM expenses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Storage) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	tag, err := s.db.Exec(ctx, "DELETE FROM expenses WHERE id = ANY($1)", ids)
	if err != nil {
		return 0, fmt.Errorf("bulk delete expenses: %w", err)
	}
	return tag.RowsAffected(), nil
}

// === BudgetStorage ===

func (s *Storage) ListBudgets(ctx context.Context, month string) ([]domain.Budget, error) {
	query := `
		SELECT id, category, month, limit_amount, created_at, updated_at
		FROM budgets`
	args := []any{}
	if month != "" {
		args = append(args, month)
		query += " WHERE month = $1"
	}
	query += " ORDER BY category ASC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		var b domain.Budget
		if err := rows.Scan(&b.ID, &b.Category, &b.Month, &b.Limit, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

func (s *Storage) UpsertBudget(ctx context.Context, b domain.Budget) (*domain.Budget, error) {
	// One budget per (category, month); a second write replaces the limit.
	err := s.db.QueryRow(ctx, `
		INSERT INTO budgets (id, category, month, limit_amount)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (category, month)
		DO UPDATE SET limit_amount = EXCLUDED.limit_amount, updated_at = now()
		RETURNING id, created_at, updated_at
	`, uuid.NewString(), b.Category, b.Month, b.Limit).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert budget: %w", err)
	}
	slog.Debug("Budget upserted", "id", b.ID, "category", b.Category, "month", b.Month)
	return &b, nil
}

func (s *Storage) DeleteBudget(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM budgets WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
