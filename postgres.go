package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// pgStore implements expenseStore on PostgreSQL via database/sql.
type pgStore struct {
	db *sql.DB
}

func (s *pgStore) Create(ctx context.Context, e Expense) (Expense, error) {
	const query = `
		INSERT INTO expenses (title, amount, category, date, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		e.Title, e.Amount, e.Category, e.Date, e.Description,
	).Scan(&e.ID)
	if err != nil {
		return Expense{}, fmt.Errorf("inserting expense: %w", err)
	}
	return e, nil
}

// buildListQuery assembles the filtered list query; absent filters are
// omitted rather than expressed as open ranges.
func buildListQuery(f expenseFilter) (string, []any) {
	query := `SELECT id, title, amount, category, date, description FROM expenses`

	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.StartDate != nil {
		add("date >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("date <= $%d", *f.EndDate)
	}
	if f.MinAmount != nil {
		add("amount >= $%d", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		add("amount <= $%d", *f.MaxAmount)
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date DESC"
	return query, args
}

func (s *pgStore) List(ctx context.Context, f expenseFilter) ([]Expense, error) {
	query, args := buildListQuery(f)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	// ensure empty array ([]) instead of null when no rows
	expenses := make([]Expense, 0)

	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.Title, &e.Amount, &e.Category, &e.Date, &e.Description); err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (s *pgStore) Get(ctx context.Context, id int64) (Expense, error) {
	const query = `SELECT id, title, amount, category, date, description FROM expenses WHERE id = $1`

	var e Expense
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Amount, &e.Category, &e.Date, &e.Description,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Expense{}, errExpenseNotFound
	}
	if err != nil {
		return Expense{}, fmt.Errorf("fetching expense %d: %w", id, err)
	}
	return e, nil
}

func (s *pgStore) Update(ctx context.Context, id int64, p expensePatch) (Expense, error) {
	const query = `
		UPDATE expenses
		SET title       = COALESCE($2, title),
		    amount      = COALESCE($3, amount),
		    category    = COALESCE($4, category),
		    date        = COALESCE($5, date),
		    description = COALESCE($6, description)
		WHERE id = $1
		RETURNING id, title, amount, category, date, description
	`

	var date *time.Time
	if p.Date != nil {
		date = &p.Date.Time
	}

	var e Expense
	err := s.db.QueryRowContext(ctx, query,
		id, p.Title, p.Amount, p.Category, date, p.Description,
	).Scan(&e.ID, &e.Title, &e.Amount, &e.Category, &e.Date, &e.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return Expense{}, errExpenseNotFound
	}
	if err != nil {
		return Expense{}, fmt.Errorf("updating expense %d: %w", id, err)
	}
	return e, nil
}

func (s *pgStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting expense %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errExpenseNotFound
	}
	return nil
}

func (s *pgStore) SummaryByCategory(ctx context.Context) ([]CategorySummary, error) {
	const query = `
		SELECT category, SUM(amount) AS total_spent, COUNT(*) AS count
		FROM expenses
		GROUP BY category
		ORDER BY total_spent DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("aggregating by category: %w", err)
	}
	defer rows.Close()

	summary := make([]CategorySummary, 0)
	for rows.Next() {
		var row CategorySummary
		if err := rows.Scan(&row.Category, &row.TotalSpent, &row.Count); err != nil {
			return nil, fmt.Errorf("scanning category summary: %w", err)
		}
		summary = append(summary, row)
	}
	return summary, rows.Err()
}

func (s *pgStore) SummaryByMonth(ctx context.Context) ([]MonthlySummary, error) {
	// Calendar month only: January of any year lands in the same bucket.
	const query = `
		SELECT EXTRACT(MONTH FROM date)::int AS month, SUM(amount) AS total_spent, COUNT(*) AS count
		FROM expenses
		GROUP BY month
		ORDER BY month ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("aggregating by month: %w", err)
	}
	defer rows.Close()

	summary := make([]MonthlySummary, 0)
	for rows.Next() {
		var row MonthlySummary
		if err := rows.Scan(&row.Month, &row.TotalSpent, &row.Count); err != nil {
			return nil, fmt.Errorf("scanning monthly summary: %w", err)
		}
		summary = append(summary, row)
	}
	return summary, rows.Err()
}
