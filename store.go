package main

import (
	"context"
	"errors"
	"time"
)

// errExpenseNotFound signals a well-formed id with no matching record.
var errExpenseNotFound = errors.New("Expense not found")

// validationError marks a write rejected by the store's constraints;
// handlers turn it into a 400.
type validationError struct {
	msg string
}

func (e validationError) Error() string { return e.msg }

// expenseFilter carries the optional list constraints; nil/empty fields
// are omitted from the query entirely.
type expenseFilter struct {
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	MinAmount *float64
	MaxAmount *float64
}

// expenseStore is the persistence contract the handlers run against.
type expenseStore interface {
	Create(ctx context.Context, e Expense) (Expense, error)
	List(ctx context.Context, f expenseFilter) ([]Expense, error)
	Get(ctx context.Context, id int64) (Expense, error)
	Update(ctx context.Context, id int64, p expensePatch) (Expense, error)
	Delete(ctx context.Context, id int64) error
	SummaryByCategory(ctx context.Context) ([]CategorySummary, error)
	SummaryByMonth(ctx context.Context) ([]MonthlySummary, error)
}

// store is set to the Postgres implementation at startup; tests swap in a fake.
var store expenseStore

// nowFunc supplies the default expense date; a variable so tests can pin time.
var nowFunc = time.Now
