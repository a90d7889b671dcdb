package main

import (
	"database/sql"
	"fmt"
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS expenses (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		category TEXT NOT NULL DEFAULT 'Other'
			CHECK (category IN ('Food', 'Transport', 'Bills', 'Entertainment', 'Health', 'Other')),
		date TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		description TEXT NOT NULL DEFAULT ''
	);

	-- Lists are always served newest-first
	CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date DESC);
	CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(category);
`

func ensureSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Seed a small set of demo expenses for presentations.
// Idempotent: will only run if there are zero expenses present.
func seedDemoData(db *sql.DB) error {
	var cnt int
	if err := db.QueryRow(`SELECT COUNT(*) FROM expenses`).Scan(&cnt); err != nil {
		return fmt.Errorf("checking expenses count: %w", err)
	}
	if cnt > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// A handful of expenses spread over the last ~60 days
	const demoExpenses = `
	INSERT INTO expenses (title, amount, category, date, description) VALUES
	('Weekly groceries', 86.40, 'Food', CURRENT_TIMESTAMP - INTERVAL '55 days', 'Supermarket run'),
	('Monthly rent', 1200.00, 'Bills', CURRENT_TIMESTAMP - INTERVAL '50 days', ''),
	('Bus pass', 45.00, 'Transport', CURRENT_TIMESTAMP - INTERVAL '48 days', ''),
	('Dinner out', 54.80, 'Food', CURRENT_TIMESTAMP - INTERVAL '40 days', 'Birthday dinner'),
	('Electricity bill', 92.15, 'Bills', CURRENT_TIMESTAMP - INTERVAL '33 days', ''),
	('Concert tickets', 140.00, 'Entertainment', CURRENT_TIMESTAMP - INTERVAL '28 days', ''),
	('Pharmacy', 23.90, 'Health', CURRENT_TIMESTAMP - INTERVAL '21 days', 'Cold medicine'),
	('Fuel', 60.25, 'Transport', CURRENT_TIMESTAMP - INTERVAL '14 days', ''),
	('Streaming subscription', 12.99, 'Entertainment', CURRENT_TIMESTAMP - INTERVAL '9 days', ''),
	('Dentist appointment', 180.00, 'Health', CURRENT_TIMESTAMP - INTERVAL '6 days', ''),
	('Takeaway pizza', 18.50, 'Food', CURRENT_TIMESTAMP - INTERVAL '2 days', ''),
	('Stationery', 9.30, 'Other', CURRENT_TIMESTAMP - INTERVAL '1 days', '')
	`
	if _, err := tx.Exec(demoExpenses); err != nil {
		return fmt.Errorf("seeding demo expenses: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	return nil
}
