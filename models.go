package main

import (
	"bytes"
	"fmt"
	"time"
)

// expenseCategories is the fixed set of categories a record may carry.
// Enforced here in the API layer; the schema carries a CHECK as a backstop.
var expenseCategories = []string{"Food", "Transport", "Bills", "Entertainment", "Health", "Other"}

const defaultCategory = "Other"

func validCategory(category string) bool {
	for _, c := range expenseCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Expense represents a single spending event
type Expense struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// expenseInput is the create payload; title and amount are mandatory,
// everything else gets a default.
type expenseInput struct {
	Title       string   `json:"title" binding:"required"`
	Amount      *float64 `json:"amount" binding:"required"`
	Category    string   `json:"category"`
	Date        *apiTime `json:"date"`
	Description string   `json:"description"`
}

// expensePatch is the update payload; nil fields leave the stored value untouched.
type expensePatch struct {
	Title       *string  `json:"title"`
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Date        *apiTime `json:"date"`
	Description *string  `json:"description"`
}

// CategorySummary is one row of the per-category aggregate
type CategorySummary struct {
	Category   string  `json:"category"`
	TotalSpent float64 `json:"totalSpent"`
	Count      int     `json:"count"`
}

// MonthlySummary is one row of the per-month aggregate; Month is 1-12,
// merged across years
type MonthlySummary struct {
	Month      int     `json:"month"`
	TotalSpent float64 `json:"totalSpent"`
	Count      int     `json:"count"`
}

// apiTime accepts both RFC3339 timestamps and bare YYYY-MM-DD dates in
// request payloads, since the browser form submits the latter.
type apiTime struct {
	time.Time
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func (t *apiTime) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := parseDate(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected RFC3339 or YYYY-MM-DD", s)
}
