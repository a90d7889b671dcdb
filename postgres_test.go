package main

import (
	"testing"
	"time"
)

func TestBuildListQueryNoFilters(t *testing.T) {
	query, args := buildListQuery(expenseFilter{})

	want := `SELECT id, title, amount, category, date, description FROM expenses ORDER BY date DESC`
	if query != want {
		t.Fatalf("query = %q, want %q", query, want)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v, want none", args)
	}
}

func TestBuildListQueryAllFilters(t *testing.T) {
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
	min, max := 10.0, 100.0

	query, args := buildListQuery(expenseFilter{
		Category:  "Food",
		StartDate: &start,
		EndDate:   &end,
		MinAmount: &min,
		MaxAmount: &max,
	})

	want := `SELECT id, title, amount, category, date, description FROM expenses` +
		` WHERE category = $1 AND date >= $2 AND date <= $3 AND amount >= $4 AND amount <= $5` +
		` ORDER BY date DESC`
	if query != want {
		t.Fatalf("query = %q, want %q", query, want)
	}
	if len(args) != 5 {
		t.Fatalf("got %d args, want 5", len(args))
	}
	if args[0] != "Food" || args[1] != start || args[2] != end || args[3] != min || args[4] != max {
		t.Fatalf("args = %v, not in placeholder order", args)
	}
}

func TestBuildListQuerySparseFilters(t *testing.T) {
	max := 25.0
	query, args := buildListQuery(expenseFilter{MaxAmount: &max})

	want := `SELECT id, title, amount, category, date, description FROM expenses` +
		` WHERE amount <= $1 ORDER BY date DESC`
	if query != want {
		t.Fatalf("query = %q, want %q", query, want)
	}
	if len(args) != 1 || args[0] != max {
		t.Fatalf("args = %v, want [25]", args)
	}
}
