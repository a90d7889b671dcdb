package main

import (
	"context"
	"sort"
	"sync"
)

// memStore is an in-memory expenseStore used by the handler tests. It
// mirrors the Postgres contract: id assignment, the category CHECK,
// newest-first ordering, and both aggregates.
type memStore struct {
	mu      sync.Mutex
	nextID  int64
	records []Expense
}

func newMemStore() *memStore {
	return &memStore{nextID: 1}
}

func (s *memStore) Create(ctx context.Context, e Expense) (Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !validCategory(e.Category) {
		return Expense{}, validationError{msg: invalidCategoryMessage(e.Category)}
	}
	e.ID = s.nextID
	s.nextID++
	s.records = append(s.records, e)
	return e, nil
}

func (s *memStore) List(ctx context.Context, f expenseFilter) ([]Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := make([]Expense, 0)
	for _, e := range s.records {
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if f.StartDate != nil && e.Date.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && e.Date.After(*f.EndDate) {
			continue
		}
		if f.MinAmount != nil && e.Amount < *f.MinAmount {
			continue
		}
		if f.MaxAmount != nil && e.Amount > *f.MaxAmount {
			continue
		}
		matches = append(matches, e)
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Date.After(matches[j].Date)
	})
	return matches, nil
}

func (s *memStore) Get(ctx context.Context, id int64) (Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.records {
		if e.ID == id {
			return e, nil
		}
	}
	return Expense{}, errExpenseNotFound
}

func (s *memStore) Update(ctx context.Context, id int64, p expensePatch) (Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.records {
		if e.ID != id {
			continue
		}
		if p.Title != nil {
			e.Title = *p.Title
		}
		if p.Amount != nil {
			e.Amount = *p.Amount
		}
		if p.Category != nil {
			if !validCategory(*p.Category) {
				return Expense{}, validationError{msg: invalidCategoryMessage(*p.Category)}
			}
			e.Category = *p.Category
		}
		if p.Date != nil {
			e.Date = p.Date.Time
		}
		if p.Description != nil {
			e.Description = *p.Description
		}
		s.records[i] = e
		return e, nil
	}
	return Expense{}, errExpenseNotFound
}

func (s *memStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.records {
		if e.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return errExpenseNotFound
}

func (s *memStore) SummaryByCategory(ctx context.Context) ([]CategorySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totals := make(map[string]*CategorySummary)
	for _, e := range s.records {
		row, ok := totals[e.Category]
		if !ok {
			row = &CategorySummary{Category: e.Category}
			totals[e.Category] = row
		}
		row.TotalSpent += e.Amount
		row.Count++
	}

	summary := make([]CategorySummary, 0, len(totals))
	for _, row := range totals {
		summary = append(summary, *row)
	}
	sort.SliceStable(summary, func(i, j int) bool {
		return summary[i].TotalSpent > summary[j].TotalSpent
	})
	return summary, nil
}

func (s *memStore) SummaryByMonth(ctx context.Context) ([]MonthlySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totals := make(map[int]*MonthlySummary)
	for _, e := range s.records {
		month := int(e.Date.Month())
		row, ok := totals[month]
		if !ok {
			row = &MonthlySummary{Month: month}
			totals[month] = row
		}
		row.TotalSpent += e.Amount
		row.Count++
	}

	summary := make([]MonthlySummary, 0, len(totals))
	for _, row := range totals {
		summary = append(summary, *row)
	}
	sort.Slice(summary, func(i, j int) bool {
		return summary[i].Month < summary[j].Month
	})
	return summary, nil
}
