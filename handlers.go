package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	if err := db.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "expense-tracker",
	})
}

// createExpense persists a new expense record
func createExpense(c *gin.Context) {
	var in expenseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := in.Category
	if category == "" {
		category = defaultCategory
	}
	if !validCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidCategoryMessage(category)})
		return
	}

	date := nowFunc()
	if in.Date != nil {
		date = in.Date.Time
	}

	expense, err := store.Create(c.Request.Context(), Expense{
		Title:       in.Title,
		Amount:      *in.Amount,
		Category:    category,
		Date:        date,
		Description: in.Description,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	invalidateExpenseCache(c.Request.Context())
	c.JSON(http.StatusCreated, expense)
}

// parseExpenseFilter reads the optional query constraints; absent
// parameters are left out of the filter entirely.
func parseExpenseFilter(c *gin.Context) (expenseFilter, error) {
	var f expenseFilter
	f.Category = c.Query("category")

	if v := c.Query("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return f, fmt.Errorf("invalid startDate: %w", err)
		}
		f.StartDate = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return f, fmt.Errorf("invalid endDate: %w", err)
		}
		f.EndDate = &t
	}
	if v := c.Query("minAmount"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, fmt.Errorf("invalid minAmount %q", v)
		}
		f.MinAmount = &n
	}
	if v := c.Query("maxAmount"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, fmt.Errorf("invalid maxAmount %q", v)
		}
		f.MaxAmount = &n
	}
	return f, nil
}

// getExpenses retrieves expenses newest-first, with optional filters and
// Redis caching of the unfiltered list
func getExpenses(c *gin.Context) {
	filter, err := parseExpenseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	unfiltered := filter == (expenseFilter{})

	// Try to get from cache
	if redisClient != nil && unfiltered {
		cached, err := redisClient.Get(ctx, cacheKeyExpenses).Result()
		if err == nil {
			var expenses []Expense
			if err := json.Unmarshal([]byte(cached), &expenses); err == nil {
				c.JSON(http.StatusOK, expenses)
				return
			}
		}
	}

	expenses, err := store.List(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if redisClient != nil && unfiltered {
		if data, err := json.Marshal(expenses); err == nil {
			redisClient.SetEx(ctx, cacheKeyExpenses, data, expensesCacheTTL)
		}
	}

	c.JSON(http.StatusOK, expenses)
}

// getExpenseByID fetches a single expense
func getExpenseByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
		return
	}

	expense, err := store.Get(c.Request.Context(), id)
	if errors.Is(err, errExpenseNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, expense)
}

// updateExpense merges a partial payload into an existing record and
// returns the post-merge state
func updateExpense(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
		return
	}

	var patch expensePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validatePatch(patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := store.Update(c.Request.Context(), id, patch)
	if errors.Is(err, errExpenseNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	invalidateExpenseCache(c.Request.Context())
	c.JSON(http.StatusOK, expense)
}

// validatePatch rejects merges that would violate the store's constraints.
func validatePatch(p expensePatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return validationError{msg: "title cannot be empty"}
	}
	if p.Category != nil && !validCategory(*p.Category) {
		return validationError{msg: invalidCategoryMessage(*p.Category)}
	}
	return nil
}

func invalidCategoryMessage(category string) string {
	return fmt.Sprintf("invalid category %q: must be one of %s", category, strings.Join(expenseCategories, ", "))
}

// deleteExpense removes an expense by ID; hard delete, no tombstone
func deleteExpense(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
		return
	}

	err = store.Delete(c.Request.Context(), id)
	if errors.Is(err, errExpenseNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	invalidateExpenseCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// getCategorySummary aggregates spend per category, biggest spenders first,
// with optional Redis caching
func getCategorySummary(c *gin.Context) {
	ctx := c.Request.Context()

	// Try to get from cache
	if redisClient != nil {
		cached, err := redisClient.Get(ctx, cacheKeyCategorySummary).Result()
		if err == nil {
			var summary []CategorySummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				c.JSON(http.StatusOK, summary)
				return
			}
		}
	}

	summary, err := store.SummaryByCategory(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if redisClient != nil {
		if data, err := json.Marshal(summary); err == nil {
			redisClient.SetEx(ctx, cacheKeyCategorySummary, data, summaryCacheTTL)
		}
	}

	c.JSON(http.StatusOK, summary)
}

// getMonthlySummary aggregates spend per calendar month (1-12, merged
// across years), with optional Redis caching
func getMonthlySummary(c *gin.Context) {
	ctx := c.Request.Context()

	// Try to get from cache
	if redisClient != nil {
		cached, err := redisClient.Get(ctx, cacheKeyMonthlySummary).Result()
		if err == nil {
			var summary []MonthlySummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				c.JSON(http.StatusOK, summary)
				return
			}
		}
	}

	summary, err := store.SummaryByMonth(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if redisClient != nil {
		if data, err := json.Marshal(summary); err == nil {
			redisClient.SetEx(ctx, cacheKeyMonthlySummary, data, summaryCacheTTL)
		}
	}

	c.JSON(http.StatusOK, summary)
}
