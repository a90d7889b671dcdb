package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// Cache keys; every mutation drops all three.
const (
	cacheKeyExpenses        = "expenses"
	cacheKeyCategorySummary = "summary:category"
	cacheKeyMonthlySummary  = "summary:monthly"
)

const (
	expensesCacheTTL = 60 * time.Second
	summaryCacheTTL  = 5 * time.Minute
)

// initRedis initializes the Redis connection
func initRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
	}

	opt, err := redis.ParseURL(fmt.Sprintf("redis://%s", redisURL))
	if err != nil {
		// Fallback to simple connection
		opt = &redis.Options{
			Addr: redisURL,
		}
	}

	redisClient = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	return nil
}

func invalidateExpenseCache(ctx context.Context) {
	if redisClient == nil {
		return
	}
	redisClient.Del(ctx, cacheKeyExpenses, cacheKeyCategorySummary, cacheKeyMonthlySummary)
}
