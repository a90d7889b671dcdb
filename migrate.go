package main

import (
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// setupDatabase creates the expenses schema as a one-shot -migrate run
func setupDatabase() error {
	config, err := pgx.ParseConfig(databaseURLFromEnv())
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Wait for database to be ready with retries
	maxRetries := 30
	retryDelay := 2 * time.Second

	db := stdlib.OpenDB(*config)
	for i := 0; i < maxRetries; i++ {
		if err := db.Ping(); err != nil {
			db.Close()
			if i < maxRetries-1 {
				log.Printf("Database not ready, retrying in %v... (attempt %d/%d)", retryDelay, i+1, maxRetries)
				time.Sleep(retryDelay)
				db = stdlib.OpenDB(*config)
				continue
			}
			return fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
		}
		log.Println("Database connection established")
		break
	}
	defer db.Close()

	log.Println("Creating database schema...")
	if err := ensureSchema(db); err != nil {
		return err
	}
	log.Println("Schema created successfully")

	return nil
}

// verifyDatabaseConnection tests the database connection
func verifyDatabaseConnection() error {
	config, err := pgx.ParseConfig(databaseURLFromEnv())
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}

	db := stdlib.OpenDB(*config)
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection verified")
	return nil
}
