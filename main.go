package main

import (
	"flag"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/venki05/Vidyakshina---Expense-Tracker/web"
)

func main() {
	// Check for one-shot commands
	migrateCmd := flag.Bool("migrate", false, "Run database migration")
	seedDemoCmd := flag.Bool("seed-demo", false, "Seed demo expenses (idempotent)")
	checkDBCmd := flag.Bool("check-db", false, "Verify database connectivity and exit")
	flag.Parse()

	// Optional .env file for local development
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	if *migrateCmd {
		if err := setupDatabase(); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migration completed successfully")
		os.Exit(0)
	}
	if *checkDBCmd {
		if err := verifyDatabaseConnection(); err != nil {
			log.Fatalf("Database check failed: %v", err)
		}
		os.Exit(0)
	}
	if *seedDemoCmd {
		if err := initDB(); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		if err := seedDemoData(db); err != nil {
			log.Fatalf("Seeding demo data failed: %v", err)
		}
		log.Println("Demo data seeded")
		os.Exit(0)
	}

	// Initialize database
	if err := initDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	store = &pgStore{db: db}

	// Initialize Redis
	if err := initRedis(); err != nil {
		log.Printf("Warning: Failed to initialize Redis: %v", err)
		log.Println("Continuing without Redis cache...")
		redisClient = nil
	}

	r := setupRouter()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires middleware, API routes, and the embedded client UI.
func setupRouter() *gin.Engine {
	r := gin.Default()

	// CORS: exactly one allowed client origin, with credentials
	clientOrigin := os.Getenv("CLIENT_ORIGIN")
	if clientOrigin == "" {
		clientOrigin = "http://localhost:3000"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{clientOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Routes
	r.GET("/health", healthCheck)
	r.POST("/api/expenses", createExpense)
	r.GET("/api/expenses", getExpenses)
	r.GET("/api/expenses/summary/category", getCategorySummary)
	r.GET("/api/expenses/summary/monthly", getMonthlySummary)
	r.GET("/api/expenses/:id", getExpenseByID)
	r.PUT("/api/expenses/:id", updateExpense)
	r.DELETE("/api/expenses/:id", deleteExpense)

	// Embedded client UI
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
	})
	staticRoot, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		log.Fatalf("Failed to mount static assets: %v", err)
	}
	r.StaticFS("/static", http.FS(staticRoot))

	return r
}
