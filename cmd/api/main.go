// cmd/api/main.go
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"expense-tracker/internal/config"
	"expense-tracker/internal/handler"
	"expense-tracker/internal/middleware"
	"expense-tracker/internal/storage/postgres"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	pool, err := pgxpool.New(context.Background(), cfg.DBConn)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("Database ping failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Connected to PostgreSQL")

	store := postgres.NewStorage(pool)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORS(cfg.CORSOrigin))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	expenseHandler := handler.NewExpenseHandler(store)
	budgetHandler := handler.NewBudgetHandler(store)
	statsHandler := handler.NewStatsHandler(store)

	expenses := router.Group("/expenses")
	{
		expenses.GET("", expenseHandler.ListExpenses)
		expenses.GET("/:id", expenseHandler.GetExpense)
		expenses.POST("", expenseHandler.CreateExpense)
		expenses.PUT("/:id", expenseHandler.UpdateExpense)
		expenses.DELETE("/bulk", expenseHandler.BulkDeleteExpenses)
		expenses.DELETE("/:id", expenseHandler.DeleteExpense)
	}

	budgets := router.Group("/budgets")
	{
		budgets.GET("", budgetHandler.ListBudgets)
		budgets.POST("", budgetHandler.SetBudget)
		budgets.DELETE("/:id", budgetHandler.DeleteBudget)
	}

	statsGroup := router.Group("/stats")
	{
		statsGroup.GET("/monthly", statsHandler.MonthlySummary)
		statsGroup.GET("/daily", statsHandler.DailyBreakdown)
		statsGroup.GET("/trend", statsHandler.Trend)
	}

	slog.Info("Server started", "port", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
