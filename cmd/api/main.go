package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/harshluthra/ExpenseSync/docs"
	"github.com/harshluthra/ExpenseSync/internal/balance"
	"github.com/harshluthra/ExpenseSync/internal/config"
	"github.com/harshluthra/ExpenseSync/internal/database"
	"github.com/harshluthra/ExpenseSync/internal/expense"
	expensesplit "github.com/harshluthra/ExpenseSync/internal/expense/split"
	"github.com/harshluthra/ExpenseSync/internal/user"
	"github.com/harshluthra/ExpenseSync/pkg/logging"
	mw "github.com/harshluthra/ExpenseSync/pkg/middleware"
)

// @title           ExpenseSync API
// @version         1.0
// @description     Shared expense tracking with raw and simplified balance settlement.
// @BasePath        /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("connected to database")

	// Split Strategy Factory
	splitFactory := expensesplit.NewFactory()

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Expense feature (with split factory injected)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(userService, expenseRepo, splitFactory)
	expenseHandler := expense.NewHandler(expenseService)

	// Balance feature reads through the user and expense services
	balanceService := balance.NewService(userService, expenseService)
	balanceHandler := balance.NewHandler(balanceService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.RequestLogger)
	r.Use(mw.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/users", userHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/balances", balanceHandler.Routes())
	})

	addr := ":" + cfg.Port
	slog.Info("server starting", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
