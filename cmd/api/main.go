package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/ncastelli/hogarfin/docs"
	"github.com/ncastelli/hogarfin/internal/balance"
	"github.com/ncastelli/hogarfin/internal/category"
	"github.com/ncastelli/hogarfin/internal/config"
	"github.com/ncastelli/hogarfin/internal/database"
	"github.com/ncastelli/hogarfin/internal/importer"
	"github.com/ncastelli/hogarfin/internal/organization"
	"github.com/ncastelli/hogarfin/internal/transaction"
	"github.com/ncastelli/hogarfin/internal/user"
	mw "github.com/ncastelli/hogarfin/pkg/middleware"
)

// @title Hogarfin API
// @version 1.0
// @description Household finance backend: bank statement imports, shared transactions and debt settlement.
// @BasePath /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService, cfg.JWTSecret)

	// Organization feature (invitations)
	orgRepo := organization.NewRepository(db)
	orgService := organization.NewService(orgRepo)
	orgHandler := organization.NewHandler(orgService, cfg.JWTSecret)

	// Category feature
	categoryRepo := category.NewRepository(db)
	categoryService := category.NewService(categoryRepo)
	categoryHandler := category.NewHandler(categoryService)

	// Transaction feature (category lookup injected)
	transactionRepo := transaction.NewRepository(db)
	transactionService := transaction.NewService(transactionRepo, categoryRepo)
	transactionHandler := transaction.NewHandler(transactionService)

	// Importer feature (statement parsing + confirmed batch insert)
	importerService := importer.NewService(transactionRepo, categoryRepo)
	importerHandler := importer.NewHandler(importerService)

	// Balance feature
	balanceRepo := balance.NewRepository(db)
	balanceService := balance.NewService(balanceRepo, cfg.SettleTolerance)
	balanceHandler := balance.NewHandler(balanceService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public
		r.Mount("/auth", userHandler.Routes())
		r.Mount("/invitations", orgHandler.Routes())

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(mw.Auth(cfg.JWTSecret))

			r.Get("/auth/me", userHandler.Me)
			r.Mount("/categories", categoryHandler.Routes())
			r.Mount("/transactions", transactionHandler.Routes())
			r.Mount("/imports", importerHandler.Routes())
			r.Mount("/balance", balanceHandler.Routes())
		})
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
