package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/danacastroman/app-vestidos/services/api/internal/app"
	"github.com/danacastroman/app-vestidos/services/api/internal/auth"
	"github.com/danacastroman/app-vestidos/services/api/internal/clock"
	"github.com/danacastroman/app-vestidos/services/api/internal/config"
	"github.com/danacastroman/app-vestidos/services/api/internal/csrf"
	"github.com/danacastroman/app-vestidos/services/api/internal/logging"
	"github.com/danacastroman/app-vestidos/services/api/internal/storage/memory"
	"github.com/danacastroman/app-vestidos/services/api/internal/storage/postgres"
	transporthttp "github.com/danacastroman/app-vestidos/services/api/internal/transport/http"
	"github.com/danacastroman/app-vestidos/services/api/migrations"
)

const shutdownTimeout = 10 * time.Second

// rentalStore is the storage surface the whole API needs; both the Postgres
// repositories and the in-memory store satisfy it.
type rentalStore interface {
	app.BookingRepository
	app.AvailabilityRepository
	app.AdminRepository
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger, err := logging.New(os.Getenv("APP_ENV"))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Load(logger)

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clk := clock.NewSystem()

	var (
		store   rentalStore
		catalog app.CatalogRepository
	)
	switch cfg.Storage {
	case config.StorageMemory:
		memStore := memory.NewStore(memory.DefaultCatalog()...)
		store = memStore
		catalog = memStore
		logger.Info("using in-memory storage, rentals are not persisted")
	case config.StoragePostgres:
		pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect to db: %w", err)
		}
		defer pool.Close()

		if err := pool.Ping(startupCtx); err != nil {
			return fmt.Errorf("db ping: %w", err)
		}
		if err := migrations.Apply(startupCtx, pool); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		store = postgres.NewRentalRepository(pool)
		catalog = postgres.NewCatalogRepository(pool)
	default:
		return fmt.Errorf("unknown STORAGE value %q", cfg.Storage)
	}

	tokens := csrf.New(clk)
	sessions, err := auth.NewSessions(cfg.AdminUser, cfg.AdminPassword, cfg.SessionSecret, clk)
	if err != nil {
		return fmt.Errorf("init sessions: %w", err)
	}

	catalogSvc := app.NewCatalogService(catalog)
	bookingSvc := app.NewBookingService(store, tokens, clk)
	availabilitySvc := app.NewAvailabilityService(store)
	adminSvc := app.NewAdminService(store)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/api/items", transporthttp.HandleListItems(catalogSvc))
	mux.Handle("/api/items/", transporthttp.HandleItem(catalogSvc, availabilitySvc, tokens))
	mux.Handle("/api/rentals", transporthttp.HandleCreateRental(bookingSvc))
	mux.Handle("/api/admin/login", transporthttp.HandleAdminLogin(sessions))
	mux.Handle("/api/admin/logout", transporthttp.HandleAdminLogout())
	mux.Handle("/api/admin/rentals", transporthttp.HandleAdminRentals(adminSvc, sessions))
	mux.Handle("/api/admin/rentals/", transporthttp.HandleAdminCancelRental(adminSvc, sessions))
	mux.Handle("/", transporthttp.NotFoundHandler())

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})
	handler := transporthttp.RequestLogger(corsMiddleware.Handler(mux), logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	logger.Info("api listening", zap.String("port", cfg.Port), zap.String("storage", cfg.Storage))

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Warn("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
	return nil
}
