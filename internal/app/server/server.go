package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"staffhub/internal/domain/compensation"
	"staffhub/internal/domain/org"
	"staffhub/internal/domain/reports"
	"staffhub/internal/platform/config"
	"staffhub/internal/platform/db"
	compensationhandler "staffhub/internal/transport/http/handlers/compensation"
	orghandler "staffhub/internal/transport/http/handlers/org"
	reportshandler "staffhub/internal/transport/http/handlers/reports"
	"staffhub/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	if cfg.RunSeed {
		if err := db.Seed(ctx, pool); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	store := org.NewPostgresStore(pool)
	orgService := org.NewService(store, store, store)
	accountingClient := compensation.NewHTTPClient(cfg.AccountingURL, cfg.AccountingTimeout)
	resolver := compensation.NewResolver(store, accountingClient)
	reportsService := reports.NewService(store)

	router := NewRouter(pool, orgService, resolver, accountingClient, reportsService)

	log.Printf("staffhub server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// NewRouter wires middleware and handlers; split from Run so tests can
// mount the full surface over in-memory stores.
func NewRouter(pool *pgxpool.Pool, orgService *org.Service, resolver *compensation.Resolver, client compensation.Client, reportsService *reports.Service) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(chimiddleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if pool == nil {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		orghandler.NewHandler(orgService).RegisterRoutes(r)
		compensationhandler.NewHandler(resolver, client, orgService).RegisterRoutes(r)
		reportshandler.NewHandler(reportsService).RegisterRoutes(r)
	})

	return router
}
