package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"folio"
	"folio/quote"
)

// New loads the ledger and alert set and returns a ready server.
func New(cfg *Config) (*Server, error) {
	ledger, err := folio.LoadLedger(cfg.LedgerPath)
	if err != nil {
		return nil, fmt.Errorf("could not load ledger: %w", err)
	}
	alerts, err := folio.LoadAlerts(folio.AlertsPath(cfg.LedgerPath))
	if err != nil {
		return nil, fmt.Errorf("could not load alerts: %w", err)
	}
	return &Server{
		cfg:    cfg,
		ledger: ledger,
		alerts: alerts,
		hub:    NewHub(),
	}, nil
}

// Router assembles the chi router with CORS, rate limiting, metrics and
// all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(metricsMiddleware)
	r.Use(newRateLimiter(300, time.Minute).middleware)

	r.Route("/api", func(api chi.Router) {
		api.Group(func(jr chi.Router) {
			jr.Use(validateRequest)

			jr.Get("/holdings", s.handleHoldings)
			jr.Get("/gains", s.handleGains)
			jr.Get("/summary", s.handleSummary)

			jr.Get("/transactions", s.handleListTransactions)
			jr.Get("/search", s.handleListTransactions)
			jr.Post("/transactions", s.handleCreateTransaction)
			jr.Delete("/transactions/{index}", s.handleDeleteTransaction)

			jr.Get("/alerts", s.handleListAlerts)
			jr.Post("/alerts", s.handleCreateAlert)
			jr.Delete("/alerts/{id}", s.handleDeleteAlert)
			jr.Post("/alerts/{id}/rearm", s.handleRearmAlert)

			jr.Get("/reports/{kind}", s.handleReport)
		})

		// CSV endpoints take and give text/csv, not JSON.
		api.Get("/export", s.handleExportCSV)
		api.Get("/export/gains", s.handleExportGainsCSV)
		api.Post("/import", s.handleImportCSV)
	})

	r.Get("/ws", s.hub.ServeWS)
	r.Get("/health", s.handleHealth)

	metrics := promhttp.Handler()
	if s.cfg.MetricsUser != "" {
		r.With(basicAuth(s.cfg.MetricsUser, s.cfg.MetricsPassword)).Get("/metrics", metrics.ServeHTTP)
	} else {
		r.Get("/metrics", metrics.ServeHTTP)
	}

	return r
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully. The
// price refresher and the websocket hub run alongside the listener.
func (s *Server) Run(ctx context.Context, providers ...quote.Provider) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go s.hub.Run()
	go NewRefresher(s, s.cfg.RefreshInterval, providers...).Run(ctx)

	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.Router()}

	errc := make(chan error, 1)
	go func() {
		log.Printf("dashboard listening on %s, ledger %s", s.cfg.Addr, s.cfg.LedgerPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Println("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.hub.Close()
	log.Println("server stopped")
	return nil
}
