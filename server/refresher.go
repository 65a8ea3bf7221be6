package server

import (
	"context"
	"log"
	"time"

	"folio"
	"folio/quote"
)

// Refresher polls the quote providers, records fresh prices in the
// ledger, evaluates alerts, and pushes both to websocket clients.
type Refresher struct {
	server    *Server
	providers []quote.Provider
	interval  time.Duration
}

// NewRefresher wires a refresher to a server. Providers are already
// retry wrapped by the caller.
func NewRefresher(s *Server, interval time.Duration, providers ...quote.Provider) *Refresher {
	return &Refresher{server: s, providers: providers, interval: interval}
}

// Run refreshes once immediately, then on every tick until the context
// is canceled.
func (r *Refresher) Run(ctx context.Context) {
	if r.interval <= 0 || len(r.providers) == 0 {
		log.Println("price refresh disabled")
		return
	}

	r.refresh(ctx)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.refresh(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	s := r.server

	s.mu.Lock()
	recorded, err := quote.UpdatePrices(ctx, s.ledger, r.providers...)
	if err != nil {
		log.Printf("price refresh: %v", err)
		priceRefreshTotal.WithLabelValues("error").Inc()
	}
	if len(recorded) == 0 {
		s.mu.Unlock()
		if err == nil {
			priceRefreshTotal.WithLabelValues("empty").Inc()
		}
		return
	}
	if err := folio.SaveLedger(s.cfg.LedgerPath, s.ledger); err != nil {
		log.Printf("price refresh: could not save ledger: %v", err)
	}

	var fired []folio.Alert
	j, jErr := s.journal()
	if jErr == nil {
		fired = s.alerts.Evaluate(folio.NewSnapshot(j, folio.Today()))
		if len(fired) > 0 {
			if err := s.saveAlerts(); err != nil {
				log.Printf("price refresh: could not save alerts: %v", err)
			}
		}
	}
	s.mu.Unlock()

	priceRefreshTotal.WithLabelValues("ok").Inc()
	s.hub.Broadcast("prices", recorded)
	for _, a := range fired {
		alertsTriggeredTotal.Inc()
		log.Printf("alert fired: %s", a)
		s.hub.Broadcast("alert", a)
	}
}
