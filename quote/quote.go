// Package quote fetches security prices from market data providers and
// turns them into price update transactions.
package quote

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jpillora/backoff"

	"folio"
)

// Provider fetches the latest known price for a set of securities.
// Securities the provider cannot serve are simply absent from the
// result; only transport level failures are errors.
type Provider interface {
	Name() string
	LatestPrices(ctx context.Context, securities []folio.Security) (map[string]folio.Money, error)
}

// RetryOptions tunes the exponential backoff of a retrying provider.
type RetryOptions struct {
	Attempts int           // total tries, at least 1
	Min      time.Duration // first delay
	Max      time.Duration // delay cap
}

// DefaultRetry is the retry policy used by the update command and the
// dashboard refresher.
var DefaultRetry = RetryOptions{Attempts: 4, Min: 500 * time.Millisecond, Max: 10 * time.Second}

type retrying struct {
	provider Provider
	opts     RetryOptions
}

// WithRetry wraps a provider so transient failures are retried with
// exponential backoff and jitter.
func WithRetry(p Provider, opts RetryOptions) Provider {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	return &retrying{provider: p, opts: opts}
}

func (r *retrying) Name() string { return r.provider.Name() }

func (r *retrying) LatestPrices(ctx context.Context, securities []folio.Security) (map[string]folio.Money, error) {
	b := &backoff.Backoff{Min: r.opts.Min, Max: r.opts.Max, Jitter: true}
	var errs error
	for attempt := 1; attempt <= r.opts.Attempts; attempt++ {
		prices, err := r.provider.LatestPrices(ctx, securities)
		if err == nil {
			return prices, nil
		}
		errs = errors.Join(errs, err)
		if attempt == r.opts.Attempts {
			break
		}
		d := b.Duration()
		log.Printf("provider %s failed (attempt %d/%d), retrying in %s: %v", r.Name(), attempt, r.opts.Attempts, d, err)
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, errors.Join(errs, ctx.Err())
		}
	}
	return nil, fmt.Errorf("provider %s gave up after %d attempts: %w", r.Name(), r.opts.Attempts, errs)
}

// UpdatePrices asks each provider for the latest prices of the ledger's
// declared securities and records them as price updates, replacing any
// update already recorded today. It returns the transactions recorded.
func UpdatePrices(ctx context.Context, l *folio.Ledger, providers ...Provider) ([]folio.Transaction, error) {
	var securities []folio.Security
	for sec := range l.AllSecurities() {
		securities = append(securities, sec)
	}
	if len(securities) == 0 {
		return nil, nil
	}

	today := folio.Today()
	var recorded []folio.Transaction
	var errs error
	for _, p := range providers {
		prices, err := p.LatestPrices(ctx, securities)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		for ticker, price := range prices {
			tx := folio.NewUpdatePrice(today, ticker, price)
			l.AppendOrUpdate(tx)
			recorded = append(recorded, tx)
		}
	}
	return recorded, errs
}
