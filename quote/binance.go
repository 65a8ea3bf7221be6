package quote

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"

	"folio"
	"folio/date"
)

// Binance quotes crypto currency pairs and imports trade history from a
// Binance spot account. Pairs are declared as securities whose ticker
// is the Binance symbol, e.g. BTCEUR.
type Binance struct {
	client *binance.Client
}

// NewBinance returns a Binance provider. Keys may be empty for public
// price queries; trade imports need them.
func NewBinance(apiKey, secretKey string) *Binance {
	return &Binance{client: binance.NewClient(apiKey, secretKey)}
}

func (b *Binance) Name() string { return "binance" }

// LatestPrices quotes every security declared as a currency pair, using
// its ticker as the Binance symbol. Unknown symbols are skipped with a
// warning.
func (b *Binance) LatestPrices(ctx context.Context, securities []folio.Security) (map[string]folio.Money, error) {
	prices := make(map[string]folio.Money)
	for _, sec := range securities {
		_, quote, err := sec.ID().CurrencyPair()
		if err != nil {
			continue
		}
		listed, err := b.client.NewListPricesService().Symbol(sec.Ticker()).Do(ctx)
		if err != nil {
			log.Printf("warning: no binance quote for %s: %v", sec.Ticker(), err)
			continue
		}
		for _, p := range listed {
			value, err := decimal.NewFromString(p.Price)
			if err != nil {
				log.Printf("warning: unreadable binance price for %s: %q", sec.Ticker(), p.Price)
				continue
			}
			prices[sec.Ticker()] = folio.M(value, quote)
		}
	}
	return prices, nil
}

// ImportTrades fetches the spot trade history for a symbol and returns
// the buys and sells it describes, in the given account. The commission
// is carried as the fee when Binance charged it in the quote currency.
func (b *Binance) ImportTrades(ctx context.Context, symbol, quoteCurrency, account string) ([]folio.Transaction, error) {
	trades, err := b.client.NewListTradesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list binance trades for %s: %w", symbol, err)
	}
	txs := make([]folio.Transaction, 0, len(trades))
	for _, trade := range trades {
		tx, err := tradeTransaction(trade, symbol, quoteCurrency, account)
		if err != nil {
			log.Printf("warning: skipping binance trade %d: %v", trade.ID, err)
			continue
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// tradeTransaction converts one Binance trade to a buy or sell.
func tradeTransaction(trade *binance.TradeV3, symbol, quoteCurrency, account string) (folio.Transaction, error) {
	quantity, err := decimal.NewFromString(trade.Quantity)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q: %w", trade.Quantity, err)
	}
	amount, err := decimal.NewFromString(trade.QuoteQuantity)
	if err != nil {
		return nil, fmt.Errorf("invalid quote quantity %q: %w", trade.QuoteQuantity, err)
	}

	fee := folio.Money{}
	if trade.CommissionAsset == quoteCurrency {
		commission, err := decimal.NewFromString(trade.Commission)
		if err != nil {
			return nil, fmt.Errorf("invalid commission %q: %w", trade.Commission, err)
		}
		if !commission.IsZero() {
			fee = folio.M(commission, quoteCurrency)
		}
	}

	on := date.FromTime(time.UnixMilli(trade.Time))
	memo := fmt.Sprintf("binance trade %d", trade.ID)
	if trade.IsBuyer {
		return folio.NewBuy(on, memo, account, symbol, folio.Q(quantity), folio.M(amount, quoteCurrency), fee), nil
	}
	return folio.NewSell(on, memo, account, symbol, folio.Q(quantity), folio.M(amount, quoteCurrency), fee), nil
}
