package quote

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"folio"
)

const (
	tradegateURL = "https://www.tradegate.de/refresh.php?isin="
	// The EUR/USD intraday series does not come from Tradegate itself.
	forexURL = "https://www.ls-tc.de/_rpc/json/instrument/chart/dataForInstrument?instrumentId=349938&series=intraday&type=mini"
)

// Tradegate quotes European listed securities by ISIN. All Tradegate
// prices are in EUR; securities declared in USD are converted with the
// intraday EUR/USD rate.
type Tradegate struct {
	client   *http.Client
	baseURL  string
	forexURL string
}

// NewTradegate returns a Tradegate provider with a daily response cache.
func NewTradegate() *Tradegate {
	return &Tradegate{client: dailyClient(), baseURL: tradegateURL, forexURL: forexURL}
}

func (t *Tradegate) Name() string { return "tradegate" }

// LatestPrices fetches the last traded price for every security that
// has an ISIN. Securities it cannot quote are skipped with a warning.
func (t *Tradegate) LatestPrices(ctx context.Context, securities []folio.Security) (map[string]folio.Money, error) {
	prices := make(map[string]folio.Money)
	var usdPerEUR float64

	for _, sec := range securities {
		isin, ok := isinOf(sec.ID())
		if !ok {
			continue
		}
		val, err := t.last(ctx, sec.Ticker(), isin)
		if err != nil {
			log.Printf("warning: no quote for %s: %v", sec.Ticker(), err)
			continue
		}
		switch sec.Currency() {
		case "EUR":
			prices[sec.Ticker()] = folio.M(val, "EUR")
		case "USD":
			if usdPerEUR == 0 {
				usdPerEUR, err = t.latestUSDPerEUR(ctx)
				if err != nil {
					return nil, fmt.Errorf("could not get EUR/USD rate: %w", err)
				}
			}
			prices[sec.Ticker()] = folio.M(val*usdPerEUR, "USD")
		default:
			log.Printf("warning: no conversion from EUR to %s for %s", sec.Currency(), sec.Ticker())
		}
	}
	return prices, nil
}

func isinOf(id folio.ID) (string, bool) {
	if isin, _, err := id.MSSI(); err == nil {
		return isin, true
	}
	// Funds are declared with a bare ISIN.
	if err := folio.ValidateISIN(string(id)); err == nil {
		return string(id), true
	}
	return "", false
}

// last reads the last traded price for an ISIN. The API is loose with
// types: the value may be a float, a localized string, or the "./."
// placeholder when nothing traded yet.
func (t *Tradegate) last(ctx context.Context, name, isin string) (float64, error) {
	var jobj map[string]any
	if err := jwget(ctx, t.client, t.baseURL+isin, &jobj); err != nil {
		return 0, fmt.Errorf("error retrieving %q: %w", name, err)
	}

	jval := jobj["last"]
	if s, ok := jval.(string); ok && s == "./." {
		jval = jobj["bid"]
	}

	val, ok := jval.(float64)
	if !ok {
		sval, ok := jval.(string)
		if !ok {
			return 0, fmt.Errorf("cannot read value for %q: neither float nor string", name)
		}
		sval = strings.ReplaceAll(sval, ",", ".")
		sval = strings.ReplaceAll(sval, " ", "")
		var err error
		val, err = strconv.ParseFloat(sval, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot read value for %q from %q: %w", name, sval, err)
		}
	}
	if val == 0 {
		return 0, fmt.Errorf("empty bid for %q", name)
	}
	return val, nil
}

// latestUSDPerEUR reads the last point of the EUR/USD intraday series.
func (t *Tradegate) latestUSDPerEUR(ctx context.Context) (float64, error) {
	var jobj any
	if err := jwget(ctx, t.client, t.forexURL, &jobj); err != nil {
		return 0, err
	}
	path := "$.series.intraday.data[-1:][1]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// jsonpath may return a one element list or the bare value.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, errors.New("EUR/USD series value is not a float")
	}
	return val, nil
}
