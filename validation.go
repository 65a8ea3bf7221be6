package folio

import (
	"fmt"
	"regexp"

	"github.com/Rhymond/go-money"
)

// tickerRegex accepts the short human-friendly tickers used inside a
// ledger, like "AAPL", "MC", "BTC" or "VWCE".
var tickerRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.\-]{0,14}$`)

// accountRegex accepts account names like "binance", "bnp-pea" or "ibkr_cash".
var accountRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_\-]{0,31}$`)

// ValidateCurrency reports whether code is a known ISO 4217 currency,
// using the go-money registry as the authority.
func ValidateCurrency(code string) error {
	if code == "" {
		return fmt.Errorf("currency is missing")
	}
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency code %q", code)
	}
	return nil
}

// ValidateTicker reports whether s is an acceptable ledger ticker.
func ValidateTicker(s string) error {
	if s == "" {
		return fmt.Errorf("ticker is missing")
	}
	if !tickerRegex.MatchString(s) {
		return fmt.Errorf("invalid ticker %q: want uppercase letters, digits, '.' or '-'", s)
	}
	return nil
}

// ValidateAccount reports whether s is an acceptable account name.
// The empty account is valid: it is the implicit default account.
func ValidateAccount(s string) error {
	if s == "" {
		return nil
	}
	if !accountRegex.MatchString(s) {
		return fmt.Errorf("invalid account %q: want letters, digits, '_' or '-'", s)
	}
	return nil
}
