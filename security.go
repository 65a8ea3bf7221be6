package folio

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	isinRegex         = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)
	micRegex          = regexp.MustCompile(`^[A-Z0-9]{4}$`)
	currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)
	currencyPairRegex = regexp.MustCompile(`^[A-Z]{6}$`)
	privateIDRegex    = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)
)

// ID is the globally unique identifier of a security, in one of three
// shapes:
//
//   - MSSI: "<ISIN>.<MIC>", a security on a specific trading venue,
//     e.g. "US0378331005.XETR". Built on ISO 6166 and ISO 10383.
//   - CurrencyPair: two concatenated ISO 4217 codes, base then quote,
//     e.g. "USDEUR" for the price of one USD in EUR.
//   - Private: a free-form identifier for assets with no public listing
//     (a house, an employer stock plan). At least 7 characters,
//     alphanumeric and spaces, no '.', so it can never be mistaken for
//     the other two shapes.
type ID string

func (id ID) String() string { return string(id) }

// NewMSSI builds an MSSI identifier from its parts.
func NewMSSI(isin, mic string) (ID, error) {
	if err := ValidateISIN(isin); err != nil {
		return "", fmt.Errorf("invalid ISIN: %w", err)
	}
	if err := ValidateMIC(mic); err != nil {
		return "", fmt.Errorf("invalid MIC: %w", err)
	}
	return ID(isin + "." + mic), nil
}

// NewCurrencyPair builds a currency-pair identifier from base and quote codes.
func NewCurrencyPair(base, quote string) (ID, error) {
	if !currencyCodeRegex.MatchString(base) {
		return "", fmt.Errorf("invalid base currency %q: want 3 uppercase letters", base)
	}
	if !currencyCodeRegex.MatchString(quote) {
		return "", fmt.Errorf("invalid quote currency %q: want 3 uppercase letters", quote)
	}
	return ID(base + quote), nil
}

// NewPrivate builds a private identifier.
func NewPrivate(s string) (ID, error) {
	if len(s) < 7 {
		return "", fmt.Errorf("invalid private id %q: want at least 7 characters", s)
	}
	if strings.Contains(s, ".") {
		return "", errors.New("invalid private id: must not contain '.' (resembles an MSSI)")
	}
	if !privateIDRegex.MatchString(s) {
		return "", errors.New("invalid private id: want alphanumeric characters and spaces")
	}
	return ID(s), nil
}

// ParseID accepts any of the three identifier shapes.
func ParseID(s string) (ID, error) {
	id := ID(s)
	if _, _, err := id.MSSI(); err == nil {
		return id, nil
	}
	if _, _, err := id.CurrencyPair(); err == nil {
		return id, nil
	}
	return NewPrivate(s)
}

// MSSI splits the identifier into ISIN and MIC, validating both parts.
func (id ID) MSSI() (isin, mic string, err error) {
	parts := strings.Split(string(id), ".")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("not an MSSI: want exactly one '.', got %q", id)
	}
	isin, mic = parts[0], parts[1]
	if err := ValidateISIN(isin); err != nil {
		return "", "", fmt.Errorf("invalid ISIN part: %w", err)
	}
	if err := ValidateMIC(mic); err != nil {
		return "", "", fmt.Errorf("invalid MIC part: %w", err)
	}
	return isin, mic, nil
}

// ISIN returns the ISIN part of an MSSI, or "" for other shapes.
func (id ID) ISIN() string {
	isin, _, _ := id.MSSI()
	return isin
}

// CurrencyPair splits the identifier into base and quote currency codes.
func (id ID) CurrencyPair() (base, quote string, err error) {
	if !currencyPairRegex.MatchString(string(id)) {
		return "", "", fmt.Errorf("not a currency pair: want 6 uppercase letters, got %q", id)
	}
	return string(id)[:3], string(id)[3:], nil
}

// ValidateISIN checks the ISO 6166 format including the Luhn check digit.
func ValidateISIN(isin string) error {
	if len(isin) != 12 {
		return fmt.Errorf("invalid length: want 12 characters, got %d", len(isin))
	}
	if !isinRegex.MatchString(isin) {
		return errors.New("invalid format: want 2 letters, 9 alphanumerics, 1 digit")
	}

	// Letters expand to two digits (A=10..Z=35) before the Luhn pass.
	var digits strings.Builder
	for _, c := range isin[:11] {
		if c >= 'A' && c <= 'Z' {
			digits.WriteString(strconv.Itoa(int(c - 'A' + 10)))
		} else {
			digits.WriteRune(c)
		}
	}

	sum := 0
	double := true
	s := digits.String()
	for i := len(s) - 1; i >= 0; i-- {
		d := int(s[i] - '0')
		if double {
			d *= 2
		}
		sum += d/10 + d%10
		double = !double
	}

	want := (10 - sum%10) % 10
	got := int(isin[11] - '0')
	if want != got {
		return fmt.Errorf("invalid check digit: want %d, got %d", want, got)
	}
	return nil
}

// ValidateMIC checks the ISO 10383 market identifier format.
func ValidateMIC(mic string) error {
	if !micRegex.MatchString(mic) {
		return fmt.Errorf("invalid MIC %q: want 4 uppercase alphanumerics", mic)
	}
	return nil
}

// Security is a declared, tradeable asset: the ledger-local ticker, its
// global identifier, and the currency it trades in.
type Security struct {
	id     ID
	ticker string
	cur    string
}

// NewSecurity builds a security declaration.
func NewSecurity(id ID, ticker, currency string) Security {
	return Security{id: id, ticker: ticker, cur: currency}
}

func (s Security) ID() ID           { return s.id }
func (s Security) Ticker() string   { return s.ticker }
func (s Security) Currency() string { return s.cur }
