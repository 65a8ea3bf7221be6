package folio

import "folio/date"

// DefaultCurrency is the reporting currency used when a ledger has no
// Init transaction.
const DefaultCurrency = "EUR"

// Date is re-exported so that callers of this package do not need to
// import the date package for the common case.
type Date = date.Date

// Range is a span of consecutive days, re-exported like Date.
type Range = date.Range

// Today returns the current day.
func Today() Date { return date.Today() }

// NewDate returns the normalized date for year/month/day.
var NewDate = date.New

// ParseDate reads a date from its "2006-01-02" form.
var ParseDate = date.Parse

// MustParseDate is ParseDate but panics on error. For tests and literals.
var MustParseDate = date.MustParse
