package folio

import "testing"

func TestLedger_Search(t *testing.T) {
	l := NewLedger()
	l.Append(
		NewInit(MustParseDate("2025-01-01"), "", "EUR"),
		NewDeclare(MustParseDate("2025-01-01"), "", "ACME", "acme industries", "EUR"),
		NewDeposit(MustParseDate("2025-01-02"), "initial funding", "ibkr", M(10000, "EUR")),
		NewBuy(MustParseDate("2025-01-10"), "first tranche", "ibkr", "ACME", Q(10), M(1000, "EUR"), Money{}),
		NewBuy(MustParseDate("2025-02-10"), "second tranche", "degiro", "ACME", Q(10), M(2000, "EUR"), Money{}),
		NewDividend(MustParseDate("2025-03-20"), "", "ibkr", "ACME", M(50, "EUR")),
	)

	collect := func(query string) []Transaction {
		var out []Transaction
		for _, tx := range l.Search(query) {
			out = append(out, tx)
		}
		return out
	}

	testCases := []struct {
		name  string
		query string
		want  int
	}{
		{"empty query matches all", "", l.Len()},
		{"ticker", "acme", 4},
		{"account case insensitive", "IBKR", 3},
		{"command", "dividend", 1},
		{"memo", "tranche", 2},
		{"no match", "tesla", 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := collect(tc.query); len(got) != tc.want {
				t.Errorf("Search(%q) returned %d transactions, want %d", tc.query, len(got), tc.want)
			}
		})
	}
}

func TestLedger_Search_KeepsOrder(t *testing.T) {
	l := fixtureLedger(t)
	var last Date
	for _, tx := range l.Search("acme") {
		if tx.When().Before(last) {
			t.Fatalf("results out of order: %s before %s", tx.When(), last)
		}
		last = tx.When()
	}
}
