package folio

import "testing"

// fixtureLedger builds a ledger with two buys, a partial sale across
// both lots, a dividend, a price update and a split.
func fixtureLedger(t *testing.T) *Ledger {
	t.Helper()
	l := NewLedger()
	l.Append(
		NewInit(MustParseDate("2025-01-01"), "", "EUR"),
		NewDeclare(MustParseDate("2025-01-01"), "", "ACME", "acme industries", "EUR"),
		NewDeposit(MustParseDate("2025-01-02"), "", "ibkr", M(10000, "EUR")),
		NewBuy(MustParseDate("2025-01-10"), "", "ibkr", "ACME", Q(10), M(1000, "EUR"), Money{}),
		NewBuy(MustParseDate("2025-02-10"), "", "ibkr", "ACME", Q(10), M(2000, "EUR"), Money{}),
		NewSell(MustParseDate("2025-03-01"), "", "ibkr", "ACME", Q(15), M(3750, "EUR"), Money{}),
		NewUpdatePrice(MustParseDate("2025-03-15"), "ACME", M(260, "EUR")),
		NewDividend(MustParseDate("2025-03-20"), "", "ibkr", "ACME", M(50, "EUR")),
	)
	return l
}

func fixtureSnapshot(t *testing.T, on string) *Snapshot {
	t.Helper()
	j, err := NewJournal(fixtureLedger(t), "")
	if err != nil {
		t.Fatalf("NewJournal() error = %v", err)
	}
	return NewSnapshot(j, MustParseDate(on))
}

func TestSnapshot_Position(t *testing.T) {
	testCases := []struct {
		name string
		on   string
		want Quantity
	}{
		{"before anything", "2025-01-05", Q(0)},
		{"after first buy", "2025-01-15", Q(10)},
		{"after second buy", "2025-02-15", Q(20)},
		{"after partial sale", "2025-03-02", Q(5)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := fixtureSnapshot(t, tc.on).Position("ACME"); !got.Equal(tc.want) {
				t.Errorf("Position(ACME) on %s = %s, want %s", tc.on, got, tc.want)
			}
		})
	}
}

func TestSnapshot_RealizedGains(t *testing.T) {
	s := fixtureSnapshot(t, "2025-03-02")

	// Selling 15 shares consumes the whole first lot (cost 1000) and
	// half of the second (cost 1000): FIFO cost of sale is 2000.
	if got, want := s.RealizedGains("ACME", FIFO), M(1750, "EUR"); !got.Equal(want) {
		t.Errorf("RealizedGains(FIFO) = %s, want %s", got, want)
	}

	// Average cost of 20 shares for 3000 is 150/share: cost of sale 2250.
	if got, want := s.RealizedGains("ACME", AverageCost), M(1500, "EUR"); !got.Equal(want) {
		t.Errorf("RealizedGains(AverageCost) = %s, want %s", got, want)
	}
}

func TestSnapshot_RealizedGains_SellWithoutBuy(t *testing.T) {
	// A hand-edited ledger file can carry a sell with no prior buy:
	// the decoder only rejects malformed JSON, not bad bookkeeping.
	// With no held shares the cost of sale is zero and the whole
	// proceeds count as realized, under both methods.
	l := NewLedger()
	l.Append(
		NewInit(MustParseDate("2025-01-01"), "", "EUR"),
		NewDeclare(MustParseDate("2025-01-01"), "", "ACME", "acme industries", "EUR"),
		NewSell(MustParseDate("2025-02-01"), "", "ibkr", "ACME", Q(5), M(1250, "EUR"), Money{}),
	)
	j, err := NewJournal(l, "")
	if err != nil {
		t.Fatalf("NewJournal() error = %v", err)
	}
	s := NewSnapshot(j, MustParseDate("2025-03-01"))

	if got, want := s.RealizedGains("ACME", AverageCost), M(1250, "EUR"); !got.Equal(want) {
		t.Errorf("RealizedGains(AverageCost) = %s, want %s", got, want)
	}
	if got, want := s.RealizedGains("ACME", FIFO), M(1250, "EUR"); !got.Equal(want) {
		t.Errorf("RealizedGains(FIFO) = %s, want %s", got, want)
	}
}

func TestSnapshot_CostBasis(t *testing.T) {
	s := fixtureSnapshot(t, "2025-03-02")

	// FIFO leaves 5 shares of the second lot, costing 1000.
	if got, want := s.CostBasis("ACME", FIFO), M(1000, "EUR"); !got.Equal(want) {
		t.Errorf("CostBasis(FIFO) = %s, want %s", got, want)
	}
	// Average leaves 5 shares at 150.
	if got, want := s.CostBasis("ACME", AverageCost), M(750, "EUR"); !got.Equal(want) {
		t.Errorf("CostBasis(AverageCost) = %s, want %s", got, want)
	}
}

func TestSnapshot_UnrealizedGains(t *testing.T) {
	s := fixtureSnapshot(t, "2025-03-16")

	// 5 shares at the last price of 260 is 1300; FIFO cost is 1000.
	if got, want := s.MarketValue("ACME"), M(1300, "EUR"); !got.Equal(want) {
		t.Errorf("MarketValue(ACME) = %s, want %s", got, want)
	}
	if got, want := s.UnrealizedGains("ACME", FIFO), M(300, "EUR"); !got.Equal(want) {
		t.Errorf("UnrealizedGains(FIFO) = %s, want %s", got, want)
	}
}

func TestSnapshot_Split(t *testing.T) {
	l := fixtureLedger(t)
	l.Append(NewSplit(MustParseDate("2025-04-01"), "ACME", 2, 1))
	j, err := NewJournal(l, "")
	if err != nil {
		t.Fatal(err)
	}
	s := NewSnapshot(j, MustParseDate("2025-04-02"))

	if got := s.Position("ACME"); !got.Equal(Q(10)) {
		t.Errorf("Position after 2:1 split = %s, want 10", got)
	}
	// The split does not change what the remaining shares cost.
	if got, want := s.CostBasis("ACME", FIFO), M(1000, "EUR"); !got.Equal(want) {
		t.Errorf("CostBasis after split = %s, want %s", got, want)
	}
}

func TestSnapshot_CashAndDividends(t *testing.T) {
	s := fixtureSnapshot(t, "2025-03-21")

	// 10000 deposited, 3000 spent on buys, 3750 sale proceeds, 50 dividend.
	if got, want := s.Cash("EUR"), M(10800, "EUR"); !got.Equal(want) {
		t.Errorf("Cash(EUR) = %s, want %s", got, want)
	}
	if got, want := s.Dividends("ACME"), M(50, "EUR"); !got.Equal(want) {
		t.Errorf("Dividends(ACME) = %s, want %s", got, want)
	}
	if got, want := s.CashFlow("EUR"), M(10000, "EUR"); !got.Equal(want) {
		t.Errorf("CashFlow(EUR) = %s, want %s", got, want)
	}
}

func TestSnapshot_AccountScope(t *testing.T) {
	j, err := NewJournal(fixtureLedger(t), "")
	if err != nil {
		t.Fatal(err)
	}
	on := MustParseDate("2025-03-02")

	ibkr := NewAccountSnapshot(j, on, "ibkr")
	if got := ibkr.Position("ACME"); !got.Equal(Q(5)) {
		t.Errorf("ibkr Position = %s, want 5", got)
	}

	other := NewAccountSnapshot(j, on, "degiro")
	if got := other.Position("ACME"); !got.IsZero() {
		t.Errorf("degiro Position = %s, want 0", got)
	}
	if got := other.Cash("EUR"); !got.IsZero() {
		t.Errorf("degiro Cash = %s, want 0", got)
	}
}

func TestSnapshot_CurrencyConversion(t *testing.T) {
	l := NewLedger()
	l.Append(
		NewInit(MustParseDate("2025-01-01"), "", "EUR"),
		NewDeclare(MustParseDate("2025-01-01"), "", "USDEUR", "USDEUR", "EUR"),
		NewDeposit(MustParseDate("2025-01-02"), "", "binance", M(100, "USD")),
		NewUpdatePrice(MustParseDate("2025-01-03"), "USDEUR", M(0.9, "EUR")),
	)
	j, err := NewJournal(l, "")
	if err != nil {
		t.Fatal(err)
	}
	s := NewSnapshot(j, MustParseDate("2025-01-04"))

	if got, want := s.ExchangeRate("USD"), M(0.9, "EUR"); !got.Equal(want) {
		t.Errorf("ExchangeRate(USD) = %s, want %s", got, want)
	}
	if got, want := s.Convert(M(100, "USD")), M(90, "EUR"); !got.Equal(want) {
		t.Errorf("Convert($100) = %s, want %s", got, want)
	}
	if got, want := s.TotalCash(), M(90, "EUR"); !got.Equal(want) {
		t.Errorf("TotalCash() = %s, want %s", got, want)
	}
}

func TestSnapshot_FeeInCostBasis(t *testing.T) {
	l := NewLedger()
	l.Append(
		NewInit(MustParseDate("2025-01-01"), "", "EUR"),
		NewDeclare(MustParseDate("2025-01-01"), "", "ACME", "acme industries", "EUR"),
		NewDeposit(MustParseDate("2025-01-02"), "", "", M(2000, "EUR")),
		NewBuy(MustParseDate("2025-01-10"), "", "", "ACME", Q(10), M(1000, "EUR"), M(10, "EUR")),
		NewSell(MustParseDate("2025-02-10"), "", "", "ACME", Q(10), M(1200, "EUR"), M(12, "EUR")),
	)
	j, err := NewJournal(l, "")
	if err != nil {
		t.Fatal(err)
	}
	s := NewSnapshot(j, MustParseDate("2025-02-11"))

	// Cost includes the buy fee, proceeds are net of the sell fee:
	// (1200-12) - (1000+10) = 178.
	if got, want := s.RealizedGains("ACME", FIFO), M(178, "EUR"); !got.Equal(want) {
		t.Errorf("RealizedGains = %s, want %s", got, want)
	}
	// Cash: 2000 - 1010 + 1188 = 2178.
	if got, want := s.Cash("EUR"), M(2178, "EUR"); !got.Equal(want) {
		t.Errorf("Cash = %s, want %s", got, want)
	}
}
