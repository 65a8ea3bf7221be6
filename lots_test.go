package folio

import "testing"

func testLots() lots {
	return lots{
		{Date: MustParseDate("2025-01-10"), Quantity: Q(10), Cost: M(100, "EUR")},
		{Date: MustParseDate("2025-02-10"), Quantity: Q(10), Cost: M(200, "EUR")},
		{Date: MustParseDate("2025-03-10"), Quantity: Q(10), Cost: M(300, "EUR")},
	}
}

func TestLots_CostOfSale(t *testing.T) {
	testCases := []struct {
		name string
		sell Quantity
		want Money
	}{
		{"partial first lot", Q(5), M(50, "EUR")},
		{"exactly first lot", Q(10), M(100, "EUR")},
		{"across two lots", Q(15), M(200, "EUR")},
		{"everything", Q(30), M(600, "EUR")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := testLots().costOfSale(tc.sell)
			if !got.Equal(tc.want) {
				t.Errorf("costOfSale(%s) = %s, want %s", tc.sell, got, tc.want)
			}
		})
	}
}

func TestLots_Sell(t *testing.T) {
	t.Run("partial first lot", func(t *testing.T) {
		remaining := testLots().sell(Q(4))
		if len(remaining) != 3 {
			t.Fatalf("len(remaining) = %d, want 3", len(remaining))
		}
		if !remaining[0].Quantity.Equal(Q(6)) {
			t.Errorf("remaining[0].Quantity = %s, want 6", remaining[0].Quantity)
		}
		if !remaining[0].Cost.Equal(M(60, "EUR")) {
			t.Errorf("remaining[0].Cost = %s, want 60 EUR", remaining[0].Cost)
		}
	})

	t.Run("across two lots", func(t *testing.T) {
		remaining := testLots().sell(Q(15))
		if len(remaining) != 2 {
			t.Fatalf("len(remaining) = %d, want 2", len(remaining))
		}
		if !remaining[0].Quantity.Equal(Q(5)) {
			t.Errorf("remaining[0].Quantity = %s, want 5", remaining[0].Quantity)
		}
		if !remaining[0].Cost.Equal(M(100, "EUR")) {
			t.Errorf("remaining[0].Cost = %s, want 100 EUR", remaining[0].Cost)
		}
		if !remaining[1].Quantity.Equal(Q(10)) {
			t.Errorf("remaining[1].Quantity = %s, want 10", remaining[1].Quantity)
		}
	})

	t.Run("everything", func(t *testing.T) {
		if remaining := testLots().sell(Q(30)); len(remaining) != 0 {
			t.Errorf("len(remaining) = %d, want 0", len(remaining))
		}
	})
}

func TestLots_Split(t *testing.T) {
	split := testLots().split(2, 1)
	if !split[0].Quantity.Equal(Q(20)) {
		t.Errorf("split[0].Quantity = %s, want 20", split[0].Quantity)
	}
	if !split[0].Cost.Equal(M(100, "EUR")) {
		t.Errorf("split[0].Cost = %s, want unchanged 100 EUR", split[0].Cost)
	}

	reverse := testLots().split(1, 10)
	if !reverse[2].Quantity.Equal(Q(1)) {
		t.Errorf("reverse[2].Quantity = %s, want 1", reverse[2].Quantity)
	}
}
