package date

import (
	"testing"
	"time"
)

func TestNewRange(t *testing.T) {
	testCases := []struct {
		name string
		in   Date
		p    Period
		want Range
	}{
		{
			name: "daily",
			in:   New(2025, time.September, 8),
			p:    Daily,
			want: Range{From: New(2025, time.September, 8), To: New(2025, time.September, 8)},
		},
		{
			name: "weekly from a wednesday",
			in:   New(2025, time.September, 10),
			p:    Weekly,
			want: Range{From: New(2025, time.September, 8), To: New(2025, time.September, 14)},
		},
		{
			name: "monthly in a leap year",
			in:   New(2024, time.February, 15),
			p:    Monthly,
			want: Range{From: New(2024, time.February, 1), To: New(2024, time.February, 29)},
		},
		{
			name: "quarterly q2",
			in:   New(2025, time.May, 20),
			p:    Quarterly,
			want: Range{From: New(2025, time.April, 1), To: New(2025, time.June, 30)},
		},
		{
			name: "yearly",
			in:   New(2025, time.September, 8),
			p:    Yearly,
			want: Range{From: New(2025, time.January, 1), To: New(2025, time.December, 31)},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewRange(tc.in, tc.p); got != tc.want {
				t.Errorf("NewRange(%v, %v) = %v, want %v", tc.in, tc.p, got, tc.want)
			}
		})
	}
}

func TestRange_Contains(t *testing.T) {
	r := NewRange(New(2025, time.September, 10), Weekly)
	testCases := []struct {
		name string
		in   Date
		want bool
	}{
		{"inside", New(2025, time.September, 10), true},
		{"lower boundary", New(2025, time.September, 8), true},
		{"upper boundary", New(2025, time.September, 14), true},
		{"before", New(2025, time.September, 7), false},
		{"after", New(2025, time.September, 15), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.in); got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRange_Name(t *testing.T) {
	testCases := []struct {
		name string
		in   Range
		want string
	}{
		{"single day", NewRange(New(2025, time.September, 8), Daily), "daily"},
		{"standard week", NewRange(New(2025, time.September, 8), Weekly), "weekly"},
		{"standard month", NewRange(New(2025, time.September, 1), Monthly), "monthly"},
		{"standard quarter", NewRange(New(2025, time.July, 1), Quarterly), "quarterly"},
		{"standard year", NewRange(New(2025, time.January, 1), Yearly), "yearly"},
		{"arbitrary range", Range{From: New(2025, time.September, 2), To: New(2025, time.September, 10)}, "special"},
		{"two years", Range{From: New(2025, time.January, 1), To: New(2026, time.December, 31)}, "special"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Name(); got != tc.want {
				t.Errorf("Name() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRange_Identifier(t *testing.T) {
	testCases := []struct {
		name string
		in   Range
		want string
	}{
		{"daily", NewRange(New(2025, time.September, 8), Daily), "2025-09-08"},
		{"weekly", NewRange(New(2025, time.September, 8), Weekly), "2025-W37"},
		{"early january week", NewRange(New(2025, time.January, 6), Weekly), "2025-W02"},
		{"monthly", NewRange(New(2025, time.September, 1), Monthly), "2025-09"},
		{"quarterly", NewRange(New(2025, time.July, 1), Quarterly), "2025-Q3"},
		{"yearly", NewRange(New(2025, time.January, 1), Yearly), "2025"},
		{"arbitrary range", Range{From: New(2025, time.September, 2), To: New(2025, time.September, 10)}, "2025-09-02_2025-09-10"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Identifier(); got != tc.want {
				t.Errorf("Identifier() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"daily", Daily, false},
		{"day", Daily, false},
		{"weekly", Weekly, false},
		{"week", Weekly, false},
		{"monthly", Monthly, false},
		{"month", Monthly, false},
		{"quarterly", Quarterly, false},
		{"quarter", Quarterly, false},
		{"yearly", Yearly, false},
		{"YEAR", Yearly, false},
		{"fortnight", Daily, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePeriod(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParsePeriod(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("ParsePeriod(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
