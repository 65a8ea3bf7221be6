package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    Date
		wantErr bool
	}{
		{"canonical", "2025-09-08", New(2025, time.September, 8), false},
		{"single digits", "2025-7-1", New(2025, time.July, 1), false},
		{"garbage", "last tuesday", Date{}, true},
		{"wrong order", "08-09-2025", Date{}, true},
		{"empty", "", Date{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNew_Normalizes(t *testing.T) {
	if got, want := New(2025, time.December, 32), New(2026, time.January, 1); got != want {
		t.Errorf("New(2025, 12, 32) = %v, want %v", got, want)
	}
	if got, want := New(2025, time.March, 0), New(2025, time.February, 28); got != want {
		t.Errorf("New(2025, 3, 0) = %v, want %v", got, want)
	}
}

func TestDate_Add(t *testing.T) {
	testCases := []struct {
		name string
		in   Date
		n    int
		want Date
	}{
		{"next day", New(2025, time.September, 8), 1, New(2025, time.September, 9)},
		{"month boundary", New(2025, time.January, 31), 1, New(2025, time.February, 1)},
		{"leap day", New(2024, time.February, 28), 1, New(2024, time.February, 29)},
		{"backwards", New(2025, time.January, 1), -1, New(2024, time.December, 31)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Add(tc.n); got != tc.want {
				t.Errorf("%v.Add(%d) = %v, want %v", tc.in, tc.n, got, tc.want)
			}
		})
	}
}

func TestDate_Compare(t *testing.T) {
	a := New(2025, time.May, 20)
	b := New(2025, time.June, 1)
	if a.Compare(b) >= 0 {
		t.Errorf("Compare(%v, %v) = %d, want negative", a, b, a.Compare(b))
	}
	if b.Compare(a) <= 0 {
		t.Errorf("Compare(%v, %v) = %d, want positive", b, a, b.Compare(a))
	}
	if a.Compare(a) != 0 {
		t.Errorf("Compare(%v, %v) = %d, want 0", a, a, a.Compare(a))
	}
	if !a.Before(b) || a.After(b) {
		t.Errorf("Before/After inconsistent for %v vs %v", a, b)
	}
}

func TestDate_StartOf(t *testing.T) {
	testCases := []struct {
		name string
		in   Date
		p    Period
		want Date
	}{
		{"day is itself", New(2025, time.September, 10), Daily, New(2025, time.September, 10)},
		{"wednesday to monday", New(2025, time.September, 10), Weekly, New(2025, time.September, 8)},
		{"monday stays", New(2025, time.September, 8), Weekly, New(2025, time.September, 8)},
		{"sunday to monday", New(2025, time.September, 14), Weekly, New(2025, time.September, 8)},
		{"month", New(2025, time.September, 10), Monthly, New(2025, time.September, 1)},
		{"quarter q3", New(2025, time.September, 10), Quarterly, New(2025, time.July, 1)},
		{"year", New(2025, time.September, 10), Yearly, New(2025, time.January, 1)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.StartOf(tc.p); got != tc.want {
				t.Errorf("%v.StartOf(%v) = %v, want %v", tc.in, tc.p, got, tc.want)
			}
		})
	}
}

func TestDate_EndOf(t *testing.T) {
	testCases := []struct {
		name string
		in   Date
		p    Period
		want Date
	}{
		{"week ends sunday", New(2025, time.September, 10), Weekly, New(2025, time.September, 14)},
		{"leap february", New(2024, time.February, 15), Monthly, New(2024, time.February, 29)},
		{"plain february", New(2025, time.February, 15), Monthly, New(2025, time.February, 28)},
		{"quarter q2", New(2025, time.May, 20), Quarterly, New(2025, time.June, 30)},
		{"year", New(2025, time.May, 20), Yearly, New(2025, time.December, 31)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.EndOf(tc.p); got != tc.want {
				t.Errorf("%v.EndOf(%v) = %v, want %v", tc.in, tc.p, got, tc.want)
			}
		})
	}
}

func TestDate_JSON(t *testing.T) {
	d := New(2025, time.July, 1)
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2025-07-01"` {
		t.Errorf("MarshalJSON() = %s, want %q", b, `"2025-07-01"`)
	}
	var back Date
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}
