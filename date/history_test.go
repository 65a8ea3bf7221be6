package date

import (
	"testing"
	"time"
)

func TestHistory_AppendKeepsOrder(t *testing.T) {
	h := new(History[string])
	d1, d2 := New(2025, time.July, 1), New(2024, time.July, 1)

	if h.Len() != 0 {
		t.Fatalf("empty history Len() = %d, want 0", h.Len())
	}

	h.Append(d1, "later").Append(d2, "earlier")
	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}

	var got []Date
	for on := range h.Values() {
		got = append(got, on)
	}
	if got[0] != d2 || got[1] != d1 {
		t.Errorf("Values() order = %v, want [%v %v]", got, d2, d1)
	}
}

func TestHistory_AppendReplaces(t *testing.T) {
	h := new(History[float64])
	on := New(2025, time.July, 1)
	h.Append(on, 1.0).Append(on, 2.0)
	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", h.Len())
	}
	if v, ok := h.Get(on); !ok || v != 2.0 {
		t.Errorf("Get(%v) = %v, %v, want 2.0, true", on, v, ok)
	}
}

func TestHistory_ValueAsOf(t *testing.T) {
	h := new(History[float64])
	h.Append(New(2025, time.July, 1), 10)
	h.Append(New(2025, time.July, 10), 20)

	testCases := []struct {
		name   string
		on     Date
		want   float64
		wantOK bool
	}{
		{"before first", New(2025, time.June, 30), 0, false},
		{"exactly first", New(2025, time.July, 1), 10, true},
		{"between", New(2025, time.July, 5), 10, true},
		{"exactly second", New(2025, time.July, 10), 20, true},
		{"after last", New(2025, time.August, 1), 20, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := h.ValueAsOf(tc.on)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("ValueAsOf(%v) = %v, %v, want %v, %v", tc.on, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestHistory_Latest(t *testing.T) {
	h := new(History[string])
	if on, v := h.Latest(); !on.IsZero() || v != "" {
		t.Errorf("empty Latest() = %v, %q, want zero values", on, v)
	}
	h.Append(New(2025, time.July, 1), "a")
	h.Append(New(2025, time.July, 2), "b")
	if on, v := h.Latest(); on != New(2025, time.July, 2) || v != "b" {
		t.Errorf("Latest() = %v, %q, want 2025-07-02, b", on, v)
	}
}
