package date

import (
	"iter"
	"slices"
)

// History stores a series of values keyed by day, kept sorted in
// chronological order. Days are unique: appending on an existing day
// replaces the previous value.
type History[T any] struct {
	days   []Date
	values []T
}

// Len returns the number of recorded days.
func (h *History[T]) Len() int { return len(h.days) }

// Append records a value for a day. An existing value on that day is
// replaced, so the latest write wins.
func (h *History[T]) Append(on Date, v T) *History[T] {
	i, found := slices.BinarySearchFunc(h.days, on, Date.Compare)
	if found {
		h.values[i] = v
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, v)
	return h
}

// Get returns the value recorded exactly on that day.
func (h *History[T]) Get(on Date) (T, bool) {
	i, found := slices.BinarySearchFunc(h.days, on, Date.Compare)
	if !found {
		var zero T
		return zero, false
	}
	return h.values[i], true
}

// ValueAsOf returns the value on a given day, or the most recent value
// before it when the day itself has none.
func (h *History[T]) ValueAsOf(on Date) (T, bool) {
	i, found := slices.BinarySearchFunc(h.days, on, Date.Compare)
	if found {
		return h.values[i], true
	}
	if i == 0 {
		var zero T
		return zero, false
	}
	return h.values[i-1], true
}

// Latest returns the most recent day and value, or zero values when the
// history is empty.
func (h *History[T]) Latest() (Date, T) {
	if len(h.days) == 0 {
		var zero T
		return Date{}, zero
	}
	last := len(h.days) - 1
	return h.days[last], h.values[last]
}

// Values iterates over all day/value pairs in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}
