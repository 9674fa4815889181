package allocator

import (
	"cmp"

	"golang.org/x/exp/slices"

	arch "github.com/pattyshack/tilegen/architecture"
)

type timedValue[V arch.Value] struct {
	time  Time
	value V
}

// PrioritisedValue is the most used value within a query window.
type PrioritisedValue[V arch.Value] struct {
	Value V

	// From the value's first occurrence in the window to one past its last
	// occurrence in the window.
	Span TimeSpan

	// Number of occurrences in the window.  Always at least one.
	Count int
}

// Prioritiser is a time ordered value stream.  At most one value is recorded
// per time.
type Prioritiser[V arch.Value] struct {
	entries []timedValue[V] // sorted by time
}

func NewPrioritiser[V arch.Value]() *Prioritiser[V] {
	return &Prioritiser[V]{}
}

func (prioritiser *Prioritiser[V]) search(t Time) (int, bool) {
	return slices.BinarySearchFunc(
		prioritiser.entries,
		t,
		func(entry timedValue[V], t Time) int {
			return cmp.Compare(entry.time, t)
		})
}

// AddValue records value at time t, replacing any value already recorded at
// t.  Values may be added in any order.
func (prioritiser *Prioritiser[V]) AddValue(t Time, value V) {
	if t < 0 {
		panic("should never happen")
	}

	idx, found := prioritiser.search(t)
	if found {
		prioritiser.entries[idx].value = value
		return
	}

	prioritiser.entries = slices.Insert(
		prioritiser.entries,
		idx,
		timedValue[V]{time: t, value: value})
}

// RemoveValue removes all occurrences of value in [begin, end].  Note that
// end is inclusive.
func (prioritiser *Prioritiser[V]) RemoveValue(begin Time, end Time, value V) {
	start, _ := prioritiser.search(begin)

	result := prioritiser.entries[:start]
	for _, entry := range prioritiser.entries[start:] {
		if entry.time <= end && entry.value == value {
			continue
		}
		result = append(result, entry)
	}

	prioritiser.entries = result
}

// EndTime returns one past the last recorded time, or zero when empty.
func (prioritiser *Prioritiser[V]) EndTime() Time {
	if len(prioritiser.entries) == 0 {
		return 0
	}
	return prioritiser.entries[len(prioritiser.entries)-1].time + 1
}

func (prioritiser *Prioritiser[V]) Len() int {
	return len(prioritiser.entries)
}

func (prioritiser *Prioritiser[V]) ValueAt(t Time) (V, bool) {
	idx, found := prioritiser.search(t)
	if !found {
		var zero V
		return zero, false
	}
	return prioritiser.entries[idx].value, true
}

// window returns the entries in [t, horizon).
func (prioritiser *Prioritiser[V]) window(t Time, horizon Time) []timedValue[V] {
	if horizon <= t {
		return nil
	}

	begin, _ := prioritiser.search(t)
	end, _ := prioritiser.search(horizon)
	return prioritiser.entries[begin:end]
}

// PrioritisedValueAt returns the most frequent value in [t, horizon).  When
// multiple values share the highest count, the value which reached that count
// first (scanning in time order) wins.
func (prioritiser *Prioritiser[V]) PrioritisedValueAt(
	t Time,
	horizon Time,
) (
	PrioritisedValue[V],
	bool,
) {
	window := prioritiser.window(t, horizon)
	if len(window) == 0 {
		return PrioritisedValue[V]{}, false
	}

	stats := map[V]*PrioritisedValue[V]{}

	var best *PrioritisedValue[V]
	for _, entry := range window {
		stat, ok := stats[entry.value]
		if !ok {
			stat = &PrioritisedValue[V]{
				Value: entry.value,
				Span:  TimeSpan{Begin: entry.time},
			}
			stats[entry.value] = stat
		}

		stat.Count++
		stat.Span.End = entry.time + 1

		if best == nil || stat.Count > best.Count {
			best = stat
		}
	}

	return *best, true
}

// PriorityAt returns the number of occurrences of value in [t, horizon).
func (prioritiser *Prioritiser[V]) PriorityAt(
	t Time,
	horizon Time,
	value V,
) (
	int,
	bool,
) {
	count := 0
	for _, entry := range prioritiser.window(t, horizon) {
		if entry.value == value {
			count++
		}
	}

	return count, count > 0
}

// SpanOf returns the smallest span covering every occurrence of value at or
// after start.
func (prioritiser *Prioritiser[V]) SpanOf(value V, start Time) (TimeSpan, bool) {
	begin, _ := prioritiser.search(start)

	found := false
	span := TimeSpan{}
	for _, entry := range prioritiser.entries[begin:] {
		if entry.value != value {
			continue
		}

		if !found {
			found = true
			span.Begin = entry.time
		}
		span.End = entry.time + 1
	}

	return span, found
}

// TimesIn returns the recorded times in [begin, end).
func (prioritiser *Prioritiser[V]) TimesIn(begin Time, end Time) []Time {
	result := []Time{}
	for _, entry := range prioritiser.window(begin, end) {
		result = append(result, entry.time)
	}
	return result
}

// Occurrences returns the times at which value is recorded, in order.
func (prioritiser *Prioritiser[V]) Occurrences(value V) []Time {
	result := []Time{}
	for _, entry := range prioritiser.entries {
		if entry.value == value {
			result = append(result, entry.time)
		}
	}
	return result
}

// Values returns the distinct recorded values in order of first occurrence.
func (prioritiser *Prioritiser[V]) Values() []V {
	seen := map[V]struct{}{}
	result := []V{}
	for _, entry := range prioritiser.entries {
		_, ok := seen[entry.value]
		if ok {
			continue
		}
		seen[entry.value] = struct{}{}
		result = append(result, entry.value)
	}
	return result
}

// Filter returns a copy which only keeps the entries accepted by keep.
func (prioritiser *Prioritiser[V]) Filter(
	keep func(t Time, value V) bool,
) *Prioritiser[V] {
	result := &Prioritiser[V]{}
	for _, entry := range prioritiser.entries {
		if keep(entry.time, entry.value) {
			result.entries = append(result.entries, entry)
		}
	}
	return result
}

func (prioritiser *Prioritiser[V]) Clone() *Prioritiser[V] {
	return &Prioritiser[V]{
		entries: slices.Clone(prioritiser.entries),
	}
}

// Each calls visit on every entry in time order.
func (prioritiser *Prioritiser[V]) Each(visit func(t Time, value V)) {
	for _, entry := range prioritiser.entries {
		visit(entry.time, entry.value)
	}
}
