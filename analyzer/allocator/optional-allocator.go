package allocator

import (
	"fmt"

	arch "github.com/pattyshack/tilegen/architecture"
	"github.com/pattyshack/tilegen/log"
)

const (
	// A value must be used at least this many times within a window before it
	// is worth claiming a register for it.
	DefaultReuseThreshold = 2
)

type claim[V arch.Value] struct {
	span  TimeSpan
	value V

	// A vacant claim marks a gap in which no value is worth keeping.
	vacant bool
}

// OptionalAllocator greedily assigns frequently reused values to a small set
// of registers.  Values which are never assigned are simply materialized
// some other way, hence allocation is optional.
//
// Each register owns a set of disjoint claimed spans.  The largest unclaimed
// gap (across all registers) is repeatedly given to the value which is most
// often the prioritised value within the gap.
type OptionalAllocator[V arch.Value] struct {
	working *Prioritiser[V]

	registers      []arch.RegisterName
	reuseThreshold int
	endTime        Time

	claims map[arch.RegisterName][]claim[V] // sorted by span
}

// NewOptionalAllocator does not modify prioritiser.
func NewOptionalAllocator[V arch.Value](
	prioritiser *Prioritiser[V],
	registers []arch.RegisterName,
	reuseThreshold int,
) *OptionalAllocator[V] {
	if reuseThreshold < 1 {
		reuseThreshold = DefaultReuseThreshold
	}

	return &OptionalAllocator[V]{
		working:        prioritiser.Clone(),
		registers:      registers,
		reuseThreshold: reuseThreshold,
		endTime:        prioritiser.EndTime(),
		claims:         map[arch.RegisterName][]claim[V]{},
	}
}

// largestGap returns the largest unclaimed span.  Ties are broken by register
// order, then by the earliest gap.
func (allocator *OptionalAllocator[V]) largestGap() (
	arch.RegisterName,
	TimeSpan,
	bool,
) {
	var bestRegister arch.RegisterName
	bestGap := TimeSpan{}

	consider := func(register arch.RegisterName, gap TimeSpan) {
		if gap.Length() > bestGap.Length() {
			bestRegister = register
			bestGap = gap
		}
	}

	for _, register := range allocator.registers {
		cursor := Time(0)
		for _, claimed := range allocator.claims[register] {
			consider(register, TimeSpan{Begin: cursor, End: claimed.span.Begin})
			cursor = claimed.span.End
		}
		consider(register, TimeSpan{Begin: cursor, End: allocator.endTime})
	}

	return bestRegister, bestGap, !bestGap.IsEmpty()
}

type winStats struct {
	wins int

	firstWin Time

	// The end of the value's active span at its last win.
	lastEnd Time
}

// selectValue finds the value which is the prioritised value at the most
// times within the gap.
func (allocator *OptionalAllocator[V]) selectValue(gap TimeSpan) (claim[V], bool) {
	stats := map[V]*winStats{}

	var best *winStats
	var bestValue V
	for _, t := range allocator.working.TimesIn(gap.Begin, gap.End) {
		candidate, ok := allocator.working.PrioritisedValueAt(t, gap.End)
		if !ok {
			panic("should never happen")
		}

		if candidate.Count < allocator.reuseThreshold {
			continue
		}

		stat, ok := stats[candidate.Value]
		if !ok {
			stat = &winStats{firstWin: t}
			stats[candidate.Value] = stat
		}
		stat.wins++
		stat.lastEnd = candidate.Span.End

		if best == nil || stat.wins > best.wins {
			best = stat
			bestValue = candidate.Value
		}
	}

	if best == nil {
		return claim[V]{}, false
	}

	span, ok := allocator.working.SpanOf(bestValue, best.firstWin)
	if !ok || span.Begin >= best.lastEnd || !gap.Contains(span.Begin) {
		panic(fmt.Sprintf("should never happen: inconsistent claim in %s", gap))
	}

	return claim[V]{
		span:  NewTimeSpan(span.Begin, best.lastEnd),
		value: bestValue,
	}, true
}

func (allocator *OptionalAllocator[V]) addClaim(
	register arch.RegisterName,
	newClaim claim[V],
) {
	claims := allocator.claims[register]

	idx := 0
	for idx < len(claims) && claims[idx].span.Begin < newClaim.span.Begin {
		idx++
	}

	if idx > 0 && claims[idx-1].span.Overlaps(newClaim.span) {
		panic("should never happen")
	}
	if idx < len(claims) && claims[idx].span.Overlaps(newClaim.span) {
		panic("should never happen")
	}

	claims = append(claims, claim[V]{})
	copy(claims[idx+1:], claims[idx:])
	claims[idx] = newClaim
	allocator.claims[register] = claims
}

func (allocator *OptionalAllocator[V]) Allocate() []Allocation[V] {
	for {
		register, gap, ok := allocator.largestGap()
		if !ok {
			break
		}

		selected, ok := allocator.selectValue(gap)
		if !ok {
			allocator.addClaim(register, claim[V]{span: gap, vacant: true})
			continue
		}

		log.Trace(
			log.AllocatorModule,
			"optional claim",
			"register", register,
			"gap", gap,
			"span", selected.span,
			"value", uint64(selected.value))

		allocator.working.RemoveValue(
			selected.span.Begin,
			selected.span.End-1,
			selected.value)
		allocator.addClaim(register, selected)
	}

	allocations := []Allocation[V]{}
	for register, claims := range allocator.claims {
		for _, claimed := range claims {
			if claimed.vacant {
				continue
			}

			allocations = append(
				allocations,
				Allocation[V]{
					Time:     claimed.span.Begin,
					Value:    claimed.value,
					Register: register,
					Span:     claimed.span,
				})
		}
	}

	SortAllocations(allocations, allocator.registers)
	return allocations
}
