package allocator

import (
	"cmp"
	"fmt"

	"golang.org/x/exp/slices"

	arch "github.com/pattyshack/tilegen/architecture"
)

// Allocation records that Register is loaded with Value at Time.  Span is the
// range over which the register is expected to keep holding the value.
type Allocation[V arch.Value] struct {
	Time     Time
	Value    V
	Register arch.RegisterName
	Span     TimeSpan
}

func (allocation Allocation[V]) String() string {
	return fmt.Sprintf(
		"%d: %s = 0x%0*x %s",
		allocation.Time,
		allocation.Register,
		2*arch.ByteSize[V](),
		uint64(allocation.Value),
		allocation.Span)
}

// SortAllocations orders allocations by time, then by the register's position
// in registers.
func SortAllocations[V arch.Value](
	allocations []Allocation[V],
	registers []arch.RegisterName,
) {
	rank := map[arch.RegisterName]int{}
	for idx, register := range registers {
		rank[register] = idx
	}

	slices.SortStableFunc(allocations, func(a, b Allocation[V]) int {
		result := cmp.Compare(a.Time, b.Time)
		if result != 0 {
			return result
		}
		return cmp.Compare(rank[a.Register], rank[b.Register])
	})
}

// AllocationCursor walks a sorted allocation list left to right.
type AllocationCursor[V arch.Value] struct {
	allocations []Allocation[V]
	next        int
}

func NewAllocationCursor[V arch.Value](
	allocations []Allocation[V],
) *AllocationCursor[V] {
	return &AllocationCursor[V]{
		allocations: allocations,
	}
}

// Take returns the next allocation if it is scheduled at time t.  Allocations
// scheduled before t must have been taken already.
func (cursor *AllocationCursor[V]) Take(t Time) (Allocation[V], bool) {
	if cursor.next >= len(cursor.allocations) {
		return Allocation[V]{}, false
	}

	allocation := cursor.allocations[cursor.next]
	if allocation.Time < t {
		panic(fmt.Sprintf("should never happen: skipped allocation %s", allocation))
	}

	if allocation.Time > t {
		return Allocation[V]{}, false
	}

	cursor.next++
	return allocation, true
}

func (cursor *AllocationCursor[V]) Remaining() int {
	return len(cursor.allocations) - cursor.next
}
