package allocator

import (
	"cmp"
	"fmt"

	"golang.org/x/exp/slices"

	arch "github.com/pattyshack/tilegen/architecture"
	"github.com/pattyshack/tilegen/log"
)

const (
	// The index tier search enumerates every subset of the candidates.
	DefaultMaxBruteForceCandidates = 10
)

// SelectEviction picks the register which should receive value at time t
// when value is not already resident.  An empty register is always preferred.
// Otherwise, a register whose value is never used again is taken
// immediately, else the register whose value is used the least before
// value's last use.  Ties go to the earlier register.
func SelectEviction[V arch.Value](
	prioritiser *Prioritiser[V],
	t Time,
	value V,
	registers []arch.RegisterName,
	held func(arch.RegisterName) (V, bool),
) arch.RegisterName {
	if len(registers) == 0 {
		panic("should never happen")
	}

	for _, register := range registers {
		_, ok := held(register)
		if !ok {
			return register
		}
	}

	horizon := t + 1
	span, ok := prioritiser.SpanOf(value, t)
	if ok {
		horizon = span.End
	}

	selected := registers[0]
	lowest := -1
	for _, register := range registers {
		heldValue, _ := held(register)
		priority, ok := prioritiser.PriorityAt(t, horizon, heldValue)
		if !ok {
			return register
		}

		if lowest < 0 || priority < lowest {
			selected = register
			lowest = priority
		}
	}

	return selected
}

type MandatoryOptions struct {
	// Index-class registers usable as the last allocation tier.  The tier is
	// disabled when empty.
	IndexRegisters []arch.RegisterName

	MaxBruteForceCandidates int

	// Passed to the optional allocator when values are pinned to the index
	// registers.
	ReuseThreshold int
}

type MandatoryResult[V arch.Value] struct {
	// Sorted by time, then by register order (general before index).
	Allocations []Allocation[V]

	// Values pinned to the index registers.  Empty when the baseline won.
	Pinned []V

	// Total cost of the loads and writes implied by the allocations.
	Cost int

	// Cost of the general register only allocation.
	BaselineCost int

	// Number of spilled values considered for the index tier.
	Candidates int

	// True when there were too many candidates to search the index tier.
	Degraded bool
}

// MandatoryAllocator ensures every value is resident in some register at the
// time it is used.
type MandatoryAllocator[V arch.Value] struct {
	prioritiser *Prioritiser[V]
	general     []arch.RegisterName

	MandatoryOptions
}

// NewMandatoryAllocator does not modify prioritiser.
func NewMandatoryAllocator[V arch.Value](
	prioritiser *Prioritiser[V],
	general []arch.RegisterName,
	options MandatoryOptions,
) *MandatoryAllocator[V] {
	if len(general) == 0 {
		panic("no general register specified")
	}

	if options.MaxBruteForceCandidates <= 0 {
		options.MaxBruteForceCandidates = DefaultMaxBruteForceCandidates
	}

	return &MandatoryAllocator[V]{
		prioritiser:      prioritiser,
		general:          general,
		MandatoryOptions: options,
	}
}

// servedBy maps each time to the register which provides the time's value.
type servedBy map[Time]arch.RegisterName

func (allocator *MandatoryAllocator[V]) allocateGeneral(
	prioritiser *Prioritiser[V],
) (
	[]Allocation[V],
	servedBy,
) {
	held := map[arch.RegisterName]V{}
	lookup := func(register arch.RegisterName) (V, bool) {
		value, ok := held[register]
		return value, ok
	}

	allocations := []Allocation[V]{}
	served := servedBy{}
	prioritiser.Each(func(t Time, value V) {
		for _, register := range allocator.general {
			heldValue, ok := held[register]
			if ok && heldValue == value {
				served[t] = register
				return
			}
		}

		register := SelectEviction(
			prioritiser,
			t,
			value,
			allocator.general,
			lookup)

		held[register] = value
		served[t] = register
		allocations = append(
			allocations,
			Allocation[V]{
				Time:     t,
				Value:    value,
				Register: register,
			})
	})

	setHoldingSpans(allocations, prioritiser.EndTime())
	return allocations, served
}

// setHoldingSpans sets each allocation's span to end at the register's next
// allocation.  allocations must be sorted by time.
func setHoldingSpans[V arch.Value](allocations []Allocation[V], endTime Time) {
	next := map[arch.RegisterName]Time{}
	for idx := len(allocations) - 1; idx >= 0; idx-- {
		allocation := &allocations[idx]

		end, ok := next[allocation.Register]
		if !ok {
			end = endTime
		}

		allocation.Span = NewTimeSpan(allocation.Time, end)
		next[allocation.Register] = allocation.Time
	}
}

// LoadCost is the cost of loading value into register with an immediate
// load.
func LoadCost[V arch.Value](register arch.RegisterName, value V) int {
	return arch.NewLoadImmediateOp(register, uint16(value)).Cost()
}

// WriteCost is the cost of writing register's value to the screen.  Pairs
// are pushed; bytes are written through the cursor.
func WriteCost(register arch.RegisterName) int {
	if register.IsPair() {
		return arch.NewPushOp(register).Cost()
	}

	return arch.NewLoadOp(
		arch.NewIndirectOperand(arch.HL),
		arch.NewDirectOperand(register)).Cost()
}

// ReplayCost returns the cost of the loads in allocations plus the writes
// implied by served.
func ReplayCost[V arch.Value](
	allocations []Allocation[V],
	served map[Time]arch.RegisterName,
) int {
	total := 0
	for _, allocation := range allocations {
		total += LoadCost(allocation.Register, allocation.Value)
	}

	for _, register := range served {
		total += WriteCost(register)
	}

	return total
}

// spilledValues returns the values loaded more than once, ordered by number
// of reloads (descending) then by first load time.
func spilledValues[V arch.Value](allocations []Allocation[V]) []V {
	loads := map[V]int{}
	firstLoad := map[V]Time{}
	for _, allocation := range allocations {
		_, ok := firstLoad[allocation.Value]
		if !ok {
			firstLoad[allocation.Value] = allocation.Time
		}
		loads[allocation.Value]++
	}

	result := []V{}
	for value, count := range loads {
		if count > 1 {
			result = append(result, value)
		}
	}

	slices.SortFunc(result, func(a V, b V) int {
		if loads[a] != loads[b] {
			return loads[b] - loads[a]
		}
		return cmp.Compare(firstLoad[a], firstLoad[b])
	})

	return result
}

func (allocator *MandatoryAllocator[V]) Allocate() MandatoryResult[V] {
	baseline, served := allocator.allocateGeneral(allocator.prioritiser)
	baselineCost := ReplayCost(baseline, served)

	result := MandatoryResult[V]{
		Allocations:  baseline,
		Cost:         baselineCost,
		BaselineCost: baselineCost,
	}

	if len(allocator.IndexRegisters) == 0 {
		return result
	}

	candidates := spilledValues(baseline)
	result.Candidates = len(candidates)
	if len(candidates) == 0 {
		return result
	}

	if len(candidates) >= allocator.MaxBruteForceCandidates {
		log.Warn(
			log.AllocatorModule,
			"too many index tier candidates; using general registers only",
			"candidates", len(candidates),
			"limit", allocator.MaxBruteForceCandidates)
		result.Degraded = true
		return result
	}

	for mask := 1; mask < 1<<len(candidates); mask++ {
		pinned := []V{}
		for idx, value := range candidates {
			if mask&(1<<idx) != 0 {
				pinned = append(pinned, value)
			}
		}

		allocations, cost := allocator.allocateWithPinned(pinned)
		log.Trace(
			log.AllocatorModule,
			"index tier candidate",
			"pinned", len(pinned),
			"cost", cost,
			"best", result.Cost)

		if cost < result.Cost {
			result.Allocations = allocations
			result.Pinned = pinned
			result.Cost = cost
		}
	}

	log.Debug(
		log.AllocatorModule,
		"index tier search",
		"candidates", len(candidates),
		"pinned", len(result.Pinned),
		"cost", result.Cost,
		"baseline", baselineCost)

	return result
}

// allocateWithPinned assigns the pinned values to the index registers, then
// allocates the remaining stream on the general registers.
func (allocator *MandatoryAllocator[V]) allocateWithPinned(
	pinned []V,
) (
	[]Allocation[V],
	int,
) {
	isPinned := map[V]struct{}{}
	for _, value := range pinned {
		isPinned[value] = struct{}{}
	}

	pinnedStream := allocator.prioritiser.Filter(
		func(t Time, value V) bool {
			_, ok := isPinned[value]
			return ok
		})

	indexAllocations := NewOptionalAllocator(
		pinnedStream,
		allocator.IndexRegisters,
		allocator.ReuseThreshold).Allocate()

	residual := allocator.prioritiser.Clone()
	indexServed := servedBy{}
	for _, allocation := range indexAllocations {
		for _, t := range pinnedStream.TimesIn(
			allocation.Span.Begin,
			allocation.Span.End) {

			value, _ := pinnedStream.ValueAt(t)
			if value == allocation.Value {
				indexServed[t] = allocation.Register
			}
		}

		residual.RemoveValue(
			allocation.Span.Begin,
			allocation.Span.End-1,
			allocation.Value)
	}

	generalAllocations, served := allocator.allocateGeneral(residual)
	for t, register := range indexServed {
		_, ok := served[t]
		if ok {
			panic(fmt.Sprintf("should never happen: time %d served twice", t))
		}
		served[t] = register
	}

	allocations := append(generalAllocations, indexAllocations...)
	SortAllocations(
		allocations,
		append(
			append([]arch.RegisterName{}, allocator.general...),
			allocator.IndexRegisters...))

	return allocations, ReplayCost(allocations, served)
}
