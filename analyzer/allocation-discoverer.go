package analyzer

import (
	"github.com/pattyshack/tilegen/analyzer/allocator"
	arch "github.com/pattyshack/tilegen/architecture"
	"github.com/pattyshack/tilegen/log"
)

type AllocationDiscoverer struct{}

// DiscoverAllocations replays the stream without the auxiliary and
// accumulator registers, and uses the resulting loads / constants to decide
// what those registers should hold.
func DiscoverAllocations() Pass[*CompilationUnit] {
	return AllocationDiscoverer{}
}

func (AllocationDiscoverer) Process(unit *CompilationUnit) {
	replayer := newReplayer(unit)
	replayer.run()

	unit.AuxiliaryCandidates = allocator.NewPrioritiser[uint16]()
	unit.AccumulatorCandidates = allocator.NewPrioritiser[uint8]()
	for _, event := range replayer.events {
		if event.ByteSize == 2 && event.Kind == LoadEvent {
			unit.AuxiliaryCandidates.AddValue(event.Time, event.Value)
		} else if event.ByteSize == 1 && event.Kind == UseConstantEvent {
			unit.AccumulatorCandidates.AddValue(event.Time, uint8(event.Value))
		}
	}

	registers := unit.registers()

	unit.AuxiliaryAllocations = allocator.NewOptionalAllocator(
		unit.AuxiliaryCandidates,
		[]arch.RegisterName{registers.Auxiliary},
		unit.ReuseThreshold).Allocate()

	unit.AccumulatorAllocations = allocator.NewOptionalAllocator(
		unit.AccumulatorCandidates,
		[]arch.RegisterName{registers.Accumulator},
		unit.ReuseThreshold).Allocate()

	// The auxiliary register serves its value from the time it is loaded until
	// it is reloaded (inclusive).  Those uses no longer compete for the general
	// registers.
	endTime := unit.WordPriorities.EndTime()
	for idx, allocation := range unit.AuxiliaryAllocations {
		end := endTime
		if idx+1 < len(unit.AuxiliaryAllocations) {
			end = unit.AuxiliaryAllocations[idx+1].Time
		}
		unit.WordPriorities.RemoveValue(allocation.Time, end, allocation.Value)
	}

	log.Debug(
		log.AnalyzerModule,
		"discovered allocations",
		"unit", unit.Name,
		"auxiliary candidates", unit.AuxiliaryCandidates.Len(),
		"auxiliary", len(unit.AuxiliaryAllocations),
		"accumulator candidates", unit.AccumulatorCandidates.Len(),
		"accumulator", len(unit.AccumulatorAllocations))
}
