package analyzer

import (
	"github.com/pattyshack/tilegen/analyzer/allocator"
	arch "github.com/pattyshack/tilegen/architecture"
	"github.com/pattyshack/tilegen/platform"
	"github.com/pattyshack/tilegen/serializer"
)

type Options struct {
	Platform platform.Platform

	// Use the platform's index registers as the last word allocation tier.
	IndexTier bool

	ReuseThreshold          int
	MaxBruteForceCandidates int
}

// CompilationUnit holds the per tile (or sprite) analysis state.  Every
// field below Direction is populated by the passes.
type CompilationUnit struct {
	Name      string
	Source    serializer.EventSource
	Direction serializer.Direction

	Options

	// Word values by time.  Reduced by the discovery pass to exclude the
	// values held by the auxiliary register.
	WordPriorities *allocator.Prioritiser[uint16]

	AuxiliaryCandidates   *allocator.Prioritiser[uint16]
	AccumulatorCandidates *allocator.Prioritiser[uint8]

	AuxiliaryAllocations   []allocator.Allocation[uint16]
	AccumulatorAllocations []allocator.Allocation[uint8]

	// Only populated when the index tier is enabled.
	WordPlan *allocator.MandatoryResult[uint16]

	Events     []RegisterEvent
	Operations []arch.Operation
}

func NewCompilationUnit(
	name string,
	source serializer.EventSource,
	direction serializer.Direction,
	options Options,
) *CompilationUnit {
	if options.ReuseThreshold <= 0 {
		options.ReuseThreshold = allocator.DefaultReuseThreshold
	}

	if options.MaxBruteForceCandidates <= 0 {
		options.MaxBruteForceCandidates = allocator.DefaultMaxBruteForceCandidates
	}

	return &CompilationUnit{
		Name:      name,
		Source:    source,
		Direction: direction,
		Options:   options,
	}
}

func (unit *CompilationUnit) registers() *platform.ArchitectureRegisters {
	return unit.Platform.ArchitectureRegisters()
}

func (unit *CompilationUnit) usesIndexTier() bool {
	return unit.IndexTier && len(unit.registers().Index) > 0
}

// Cost returns the total cost of the unit's operations.
func (unit *CompilationUnit) Cost() int {
	return arch.TotalCost(unit.Operations)
}
