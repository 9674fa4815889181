package analyzer

import (
	"github.com/pattyshack/tilegen/analyzer/allocator"
	arch "github.com/pattyshack/tilegen/architecture"
	"github.com/pattyshack/tilegen/log"
)

type OperationEmitter struct{}

// EmitOperations replays the stream with the discovered allocations and
// records the final register events and operations.
func EmitOperations() Pass[*CompilationUnit] {
	return OperationEmitter{}
}

func (OperationEmitter) Process(unit *CompilationUnit) {
	replayer := newReplayer(unit)
	replayer.auxiliary = allocator.NewAllocationCursor(unit.AuxiliaryAllocations)
	replayer.accumulator = allocator.NewAllocationCursor(
		unit.AccumulatorAllocations)

	if unit.usesIndexTier() {
		registers := unit.registers()

		result := allocator.NewMandatoryAllocator(
			unit.WordPriorities,
			registers.General,
			allocator.MandatoryOptions{
				IndexRegisters:          registers.Index,
				MaxBruteForceCandidates: unit.MaxBruteForceCandidates,
				ReuseThreshold:          unit.ReuseThreshold,
			}).Allocate()
		unit.WordPlan = &result

		if result.Degraded {
			log.Warn(
				log.AnalyzerModule,
				"index tier search skipped",
				"unit", unit.Name,
				"candidates", result.Candidates)
		}

		replayer.plan = allocator.NewAllocationCursor(result.Allocations)
		replayer.planRegisters = append(
			append([]arch.RegisterName{}, registers.General...),
			registers.Index...)
	}

	replayer.run()

	if replayer.auxiliary.Remaining() != 0 ||
		replayer.accumulator.Remaining() != 0 ||
		(replayer.plan != nil && replayer.plan.Remaining() != 0) {
		panic("should never happen: unused allocations")
	}

	unit.Events = replayer.events
	unit.Operations = replayer.operations

	counts := CountEvents(unit.Events)
	log.Debug(
		log.AnalyzerModule,
		"emitted operations",
		"unit", unit.Name,
		"loads", counts[LoadEvent],
		"reuses", counts[ReuseEvent],
		"constants", counts[UseConstantEvent],
		"operations", len(unit.Operations),
		"cost", unit.Cost())
}
