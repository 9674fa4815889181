package analyzer

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/pattyshack/tilegen/analyzer/allocator"
	arch "github.com/pattyshack/tilegen/architecture"
)

func addAllocations[V arch.Value](
	tree treeprint.Tree,
	title string,
	allocations []allocator.Allocation[V],
) {
	branch := tree.AddBranch(fmt.Sprintf("%s (%d)", title, len(allocations)))
	for _, allocation := range allocations {
		branch.AddNode(allocation.String())
	}
}

// AllocationTree renders the unit's allocation decisions.
func AllocationTree(unit *CompilationUnit) treeprint.Tree {
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("%s (cost %d)", unit.Name, unit.Cost()))

	addAllocations(tree, "auxiliary", unit.AuxiliaryAllocations)
	addAllocations(tree, "accumulator", unit.AccumulatorAllocations)

	if unit.WordPlan != nil {
		plan := unit.WordPlan

		title := fmt.Sprintf(
			"word plan (cost %d, baseline %d, candidates %d)",
			plan.Cost,
			plan.BaselineCost,
			plan.Candidates)
		if plan.Degraded {
			title += " degraded"
		}

		branch := tree.AddBranch(title)
		if len(plan.Pinned) > 0 {
			pinned := branch.AddBranch("pinned")
			for _, value := range plan.Pinned {
				pinned.AddNode(fmt.Sprintf("0x%04x", value))
			}
		}

		addAllocations(branch, "allocations", plan.Allocations)
	}

	counts := CountEvents(unit.Events)
	events := tree.AddBranch("events")
	for _, kind := range []RegisterEventKind{
		LoadEvent,
		ReuseEvent,
		UseConstantEvent,
	} {
		events.AddNode(fmt.Sprintf("%s: %d", kind, counts[kind]))
	}

	return tree
}
