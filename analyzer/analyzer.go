package analyzer

import (
	"github.com/pattyshack/tilegen/serializer"
)

// Passes returns the compilation passes in execution order.
func Passes() []Pass[*CompilationUnit] {
	return []Pass[*CompilationUnit]{
		CountWordFrequencies(),
		DiscoverAllocations(),
		EmitOperations(),
	}
}

// Compile runs all passes on a single tile / sprite.
func Compile(
	name string,
	source serializer.EventSource,
	direction serializer.Direction,
	options Options,
) *CompilationUnit {
	unit := NewCompilationUnit(name, source, direction, options)
	Process(unit, Passes(), nil)
	return unit
}
