package analyzer

import (
	"fmt"

	"github.com/pattyshack/tilegen/analyzer/allocator"
	arch "github.com/pattyshack/tilegen/architecture"
)

type RegisterEventKind string

const (
	// The register is (re)loaded with the value.
	LoadEvent = RegisterEventKind("Load")

	// The register already holds the value.
	ReuseEvent = RegisterEventKind("Reuse")

	// The value is written as an immediate.
	UseConstantEvent = RegisterEventKind("UseConstant")
)

type RegisterEvent struct {
	Kind RegisterEventKind
	Time allocator.Time

	// 1 for bytes, 2 for words
	ByteSize int

	// Used by Load and Reuse
	Register arch.RegisterName

	Value uint16
}

func (event RegisterEvent) String() string {
	value := fmt.Sprintf("0x%0*x", 2*event.ByteSize, event.Value)
	switch event.Kind {
	case LoadEvent:
		return fmt.Sprintf("%d: load %s = %s", event.Time, event.Register, value)
	case ReuseEvent:
		return fmt.Sprintf("%d: reuse %s (%s)", event.Time, event.Register, value)
	case UseConstantEvent:
		return fmt.Sprintf("%d: constant %s", event.Time, value)
	default:
		panic("should never happen")
	}
}

// CountEvents returns the number of events of each kind.
func CountEvents(events []RegisterEvent) map[RegisterEventKind]int {
	counts := map[RegisterEventKind]int{}
	for _, event := range events {
		counts[event.Kind]++
	}
	return counts
}
