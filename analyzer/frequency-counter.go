package analyzer

import (
	"github.com/pattyshack/tilegen/analyzer/allocator"
	"github.com/pattyshack/tilegen/log"
	"github.com/pattyshack/tilegen/serializer"
)

type FrequencyCounter struct{}

// CountWordFrequencies records every emitted word value with its time.
// Bytes consume time but are otherwise ignored.
func CountWordFrequencies() Pass[*CompilationUnit] {
	return FrequencyCounter{}
}

func (FrequencyCounter) Process(unit *CompilationUnit) {
	unit.WordPriorities = allocator.NewPrioritiser[uint16]()

	unit.Source.Reset()
	now := allocator.Time(0)
	for {
		event := unit.Source.Next()
		if event.Kind == serializer.StopEvent {
			break
		}

		switch event.Kind {
		case serializer.EmitWordEvent:
			unit.WordPriorities.AddValue(now, event.Value)
			now++
		case serializer.EmitByteEvent:
			now++
		}
	}

	log.Debug(
		log.AnalyzerModule,
		"counted word frequencies",
		"unit", unit.Name,
		"values", now,
		"words", unit.WordPriorities.Len(),
		"distinct", len(unit.WordPriorities.Values()))
}
