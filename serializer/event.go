package serializer

import (
	"fmt"
)

type EventKind string

const (
	EmitWordEvent   = EventKind("EmitWord")
	EmitByteEvent   = EventKind("EmitByte")
	MoveCursorEvent = EventKind("MoveCursor")
	StopEvent       = EventKind("Stop")
)

// CursorMove repositions the write cursor.  Columns are byte columns (two
// pixels each).
type CursorMove struct {
	DeltaRow    int
	DeltaColumn int

	// Screen address delta in bytes.
	Delta int

	// The cursor's new absolute position.
	X int
	Y int
}

type Event struct {
	Kind EventKind

	// Used by EmitWord and EmitByte.  A word's high byte is written at the
	// higher address.
	Value uint16

	// Used by MoveCursor
	CursorMove
}

func (event Event) String() string {
	switch event.Kind {
	case EmitWordEvent:
		return fmt.Sprintf("word 0x%04x", event.Value)
	case EmitByteEvent:
		return fmt.Sprintf("byte 0x%02x", event.Value)
	case MoveCursorEvent:
		return fmt.Sprintf(
			"move (%+d, %+d) delta %+d -> (%d, %d)",
			event.DeltaColumn,
			event.DeltaRow,
			event.Delta,
			event.X,
			event.Y)
	case StopEvent:
		return "stop"
	default:
		panic("should never happen")
	}
}

// EventSource is a finite, restartable event sequence terminated by a Stop
// event.
type EventSource interface {
	Next() Event
	Reset()
}
