package serializer

import (
	"github.com/pattyshack/tilegen/log"
)

type cursor struct {
	x int
	y int
}

// Serializer converts a paletted image into a stream of byte/word writes and
// cursor moves.  Two horizontal pixels form one byte, with the left pixel in
// the high nibble.  Bytes whose pixels are both transparent are skipped.
//
// Events are generated one row at a time.
type Serializer struct {
	image PalettedImage
	Config

	rows    []int
	columns int
	offset  int

	nextRow int
	pending []Event
	cursor  cursor
	stopped bool
}

func NewSerializer(image PalettedImage, config Config) *Serializer {
	if config.LineStride == 0 {
		config.LineStride = DefaultLineStride
	}

	err := config.Validate()
	if err != nil {
		panic(err)
	}

	columns := (image.Width() + 1) / 2
	offset := 0
	if config.Slice > 0 {
		offset = config.Slice
		columns -= config.Slice
	} else {
		columns += config.Slice
	}

	if columns < 0 {
		columns = 0
	}

	serializer := &Serializer{
		image:   image,
		Config:  config,
		rows:    config.rowOrder(image.Height()),
		columns: columns,
		offset:  offset,
	}
	serializer.Reset()

	log.Debug(
		log.SerializerModule,
		"new serializer",
		"width", image.Width(),
		"height", image.Height(),
		"columns", columns,
		"order", config.Order,
		"direction", config.Direction)

	return serializer
}

// Columns returns the number of byte columns after slicing.
func (serializer *Serializer) Columns() int {
	return serializer.columns
}

func (serializer *Serializer) Reset() {
	serializer.nextRow = 0
	serializer.pending = nil
	serializer.stopped = false

	serializer.cursor = cursor{}
	if len(serializer.rows) > 0 {
		serializer.cursor.y = serializer.rows[0]
	}
	if serializer.Direction == RightToLeft {
		serializer.cursor.x = serializer.columns
	}
}

func (serializer *Serializer) Next() Event {
	if serializer.stopped {
		panic("Next called after Stop")
	}

	for len(serializer.pending) == 0 {
		if serializer.nextRow >= len(serializer.rows) {
			serializer.stopped = true
			return Event{Kind: StopEvent}
		}

		y := serializer.rows[serializer.nextRow]
		serializer.nextRow++
		serializer.scanRow(y)
	}

	event := serializer.pending[0]
	serializer.pending = serializer.pending[1:]
	return event
}

func (serializer *Serializer) nibble(x int, y int) (uint8, bool) {
	width := serializer.image.Width()
	if x >= width {
		return 0, false
	}

	if serializer.FlipX {
		x = width - 1 - x
	}

	index := serializer.image.Pixel(x, y)
	if index == Transparent {
		return 0, false
	}

	return uint8(index) & 0x0f, true
}

// byteAt returns the byte at the (sliced) column.  ok is false when both
// pixels are transparent.
func (serializer *Serializer) byteAt(column int, y int) (uint8, bool) {
	x := 2 * (column + serializer.offset)

	left, leftOk := serializer.nibble(x, y)
	right, rightOk := serializer.nibble(x+1, y)
	return left<<4 | right, leftOk || rightOk
}

func (serializer *Serializer) moveTo(x int, y int) {
	if serializer.cursor.x == x && serializer.cursor.y == y {
		return
	}

	deltaRow := y - serializer.cursor.y
	deltaColumn := x - serializer.cursor.x
	serializer.pending = append(
		serializer.pending,
		Event{
			Kind: MoveCursorEvent,
			CursorMove: CursorMove{
				DeltaRow:    deltaRow,
				DeltaColumn: deltaColumn,
				Delta:       deltaRow*serializer.LineStride + deltaColumn,
				X:           x,
				Y:           y,
			},
		})

	serializer.cursor = cursor{x: x, y: y}
}

func (serializer *Serializer) emit(kind EventKind, value uint16) {
	serializer.pending = append(
		serializer.pending,
		Event{
			Kind:  kind,
			Value: value,
		})
}

func (serializer *Serializer) scanRow(y int) {
	if serializer.Direction == LeftToRight {
		for column := 0; column < serializer.columns; column++ {
			value, ok := serializer.byteAt(column, y)
			if !ok {
				continue
			}

			serializer.moveTo(column, y)
			serializer.emit(EmitByteEvent, uint16(value))
			serializer.cursor.x = column + 1
		}
		return
	}

	// Right to left writes pre-decrement the cursor.
	column := serializer.columns - 1
	for column >= 0 {
		value, ok := serializer.byteAt(column, y)
		if !ok {
			column--
			continue
		}

		serializer.moveTo(column+1, y)

		if column > 0 {
			low, ok := serializer.byteAt(column-1, y)
			if ok {
				serializer.emit(EmitWordEvent, uint16(value)<<8|uint16(low))
				serializer.cursor.x = column - 1
				column -= 2
				continue
			}
		}

		serializer.emit(EmitByteEvent, uint16(value))
		serializer.cursor.x = column
		column--
	}
}

// Collect drains source until Stop, excluding the Stop event.  source is
// reset first.
func Collect(source EventSource) []Event {
	source.Reset()

	events := []Event{}
	for {
		event := source.Next()
		if event.Kind == StopEvent {
			return events
		}
		events = append(events, event)
	}
}
