package serializer

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseRows converts "12..34" style rows into a grid.  '.' is transparent.
func parseRows(rows ...string) *PixelGrid {
	grid := [][]PaletteIndex{}
	for _, row := range rows {
		indices := []PaletteIndex{}
		for _, char := range row {
			if char == '.' {
				indices = append(indices, Transparent)
			} else {
				index, err := strconv.ParseUint(string(char), 16, 8)
				if err != nil {
					panic(err)
				}
				indices = append(indices, PaletteIndex(index))
			}
		}
		grid = append(grid, indices)
	}
	return NewPixelGridFromRows(grid)
}

func word(value uint16) Event {
	return Event{Kind: EmitWordEvent, Value: value}
}

func byteEvent(value uint16) Event {
	return Event{Kind: EmitByteEvent, Value: value}
}

func move(deltaRow, deltaColumn, delta, x, y int) Event {
	return Event{
		Kind: MoveCursorEvent,
		CursorMove: CursorMove{
			DeltaRow:    deltaRow,
			DeltaColumn: deltaColumn,
			Delta:       delta,
			X:           x,
			Y:           y,
		},
	}
}

func TestSolidTile(t *testing.T) {
	grid := NewPixelGrid(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			grid.Set(x, y, 3)
		}
	}

	serializer := NewSerializer(
		grid,
		Config{Order: RowMajor, Direction: RightToLeft, LineStride: 128})
	assert.Equal(t, 4, serializer.Columns())

	expected := []Event{word(0x3333), word(0x3333)}
	for y := 1; y < 8; y++ {
		expected = append(
			expected,
			move(1, 4, 132, 4, y),
			word(0x3333),
			word(0x3333))
	}

	assert.Equal(t, expected, Collect(serializer))
}

func TestGapsRightToLeft(t *testing.T) {
	serializer := NewSerializer(
		parseRows("12..345."),
		Config{Order: RowMajor, Direction: RightToLeft})

	assert.Equal(
		t,
		[]Event{
			word(0x5034),
			move(0, -1, -1, 1, 0),
			byteEvent(0x12),
		},
		Collect(serializer))
}

func TestGapsLeftToRight(t *testing.T) {
	serializer := NewSerializer(
		parseRows("12..345."),
		Config{Order: RowMajor, Direction: LeftToRight})

	assert.Equal(
		t,
		[]Event{
			byteEvent(0x12),
			move(0, 1, 1, 2, 0),
			byteEvent(0x34),
			byteEvent(0x50),
		},
		Collect(serializer))
}

func TestFlipX(t *testing.T) {
	serializer := NewSerializer(
		parseRows("12..345."),
		Config{Order: RowMajor, Direction: LeftToRight, FlipX: true})

	assert.Equal(
		t,
		[]Event{
			byteEvent(0x05),
			byteEvent(0x43),
			move(0, 1, 1, 3, 0),
			byteEvent(0x21),
		},
		Collect(serializer))
}

func TestSlice(t *testing.T) {
	grid := parseRows("11223344")

	serializer := NewSerializer(
		grid,
		Config{Order: RowMajor, Direction: LeftToRight, Slice: 1})
	assert.Equal(
		t,
		[]Event{byteEvent(0x22), byteEvent(0x33), byteEvent(0x44)},
		Collect(serializer))

	serializer = NewSerializer(
		grid,
		Config{Order: RowMajor, Direction: LeftToRight, Slice: -1})
	assert.Equal(
		t,
		[]Event{byteEvent(0x11), byteEvent(0x22), byteEvent(0x33)},
		Collect(serializer))

	serializer = NewSerializer(
		grid,
		Config{Order: RowMajor, Direction: RightToLeft, Slice: -9})
	assert.Empty(t, Collect(serializer))
}

func TestOddWidth(t *testing.T) {
	serializer := NewSerializer(
		parseRows("123"),
		Config{Order: RowMajor, Direction: RightToLeft})

	assert.Equal(t, []Event{word(0x3012)}, Collect(serializer))
}

func TestInterleavedOrder(t *testing.T) {
	assert.Equal(
		t,
		[]int{0, 2, 4, 6, 7, 5, 3, 1},
		Config{Order: Interleaved}.rowOrder(8))
	assert.Equal(
		t,
		[]int{0, 2, 4, 3, 1},
		Config{Order: Interleaved}.rowOrder(5))
	assert.Equal(t, []int{0}, Config{Order: Interleaved}.rowOrder(1))
	assert.Empty(t, Config{Order: Interleaved}.rowOrder(0))

	serializer := NewSerializer(
		parseRows("11", "11", "11", "11"),
		Config{Order: Interleaved, Direction: RightToLeft, LineStride: 128})

	assert.Equal(
		t,
		[]Event{
			byteEvent(0x11),
			move(2, 1, 257, 1, 2),
			byteEvent(0x11),
			move(1, 1, 129, 1, 3),
			byteEvent(0x11),
			move(-2, 1, -255, 1, 1),
			byteEvent(0x11),
		},
		Collect(serializer))
}

func TestSerializerIsRestartable(t *testing.T) {
	serializer := NewSerializer(
		parseRows("1234....", "..5566.7", "8.9.a.b."),
		Config{Order: Interleaved, Direction: RightToLeft})

	first := Collect(serializer)
	require.NotEmpty(t, first)

	// Partially consume, then restart.
	serializer.Reset()
	serializer.Next()
	serializer.Next()

	assert.Equal(t, first, Collect(serializer))
	assert.Equal(t, first, Collect(serializer))
}

func TestNextAfterStopPanics(t *testing.T) {
	serializer := NewSerializer(
		NewPixelGrid(0, 0),
		Config{Order: RowMajor, Direction: RightToLeft})

	assert.Equal(t, StopEvent, serializer.Next().Kind)
	assert.Panics(t, func() { serializer.Next() })

	serializer.Reset()
	assert.Equal(t, StopEvent, serializer.Next().Kind)
}

func TestInvalidConfig(t *testing.T) {
	assert.Error(t, Config{Order: "zigzag", Direction: RightToLeft, LineStride: 1}.Validate())
	assert.Error(t, Config{Order: RowMajor, Direction: "up", LineStride: 1}.Validate())
	assert.Error(t, Config{Order: RowMajor, Direction: RightToLeft}.Validate())
	assert.Panics(t, func() {
		NewSerializer(NewPixelGrid(1, 1), Config{Order: "zigzag"})
	})
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "word 0x1234", word(0x1234).String())
	assert.Equal(t, "byte 0x05", byteEvent(5).String())
	assert.Equal(
		t,
		"move (+4, +1) delta +132 -> (4, 1)",
		move(1, 4, 132, 4, 1).String())
	assert.Equal(t, "stop", Event{Kind: StopEvent}.String())
}
