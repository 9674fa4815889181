package serializer

import (
	"fmt"
)

type ScanOrder string

const (
	RowMajor = ScanOrder("row_major")

	// Even rows top down, then odd rows bottom up.
	Interleaved = ScanOrder("interleaved")
)

type Direction string

const (
	// Descending addresses.  Words are written through the stack pointer.
	RightToLeft = Direction("right_to_left")

	// Ascending addresses.  Bytes only.
	LeftToRight = Direction("left_to_right")
)

const (
	DefaultLineStride = 128
)

type Config struct {
	Order     ScanOrder
	Direction Direction

	// Byte columns to clip.  Negative clips from the right, positive from the
	// left.
	Slice int

	// Bytes per screen line.
	LineStride int

	// Mirror the image horizontally.
	FlipX bool
}

func (config Config) Validate() error {
	switch config.Order {
	case RowMajor, Interleaved:
	default:
		return fmt.Errorf("invalid scan order: %q", config.Order)
	}

	switch config.Direction {
	case RightToLeft, LeftToRight:
	default:
		return fmt.Errorf("invalid scan direction: %q", config.Direction)
	}

	if config.LineStride <= 0 {
		return fmt.Errorf("invalid line stride: %d", config.LineStride)
	}

	return nil
}

// rowOrder returns the order in which rows are scanned.
func (config Config) rowOrder(height int) []int {
	rows := make([]int, 0, height)
	if config.Order == RowMajor {
		for y := 0; y < height; y++ {
			rows = append(rows, y)
		}
		return rows
	}

	for y := 0; y < height; y += 2 {
		rows = append(rows, y)
	}

	lastOdd := height - 1
	if lastOdd%2 == 0 {
		lastOdd--
	}
	for y := lastOdd; y > 0; y -= 2 {
		rows = append(rows, y)
	}

	return rows
}
