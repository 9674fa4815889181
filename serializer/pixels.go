package serializer

import (
	"fmt"
)

// PaletteIndex is a pixel's colour index (0-15).
type PaletteIndex uint8

const (
	Transparent = PaletteIndex(0xff)

	MaxPaletteSize = 16
)

type PalettedImage interface {
	Width() int
	Height() int

	// Returns Transparent for pixels with no colour.
	Pixel(x int, y int) PaletteIndex
}

// PixelGrid is a row-major PalettedImage.
type PixelGrid struct {
	width  int
	height int
	pixels []PaletteIndex
}

func NewPixelGrid(width int, height int) *PixelGrid {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("invalid grid size %dx%d", width, height))
	}

	pixels := make([]PaletteIndex, width*height)
	for idx := range pixels {
		pixels[idx] = Transparent
	}

	return &PixelGrid{
		width:  width,
		height: height,
		pixels: pixels,
	}
}

// NewPixelGridFromRows builds a grid from equal length rows.
func NewPixelGridFromRows(rows [][]PaletteIndex) *PixelGrid {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}

	grid := NewPixelGrid(width, len(rows))
	for y, row := range rows {
		if len(row) != width {
			panic("should never happen")
		}
		for x, index := range row {
			grid.Set(x, y, index)
		}
	}
	return grid
}

func (grid *PixelGrid) Width() int {
	return grid.width
}

func (grid *PixelGrid) Height() int {
	return grid.height
}

func (grid *PixelGrid) Pixel(x int, y int) PaletteIndex {
	return grid.pixels[y*grid.width+x]
}

func (grid *PixelGrid) Set(x int, y int, index PaletteIndex) {
	if index != Transparent && index >= MaxPaletteSize {
		panic(fmt.Sprintf("palette index out of range: %d", index))
	}
	grid.pixels[y*grid.width+x] = index
}
