package source

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pattyshack/tilegen/serializer"
)

var (
	ErrUnmappedColour = errors.New("colour not in palette")
	ErrEmptyPalette   = errors.New("empty palette")
)

// PixelSource is a true colour image with 0xAARRGGBB pixels.
type PixelSource interface {
	Width() int
	Height() int
	Pixel(x int, y int) uint32
}

// Palette maps opaque 0xRRGGBB colours to palette indices.
type Palette struct {
	colours []uint32
	indices map[uint32]serializer.PaletteIndex
}

func NewPalette(colours []uint32) (*Palette, error) {
	if len(colours) == 0 {
		return nil, ErrEmptyPalette
	}

	if len(colours) > serializer.MaxPaletteSize {
		return nil, fmt.Errorf(
			"too many palette colours (%d > %d)",
			len(colours),
			serializer.MaxPaletteSize)
	}

	palette := &Palette{
		indices: map[uint32]serializer.PaletteIndex{},
	}
	for idx, colour := range colours {
		colour &= 0xffffff

		_, ok := palette.indices[colour]
		if ok {
			return nil, fmt.Errorf("duplicate palette colour #%06x", colour)
		}

		palette.colours = append(palette.colours, colour)
		palette.indices[colour] = serializer.PaletteIndex(idx)
	}

	return palette, nil
}

// ParseColour parses "#rrggbb" (the leading '#' is optional).
func ParseColour(text string) (uint32, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(text), "#")
	if len(digits) != 6 {
		return 0, fmt.Errorf("invalid colour %q", text)
	}

	value, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid colour %q: %w", text, err)
	}

	return uint32(value), nil
}

func ParsePalette(entries []string) (*Palette, error) {
	colours := make([]uint32, 0, len(entries))
	for _, entry := range entries {
		colour, err := ParseColour(entry)
		if err != nil {
			return nil, err
		}
		colours = append(colours, colour)
	}

	return NewPalette(colours)
}

func (palette *Palette) Len() int {
	return len(palette.colours)
}

func (palette *Palette) Colour(index serializer.PaletteIndex) uint32 {
	return palette.colours[index]
}

// Index ignores the colour's alpha channel.
func (palette *Palette) Index(colour uint32) (serializer.PaletteIndex, bool) {
	index, ok := palette.indices[colour&0xffffff]
	return index, ok
}

// Map converts a true colour image into palette indices.  Fully transparent
// pixels map to serializer.Transparent.
func Map(
	src PixelSource,
	palette *Palette,
) (
	*serializer.PixelGrid,
	error,
) {
	if palette == nil || palette.Len() == 0 {
		return nil, ErrEmptyPalette
	}

	grid := serializer.NewPixelGrid(src.Width(), src.Height())
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			colour := src.Pixel(x, y)
			if colour>>24 == 0 {
				continue
			}

			index, ok := palette.Index(colour)
			if !ok {
				return nil, fmt.Errorf(
					"%w: #%06x at (%d, %d)",
					ErrUnmappedColour,
					colour&0xffffff,
					x,
					y)
			}

			grid.Set(x, y, index)
		}
	}

	return grid, nil
}
