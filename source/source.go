package source

import (
	"path/filepath"
	"strings"

	"github.com/pattyshack/tilegen/serializer"
)

const (
	PixelMapExtension = ".pix"
)

// CropGrid returns a copy of the grid's region.
func CropGrid(
	grid *serializer.PixelGrid,
	region Region,
) (
	*serializer.PixelGrid,
	error,
) {
	bounds, err := region.resolve(grid.Width(), grid.Height())
	if err != nil {
		return nil, err
	}

	result := serializer.NewPixelGrid(bounds.Dx(), bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			result.Set(x, y, grid.Pixel(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return result, nil
}

// LoadTile reads the tile's region from either a pixel map (.pix) or an
// image.  Images are mapped through palette; pixel maps already hold
// palette indices.
func LoadTile(
	path string,
	region Region,
	palette *Palette,
) (
	*serializer.PixelGrid,
	error,
) {
	if strings.EqualFold(filepath.Ext(path), PixelMapExtension) {
		grid, err := LoadPixelMap(path)
		if err != nil {
			return nil, err
		}
		return CropGrid(grid, region)
	}

	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}

	img, err = img.Crop(region)
	if err != nil {
		return nil, err
	}

	return Map(img, palette)
}
