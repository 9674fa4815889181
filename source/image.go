package source

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

var (
	ErrRegionOutOfBounds = errors.New("region out of bounds")
)

// Region selects a rectangle of a tile sheet.  The zero region selects the
// whole sheet.
type Region struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func (region Region) IsZero() bool {
	return region == Region{}
}

func (region Region) String() string {
	return fmt.Sprintf(
		"(%d, %d) %dx%d",
		region.X,
		region.Y,
		region.Width,
		region.Height)
}

// resolve returns the region's rectangle within a width x height sheet.
func (region Region) resolve(width int, height int) (image.Rectangle, error) {
	if region.IsZero() {
		return image.Rect(0, 0, width, height), nil
	}

	if region.X < 0 || region.Y < 0 ||
		region.Width <= 0 || region.Height <= 0 ||
		region.X+region.Width > width ||
		region.Y+region.Height > height {

		return image.Rectangle{}, fmt.Errorf(
			"%w: %s not within %dx%d",
			ErrRegionOutOfBounds,
			region,
			width,
			height)
	}

	return image.Rect(
		region.X,
		region.Y,
		region.X+region.Width,
		region.Y+region.Height), nil
}

// Image is a decoded true colour image.  Pixels are 0xAARRGGBB with
// non-premultiplied alpha; alpha 0 is transparent.
type Image struct {
	pixels *image.NRGBA
}

func toNRGBA(src image.Image, bounds image.Rectangle) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return dst
}

func NewImage(src image.Image) *Image {
	return &Image{
		pixels: toNRGBA(src, src.Bounds()),
	}
}

// DecodeImage decodes png, gif, jpeg and bmp images.
func DecodeImage(reader io.Reader) (*Image, error) {
	decoded, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return NewImage(decoded), nil
}

func LoadImage(path string) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, err := DecodeImage(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return img, nil
}

func (img *Image) Width() int {
	return img.pixels.Rect.Dx()
}

func (img *Image) Height() int {
	return img.pixels.Rect.Dy()
}

func (img *Image) Pixel(x int, y int) uint32 {
	colour := img.pixels.NRGBAAt(x, y)
	return uint32(colour.A)<<24 |
		uint32(colour.R)<<16 |
		uint32(colour.G)<<8 |
		uint32(colour.B)
}

// Crop returns a copy of the selected region.
func (img *Image) Crop(region Region) (*Image, error) {
	bounds, err := region.resolve(img.Width(), img.Height())
	if err != nil {
		return nil, err
	}

	return &Image{
		pixels: toNRGBA(img.pixels, bounds),
	}, nil
}
