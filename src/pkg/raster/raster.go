// Package raster holds the image representation shared by the skew and lighting engines.
package raster

import (
	"image"

	"github.com/disintegration/imaging"

	"passport-augment/src/pkg/augerr"
	"passport-augment/src/pkg/util"
)

// Channels is the number of colour channels carried per pixel. Alpha is not modelled.
const Channels = 3

/*
Validate reports augerr.ErrInvalidImage for a nil image or one with a zero
dimension. Every engine entry point calls it before touching pixel data.
*/
func Validate(img image.Image) error {
	if img == nil {
		return augerr.New(augerr.CodeInvalidImage, "image is nil")
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return augerr.New(augerr.CodeInvalidImage, "image has zero dimension (%dx%d)", bounds.Dx(), bounds.Dy())
	}
	return nil
}

/*
Clone returns an opaque copy of img with bounds starting at (0, 0). The
caller's image is never aliased.
*/
func Clone(img image.Image) (*image.NRGBA, error) {
	if err := Validate(img); err != nil {
		return nil, err
	}
	cloned := imaging.Clone(img)
	for i := 3; i < len(cloned.Pix); i += 4 {
		cloned.Pix[i] = 255
	}
	return cloned, nil
}

// Buffer is a float64 RGB working copy of an image, row-major, three values per pixel.
type Buffer struct {
	Width  int
	Height int
	Pix    []float64
}

// NewBuffer allocates a black buffer.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height*Channels),
	}
}

// FromImage converts img into a new working buffer.
func FromImage(img image.Image) (*Buffer, error) {
	src, err := Clone(img)
	if err != nil {
		return nil, err
	}
	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	buf := NewBuffer(width, height)
	for y := 0; y < height; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+width*4]
		for x := 0; x < width; x++ {
			o := (y*width + x) * Channels
			buf.Pix[o] = float64(row[x*4])
			buf.Pix[o+1] = float64(row[x*4+1])
			buf.Pix[o+2] = float64(row[x*4+2])
		}
	}
	return buf, nil
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]float64, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// Offset returns the index of the first channel of pixel (x, y).
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * Channels
}

// At returns the three channel values of pixel (x, y).
func (b *Buffer) At(x, y int) [Channels]float64 {
	o := b.Offset(x, y)
	return [Channels]float64{b.Pix[o], b.Pix[o+1], b.Pix[o+2]}
}

// Clamp limits every channel value to [0, 255].
func (b *Buffer) Clamp() {
	for i, v := range b.Pix {
		b.Pix[i] = util.Clamp(v, 0, 255)
	}
}

/*
ToNRGBA clamps and truncates the buffer into an opaque 8-bit image. Truncation
(not rounding) is used so that repeated conversions never brighten a pixel.
*/
func (b *Buffer) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			o := b.Offset(x, y)
			p := out.PixOffset(x, y)
			out.Pix[p] = uint8(util.Clamp(b.Pix[o], 0, 255))
			out.Pix[p+1] = uint8(util.Clamp(b.Pix[o+1], 0, 255))
			out.Pix[p+2] = uint8(util.Clamp(b.Pix[o+2], 0, 255))
			out.Pix[p+3] = 255
		}
	}
	return out
}
