package lighting

import (
	"image"

	"github.com/disintegration/imaging"
)

/*
Field is a per-pixel float64 weight over an image's spatial domain. Glare and
shadow masks hold values in [0, 1] (overlapping glare spots may sum above 1);
uneven-lighting fields hold multiplicative gains around 1.
*/
type Field struct {
	Width  int
	Height int
	Values []float64
}

// NewField allocates a zero field.
func NewField(width, height int) *Field {
	return &Field{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
}

// At returns the value at (x, y).
func (f *Field) At(x, y int) float64 {
	return f.Values[y*f.Width+x]
}

// Set stores v at (x, y).
func (f *Field) Set(x, y int, v float64) {
	f.Values[y*f.Width+x] = v
}

// Add accumulates other into f. Both fields must share dimensions.
func (f *Field) Add(other *Field) {
	for i, v := range other.Values {
		f.Values[i] += v
	}
}

// Max returns the largest value in the field.
func (f *Field) Max() float64 {
	maxValue := 0.0
	for i, v := range f.Values {
		if i == 0 || v > maxValue {
			maxValue = v
		}
	}
	return maxValue
}

/*
SigmaForKernel converts an odd Gaussian kernel size into the sigma a
kernel-sized Gaussian blur would use when no sigma is given.
*/
func SigmaForKernel(kernel int) float64 {
	return 0.3*(float64(kernel-1)*0.5-1) + 0.8
}

/*
softenedField blurs a rasterised white-on-black shape with imaging.Blur and
reads it back as a [0, 1] field from the red channel. The blur runs on 8-bit
channels, so every mask value is a multiple of 1/255.
*/
func softenedField(shape image.Image, kernel int) *Field {
	blurred := imaging.Blur(shape, SigmaForKernel(kernel))
	return fieldFromImage(blurred)
}

func fieldFromImage(img *image.NRGBA) *Field {
	bounds := img.Bounds()
	f := NewField(bounds.Dx(), bounds.Dy())
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			f.Set(x, y, float64(img.Pix[img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)])/255)
		}
	}
	return f
}
