package lighting

import (
	"image"

	"github.com/fogleman/gg"

	"passport-augment/src/pkg/raster"
)

// ShadowShape is the outline of a cast shadow before its edges are softened.
type ShadowShape string

const (
	ShadowRectangular ShadowShape = "rectangular"
	ShadowCircular    ShadowShape = "circular"
	ShadowIrregular   ShadowShape = "irregular"
)

var shadowShapes = []ShadowShape{ShadowRectangular, ShadowCircular, ShadowIrregular}

// Blur kernel sizes per shape; larger shapes get wider penumbras.
const (
	rectangularKernel = 51
	circularKernel    = 31
	irregularKernel   = 41
)

func newShapeCanvas(width, height int) *gg.Context {
	dc := gg.NewContext(width, height)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)
	return dc
}

// rectangularShadow fills [x1,x2) x [y1,y2) with the top-left corner in the first 70% of each axis.
func rectangularShadow(r Source, width, height int) image.Image {
	x1 := randInt(r, 0, scaled(width, 0.7))
	y1 := randInt(r, 0, scaled(height, 0.7))
	x2 := randInt(r, x1, width)
	y2 := randInt(r, y1, height)

	dc := newShapeCanvas(width, height)
	if x2 > x1 && y2 > y1 {
		dc.DrawRectangle(float64(x1), float64(y1), float64(x2-x1), float64(y2-y1))
		dc.Fill()
	}
	return dc.Image()
}

// circularShadow fills a disc centred in the central 60% with a radius of 10-30% of the shorter side.
func circularShadow(r Source, width, height int) image.Image {
	shorter := min(width, height)
	cx := randInt(r, scaled(width, 0.2), scaled(width, 0.8))
	cy := randInt(r, scaled(height, 0.2), scaled(height, 0.8))
	radius := randInt(r, scaled(shorter, 0.1), scaled(shorter, 0.3))

	dc := newShapeCanvas(width, height)
	// Pixel centres sit at +0.5 in gg's coordinate space.
	dc.DrawCircle(float64(cx)+0.5, float64(cy)+0.5, float64(radius)+0.5)
	dc.Fill()
	return dc.Image()
}

// irregularShadow fills a polygon of 3-6 vertices drawn from the central 80%.
func irregularShadow(r Source, width, height int) image.Image {
	count := randInt(r, 3, 6)
	dc := newShapeCanvas(width, height)
	for i := 0; i < count; i++ {
		x := randInt(r, scaled(width, 0.1), scaled(width, 0.9))
		y := randInt(r, scaled(height, 0.1), scaled(height, 0.9))
		dc.LineTo(float64(x)+0.5, float64(y)+0.5)
	}
	dc.ClosePath()
	// Self-intersecting outlines leave their overlaps unshaded.
	dc.SetFillRuleEvenOdd()
	dc.Fill()
	return dc.Image()
}

/*
ShadowField picks one of the three shapes uniformly, rasterises it and softens
its edges. The returned mask is in [0, 1].
*/
func ShadowField(r Source, width, height int) (*Field, ShadowShape) {
	shape := shadowShapes[r.IntN(len(shadowShapes))]
	switch shape {
	case ShadowRectangular:
		return softenedField(rectangularShadow(r, width, height), rectangularKernel), shape
	case ShadowCircular:
		return softenedField(circularShadow(r, width, height), circularKernel), shape
	default:
		return softenedField(irregularShadow(r, width, height), irregularKernel), shape
	}
}

/*
applyShadows darkens buf with count shadows. Each shadow multiplies the result
of the previous one, and the buffer is clamped once at the end.
*/
func applyShadows(r Source, buf *raster.Buffer, intensity float64, count int) []ShadowShape {
	shapes := make([]ShadowShape, 0, max(count, 0))
	for i := 0; i < count; i++ {
		mask, shape := ShadowField(r, buf.Width, buf.Height)
		darken(buf, mask, intensity)
		shapes = append(shapes, shape)
	}
	buf.Clamp()
	return shapes
}
