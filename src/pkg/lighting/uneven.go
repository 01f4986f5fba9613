package lighting

import (
	"math"

	"passport-augment/src/pkg/augerr"
	"passport-augment/src/pkg/raster"
	"passport-augment/src/pkg/util"
)

// Kind is the family of full-frame gain field used for uneven lighting.
type Kind string

const (
	KindGradient  Kind = "gradient"
	KindSpotlight Kind = "spotlight"
	KindVignette  Kind = "vignette"
)

// Kinds lists every uneven-lighting kind in the order the "all" effect emits them.
var Kinds = []Kind{KindGradient, KindSpotlight, KindVignette}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if Kind(s) == k {
			return k, nil
		}
	}
	return "", augerr.New(augerr.CodeInvalidEffectSpec, "unknown lighting kind %q", s)
}

// Orientation is the axis of a gradient ramp.
type Orientation string

const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
	OrientationDiagonal   Orientation = "diagonal"
)

var orientations = []Orientation{OrientationHorizontal, OrientationVertical, OrientationDiagonal}

// ramp returns the i-th of n evenly spaced values from lo to hi inclusive.
func ramp(lo, hi float64, i, n int) float64 {
	if n <= 1 {
		return lo
	}
	return lo + (hi-lo)*float64(i)/float64(n-1)
}

/*
GradientField ramps the gain linearly from 1-intensity to 1+intensity. The
horizontal and vertical ramps span the full axis; the diagonal ramp follows
(x+y)/(width+height).
*/
func GradientField(width, height int, intensity float64, orientation Orientation) *Field {
	f := NewField(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gain float64
			switch orientation {
			case OrientationHorizontal:
				gain = ramp(1-intensity, 1+intensity, x, width)
			case OrientationVertical:
				gain = ramp(1-intensity, 1+intensity, y, height)
			default:
				gain = 1 - intensity + 2*intensity*(float64(x+y)/float64(width+height))
			}
			f.Set(x, y, gain)
		}
	}
	return f
}

// halfDiagonal is the distance from the image centre to a corner.
func halfDiagonal(width, height int) float64 {
	return math.Hypot(float64(width)/2, float64(height)/2)
}

/*
SpotlightField brightens around (cx, cy): gain = 1 + intensity*(1 - d/maxDist),
clamped to [1-intensity, 1+intensity].
*/
func SpotlightField(width, height int, intensity float64, cx, cy int) *Field {
	f := NewField(width, height)
	maxDist := halfDiagonal(width, height)
	lo, hi := 1-intensity, 1+intensity
	if lo > hi {
		lo, hi = hi, lo
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			d := math.Hypot(float64(x-cx), float64(y-cy))
			f.Set(x, y, util.Clamp(1+intensity*(1-d/maxDist), lo, hi))
		}
	}
	return f
}

/*
VignetteField darkens towards the corners: gain = 1 - intensity*(d/maxDist)^2,
clamped to [1-intensity, 1], with d measured from (width/2, height/2).
*/
func VignetteField(width, height int, intensity float64) *Field {
	f := NewField(width, height)
	cx, cy := width/2, height/2
	maxDist := halfDiagonal(width, height)
	lo, hi := 1-intensity, 1.0
	if lo > hi {
		lo, hi = hi, lo
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ratio := math.Hypot(float64(x-cx), float64(y-cy)) / maxDist
			f.Set(x, y, util.Clamp(1-intensity*ratio*ratio, lo, hi))
		}
	}
	return f
}

// spotlightCenter offsets the image centre by up to a quarter of each dimension.
func spotlightCenter(r Source, width, height int) (int, int) {
	cx := width/2 + randInt(r, -((width+3)/4), width/4)
	cy := height/2 + randInt(r, -((height+3)/4), height/4)
	return cx, cy
}

/*
UnevenField builds the gain field for kind, drawing any random placement from
r. The returned label names the kind and, for gradients, the orientation.
*/
func UnevenField(r Source, kind Kind, width, height int, intensity float64) (*Field, string, error) {
	switch kind {
	case KindGradient:
		orientation := orientations[r.IntN(len(orientations))]
		return GradientField(width, height, intensity, orientation), string(kind) + "/" + string(orientation), nil
	case KindSpotlight:
		cx, cy := spotlightCenter(r, width, height)
		return SpotlightField(width, height, intensity, cx, cy), string(kind), nil
	case KindVignette:
		return VignetteField(width, height, intensity), string(kind), nil
	}
	return nil, "", augerr.New(augerr.CodeInvalidEffectSpec, "unknown lighting kind %q", kind)
}

// applyUneven multiplies buf by the gain field of kind and clamps.
func applyUneven(r Source, buf *raster.Buffer, kind Kind, intensity float64) (string, error) {
	gain, label, err := UnevenField(r, kind, buf.Width, buf.Height, intensity)
	if err != nil {
		return "", err
	}
	multiply(buf, gain)
	buf.Clamp()
	return label, nil
}
