package lighting

import (
	"image"
	"math"

	"passport-augment/src/pkg/raster"
	"passport-augment/src/pkg/util"
)

// GlareSpot is one circular bright spot, in pixel coordinates.
type GlareSpot struct {
	CenterX int `json:"center_x"`
	CenterY int `json:"center_y"`
	Radius  int `json:"radius"`
}

/*
RandomGlareSpots places count spots with centers in the central 60% of each
axis and radii between 5% and 15% of the shorter side. Radii never drop
below one pixel.
*/
func RandomGlareSpots(r Source, width, height, count int) []GlareSpot {
	spots := make([]GlareSpot, 0, max(count, 0))
	shorter := min(width, height)
	for i := 0; i < count; i++ {
		spot := GlareSpot{
			CenterX: randInt(r, scaled(width, 0.2), scaled(width, 0.8)),
			CenterY: randInt(r, scaled(height, 0.2), scaled(height, 0.8)),
			Radius:  randInt(r, scaled(shorter, 0.05), scaled(shorter, 0.15)),
		}
		spot.Radius = max(spot.Radius, 1)
		spots = append(spots, spot)
	}
	return spots
}

/*
GlareField sums the masks of every spot. Inside a spot's circle the mask is
exp(-d / (0.5*radius)) clamped to [0, 1]; outside it the spot contributes 0.
*/
func GlareField(width, height int, spots []GlareSpot) *Field {
	f := NewField(width, height)
	for _, spot := range spots {
		radius := float64(max(spot.Radius, 1))
		x0, x1 := max(spot.CenterX-spot.Radius, 0), min(spot.CenterX+spot.Radius, width-1)
		y0, y1 := max(spot.CenterY-spot.Radius, 0), min(spot.CenterY+spot.Radius, height-1)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				d := math.Hypot(float64(x-spot.CenterX), float64(y-spot.CenterY))
				if d > radius {
					continue
				}
				v := util.Clamp(math.Exp(-d/(0.5*radius)), 0, 1)
				f.Values[y*width+x] += v
			}
		}
	}
	return f
}

// applyGlare composites spots additively onto buf and clamps the result.
func applyGlare(buf *raster.Buffer, spots []GlareSpot, intensity float64) {
	addScaled(buf, GlareField(buf.Width, buf.Height, spots), intensity)
	buf.Clamp()
}

/*
ApplyGlareSpots composites explicitly placed spots onto a copy of img. It is
the deterministic counterpart of the glare effect.
*/
func ApplyGlareSpots(img image.Image, spots []GlareSpot, intensity float64) (*image.NRGBA, error) {
	buf, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}
	applyGlare(buf, spots, intensity)
	return buf.ToNRGBA(), nil
}
