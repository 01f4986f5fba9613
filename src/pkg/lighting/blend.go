package lighting

import (
	"passport-augment/src/pkg/raster"
)

// addScaled brightens every channel by scale*mask*255. Clamping is left to the caller.
func addScaled(buf *raster.Buffer, mask *Field, scale float64) {
	for i, v := range mask.Values {
		if v == 0 {
			continue
		}
		delta := scale * v * 255
		o := i * raster.Channels
		buf.Pix[o] += delta
		buf.Pix[o+1] += delta
		buf.Pix[o+2] += delta
	}
}

// multiply scales every channel by the gain at its pixel.
func multiply(buf *raster.Buffer, gain *Field) {
	for i, g := range gain.Values {
		o := i * raster.Channels
		buf.Pix[o] *= g
		buf.Pix[o+1] *= g
		buf.Pix[o+2] *= g
	}
}

// darken scales every channel by 1 - intensity*mask.
func darken(buf *raster.Buffer, mask *Field, intensity float64) {
	for i, v := range mask.Values {
		if v == 0 {
			continue
		}
		factor := 1 - intensity*v
		o := i * raster.Channels
		buf.Pix[o] *= factor
		buf.Pix[o+1] *= factor
		buf.Pix[o+2] *= factor
	}
}
