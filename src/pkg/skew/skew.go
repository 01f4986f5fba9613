/*
Package skew synthesizes perspective-skewed variants of document images.

A skew is described by one or two factors, each a signed fraction of an image
dimension. The factors displace the image's destination corners, a single
projective mapping is derived from the four corner pairs, and the image is
resampled into a canvas large enough to hold the warped result unclipped.
*/
package skew

import (
	"image"

	"passport-augment/src/pkg/raster"
)

// Params selects the skew mode and factors for one warp.
type Params struct {
	Mode    Mode    `json:"mode"`
	HFactor float64 `json:"h_factor"`
	VFactor float64 `json:"v_factor"`
}

// Output is one labeled result of ApplyAll.
type Output struct {
	Label  Mode
	Params Params
	Image  *image.NRGBA
}

/*
Mapping returns the projective mapping for a width x height image under the
given mode and factors.
*/
func Mapping(mode Mode, width, height int, hFactor, vFactor float64) (Matrix, error) {
	dst, err := DestinationCorners(mode, width, height, hFactor, vFactor)
	if err != nil {
		return Matrix{}, err
	}
	return PerspectiveTransform(RectCorners(float64(width), float64(height)), dst)
}

/*
Apply warps img according to params and returns a new image sized by
CanvasSize. The input image is never modified.

Errors:
  - augerr.ErrInvalidImage for a nil or zero-dimension image
  - augerr.ErrInvalidEffectSpec for an unknown mode
  - augerr.ErrGeometry when the corners admit no invertible mapping
*/
func Apply(img image.Image, params Params) (*image.NRGBA, error) {
	src, err := raster.Clone(img)
	if err != nil {
		return nil, err
	}
	width, height := src.Bounds().Dx(), src.Bounds().Dy()

	outWidth, outHeight, err := CanvasSize(params.Mode, width, height, params.HFactor, params.VFactor)
	if err != nil {
		return nil, err
	}

	forward, err := Mapping(params.Mode, width, height, params.HFactor, params.VFactor)
	if err != nil {
		return nil, err
	}
	inverse, err := forward.Invert()
	if err != nil {
		return nil, err
	}

	return warpPerspective(src, inverse, outWidth, outHeight), nil
}

/*
ApplyAll produces the combined, horizontal and vertical variants of img, in
that order. It stops at the first failure.
*/
func ApplyAll(img image.Image, hFactor, vFactor float64) ([]Output, error) {
	modes := []Mode{ModeCombined, ModeHorizontal, ModeVertical}
	outputs := make([]Output, 0, len(modes))
	for _, mode := range modes {
		params := Params{Mode: mode, HFactor: hFactor, VFactor: vFactor}
		warped, err := Apply(img, params)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, Output{Label: mode, Params: params, Image: warped})
	}
	return outputs, nil
}
