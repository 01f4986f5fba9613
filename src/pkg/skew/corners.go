package skew

import (
	"math"

	"passport-augment/src/pkg/augerr"
)

// Mode selects which skew factors displace the destination corners.
type Mode string

const (
	ModeHorizontal Mode = "horizontal"
	ModeVertical   Mode = "vertical"
	ModeCombined   Mode = "combined"
)

// ParseMode converts a CLI/config string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeHorizontal, ModeVertical, ModeCombined:
		return Mode(s), nil
	}
	return "", augerr.New(augerr.CodeInvalidEffectSpec, "unknown skew mode %q", s)
}

// horizontalCorners shifts the bottom edge right by hFactor*height.
func horizontalCorners(width, height, hFactor float64) Corners {
	shift := hFactor * height
	return Corners{
		{0, 0},
		{width, 0},
		{shift, height},
		{width + shift, height},
	}
}

// verticalCorners shifts only the top-right corner right by vFactor*width.
func verticalCorners(width, height, vFactor float64) Corners {
	return Corners{
		{0, 0},
		{width + vFactor*width, 0},
		{0, height},
		{width, height},
	}
}

/*
combinedCorners displaces all four corners from both factors at once:
hFactor*width moves the right edge down, vFactor*height moves the bottom edge
right. The top-left corner never moves.
*/
func combinedCorners(width, height, hFactor, vFactor float64) Corners {
	drop := hFactor * width
	shift := vFactor * height
	return Corners{
		{0, 0},
		{width, drop},
		{shift, height},
		{width + shift, height + drop},
	}
}

// DestinationCorners returns where the image's corners land for the given mode.
func DestinationCorners(mode Mode, width, height int, hFactor, vFactor float64) (Corners, error) {
	w, h := float64(width), float64(height)
	switch mode {
	case ModeHorizontal:
		return horizontalCorners(w, h, hFactor), nil
	case ModeVertical:
		return verticalCorners(w, h, vFactor), nil
	case ModeCombined:
		return combinedCorners(w, h, hFactor, vFactor), nil
	}
	return Corners{}, augerr.New(augerr.CodeInvalidEffectSpec, "unknown skew mode %q", mode)
}

// maxCanvasPixels bounds the output allocation (1 GiB of NRGBA).
const maxCanvasPixels = 1 << 28

/*
CanvasSize returns the output dimensions that hold the warped image unclipped.
Displacement magnitudes are used so negative factors get the same margin as
positive ones; same-sign combined factors may over-allocate.

Non-finite factors and canvases beyond maxCanvasPixels yield
augerr.ErrInvalidEffectSpec.
*/
func CanvasSize(mode Mode, width, height int, hFactor, vFactor float64) (outWidth, outHeight int, err error) {
	for _, factor := range []float64{hFactor, vFactor} {
		if math.IsNaN(factor) || math.IsInf(factor, 0) {
			return 0, 0, augerr.New(augerr.CodeInvalidEffectSpec, "skew factor %v is not finite", factor)
		}
	}

	w, h := float64(width), float64(height)
	var fw, fh float64
	switch mode {
	case ModeHorizontal:
		fw, fh = w+math.Abs(hFactor*h), h
	case ModeVertical:
		fw, fh = w+math.Abs(vFactor*w), h
	case ModeCombined:
		drop := math.Abs(hFactor * w)
		fw, fh = w+math.Abs(vFactor*h)+drop, h+drop
	default:
		return 0, 0, augerr.New(augerr.CodeInvalidEffectSpec, "unknown skew mode %q", mode)
	}

	if fw*fh > maxCanvasPixels {
		return 0, 0, augerr.New(augerr.CodeInvalidEffectSpec, "skewed canvas %.0fx%.0f is too large", fw, fh)
	}
	return int(fw), int(fh), nil
}
