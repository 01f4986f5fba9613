package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"passport-augment/src/pkg/lighting"
	"passport-augment/src/pkg/skew"
)

const outputExt = ".jpg"

/*
formatFactor renders a factor the way dataset file names carry it: shortest
decimal form, always with a fractional part ("0.2", "-0.15", "1.0").
*/
func formatFactor(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// skewFileName names one skew output; the mode picks which factors appear.
func skewFileName(base string, mode skew.Mode, hFactor, vFactor float64) string {
	switch mode {
	case skew.ModeHorizontal:
		return fmt.Sprintf("%s_h_skew_%s%s", base, formatFactor(hFactor), outputExt)
	case skew.ModeVertical:
		return fmt.Sprintf("%s_v_skew_%s%s", base, formatFactor(vFactor), outputExt)
	default:
		return fmt.Sprintf("%s_combined_h%s_v%s%s", base, formatFactor(hFactor), formatFactor(vFactor), outputExt)
	}
}

// sweepFileName names the index-th (1-based) factor of a sweep.
func sweepFileName(base string, mode skew.Mode, index int) string {
	axis := "h"
	if mode == skew.ModeVertical {
		axis = "v"
	}
	return fmt.Sprintf("%s_%s_skew_%d%s", base, axis, index, outputExt)
}

// sweepDirName is the per-country, per-axis directory of a sweep.
func sweepDirName(country string, mode skew.Mode) string {
	axis := "h"
	if mode == skew.ModeVertical {
		axis = "v"
	}
	return fmt.Sprintf("%s_%s_skewed", country, axis)
}

/*
lightingFileName names one lighting output. Outputs of the "all" effect carry
the intensity of their family; single effects carry only the effect name.
*/
func lightingFileName(base string, spec lighting.EffectSpec, label string) string {
	if spec.Effect != lighting.EffectAll {
		return fmt.Sprintf("%s_lighting_%s%s", base, spec.Effect, outputExt)
	}
	switch label {
	case string(lighting.EffectGlare):
		return fmt.Sprintf("%s_glare_%s%s", base, formatFactor(spec.GlareIntensity), outputExt)
	case string(lighting.EffectShadow):
		return fmt.Sprintf("%s_shadow_%s%s", base, formatFactor(spec.ShadowIntensity), outputExt)
	default:
		return fmt.Sprintf("%s_lighting_%s_%s%s", base, label, formatFactor(spec.LightingIntensity), outputExt)
	}
}
