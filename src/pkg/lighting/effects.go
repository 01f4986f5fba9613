/*
Package lighting synthesizes procedural lighting perturbations on document images.

Every effect builds one or more Fields over the image's spatial domain and
blends them into a float working copy of the image:
  - glare: additive bright spots
  - shadow: multiplicative darkening by softened shapes
  - uneven lighting: a full-frame multiplicative gain (gradient, spotlight or vignette)

Effects draw their random placement from an injected Source, so a fixed seed
reproduces the same output. The caller's image is never modified.
*/
package lighting

import (
	"image"

	"passport-augment/src/pkg/augerr"
	"passport-augment/src/pkg/raster"
)

// Effect names a lighting effect family.
type Effect string

const (
	EffectGlare       Effect = "glare"
	EffectShadow      Effect = "shadow"
	EffectUnevenLight Effect = "uneven_light"
	EffectCombined    Effect = "combined"
	EffectAll         Effect = "all"
)

// Effects lists every supported family.
var Effects = []Effect{EffectGlare, EffectShadow, EffectUnevenLight, EffectCombined, EffectAll}

// ParseEffect validates an effect family name.
func ParseEffect(s string) (Effect, error) {
	for _, e := range Effects {
		if Effect(s) == e {
			return e, nil
		}
	}
	return "", augerr.New(augerr.CodeInvalidEffectSpec, "unknown lighting effect %q", s)
}

// Probabilities and intensity scale of the combined effect's stages.
const (
	combinedUnevenChance = 0.7
	combinedShadowChance = 0.5
	combinedGlareChance  = 0.3
	combinedScale        = 0.8
)

// EffectSpec configures one lighting run. It is not modified by Apply.
type EffectSpec struct {
	Effect            Effect  `json:"effect"`
	GlareIntensity    float64 `json:"glare_intensity"`
	ShadowIntensity   float64 `json:"shadow_intensity"`
	LightingIntensity float64 `json:"lighting_intensity"`
	NumGlares         int     `json:"num_glares"`
	NumShadows        int     `json:"num_shadows"`
	// LightingKind fixes the uneven_light kind; empty picks one at random.
	LightingKind Kind `json:"lighting_kind,omitempty"`
}

// DefaultEffectSpec returns the stock intensities and counts.
func DefaultEffectSpec() EffectSpec {
	return EffectSpec{
		Effect:            EffectCombined,
		GlareIntensity:    0.6,
		ShadowIntensity:   0.4,
		LightingIntensity: 0.5,
		NumGlares:         1,
		NumShadows:        1,
	}
}

// Validate reports augerr.ErrInvalidEffectSpec for unknown families or kinds.
func (s EffectSpec) Validate() error {
	if _, err := ParseEffect(string(s.Effect)); err != nil {
		return err
	}
	if s.LightingKind != "" {
		if _, err := ParseKind(string(s.LightingKind)); err != nil {
			return err
		}
	}
	return nil
}

// Output is one labeled result of Apply.
type Output struct {
	// Label is the effect family, or the lighting kind for the "all" effect.
	Label string
	// Applied names the sub-effects that actually fired, e.g. "gradient/diagonal" or "shadow/circular".
	Applied []string
	Image   *image.NRGBA
}

/*
Apply runs spec against img. The "all" effect returns five outputs labeled
glare, shadow, gradient, spotlight and vignette, each computed from the
original image; every other effect returns a single output.

A nil r is replaced by a clock-seeded generator.

Errors:
  - augerr.ErrInvalidImage for a nil or zero-dimension image
  - augerr.ErrInvalidEffectSpec for an unknown effect or kind
*/
func Apply(img image.Image, spec EffectSpec, r Source) ([]Output, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	original, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}
	if r == nil {
		r = NewSource(0)
	}

	if spec.Effect == EffectAll {
		return applyAll(r, original, spec)
	}

	buf := original.Clone()
	var applied []string
	switch spec.Effect {
	case EffectGlare:
		applied = glareStage(r, buf, spec.GlareIntensity, spec.NumGlares)
	case EffectShadow:
		applied = shadowStage(r, buf, spec.ShadowIntensity, spec.NumShadows)
	case EffectUnevenLight:
		kind := spec.LightingKind
		if kind == "" {
			kind = Kinds[r.IntN(len(Kinds))]
		}
		label, err := applyUneven(r, buf, kind, spec.LightingIntensity)
		if err != nil {
			return nil, err
		}
		applied = []string{label}
	case EffectCombined:
		applied, err = applyCombined(r, buf, spec)
		if err != nil {
			return nil, err
		}
	}

	return []Output{{Label: string(spec.Effect), Applied: applied, Image: buf.ToNRGBA()}}, nil
}

func glareStage(r Source, buf *raster.Buffer, intensity float64, count int) []string {
	spots := RandomGlareSpots(r, buf.Width, buf.Height, count)
	applyGlare(buf, spots, intensity)
	return []string{string(EffectGlare)}
}

func shadowStage(r Source, buf *raster.Buffer, intensity float64, count int) []string {
	shapes := applyShadows(r, buf, intensity, count)
	applied := make([]string, 0, len(shapes))
	for _, shape := range shapes {
		applied = append(applied, string(EffectShadow)+"/"+string(shape))
	}
	return applied
}

/*
applyCombined runs uneven lighting, shadow and glare in that order, each gated
by its own coin flip and scaled by combinedScale. Later stages see the output
of earlier ones.
*/
func applyCombined(r Source, buf *raster.Buffer, spec EffectSpec) ([]string, error) {
	var applied []string

	if r.Float64() < combinedUnevenChance {
		kind := Kinds[r.IntN(len(Kinds))]
		label, err := applyUneven(r, buf, kind, spec.LightingIntensity*combinedScale)
		if err != nil {
			return nil, err
		}
		applied = append(applied, label)
	}

	if r.Float64() < combinedShadowChance {
		applied = append(applied, shadowStage(r, buf, spec.ShadowIntensity*combinedScale, spec.NumShadows)...)
	}

	if r.Float64() < combinedGlareChance {
		applied = append(applied, glareStage(r, buf, spec.GlareIntensity*combinedScale, spec.NumGlares)...)
	}

	return applied, nil
}

// applyAll runs glare, shadow and every lighting kind independently against original.
func applyAll(r Source, original *raster.Buffer, spec EffectSpec) ([]Output, error) {
	outputs := make([]Output, 0, 2+len(Kinds))

	glare := original.Clone()
	applied := glareStage(r, glare, spec.GlareIntensity, spec.NumGlares)
	outputs = append(outputs, Output{Label: string(EffectGlare), Applied: applied, Image: glare.ToNRGBA()})

	shadow := original.Clone()
	applied = shadowStage(r, shadow, spec.ShadowIntensity, spec.NumShadows)
	outputs = append(outputs, Output{Label: string(EffectShadow), Applied: applied, Image: shadow.ToNRGBA()})

	for _, kind := range Kinds {
		lit := original.Clone()
		label, err := applyUneven(r, lit, kind, spec.LightingIntensity)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, Output{Label: string(kind), Applied: []string{label}, Image: lit.ToNRGBA()})
	}

	return outputs, nil
}
