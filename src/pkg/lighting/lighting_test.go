package lighting

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passport-augment/src/pkg/augerr"
)

// scriptedSource replays fixed draws, cycling when exhausted.
type scriptedSource struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	return min(v, n-1)
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func noisyImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(40 + x*3), G: uint8(200 - y*2), B: uint8((x*y)%256), A: 255})
		}
	}
	return img
}

func TestGlareScenarioOnBlackImage(t *testing.T) {
	black := imaging.New(50, 50, color.Black)
	spots := []GlareSpot{{CenterX: 25, CenterY: 25, Radius: 5}}

	out, err := ApplyGlareSpots(black, spots, 0.7)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 178, G: 178, B: 178, A: 255}, out.NRGBAAt(25, 25))
	assert.Equal(t, color.NRGBA{R: 24, G: 24, B: 24, A: 255}, out.NRGBAAt(30, 25))
	assert.Equal(t, color.NRGBA{A: 255}, out.NRGBAAt(31, 25))
	assert.Equal(t, color.NRGBA{A: 255}, out.NRGBAAt(45, 25))

	saturated, err := ApplyGlareSpots(black, spots, 1.0)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, saturated.NRGBAAt(25, 25))
	assert.Equal(t, color.NRGBA{A: 255}, saturated.NRGBAAt(45, 25))

	// Source image is untouched.
	assert.Equal(t, color.NRGBA{A: 255}, black.NRGBAAt(25, 25))
}

func TestGlareSpotsAccumulate(t *testing.T) {
	spots := []GlareSpot{{CenterX: 10, CenterY: 10, Radius: 4}, {CenterX: 10, CenterY: 10, Radius: 4}}
	f := GlareField(20, 20, spots)
	assert.InDelta(t, 2.0, f.At(10, 10), 1e-12)
	assert.Equal(t, 0.0, f.At(0, 0))
}

func TestRandomGlareSpotsStayCentral(t *testing.T) {
	r := NewSource(7)
	for _, spot := range RandomGlareSpots(r, 200, 100, 50) {
		assert.GreaterOrEqual(t, spot.CenterX, 40)
		assert.LessOrEqual(t, spot.CenterX, 160)
		assert.GreaterOrEqual(t, spot.CenterY, 20)
		assert.LessOrEqual(t, spot.CenterY, 80)
		assert.GreaterOrEqual(t, spot.Radius, 5)
		assert.LessOrEqual(t, spot.Radius, 15)
	}
}

func TestGlareNeverDarkens(t *testing.T) {
	src := noisyImage(60, 40)
	spec := DefaultEffectSpec()
	spec.Effect = EffectGlare
	spec.NumGlares = 3
	spec.GlareIntensity = 0.9

	outputs, err := Apply(src, spec, NewSource(11))
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	for i := range src.Pix {
		assert.GreaterOrEqual(t, outputs[0].Image.Pix[i], src.Pix[i], "byte %d", i)
	}
}

func TestShadowNeverBrightens(t *testing.T) {
	src := noisyImage(60, 40)
	spec := DefaultEffectSpec()
	spec.Effect = EffectShadow
	spec.NumShadows = 3
	spec.ShadowIntensity = 0.6

	for seed := uint64(1); seed <= 6; seed++ {
		outputs, err := Apply(src, spec, NewSource(seed))
		require.NoError(t, err)
		assert.Len(t, outputs[0].Applied, 3)
		for i := range src.Pix {
			assert.LessOrEqual(t, outputs[0].Image.Pix[i], src.Pix[i], "seed %d byte %d", seed, i)
		}
	}
}

func TestShadowFieldIsBoundedMask(t *testing.T) {
	for shape := 0; shape < 3; shape++ {
		r := &scriptedSource{ints: []int{shape, 5, 5, 40, 40, 30}}
		mask, got := ShadowField(r, 80, 60)
		assert.Equal(t, shadowShapes[shape], got)
		for _, v := range mask.Values {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
		assert.Greater(t, mask.Max(), 0.0, "shape %s left an empty mask", got)
	}
}

func TestVignetteGain(t *testing.T) {
	f := VignetteField(100, 100, 0.5)
	assert.InDelta(t, 1.0, f.At(50, 50), 1e-12)
	assert.InDelta(t, 0.5, f.At(0, 0), 1e-9)
	assert.InDelta(t, 0.875, f.At(25, 25), 1e-9)
	for _, v := range f.Values {
		assert.GreaterOrEqual(t, v, 0.5-1e-12)
		assert.LessOrEqual(t, v, 1.0)
	}

	white := imaging.New(100, 100, color.White)
	spec := DefaultEffectSpec()
	spec.Effect = EffectUnevenLight
	spec.LightingKind = KindVignette
	outputs, err := Apply(white, spec, NewSource(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"vignette"}, outputs[0].Applied)
	assert.Equal(t, uint8(255), outputs[0].Image.NRGBAAt(50, 50).R)
	assert.InDelta(t, 127, int(outputs[0].Image.NRGBAAt(0, 0).R), 1)
}

func TestGradientFieldEndpoints(t *testing.T) {
	h := GradientField(11, 5, 0.4, OrientationHorizontal)
	assert.InDelta(t, 0.6, h.At(0, 2), 1e-12)
	assert.InDelta(t, 1.0, h.At(5, 4), 1e-12)
	assert.InDelta(t, 1.4, h.At(10, 0), 1e-12)

	v := GradientField(5, 11, 0.4, OrientationVertical)
	assert.InDelta(t, 0.6, v.At(3, 0), 1e-12)
	assert.InDelta(t, 1.4, v.At(0, 10), 1e-12)

	d := GradientField(10, 10, 0.4, OrientationDiagonal)
	assert.InDelta(t, 0.6, d.At(0, 0), 1e-12)
	assert.InDelta(t, 0.6+0.8*18.0/20.0, d.At(9, 9), 1e-12)
}

func TestSpotlightFieldPeaksAtCenter(t *testing.T) {
	f := SpotlightField(40, 20, 0.3, 10, 5)
	assert.InDelta(t, 1.3, f.At(10, 5), 1e-12)
	for _, v := range f.Values {
		assert.GreaterOrEqual(t, v, 0.7-1e-12)
		assert.LessOrEqual(t, v, 1.3+1e-12)
	}
	assert.Less(t, f.At(39, 19), f.At(11, 5))
}

func TestAllEffectIsDeterministicUnderSeed(t *testing.T) {
	src := noisyImage(48, 32)
	spec := DefaultEffectSpec()
	spec.Effect = EffectAll

	first, err := Apply(src, spec, NewSource(42))
	require.NoError(t, err)
	second, err := Apply(src, spec, NewSource(42))
	require.NoError(t, err)

	require.Len(t, first, 5)
	labels := make([]string, 0, len(first))
	for i := range first {
		labels = append(labels, first[i].Label)
		assert.Equal(t, first[i].Label, second[i].Label)
		assert.Equal(t, first[i].Applied, second[i].Applied)
		assert.Equal(t, first[i].Image.Pix, second[i].Image.Pix)
	}
	assert.Equal(t, []string{"glare", "shadow", "gradient", "spotlight", "vignette"}, labels)
}

func TestCombinedSkipsEveryStageWhenCoinsFail(t *testing.T) {
	src := noisyImage(40, 40)
	r := &scriptedSource{floats: []float64{0.99}}

	outputs, err := Apply(src, DefaultEffectSpec(), r)
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Equal(t, "combined", outputs[0].Label)
	assert.Empty(t, outputs[0].Applied)
	assert.Equal(t, src.Pix, outputs[0].Image.Pix)
}

func TestCombinedRunsStagesInOrder(t *testing.T) {
	gray := imaging.New(40, 40, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	// Every coin lands, every choice takes the first option: horizontal gradient,
	// an empty rectangular shadow and one small glare near (8, 8).
	r := &scriptedSource{floats: []float64{0}, ints: []int{0}}

	outputs, err := Apply(gray, DefaultEffectSpec(), r)
	require.NoError(t, err)
	assert.Equal(t, []string{"gradient/horizontal", "shadow/rectangular", "glare"}, outputs[0].Applied)

	// Left column carries the 1 - 0.5*0.8 gain and is far from the glare.
	assert.Equal(t, uint8(76), outputs[0].Image.NRGBAAt(0, 39).R)
	// The glare centre is brighter than the gradient alone would make it.
	assert.Greater(t, outputs[0].Image.NRGBAAt(8, 8).R, outputs[0].Image.NRGBAAt(8, 39).R)
}

func TestApplyErrors(t *testing.T) {
	_, err := Apply(nil, DefaultEffectSpec(), NewSource(1))
	assert.True(t, errors.Is(err, augerr.ErrInvalidImage))

	_, err = Apply(image.NewNRGBA(image.Rect(0, 0, 3, 0)), DefaultEffectSpec(), NewSource(1))
	assert.True(t, errors.Is(err, augerr.ErrInvalidImage))

	spec := DefaultEffectSpec()
	spec.Effect = "sparkle"
	_, err = Apply(noisyImage(4, 4), spec, NewSource(1))
	assert.True(t, errors.Is(err, augerr.ErrInvalidEffectSpec))

	spec = DefaultEffectSpec()
	spec.Effect = EffectUnevenLight
	spec.LightingKind = "strobe"
	_, err = Apply(noisyImage(4, 4), spec, NewSource(1))
	assert.True(t, errors.Is(err, augerr.ErrInvalidEffectSpec))
}

func TestApplyAcceptsNilSource(t *testing.T) {
	spec := DefaultEffectSpec()
	spec.Effect = EffectUnevenLight
	outputs, err := Apply(noisyImage(10, 10), spec, nil)
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Equal(t, image.Rect(0, 0, 10, 10), outputs[0].Image.Bounds())
}

func TestSigmaForKernel(t *testing.T) {
	assert.InDelta(t, 8.0, SigmaForKernel(51), 1e-12)
	assert.InDelta(t, 5.0, SigmaForKernel(31), 1e-12)
	assert.InDelta(t, 6.5, SigmaForKernel(41), 1e-12)
}

func TestIrregularShadowFillsEvenOdd(t *testing.T) {
	// Five vertices in pentagram order on a 100x100 canvas; draws are offsets from 10.
	r := &scriptedSource{ints: []int{2, 40, 0, 64, 72, 2, 28, 78, 28, 16, 72}}
	shape := irregularShadow(r, 100, 100)

	red := func(x, y int) uint32 {
		value, _, _, _ := shape.At(x, y).RGBA()
		return value >> 8
	}
	assert.Equal(t, uint32(255), red(50, 20), "star point")
	assert.Equal(t, uint32(0), red(50, 50), "inner pentagon")
	assert.Equal(t, uint32(0), red(5, 5), "outside")
}

func TestShadowMaskIsQuantizedTo8Bits(t *testing.T) {
	r := &scriptedSource{ints: []int{0, 5, 5, 40, 40}}
	mask, _ := ShadowField(r, 80, 60)
	for _, v := range mask.Values {
		steps := v * 255
		assert.InDelta(t, math.Round(steps), steps, 1e-9)
	}
}
