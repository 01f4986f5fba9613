package skew

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

func assertPointNear(t *testing.T, want Point, m Matrix, p Point) {
	t.Helper()
	got, ok := m.Apply(p)
	require.True(t, ok)
	assert.InDelta(t, want.X, got.X, 1e-6, "x of %v", p)
	assert.InDelta(t, want.Y, got.Y, 1e-6, "y of %v", p)
}

func patternImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 11), B: uint8((x + y) * 3), A: 255})
		}
	}
	return img
}

func TestCanvasSize(t *testing.T) {
	tests := []struct {
		name          string
		mode          Mode
		width, height int
		h, v          float64
		wantW, wantH  int
	}{
		{"horizontal positive", ModeHorizontal, 100, 100, 0.2, 0, 120, 100},
		{"horizontal negative", ModeHorizontal, 100, 100, -0.2, 0, 120, 100},
		{"horizontal uses height", ModeHorizontal, 200, 50, 0.2, 0, 210, 50},
		{"vertical uses width", ModeVertical, 200, 100, 0, 0.25, 250, 100},
		{"vertical negative", ModeVertical, 200, 100, 0, -0.25, 250, 100},
		{"combined", ModeCombined, 100, 50, 0.1, 0.2, 120, 60},
		{"combined mixed signs", ModeCombined, 100, 50, -0.1, 0.2, 120, 60},
		{"zero factors", ModeCombined, 64, 48, 0, 0, 64, 48},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := CanvasSize(tt.mode, tt.width, tt.height, tt.h, tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestPerspectiveTransformMapsCornersExactly(t *testing.T) {
	src := RectCorners(80, 60)
	dst := Corners{{3, 5}, {90, -4}, {-6, 70}, {85, 66}}

	m, err := PerspectiveTransform(src, dst)
	require.NoError(t, err)
	for i := range src {
		assertPointNear(t, dst[i], m, src[i])
	}

	inv, err := m.Invert()
	require.NoError(t, err)
	for i := range dst {
		assertPointNear(t, src[i], inv, dst[i])
	}
}

func TestZeroFactorIsIdentity(t *testing.T) {
	for _, mode := range []Mode{ModeHorizontal, ModeVertical, ModeCombined} {
		t.Run(string(mode), func(t *testing.T) {
			m, err := Mapping(mode, 40, 30, 0, 0)
			require.NoError(t, err)
			for i := range m {
				assert.InDelta(t, Identity[i], m[i], 1e-9)
			}

			src := patternImage(40, 30)
			out, err := Apply(src, Params{Mode: mode})
			require.NoError(t, err)
			require.Equal(t, src.Bounds(), out.Bounds())
			for i := range src.Pix {
				assert.InDelta(t, src.Pix[i], out.Pix[i], 1, "byte %d", i)
			}
		})
	}
}

func TestHorizontalSkewShiftsBottomEdge(t *testing.T) {
	m, err := Mapping(ModeHorizontal, 100, 100, 0.2, 0)
	require.NoError(t, err)

	assertPointNear(t, Point{0, 0}, m, Point{0, 0})
	assertPointNear(t, Point{100, 0}, m, Point{100, 0})
	assertPointNear(t, Point{20, 100}, m, Point{0, 100})
	assertPointNear(t, Point{120, 100}, m, Point{100, 100})

	white := imaging.New(100, 100, color.White)
	out, err := Apply(white, Params{Mode: ModeHorizontal, HFactor: 0.2})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 120, 100), out.Bounds())

	black := color.NRGBA{A: 255}
	opaqueWhite := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	// Row 50 is shifted right by 10 pixels.
	assert.Equal(t, black, out.NRGBAAt(5, 50))
	assert.Equal(t, opaqueWhite, out.NRGBAAt(15, 50))
	assert.Equal(t, opaqueWhite, out.NRGBAAt(105, 50))
	assert.Equal(t, black, out.NRGBAAt(115, 50))
	// Top row is untouched.
	assert.Equal(t, opaqueWhite, out.NRGBAAt(0, 0))
	assert.Equal(t, black, out.NRGBAAt(110, 0))
}

func TestVerticalSkewMovesTopRightOnly(t *testing.T) {
	m, err := Mapping(ModeVertical, 100, 80, 0, 0.3)
	require.NoError(t, err)

	assertPointNear(t, Point{0, 0}, m, Point{0, 0})
	assertPointNear(t, Point{130, 0}, m, Point{100, 0})
	assertPointNear(t, Point{0, 80}, m, Point{0, 80})
	assertPointNear(t, Point{100, 80}, m, Point{100, 80})

	out, err := Apply(patternImage(100, 80), Params{Mode: ModeVertical, VFactor: 0.3})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 130, 80), out.Bounds())
}

func TestCombinedCorners(t *testing.T) {
	corners, err := DestinationCorners(ModeCombined, 100, 50, 0.1, 0.2)
	require.NoError(t, err)
	assert.Equal(t, Corners{{0, 0}, {100, 10}, {10, 50}, {110, 60}}, corners)

	m, err := Mapping(ModeCombined, 100, 50, 0.1, 0.2)
	require.NoError(t, err)
	src := RectCorners(100, 50)
	for i := range src {
		assertPointNear(t, corners[i], m, src[i])
	}
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	src := patternImage(20, 10)
	before := append([]uint8(nil), src.Pix...)

	_, err := Apply(src, Params{Mode: ModeCombined, HFactor: 0.3, VFactor: -0.15})
	require.NoError(t, err)
	assert.Equal(t, before, src.Pix)
}

func TestApplyAllReturnsThreeLabeledVariants(t *testing.T) {
	outputs, err := ApplyAll(patternImage(50, 40), 0.2, 0.1)
	require.NoError(t, err)
	require.Len(t, outputs, 3)

	assert.Equal(t, ModeCombined, outputs[0].Label)
	assert.Equal(t, image.Rect(0, 0, 64, 50), outputs[0].Image.Bounds())
	assert.Equal(t, ModeHorizontal, outputs[1].Label)
	assert.Equal(t, image.Rect(0, 0, 58, 40), outputs[1].Image.Bounds())
	assert.Equal(t, ModeVertical, outputs[2].Label)
	assert.Equal(t, image.Rect(0, 0, 55, 40), outputs[2].Image.Bounds())
}

func TestApplyErrors(t *testing.T) {
	_, err := Apply(nil, Params{Mode: ModeHorizontal, HFactor: 0.2})
	assert.True(t, errors.Is(err, augerr.ErrInvalidImage))

	_, err = Apply(image.NewNRGBA(image.Rect(0, 0, 0, 5)), Params{Mode: ModeHorizontal})
	assert.True(t, errors.Is(err, augerr.ErrInvalidImage))

	_, err = Apply(patternImage(5, 5), Params{Mode: "diagonal"})
	assert.True(t, errors.Is(err, augerr.ErrInvalidEffectSpec))

	_, err = ParseMode("sideways")
	assert.True(t, errors.Is(err, augerr.ErrInvalidEffectSpec))
}

func TestDegenerateCornersAreGeometryErrors(t *testing.T) {
	collapsed := Corners{{5, 5}, {5, 5}, {5, 5}, {5, 5}}
	m, err := PerspectiveTransform(RectCorners(10, 10), collapsed)
	if err == nil {
		_, err = m.Invert()
	}
	assert.True(t, errors.Is(err, augerr.ErrGeometry))

	collinear := Corners{{0, 0}, {10, 0}, {20, 0}, {30, 0}}
	_, err = PerspectiveTransform(collinear, RectCorners(10, 10))
	assert.True(t, errors.Is(err, augerr.ErrGeometry))
}

func TestPerspectiveTransformOnLargeImages(t *testing.T) {
	const width, height = 4000, 3000
	m, err := Mapping(ModeCombined, width, height, 0.25, -0.1)
	require.NoError(t, err)
	dst, err := DestinationCorners(ModeCombined, width, height, 0.25, -0.1)
	require.NoError(t, err)

	inverse, err := m.Invert()
	require.NoError(t, err)
	for i, p := range RectCorners(width, height) {
		got, ok := m.Apply(p)
		require.True(t, ok)
		assert.InDelta(t, dst[i].X, got.X, 1e-4)
		assert.InDelta(t, dst[i].Y, got.Y, 1e-4)

		back, ok := inverse.Apply(got)
		require.True(t, ok)
		assert.InDelta(t, p.X, back.X, 1e-4)
		assert.InDelta(t, p.Y, back.Y, 1e-4)
	}
}

func TestNonFiniteAndHugeFactorsAreRejected(t *testing.T) {
	img := patternImage(100, 100)
	tests := []struct {
		name   string
		params Params
	}{
		{"positive infinity", Params{Mode: ModeHorizontal, HFactor: math.Inf(1)}},
		{"negative infinity", Params{Mode: ModeVertical, VFactor: math.Inf(-1)}},
		{"nan", Params{Mode: ModeCombined, HFactor: math.NaN(), VFactor: 0.1}},
		{"nan in unused factor", Params{Mode: ModeHorizontal, HFactor: 0.1, VFactor: math.NaN()}},
		{"huge", Params{Mode: ModeHorizontal, HFactor: 1e17}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, err := Apply(img, tt.params)
				assert.True(t, errors.Is(err, augerr.ErrInvalidEffectSpec), "got %v", err)
			})
		})
	}
}
