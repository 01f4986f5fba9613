package skew

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"passport-augment/src/pkg/augerr"
)

// Point is a position on the image plane, in pixels.
type Point struct {
	X float64
	Y float64
}

// Corners are ordered top-left, top-right, bottom-left, bottom-right.
type Corners [4]Point

// Matrix is a row-major 3x3 projective mapping.
type Matrix [9]float64

// Identity is the mapping that leaves every point in place.
var Identity = Matrix{1, 0, 0, 0, 1, 0, 0, 0, 1}

// singularEpsilon bounds determinants and homogeneous weights treated as zero.
const singularEpsilon = 1e-12

// RectCorners returns the corners of a width x height rectangle anchored at the origin.
func RectCorners(width, height float64) Corners {
	return Corners{
		{0, 0},
		{width, 0},
		{0, height},
		{width, height},
	}
}

/*
PerspectiveTransform returns the unique projective mapping taking each source
corner onto the matching destination corner.

The bottom-right element is fixed to 1 and the remaining eight unknowns come
from the standard 4-point direct linear transform, solved with an LU
decomposition:

	u = (a*x + b*y + c) / (g*x + h*y + 1)
	v = (d*x + e*y + f) / (g*x + h*y + 1)

A singular or numerically ill-conditioned system (three collinear source
points) yields augerr.ErrGeometry.
*/
func PerspectiveTransform(src, dst Corners) (Matrix, error) {
	// Solve on coordinates scaled into [-1, 1] to keep the system well conditioned.
	srcScale, dstScale := src.scale(), dst.scale()
	src, dst = src.scaled(srcScale), dst.scaled(dstScale)

	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)
	for i := 0; i < 4; i++ {
		x, y := src[i].X, src[i].Y
		u, v := dst[i].X, dst[i].Y
		a.SetRow(i, []float64{x, y, 1, 0, 0, 0, -x * u, -y * u})
		a.SetRow(i+4, []float64{0, 0, 0, x, y, 1, -x * v, -y * v})
		b.SetVec(i, u)
		b.SetVec(i+4, v)
	}

	var solution mat.VecDense
	if err := solution.SolveVec(a, b); err != nil {
		return Matrix{}, augerr.Wrap(augerr.CodeGeometry, err, "perspective system is singular")
	}

	// Undo the scaling: H = diag(1/dstScale, 1/dstScale, 1) * N * diag(srcScale, srcScale, 1).
	rowScale := [3]float64{1 / dstScale, 1 / dstScale, 1}
	colScale := [3]float64{srcScale, srcScale, 1}
	var m Matrix
	for i := 0; i < 8; i++ {
		m[i] = solution.AtVec(i) * rowScale[i/3] * colScale[i%3]
	}
	m[8] = 1
	return m, nil
}

// scale returns the factor that maps the largest coordinate magnitude to 1.
func (c Corners) scale() float64 {
	largest := 0.0
	for _, p := range c {
		largest = max(largest, math.Abs(p.X), math.Abs(p.Y))
	}
	if largest == 0 {
		return 1
	}
	return 1 / largest
}

func (c Corners) scaled(factor float64) Corners {
	for i := range c {
		c[i].X *= factor
		c[i].Y *= factor
	}
	return c
}

// Apply maps p through m. ok is false when p lands on the line at infinity.
func (m Matrix) Apply(p Point) (q Point, ok bool) {
	w := m[6]*p.X + m[7]*p.Y + m[8]
	if math.Abs(w) < singularEpsilon {
		return Point{}, false
	}
	return Point{
		X: (m[0]*p.X + m[1]*p.Y + m[2]) / w,
		Y: (m[3]*p.X + m[4]*p.Y + m[5]) / w,
	}, true
}

func (m Matrix) dense() *mat.Dense {
	return mat.NewDense(3, 3, append([]float64(nil), m[:]...))
}

// Determinant of the 3x3 matrix.
func (m Matrix) Determinant() float64 {
	return mat.Det(m.dense())
}

/*
Invert returns the inverse mapping. A mapping that collapses the plane onto a
line or a point cannot be resampled and yields augerr.ErrGeometry.
*/
func (m Matrix) Invert() (Matrix, error) {
	det := m.Determinant()
	if math.Abs(det) < singularEpsilon {
		return Matrix{}, augerr.New(augerr.CodeGeometry, "projective mapping is not invertible (det=%g)", det)
	}

	var dense mat.Dense
	if err := dense.Inverse(m.dense()); err != nil {
		return Matrix{}, augerr.Wrap(augerr.CodeGeometry, err, "invert projective mapping")
	}

	var inv Matrix
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			inv[row*3+col] = dense.At(row, col)
		}
	}
	return inv, nil
}
