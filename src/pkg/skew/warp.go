package skew

import (
	"image"
	"math"
)

/*
warpPerspective fills a width x height canvas by inverse-mapping every
destination pixel through inverse and sampling src bilinearly. Source
neighbours outside the image contribute black, so the area outside the warped
quadrilateral stays black and its edges blend into the background.
*/
func warpPerspective(src *image.NRGBA, inverse Matrix, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	srcW, srcH := src.Bounds().Dx(), src.Bounds().Dy()

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			o := dst.PixOffset(x, y)
			dst.Pix[o+3] = 255

			p, ok := inverse.Apply(Point{float64(x), float64(y)})
			if !ok || p.X <= -1 || p.Y <= -1 || p.X >= float64(srcW) || p.Y >= float64(srcH) {
				continue
			}

			x0, y0 := int(math.Floor(p.X)), int(math.Floor(p.Y))
			fx, fy := p.X-float64(x0), p.Y-float64(y0)

			var acc [3]float64
			accumulate(&acc, src, x0, y0, (1-fx)*(1-fy))
			accumulate(&acc, src, x0+1, y0, fx*(1-fy))
			accumulate(&acc, src, x0, y0+1, (1-fx)*fy)
			accumulate(&acc, src, x0+1, y0+1, fx*fy)

			for c := 0; c < 3; c++ {
				dst.Pix[o+c] = uint8(math.Min(255, math.Max(0, math.Round(acc[c]))))
			}
		}
	}
	return dst
}

func accumulate(acc *[3]float64, src *image.NRGBA, x, y int, weight float64) {
	if weight == 0 || x < 0 || y < 0 || x >= src.Bounds().Dx() || y >= src.Bounds().Dy() {
		return
	}
	o := src.PixOffset(x, y)
	acc[0] += weight * float64(src.Pix[o])
	acc[1] += weight * float64(src.Pix[o+1])
	acc[2] += weight * float64(src.Pix[o+2])
}
