package augment

import (
	"image"
	"math"
	"math/rand/v2"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/mat"
)

// WarpConfig controls the perspective warp.
type WarpConfig struct {
	Enabled   bool    `yaml:"enabled" json:"enabled"`
	Magnitude float64 `yaml:"magnitude" json:"magnitude"` // max corner shift in pixels
}

// Warp moves the image corners by random offsets in [-magnitude, magnitude]
// and resamples through the resulting projective transform. The left corners
// share one (dx, dy) draw and the right corners another. Output size is
// unchanged; areas that map outside the source are black.
func Warp(src image.Image, cfg WarpConfig, rng *rand.Rand) *image.NRGBA {
	img := imaging.Clone(src)
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return img
	}

	mag := Range{-cfg.Magnitude, cfg.Magnitude}
	dx1, dy1 := mag.Uniform(rng), mag.Uniform(rng)
	dx2, dy2 := mag.Uniform(rng), mag.Uniform(rng)

	fw, fh := float64(w), float64(h)
	srcPts := [4][2]float64{{0, 0}, {fw, 0}, {0, fh}, {fw, fh}}
	dstPts := [4][2]float64{
		{dx1, dy1},           // top-left
		{fw - dx2, dy2},      // top-right
		{dx1, fh - dy1},      // bottom-left
		{fw - dx2, fh - dy2}, // bottom-right
	}

	m, ok := homography(srcPts, dstPts)
	if !ok {
		return img
	}
	inv, ok := invert3(m)
	if !ok {
		return img
	}
	return warpPerspective(img, inv)
}

// homography solves for the 3x3 matrix (row-major, m[8] == 1) mapping each
// src point onto the matching dst point.
func homography(src, dst [4][2]float64) ([9]float64, bool) {
	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)
	for i := 0; i < 4; i++ {
		x, y := src[i][0], src[i][1]
		u, v := dst[i][0], dst[i][1]
		a.SetRow(2*i, []float64{x, y, 1, 0, 0, 0, -u * x, -u * y})
		a.SetRow(2*i+1, []float64{0, 0, 0, x, y, 1, -v * x, -v * y})
		b.SetVec(2*i, u)
		b.SetVec(2*i+1, v)
	}

	var h mat.VecDense
	if err := h.SolveVec(a, b); err != nil {
		return [9]float64{}, false
	}
	var m [9]float64
	for i := 0; i < 8; i++ {
		m[i] = h.AtVec(i)
	}
	m[8] = 1
	return m, true
}

func invert3(m [9]float64) ([9]float64, bool) {
	var inv mat.Dense
	if err := inv.Inverse(mat.NewDense(3, 3, m[:])); err != nil {
		return [9]float64{}, false
	}
	var out [9]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r*3+c] = inv.At(r, c)
		}
	}
	return out, true
}

// warpPerspective fills a same-sized image by mapping every destination
// pixel back through inv and sampling src bilinearly.
func warpPerspective(src *image.NRGBA, inv [9]float64) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		fy := float64(y)
		for x := 0; x < w; x++ {
			fx := float64(x)
			z := inv[6]*fx + inv[7]*fy + inv[8]
			i := dst.PixOffset(x, y)
			dst.Pix[i+3] = 0xff
			if z == 0 {
				continue
			}
			sx := (inv[0]*fx + inv[1]*fy + inv[2]) / z
			sy := (inv[3]*fx + inv[4]*fy + inv[5]) / z
			sampleBilinear(src, sx, sy, dst.Pix[i:i+3])
		}
	}
	return dst
}

// sampleBilinear writes the interpolated RGB at (sx, sy) into out.
// Neighbours outside src count as black.
func sampleBilinear(src *image.NRGBA, sx, sy float64, out []uint8) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if sx <= -1 || sy <= -1 || sx >= float64(w) || sy >= float64(h) {
		return
	}
	x0, y0 := int(math.Floor(sx)), int(math.Floor(sy))
	ax, ay := sx-float64(x0), sy-float64(y0)

	var acc [3]float64
	for _, n := range [4]struct {
		x, y int
		wt   float64
	}{
		{x0, y0, (1 - ax) * (1 - ay)},
		{x0 + 1, y0, ax * (1 - ay)},
		{x0, y0 + 1, (1 - ax) * ay},
		{x0 + 1, y0 + 1, ax * ay},
	} {
		if n.wt == 0 || n.x < 0 || n.y < 0 || n.x >= w || n.y >= h {
			continue
		}
		p := src.PixOffset(src.Rect.Min.X+n.x, src.Rect.Min.Y+n.y)
		acc[0] += n.wt * float64(src.Pix[p])
		acc[1] += n.wt * float64(src.Pix[p+1])
		acc[2] += n.wt * float64(src.Pix[p+2])
	}
	for c := range acc {
		out[c] = clamp8(acc[c])
	}
}

// clamp8 rounds v and saturates it to [0, 255].
func clamp8(v float64) uint8 {
	v = math.Round(v)
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
