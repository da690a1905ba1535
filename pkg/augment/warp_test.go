package augment

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"testing"
)

func TestWarpZeroMagnitudeIsIdentity(t *testing.T) {
	src := gradient(24, 16)
	got := Warp(src, WarpConfig{Enabled: true, Magnitude: 0}, newRand())
	assertPixelsEqual(t, got, src)
}

func TestWarpKeepsSize(t *testing.T) {
	src := gradient(80, 30)
	rng := newRand()
	for i := 0; i < 5; i++ {
		assertSameSize(t, Warp(src, WarpConfig{Enabled: true, Magnitude: 6}, rng), src)
	}
}

func TestHomographyMapsCorners(t *testing.T) {
	src := [4][2]float64{{0, 0}, {100, 0}, {0, 40}, {100, 40}}
	dst := [4][2]float64{{3, -2}, {96, 4}, {3, 42}, {96, 36}}
	m, ok := homography(src, dst)
	if !ok {
		t.Fatal("homography reported singular system")
	}
	inv, ok := invert3(m)
	if !ok {
		t.Fatal("invert3 reported singular matrix")
	}
	for i, p := range src {
		u, v := project(m, p[0], p[1])
		if math.Abs(u-dst[i][0]) > 1e-6 || math.Abs(v-dst[i][1]) > 1e-6 {
			t.Fatalf("corner %d mapped to (%v,%v), want %v", i, u, v, dst[i])
		}
		x, y := project(inv, u, v)
		if math.Abs(x-p[0]) > 1e-6 || math.Abs(y-p[1]) > 1e-6 {
			t.Fatalf("inverse of corner %d = (%v,%v), want %v", i, x, y, p)
		}
	}
}

func project(m [9]float64, x, y float64) (float64, float64) {
	z := m[6]*x + m[7]*y + m[8]
	return (m[0]*x + m[1]*y + m[2]) / z, (m[3]*x + m[4]*y + m[5]) / z
}

// linearRamp encodes each pixel's source coordinates as R = 4x, G = 4y, so
// bilinear resampling reveals where an output pixel was read from.
func linearRamp(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(4 * x), G: uint8(4 * y), A: 0xff})
		}
	}
	return img
}

func TestWarpSharesCornerOffsets(t *testing.T) {
	const w, h, magnitude = 60, 40, 5.0
	src := linearRamp(w, h)
	got := Warp(src, WarpConfig{Enabled: true, Magnitude: magnitude}, rand.New(rand.NewPCG(3, 4)))

	// Replay the draws: left corners share (dx1, dy1), right corners (dx2, dy2).
	rng := rand.New(rand.NewPCG(3, 4))
	mag := Range{-magnitude, magnitude}
	dx1, dy1 := mag.Uniform(rng), mag.Uniform(rng)
	dx2, dy2 := mag.Uniform(rng), mag.Uniform(rng)
	corners := [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}}
	moved := [4][2]float64{{dx1, dy1}, {w - dx2, dy2}, {dx1, h - dy1}, {w - dx2, h - dy2}}

	m, ok := homography(corners, moved)
	if !ok {
		t.Fatal("homography reported singular system")
	}
	inv, ok := invert3(m)
	if !ok {
		t.Fatal("invert3 reported singular matrix")
	}

	for _, y := range []int{10, 20, 30} {
		for _, x := range []int{15, 30, 45} {
			sx, sy := project(inv, float64(x), float64(y))
			p := got.NRGBAAt(x, y)
			if math.Abs(float64(p.R)/4-sx) > 0.5 || math.Abs(float64(p.G)/4-sy) > 0.5 {
				t.Fatalf("output (%d,%d) read source (%.2f,%.2f), want (%.2f,%.2f)",
					x, y, float64(p.R)/4, float64(p.G)/4, sx, sy)
			}
		}
	}
}
