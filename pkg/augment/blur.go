package augment

import (
	"image"
	"math"
	"math/rand/v2"

	"github.com/disintegration/imaging"
)

// BlurConfig controls the Gaussian blur.
type BlurConfig struct {
	Enabled         bool     `yaml:"enabled" json:"enabled"`
	KernelSizeRange IntRange `yaml:"kernel_size_range" json:"kernel_size_range"`
}

// Blur applies a k×k Gaussian blur, with the odd k drawn from
// cfg.KernelSizeRange. Edge pixels are replicated past the border.
func Blur(src image.Image, cfg BlurConfig, rng *rand.Rand) *image.NRGBA {
	return blurKernel(src, cfg.KernelSizeRange.Odd(rng))
}

// KernelSigma returns the standard deviation used for a kernel of size k.
func KernelSigma(k int) float64 {
	return 0.3*(float64(k-1)*0.5-1) + 0.8
}

// GaussianWeights returns the k normalized taps of the 1-D Gaussian for a
// kernel of size k.
func GaussianWeights(k int) []float64 {
	sigma := KernelSigma(k)
	w := make([]float64, k)
	sum := 0.0
	for i := range w {
		d := float64(i - k/2)
		w[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += w[i]
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}

func blurKernel(src image.Image, k int) *image.NRGBA {
	if k <= 1 {
		return imaging.Clone(src)
	}
	w := GaussianWeights(k)
	switch k {
	case 3:
		var kern [9]float64
		outer(w, kern[:])
		return imaging.Convolve3x3(src, kern, nil)
	case 5:
		var kern [25]float64
		outer(w, kern[:])
		return imaging.Convolve5x5(src, kern, nil)
	}
	return separable(imaging.Clone(src), w)
}

// outer fills dst (row-major, len(w)² entries) with w ⊗ w.
func outer(w, dst []float64) {
	n := len(w)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			dst[y*n+x] = w[y] * w[x]
		}
	}
}

// separable runs the kernel w horizontally then vertically over the RGB
// channels of img. Alpha is kept.
func separable(img *image.NRGBA, w []float64) *image.NRGBA {
	width, height := img.Rect.Dx(), img.Rect.Dy()
	r := len(w) / 2
	tmp := make([]float64, width*height*3)

	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			var acc [3]float64
			for i, wt := range w {
				sx := min(max(x+i-r, 0), width-1)
				p := row[sx*4 : sx*4+3]
				acc[0] += wt * float64(p[0])
				acc[1] += wt * float64(p[1])
				acc[2] += wt * float64(p[2])
			}
			copy(tmp[(y*width+x)*3:], acc[:])
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var acc [3]float64
			for i, wt := range w {
				sy := min(max(y+i-r, 0), height-1)
				t := tmp[(sy*width+x)*3:]
				acc[0] += wt * t[0]
				acc[1] += wt * t[1]
				acc[2] += wt * t[2]
			}
			d := dst.PixOffset(x, y)
			dst.Pix[d] = clamp8(acc[0])
			dst.Pix[d+1] = clamp8(acc[1])
			dst.Pix[d+2] = clamp8(acc[2])
			dst.Pix[d+3] = img.Pix[y*img.Stride+x*4+3]
		}
	}
	return dst
}
