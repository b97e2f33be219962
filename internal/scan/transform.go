package scan

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Method labels, in the order DefaultTransforms applies them.
const (
	MethodOriginal         = "original"
	MethodGrayscale        = "grayscale"
	MethodEnhancedContrast = "enhanced contrast"
	MethodBinary           = "binary"
)

// DefaultThreshold is the binarization cutoff on a 0-255 scale.
const DefaultThreshold = 127

// Transform is one preprocessing step tried before decoding.
type Transform struct {
	Label string
	Apply func(image.Image) image.Image
}

// Options tunes the heuristic constants of the default transforms.
type Options struct {
	Threshold uint8
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold}
}

// DefaultTransforms returns the original, grayscale, enhanced contrast and
// binary transforms. The last three all derive from the grayscale image.
func DefaultTransforms(opts Options) []Transform {
	return []Transform{
		{Label: MethodOriginal, Apply: func(img image.Image) image.Image { return img }},
		{Label: MethodGrayscale, Apply: func(img image.Image) image.Image { return Grayscale(img) }},
		{Label: MethodEnhancedContrast, Apply: func(img image.Image) image.Image { return Equalize(Grayscale(img)) }},
		{Label: MethodBinary, Apply: func(img image.Image) image.Image { return Threshold(Grayscale(img), opts.Threshold) }},
	}
}

// Grayscale converts img to luminance using BT.601 weights.
func Grayscale(img image.Image) *image.NRGBA {
	return imaging.Grayscale(img)
}

// Equalize spreads the intensity histogram of a grayscale image over the
// full 0-255 range. The lookup table starts at the lowest populated bin, so
// the darkest level maps to 0 and the brightest to 255. A single-level image
// is returned unchanged.
func Equalize(gray *image.NRGBA) *image.NRGBA {
	var hist [256]int
	total := 0
	forEachPixel(gray, func(p []uint8) {
		hist[p[0]]++
		total++
	})

	lo := 0
	for lo < 256 && hist[lo] == 0 {
		lo++
	}
	if lo == 256 || hist[lo] == total {
		return imaging.Clone(gray)
	}

	var lut [256]uint8
	scale := 255.0 / float64(total-hist[lo])
	sum := 0
	for i := lo + 1; i < 256; i++ {
		sum += hist[i]
		lut[i] = clampUint8(math.Round(float64(sum) * scale))
	}

	return imaging.AdjustFunc(gray, func(c color.NRGBA) color.NRGBA {
		v := lut[c.R]
		return color.NRGBA{R: v, G: v, B: v, A: c.A}
	})
}

// Threshold binarizes a grayscale image: values above threshold become 255,
// the rest 0.
func Threshold(gray *image.NRGBA, threshold uint8) *image.NRGBA {
	return imaging.AdjustFunc(gray, func(c color.NRGBA) color.NRGBA {
		var v uint8
		if c.R > threshold {
			v = 255
		}
		return color.NRGBA{R: v, G: v, B: v, A: c.A}
	})
}

func forEachPixel(img *image.NRGBA, fn func(p []uint8)) {
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			fn(row[x : x+4])
		}
	}
}

func clampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
