package scan

import (
	"image"
	"image/color"
	"testing"
)

func grayImage(values []uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, len(values), 1))
	for x, v := range values {
		img.Set(x, 0, color.NRGBA{R: v, G: v, B: v, A: 255})
	}
	return img
}

func rowValues(img *image.NRGBA) []uint8 {
	var out []uint8
	for x := 0; x < img.Bounds().Dx(); x++ {
		out = append(out, img.NRGBAAt(x, 0).R)
	}
	return out
}

func TestGrayscale_Luminance(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})

	got := Grayscale(img).NRGBAAt(0, 0)
	if got.R != 76 || got.G != 76 || got.B != 76 {
		t.Errorf("red luminance = %v, want 76", got)
	}
}

func TestThreshold(t *testing.T) {
	got := rowValues(Threshold(grayImage([]uint8{0, 126, 127, 128, 255}), 127))
	want := []uint8{0, 0, 0, 255, 255}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("threshold(127) = %v, want %v", got, want)
		}
	}
}

func TestThreshold_Configurable(t *testing.T) {
	got := rowValues(Threshold(grayImage([]uint8{50, 100}), 60))
	if got[0] != 0 || got[1] != 255 {
		t.Errorf("threshold(60) = %v, want [0 255]", got)
	}
}

func TestThreshold_KeepsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{R: 200, G: 200, B: 200, A: 10})
	if a := Threshold(img, 127).NRGBAAt(0, 0).A; a != 10 {
		t.Errorf("alpha = %d, want 10", a)
	}
}

func TestEqualize_TwoLevels(t *testing.T) {
	got := rowValues(Equalize(grayImage([]uint8{100, 150, 100, 150})))
	want := []uint8{0, 255, 0, 255}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("equalize = %v, want %v", got, want)
		}
	}
}

func TestEqualize_ThreeLevels(t *testing.T) {
	got := rowValues(Equalize(grayImage([]uint8{50, 50, 100, 200})))
	want := []uint8{0, 0, 128, 255}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("equalize = %v, want %v", got, want)
		}
	}
}

func TestEqualize_UniformImageUnchanged(t *testing.T) {
	src := grayImage([]uint8{90, 90, 90})
	got := rowValues(Equalize(src))
	for _, v := range got {
		if v != 90 {
			t.Fatalf("uniform image changed: %v", got)
		}
	}
	// The source must not be modified in place.
	if src.NRGBAAt(0, 0).R != 90 {
		t.Error("source image was modified")
	}
}

func TestDefaultTransforms_Order(t *testing.T) {
	transforms := DefaultTransforms(DefaultOptions())
	want := []string{MethodOriginal, MethodGrayscale, MethodEnhancedContrast, MethodBinary}
	if len(transforms) != len(want) {
		t.Fatalf("got %d transforms, want %d", len(transforms), len(want))
	}
	for i, tr := range transforms {
		if tr.Label != want[i] {
			t.Errorf("transform %d = %q, want %q", i, tr.Label, want[i])
		}
	}
}

func TestDefaultTransforms_OriginalIsIdentity(t *testing.T) {
	src := grayImage([]uint8{1, 2, 3})
	if got := DefaultTransforms(DefaultOptions())[0].Apply(src); got != image.Image(src) {
		t.Error("original transform should return the source image")
	}
}
