package report

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/mj1618/window-qr/internal/scan"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const maxLabelRunes = 48

// Annotate draws a box around every decoded QR code and labels it with the
// first method that found it and its payload. Codes are identified by text,
// so a code found by several methods is drawn once.
func Annotate(img image.Image, results []scan.Result) *image.RGBA {
	rgba := ImageToRGBA(img)

	boxColor := color.RGBA{R: 255, G: 0, B: 0, A: 255}
	textColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor := color.RGBA{R: 0, G: 0, B: 0, A: 200}

	drawn := make(map[string]bool)
	for _, r := range results {
		for _, p := range r.Payloads {
			if drawn[p.Text] || len(p.Points) == 0 {
				continue
			}
			drawn[p.Text] = true

			box := payloadBox(p.Points)
			drawRectangle(rgba, box, 2, boxColor)
			label := truncate(fmt.Sprintf("%s: %s", r.Method, p.Text), maxLabelRunes)
			drawTextWithOutline(rgba, label, box.Min.X, box.Min.Y-4, textColor, outlineColor)
		}
	}
	return rgba
}

// ImageToRGBA converts any image to RGBA
func ImageToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// payloadBox returns the bounding box of the result points, padded so the
// box surrounds the finder patterns rather than passing through their centres.
func payloadBox(points [][2]float64) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range points {
		minX = math.Min(minX, pt[0])
		minY = math.Min(minY, pt[1])
		maxX = math.Max(maxX, pt[0])
		maxY = math.Max(maxY, pt[1])
	}
	pad := math.Max(maxX-minX, maxY-minY)/6 + 4
	return image.Rect(
		int(minX-pad), int(minY-pad),
		int(math.Ceil(maxX+pad)), int(math.Ceil(maxY+pad)),
	)
}

// drawRectangle draws a rectangle outline of the given thickness, clipped to
// the image.
func drawRectangle(img *image.RGBA, r image.Rectangle, thickness int, c color.Color) {
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness),
		image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y),
		image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		e = e.Intersect(img.Bounds())
		if e.Empty() {
			continue
		}
		draw.Draw(img, e, src, image.Point{}, draw.Over)
	}
}

// drawTextWithOutline draws text with its baseline at (x, y), keeping the
// label inside the image when the box touches the top edge.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, textColor, outlineColor color.Color) {
	// basicfont.Face7x13 ascent
	if y < 13 {
		y = 13
	}
	if x < 0 {
		x = 0
	}

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, text, x+dx, y+dy, outlineColor)
		}
	}
	drawString(img, text, x, y, textColor)
}

func drawString(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
