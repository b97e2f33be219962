// Package scantest generates QR code images for tests.
package scantest

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// QRImage renders text as a QR code of size x size pixels centred on a
// canvas padded by margin, drawing modules in dark and background in light.
func QRImage(text string, size, margin int, dark, light color.Color) (*image.NRGBA, error) {
	matrix, err := qrcode.NewQRCodeWriter().Encode(text, gozxing.BarcodeFormat_QR_CODE, size, size, nil)
	if err != nil {
		return nil, err
	}

	w := matrix.GetWidth() + 2*margin
	h := matrix.GetHeight() + 2*margin
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(light), image.Point{}, draw.Src)
	for y := 0; y < matrix.GetHeight(); y++ {
		for x := 0; x < matrix.GetWidth(); x++ {
			if matrix.Get(x, y) {
				img.Set(x+margin, y+margin, dark)
			}
		}
	}
	return img, nil
}

// CleanQRImage renders a black-on-white QR code.
func CleanQRImage(text string) (*image.NRGBA, error) {
	return QRImage(text, 300, 50, color.Black, color.White)
}
