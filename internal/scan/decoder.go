package scan

import (
	"image"

	"github.com/makiuchi-d/gozxing"
	multiqrcode "github.com/makiuchi-d/gozxing/multi/qrcode"
)

// Payload is one decoded QR code.
type Payload struct {
	Text   string       `yaml:"text"             json:"text"`
	Points [][2]float64 `yaml:"points,omitempty" json:"points,omitempty"`
}

// Decoder finds QR codes in an image. Finding nothing is not an error.
type Decoder interface {
	Decode(img image.Image) []Payload
}

type multiReader interface {
	DecodeMultiple(image *gozxing.BinaryBitmap, hints map[gozxing.DecodeHintType]interface{}) ([]*gozxing.Result, error)
}

// GozxingDecoder decodes every QR code in an image with gozxing.
type GozxingDecoder struct {
	reader multiReader
	hints  map[gozxing.DecodeHintType]interface{}
}

// NewGozxingDecoder returns a decoder restricted to the QR symbology that
// reads byte payloads as UTF-8.
func NewGozxingDecoder() *GozxingDecoder {
	return &GozxingDecoder{
		reader: multiqrcode.NewQRCodeMultiReader(),
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_POSSIBLE_FORMATS: []gozxing.BarcodeFormat{gozxing.BarcodeFormat_QR_CODE},
			gozxing.DecodeHintType_TRY_HARDER:       true,
			gozxing.DecodeHintType_CHARACTER_SET:    "UTF-8",
		},
	}
}

// Decode returns the payloads found in img, or nil. Symbols carrying the
// same text are reported once.
func (d *GozxingDecoder) Decode(img image.Image) []Payload {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil
	}
	results, err := d.reader.DecodeMultiple(bmp, d.hints)
	if err != nil {
		return nil
	}

	var payloads []Payload
	seen := make(map[string]bool, len(results))
	for _, r := range results {
		if seen[r.GetText()] {
			continue
		}
		seen[r.GetText()] = true
		p := Payload{Text: r.GetText()}
		for _, pt := range r.GetResultPoints() {
			p.Points = append(p.Points, [2]float64{pt.GetX(), pt.GetY()})
		}
		payloads = append(payloads, p)
	}
	return payloads
}
