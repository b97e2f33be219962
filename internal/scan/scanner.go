// Package scan looks for QR codes in window captures by decoding a fixed
// cascade of preprocessed variants of each image.
package scan

import "image"

// Result holds the payloads one transform produced.
type Result struct {
	Method   string    `yaml:"method"   json:"method"`
	Payloads []Payload `yaml:"payloads" json:"payloads"`
}

// Scanner applies each transform to the source image and decodes the output.
type Scanner struct {
	transforms []Transform
	decoder    Decoder
}

// NewScanner creates a scanner. Transforms run in the given order.
func NewScanner(decoder Decoder, transforms []Transform) *Scanner {
	return &Scanner{transforms: transforms, decoder: decoder}
}

// NewDefaultScanner creates a scanner using gozxing and DefaultTransforms.
func NewDefaultScanner(opts Options) *Scanner {
	return NewScanner(NewGozxingDecoder(), DefaultTransforms(opts))
}

// Methods returns the transform labels in application order.
func (s *Scanner) Methods() []string {
	labels := make([]string, len(s.transforms))
	for i, t := range s.transforms {
		labels[i] = t.Label
	}
	return labels
}

// Scan decodes every transform of img. All transforms are attempted even
// after a success; only transforms that yielded payloads are returned.
func (s *Scanner) Scan(img image.Image) []Result {
	var results []Result
	for _, t := range s.transforms {
		payloads := s.decoder.Decode(t.Apply(img))
		if len(payloads) == 0 {
			continue
		}
		results = append(results, Result{Method: t.Label, Payloads: payloads})
	}
	return results
}

// Found reports whether any result carries a payload.
func Found(results []Result) bool {
	for _, r := range results {
		if len(r.Payloads) > 0 {
			return true
		}
	}
	return false
}
