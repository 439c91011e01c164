package window

import "unicode/utf16"

// WidthEstimator approximates the rendered pixel width of a caption.
type WidthEstimator interface {
	Estimate(text string) float64
}

// FixedWidthEstimator models every character as the same width plus a
// constant margin for padding and stroke.
type FixedWidthEstimator struct {
	CharWidth float64
	Margin    float64
}

// Estimate counts UTF-16 code units, so characters outside the BMP such as
// emoji count as two.
func (e FixedWidthEstimator) Estimate(text string) float64 {
	return float64(utf16Length(text))*e.CharWidth + e.Margin
}

func utf16Length(text string) int {
	n := 0
	for _, r := range text {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}
