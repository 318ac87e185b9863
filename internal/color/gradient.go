package color

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultLighten is how much the top stop of the backdrop gradient is brightened.
const DefaultLighten = 20

// Lighten adds amount to every channel, clamping each one independently to [0, 255].
func Lighten(s Sample, amount int) Sample {
	return Sample{
		R: clamp(s.R + amount),
		G: clamp(s.G + amount),
		B: clamp(s.B + amount),
	}
}

// Gradient returns the two stops of the backdrop: the lightened color on top, the sample at the bottom.
func Gradient(base Sample, amount int) (top, bottom Sample) {
	return Lighten(base, amount), base
}

// Blend interpolates between a and b in RGB space; t=0 is a, t=1 is b.
func Blend(a, b Sample, t float64) Sample {
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}

	r, g, bl := a.toColorful().BlendRgb(b.toColorful(), t).Clamped().RGB255()
	return Sample{R: int(r), G: int(g), B: int(bl)}
}

// Rows spreads a top-to-bottom gradient over n rows.
func Rows(top, bottom Sample, n int) []Sample {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []Sample{top}
	}

	rows := make([]Sample, n)
	for i := range rows {
		rows[i] = Blend(top, bottom, float64(i)/float64(n-1))
	}
	return rows
}

func (s Sample) toColorful() colorful.Color {
	return colorful.Color{
		R: float64(clamp(s.R)) / 255,
		G: float64(clamp(s.G)) / 255,
		B: float64(clamp(s.B)) / 255,
	}
}

func clamp(v int) int {
	switch {
	case v > 255:
		return 255
	case v < 0:
		return 0
	default:
		return v
	}
}
