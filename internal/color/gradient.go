package color

import (
	"github.com/lucasb-eyer/go-colorful"
)

// BuildShade interpolates a six-step true-color gradient between from
// and to (inclusive), used for the size and age shade tables (§4.C).
// Interpolating in colorful's Lab space, rather than a hand-picked
// six-color ramp, keeps the buckets perceptually even.
func BuildShade(from, to colorful.Color) Shade {
	var s Shade
	for i := 0; i < 6; i++ {
		t := float64(i) / 5
		c := from.BlendLab(to, t)
		r, g, b := c.RGB255()
		s[i] = Code{Value: int32(r)<<16 | int32(g)<<8 | int32(b), RGB: true}
	}
	return s
}

// DefaultSizeShade runs from a cool blue (small) to a warm red (huge),
// the conventional "heat" ramp clifm's color-scheme files configure
// via SizeShades=.
func DefaultSizeShade() Shade {
	return BuildShade(colorful.Color{R: 0.3, G: 0.5, B: 1.0}, colorful.Color{R: 1.0, G: 0.2, B: 0.2})
}

// DefaultAgeShade runs from bright green (just modified) to dim gray
// (ancient), matching DateShades= in a color-scheme file.
func DefaultAgeShade() Shade {
	return BuildShade(colorful.Color{R: 0.3, G: 1.0, B: 0.3}, colorful.Color{R: 0.5, G: 0.5, B: 0.5})
}
