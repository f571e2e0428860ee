package sdfrender

import (
	"image/color"

	math "github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfcat"
)

// Invalid distances are drawn in this color by every conversion in this package.
var red = color.RGBA{R: 255, A: 255}

func invalid(d float32) bool {
	return math.IsNaN(d) || math.IsInf(d, 0)
}

// BlackAndWhite draws the interior (negative distance) black and the exterior white.
func BlackAndWhite(d float32) color.Color {
	switch {
	case invalid(d):
		return red
	case d < 0:
		return color.Black
	}
	return color.White
}

// ColorConversionInigoQuilez creates a new color conversion using [Inigo Quilez]'s style:
// orange outside, blue inside, with distance bands and a white contour at the surface.
// A good value for characteristic distance is the bounding box diagonal divided by 3.
//
// [Inigo Quilez]: https://iquilezles.org/articles/distfunctions2d/
func ColorConversionInigoQuilez(characteristicDistance float32) func(float32) color.Color {
	inv := 1. / characteristicDistance
	return func(d float32) color.Color {
		if invalid(d) {
			return red
		}
		d *= inv
		var c ms3.Vec
		if d > 0 {
			c = ms3.Vec{X: 0.9, Y: 0.6, Z: 0.3}
		} else {
			c = ms3.Vec{X: 0.65, Y: 0.85, Z: 1.0}
		}
		c = ms3.Scale(1-math.Exp(-6*math.Abs(d)), c)
		c = ms3.Scale(0.8+0.2*math.Cos(150*d), c)
		edge := 1 - sdfcat.Smoothstep(0, 0.01, math.Abs(d))
		return color.RGBA{
			R: unit8(sdfcat.Mix(c.X, 1, edge)),
			G: unit8(sdfcat.Mix(c.Y, 1, edge)),
			B: unit8(sdfcat.Mix(c.Z, 1, edge)),
			A: 255,
		}
	}
}

// ColorConversionLinearGradient creates a color conversion function that creates a gradient centered
// along d=0 that extends gradientLength. Colors are interpolated in HSV space.
// A zero gradient length gives a hard edge between c0 (inside) and c1 (outside).
func ColorConversionLinearGradient(gradientLength float32, c0, c1 color.Color) func(d float32) color.Color {
	h0, s0, v0 := colorToHSV(c0)
	h1, s1, v1 := colorToHSV(c1)
	return func(d float32) color.Color {
		if invalid(d) {
			return red
		}
		if gradientLength <= 0 {
			if d < 0 {
				return c0
			}
			return c1
		}
		blend := d/gradientLength + 0.5
		if blend <= 0 {
			return c0
		} else if blend >= 1 {
			return c1
		}
		r, g, b := hsvToRGB(interpHSV(h0, s0, v0, h1, s1, v1, blend))
		return color.RGBA{R: unit8(r), G: unit8(g), B: unit8(b), A: 255}
	}
}

func unit8(f float32) uint8 {
	return uint8(sdfcat.Clamp(f, 0, 1) * math.MaxUint8)
}

func interpHSV(h0, s0, v0, h1, s1, v1, t float32) (h, s, v float32) {
	// Go around the hue circle the short way.
	switch {
	case h1-h0 > 0.5:
		h0 += 1.0
	case h1-h0 < -0.5:
		h1 += 1.0
	}
	h = sdfcat.Fract(sdfcat.Mix(h0, h1, t))
	s = sdfcat.Mix(s0, s1, t)
	v = sdfcat.Mix(v0, v1, t)
	return h, s, v
}

func colorToHSV(c color.Color) (h, s, v float32) {
	r0, g0, b0, _ := c.RGBA()
	return rgbToHSV(float32(r0>>8)/math.MaxUint8, float32(g0>>8)/math.MaxUint8, float32(b0>>8)/math.MaxUint8)
}

// hsvToRGB converts hue, saturation and brightness values on the range of 0.0
// to 1.0 to RGB floating point values on the range of 0.0 to 1.0
func hsvToRGB(h, s, v float32) (r, g, b float32) {
	var (
		c = s * v
		x = c * (1 - math.Abs(sdfcat.Mod(h*6, 2)-1))
		m = v - c
	)
	switch {
	case h <= 1.0/6:
		r, g, b = c, x, 0
	case h <= 2.0/6:
		r, g, b = x, c, 0
	case h <= 3.0/6:
		r, g, b = 0, c, x
	case h <= 4.0/6:
		r, g, b = 0, x, c
	case h <= 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}

// rgbToHSV converts red, green, and blue floating point values on the range
// 0.0 to 1.0 to hue, saturation and brightness values on the range 0.0 to 1.0
func rgbToHSV(r, g, b float32) (h, s, v float32) {
	var (
		xmax = max(r, g, b)
		xmin = min(r, g, b)
		c    = xmax - xmin
	)
	v = xmax
	switch {
	case c == 0:
		h = 0
	case v == r:
		h = (g - b) / (c * 6)
	case v == g:
		h = 1.0/3 + (b-r)/(c*6)
	case v == b:
		h = 2.0/3 + (r-g)/(c*6)
	}
	if h < 0 {
		h += 1
	}
	if xmax > 0 {
		s = c / xmax
	}
	return h, s, v
}
