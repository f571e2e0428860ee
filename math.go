package sdfcat

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// Mod is the floored modulo x - y*floor(x/y). Unlike the truncated remainder
// of [math32.Mod] the result has the sign of y, so periodic domains have no seam at the origin.
// The caller must guarantee y != 0; the result is NaN otherwise.
func Mod(x, y float32) float32 {
	m := x - y*math32.Floor(x/y)
	// Rounding of x/y may leave m a hair outside [0, y).
	if (y > 0 && m < 0) || (y < 0 && m > 0) {
		m += y
	}
	if m == y {
		return 0
	}
	return m
}

// ModElem applies [Mod] per component. A zero period component leaves that axis untouched,
// as in [Repeat].
func ModElem(p, period ms3.Vec) ms3.Vec {
	return ms3.Vec{X: modNonZero(p.X, period.X), Y: modNonZero(p.Y, period.Y), Z: modNonZero(p.Z, period.Z)}
}

func modNonZero(x, y float32) float32 {
	if y == 0 {
		return x
	}
	return Mod(x, y)
}

// Fract returns the fractional part x - floor(x) in [0, 1) for finite x.
func Fract(x float32) float32 {
	f := x - math32.Floor(x)
	if f >= 1 {
		// Tiny negative x round up to 1 in float32.
		return 0
	}
	return f
}

// FractElem applies [Fract] per component.
func FractElem(p ms3.Vec) ms3.Vec {
	return ms3.Vec{X: Fract(p.X), Y: Fract(p.Y), Z: Fract(p.Z)}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	} else if v > hi {
		return hi
	}
	return v
}

// Mix linearly interpolates between x and y: x*(1-a) + y*a.
func Mix(x, y, a float32) float32 {
	return x*(1-a) + y*a
}

// Smoothstep performs Hermite interpolation between 0 and 1 when e0 < x < e1.
// The caller must guarantee e0 < e1; the result is unspecified otherwise.
func Smoothstep(e0, e1, x float32) float32 {
	t := Clamp((x-e0)/(e1-e0), 0, 1)
	return t * t * (3 - 2*t)
}

// Step returns 0 if x < edge and 1 otherwise.
func Step(edge, x float32) float32 {
	if x < edge {
		return 0
	}
	return 1
}

// Sign returns -1, 0 or 1 depending on the sign of a.
func Sign(a float32) float32 {
	if a == 0 {
		return 0
	}
	return math32.Copysign(1, a)
}

// Dot2 returns the squared norm of v.
func Dot2(v ms3.Vec) float32 {
	return ms3.Dot(v, v)
}
