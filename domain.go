package sdfcat

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// Domain operators transform the query point before it is handed to an inner
// distance function. Rigid motions (rotation, translation) and mirroring keep the
// inner field exact. Repetition and elongation keep it conservative under the
// conditions stated on each function. Twist and bend stretch space: the inner field
// must be divided by the factor reported by [TwistLipschitz] or [BendLipschitz]
// to remain conservative.

// RotateX rotates p by radians around the X axis.
func RotateX(p ms3.Vec, radians float32) ms3.Vec {
	s, c := math32.Sincos(radians)
	return ms3.Vec{X: p.X, Y: c*p.Y - s*p.Z, Z: s*p.Y + c*p.Z}
}

// RotateY rotates p by radians around the Y axis.
func RotateY(p ms3.Vec, radians float32) ms3.Vec {
	s, c := math32.Sincos(radians)
	return ms3.Vec{X: c*p.X + s*p.Z, Y: p.Y, Z: -s*p.X + c*p.Z}
}

// RotateZ rotates p by radians around the Z axis.
func RotateZ(p ms3.Vec, radians float32) ms3.Vec {
	s, c := math32.Sincos(radians)
	return ms3.Vec{X: c*p.X - s*p.Y, Y: s*p.X + c*p.Y, Z: p.Z}
}

// RotateAxis rotates p by radians around axis, which need not be normalized.
// A zero axis is an invalid parameter and panics with a [*ParamError].
func RotateAxis(p, axis ms3.Vec, radians float32) ms3.Vec {
	n := ms3.Norm(axis)
	if !(n > epstol) {
		invalidParam("RotateAxis", "axis norm", n)
	}
	s, c := math32.Sincos(radians)
	return rodrigues(p, ms3.Scale(1/n, axis), s, c)
}

// rodrigues rotates p around unit axis k given the sine and cosine of the angle.
func rodrigues(p, k ms3.Vec, s, c float32) ms3.Vec {
	kxp := ms3.Vec{
		X: k.Y*p.Z - k.Z*p.Y,
		Y: k.Z*p.X - k.X*p.Z,
		Z: k.X*p.Y - k.Y*p.X,
	}
	kdp := ms3.Dot(k, p)
	return ms3.Add(ms3.Add(ms3.Scale(c, p), ms3.Scale(s, kxp)), ms3.Scale(kdp*(1-c), k))
}

// Rotation is a precomputed rotation around an arbitrary axis. Build it with [Builder.NewRotation].
type Rotation struct {
	axis ms3.Vec
	s, c float32
}

// NewRotation creates a rotation of radians around axis. A zero axis is reported as an invalid parameter.
func (bld *Builder) NewRotation(radians float32, axis ms3.Vec) Rotation {
	n := ms3.Norm(axis)
	if !(n > epstol) {
		bld.paramErr("NewRotation", "axis norm", n)
		return Rotation{axis: ms3.Vec{Z: 1}, c: 1}
	}
	s, c := math32.Sincos(radians)
	return Rotation{axis: ms3.Scale(1/n, axis), s: s, c: c}
}

// Apply rotates p.
func (r Rotation) Apply(p ms3.Vec) ms3.Vec {
	return rodrigues(p, r.axis, r.s, r.c)
}

// Domain applies the inverse rotation. Evaluating an inner field at Domain(p)
// yields the field of the inner shape rotated by the rotation's angle. Exact.
func (r Rotation) Domain(p ms3.Vec) ms3.Vec {
	return rodrigues(p, r.axis, -r.s, r.c)
}

// Translate maps p into the frame of a shape moved by offset. Exact.
func Translate(p, offset ms3.Vec) ms3.Vec {
	return ms3.Sub(p, offset)
}

// Repeat maps p to its representative in the repetition cell centered at the origin.
// Cells have size period along each axis; a zero period component leaves that axis untouched.
// The result is conservative only when the inner shape is symmetric within its cell, so that
// the nearest instance to p is always the one in the cell containing p.
func Repeat(p, period ms3.Vec) ms3.Vec {
	return ms3.Vec{
		X: repeat1(p.X, period.X),
		Y: repeat1(p.Y, period.Y),
		Z: repeat1(p.Z, period.Z),
	}
}

func repeat1(x, c float32) float32 {
	if c == 0 {
		return x
	}
	return Mod(x+0.5*c, c) - 0.5*c
}

// RepeatLimited repeats the domain with the given spacing a finite number of times: cell
// indices are clamped to [-limit, limit] per axis. Same conservativeness condition as [Repeat].
// A negative or NaN limit component panics with a [*ParamError].
func RepeatLimited(p, spacing, limit ms3.Vec) ms3.Vec {
	for _, l := range [3]float32{limit.X, limit.Y, limit.Z} {
		if !(l >= 0) {
			invalidParam("RepeatLimited", "limit", l)
		}
	}
	return ms3.Vec{
		X: repeatLimited1(p.X, spacing.X, limit.X),
		Y: repeatLimited1(p.Y, spacing.Y, limit.Y),
		Z: repeatLimited1(p.Z, spacing.Z, limit.Z),
	}
}

func repeatLimited1(x, s, l float32) float32 {
	if s == 0 {
		return x
	}
	return x - s*Clamp(math32.Round(x/s), -l, l)
}

// PolarRepeat repeats the domain n times around the Z axis by folding p into the angular
// sector centered on the +X axis. Conservative when the inner shape lies inside that sector.
// n must be positive, otherwise it panics with a [*ParamError].
func PolarRepeat(p ms3.Vec, n int) ms3.Vec {
	if n <= 0 {
		invalidParam("PolarRepeat", "count", float32(n))
	}
	sector := 2 * math32.Pi / float32(n)
	a := math32.Atan2(p.Y, p.X) + sector/2
	a = Mod(a, sector) - sector/2
	r := hypotf(p.X, p.Y)
	s, c := math32.Sincos(a)
	return ms3.Vec{X: r * c, Y: r * s, Z: p.Z}
}

// Symmetry mirrors p across the selected cartesian planes by taking absolute values.
// Exact for inner shapes lying entirely in the positive half-space of each mirrored axis.
func Symmetry(p ms3.Vec, x, y, z bool) ms3.Vec {
	if x {
		p.X = absf(p.X)
	}
	if y {
		p.Y = absf(p.Y)
	}
	if z {
		p.Z = absf(p.Z)
	}
	return p
}

// Elongate stretches a shape by splitting it at the origin and inserting a slab of
// half-size h along each axis. The elongated distance is inner(q) + w. Exact for exact
// inner fields. Negative components of h are invalid and panic with a [*ParamError].
func Elongate(p, h ms3.Vec) (q ms3.Vec, w float32) {
	if !(h.X >= 0 && h.Y >= 0 && h.Z >= 0) {
		invalidParam("Elongate", "half-size", minf(h.X, minf(h.Y, h.Z)))
	}
	q = ms3.Sub(ms3.AbsElem(p), h)
	w = minf(q.Max(), 0)
	return ms3.MaxElem(q, ms3.Vec{}), w
}

// Twist rotates the XZ plane around the Y axis by an angle proportional to y (k radians per unit).
// Not distance preserving: see [TwistLipschitz].
func Twist(p ms3.Vec, k float32) ms3.Vec {
	s, c := math32.Sincos(k * p.Y)
	return ms3.Vec{X: c*p.X - s*p.Z, Y: p.Y, Z: s*p.X + c*p.Z}
}

// TwistLipschitz returns the largest stretch factor of [Twist] with rate k over points within
// radius r of the Y axis. Dividing the inner distance by it keeps the field conservative in that region.
func TwistLipschitz(k, r float32) float32 {
	return ShearLipschitz(absf(k) * r)
}

// ShearLipschitz returns the largest singular value of the shear I + c*u*vᵀ for orthogonal
// unit vectors u and v. Deformations whose Jacobian is a rotation times such a shear, like
// [Twist] or a sinusoidal displacement along one axis, stretch distances by at most this factor.
func ShearLipschitz(c float32) float32 {
	c = absf(c)
	return c/2 + math32.Sqrt(1+c*c/4)
}

// Bend rotates the XY plane by an angle proportional to x (k radians per unit),
// curling a shape laid along X around the Z axis. Not distance preserving: see [BendLipschitz].
func Bend(p ms3.Vec, k float32) ms3.Vec {
	s, c := math32.Sincos(k * p.X)
	return ms3.Vec{X: c*p.X - s*p.Y, Y: s*p.X + c*p.Y, Z: p.Z}
}

// BendLipschitz returns the largest stretch factor of [Bend] with rate k over points
// within radius r of the Z axis.
func BendLipschitz(k, r float32) float32 {
	return 1 + absf(k)*r
}
