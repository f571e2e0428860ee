package sdfcat

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Primitive is a closed-form distance function centered at the origin.
type Primitive interface {
	// Distance returns the signed distance from p to the primitive's surface.
	Distance(p ms3.Vec) float32
	// Bounds returns a box containing the whole primitive.
	Bounds() ms3.Box
}

// Sphere is an exact sphere centered at the origin.
type Sphere struct{ r float32 }

// NewSphere creates a sphere of radius r.
func (bld *Builder) NewSphere(r float32) Sphere {
	bld.positive("NewSphere", "radius", r)
	return Sphere{r: r}
}

func (s Sphere) Distance(p ms3.Vec) float32 {
	return ms3.Norm(p) - s.r
}

func (s Sphere) Bounds() ms3.Box {
	return ms3.Box{
		Min: ms3.Vec{X: -s.r, Y: -s.r, Z: -s.r},
		Max: ms3.Vec{X: s.r, Y: s.r, Z: s.r},
	}
}

// Box is an exact axis aligned box centered at the origin, optionally with rounded edges.
type Box struct {
	half  ms3.Vec
	round float32
}

// NewBox creates a box with the given full side lengths. round is the edge rounding
// radius and may not exceed half of the smallest side.
func (bld *Builder) NewBox(x, y, z, round float32) Box {
	bld.positive("NewBox", "x", x)
	bld.positive("NewBox", "y", y)
	bld.positive("NewBox", "z", z)
	bld.nonNegative("NewBox", "rounding", round)
	if 2*round > minf(x, minf(y, z)) {
		bld.paramErr("NewBox", "rounding", round)
	}
	return Box{half: ms3.Vec{X: x / 2, Y: y / 2, Z: z / 2}, round: round}
}

func (b Box) Distance(p ms3.Vec) float32 {
	r := b.round
	q := ms3.AddScalar(r, ms3.Sub(ms3.AbsElem(p), b.half))
	return ms3.Norm(ms3.MaxElem(q, ms3.Vec{})) + minf(q.Max(), 0) - r
}

func (b Box) Bounds() ms3.Box {
	return ms3.NewCenteredBox(ms3.Vec{}, ms3.Scale(2, b.half))
}

// BoxFrame is an exact frame of square beams along the edges of a box.
type BoxFrame struct {
	half ms3.Vec
	e    float32
}

// NewBoxFrame creates a frame with outer side lengths x, y, z and beam thickness e.
func (bld *Builder) NewBoxFrame(x, y, z, e float32) BoxFrame {
	bld.positive("NewBoxFrame", "x", x)
	bld.positive("NewBoxFrame", "y", y)
	bld.positive("NewBoxFrame", "z", z)
	bld.positive("NewBoxFrame", "thickness", e)
	if 2*e > minf(x, minf(y, z)) {
		bld.paramErr("NewBoxFrame", "thickness", e)
	}
	return BoxFrame{half: ms3.Vec{X: x / 2, Y: y / 2, Z: z / 2}, e: e}
}

func (bf BoxFrame) Distance(p ms3.Vec) float32 {
	e := bf.e
	var z3 ms3.Vec
	p = ms3.Sub(ms3.AbsElem(p), bf.half)
	q := ms3.AddScalar(-e, ms3.AbsElem(ms3.AddScalar(e, p)))

	s1 := minf(0, maxf(p.X, maxf(q.Y, q.Z)))
	n1 := ms3.Norm(ms3.MaxElem(ms3.Vec{X: p.X, Y: q.Y, Z: q.Z}, z3)) + s1

	s2 := minf(0, maxf(q.X, maxf(p.Y, q.Z)))
	n2 := ms3.Norm(ms3.MaxElem(ms3.Vec{X: q.X, Y: p.Y, Z: q.Z}, z3)) + s2

	s3 := minf(0, maxf(q.X, maxf(q.Y, p.Z)))
	n3 := ms3.Norm(ms3.MaxElem(ms3.Vec{X: q.X, Y: q.Y, Z: p.Z}, z3)) + s3
	return minf(n1, minf(n2, n3))
}

func (bf BoxFrame) Bounds() ms3.Box {
	return ms3.NewCenteredBox(ms3.Vec{}, ms3.Scale(2, bf.half))
}

// Torus is an exact torus centered at the origin with its axis along Z.
type Torus struct {
	rGreater, rLesser float32
}

// NewTorus creates a torus with ring radius rGreater and tube radius rLesser.
func (bld *Builder) NewTorus(rGreater, rLesser float32) Torus {
	bld.positive("NewTorus", "ring radius", rGreater)
	bld.positive("NewTorus", "tube radius", rLesser)
	if rLesser > rGreater {
		bld.paramErr("NewTorus", "tube radius", rLesser)
	}
	return Torus{rGreater: rGreater, rLesser: rLesser}
}

func (t Torus) Distance(p ms3.Vec) float32 {
	return hypotf(hypotf(p.X, p.Y)-t.rGreater, p.Z) - t.rLesser
}

func (t Torus) Bounds() ms3.Box {
	R := t.rLesser + t.rGreater
	return ms3.Box{
		Min: ms3.Vec{X: -R, Y: -R, Z: -t.rLesser},
		Max: ms3.Vec{X: R, Y: R, Z: t.rLesser},
	}
}

// Cylinder is an exact capped cylinder centered at the origin with its axis along Z.
type Cylinder struct {
	r, h, round float32
}

// NewCylinder creates a cylinder of radius r and height h with edges rounded by rounding.
func (bld *Builder) NewCylinder(r, h, rounding float32) Cylinder {
	bld.positive("NewCylinder", "radius", r)
	bld.positive("NewCylinder", "height", h)
	bld.nonNegative("NewCylinder", "rounding", rounding)
	if rounding >= r || rounding >= h/2 {
		bld.paramErr("NewCylinder", "rounding", rounding)
	}
	return Cylinder{r: r, h: h, round: rounding}
}

func (c Cylinder) Distance(p ms3.Vec) float32 {
	round := c.round
	h := (c.h - 2*round) / 2
	dx := hypotf(p.X, p.Y) - c.r + round
	dy := absf(p.Z) - h
	return minf(maxf(dx, dy), 0) + hypotf(maxf(dx, 0), maxf(dy, 0)) - round
}

func (c Cylinder) Bounds() ms3.Box {
	return ms3.Box{
		Min: ms3.Vec{X: -c.r, Y: -c.r, Z: -c.h / 2},
		Max: ms3.Vec{X: c.r, Y: c.r, Z: c.h / 2},
	}
}

// Capsule is an exact segment of length h along Z inflated by radius r.
type Capsule struct {
	r, h float32
}

// NewCapsule creates a capsule whose straight section has length h and whose radius is r.
func (bld *Builder) NewCapsule(r, h float32) Capsule {
	bld.positive("NewCapsule", "radius", r)
	bld.nonNegative("NewCapsule", "length", h)
	return Capsule{r: r, h: h}
}

func (c Capsule) Distance(p ms3.Vec) float32 {
	hh := c.h / 2
	p.Z -= Clamp(p.Z, -hh, hh)
	return ms3.Norm(p) - c.r
}

func (c Capsule) Bounds() ms3.Box {
	hz := c.h/2 + c.r
	return ms3.Box{
		Min: ms3.Vec{X: -c.r, Y: -c.r, Z: -hz},
		Max: ms3.Vec{X: c.r, Y: c.r, Z: hz},
	}
}

// Cone is an exact capped cone along Z with bottom radius r1 at z=-h/2 and top radius r2 at z=h/2.
type Cone struct {
	r1, r2, hh float32
}

// NewCone creates a capped cone. One of the radii may be zero for a pointed cone.
func (bld *Builder) NewCone(r1, r2, h float32) Cone {
	bld.nonNegative("NewCone", "bottom radius", r1)
	bld.nonNegative("NewCone", "top radius", r2)
	bld.positive("NewCone", "height", h)
	if !(r1+r2 > 0) {
		bld.paramErr("NewCone", "radius sum", r1+r2)
	}
	return Cone{r1: r1, r2: r2, hh: h / 2}
}

func (c Cone) Distance(p ms3.Vec) float32 {
	// https://iquilezles.org/articles/distfunctions
	h := c.hh
	q := ms2.Vec{X: hypotf(p.X, p.Y), Y: p.Z}
	k1 := ms2.Vec{X: c.r2, Y: h}
	k2 := ms2.Vec{X: c.r2 - c.r1, Y: 2 * h}
	rcap := c.r2
	if q.Y < 0 {
		rcap = c.r1
	}
	ca := ms2.Vec{X: q.X - minf(q.X, rcap), Y: absf(q.Y) - h}
	t := Clamp(ms2.Dot(ms2.Sub(k1, q), k2)/ms2.Norm2(k2), 0, 1)
	cb := ms2.Add(ms2.Sub(q, k1), ms2.Scale(t, k2))
	s := float32(1)
	if cb.X < 0 && ca.Y < 0 {
		s = -1
	}
	return s * math32.Sqrt(minf(ms2.Norm2(ca), ms2.Norm2(cb)))
}

func (c Cone) Bounds() ms3.Box {
	r := maxf(c.r1, c.r2)
	return ms3.Box{
		Min: ms3.Vec{X: -r, Y: -r, Z: -c.hh},
		Max: ms3.Vec{X: r, Y: r, Z: c.hh},
	}
}

// HexPrism is an exact hexagonal prism along Z.
type HexPrism struct {
	apothem, hh float32
}

// NewHexPrism creates a hexagonal prism with face-to-face width face2Face and height h.
func (bld *Builder) NewHexPrism(face2Face, h float32) HexPrism {
	bld.positive("NewHexPrism", "face to face", face2Face)
	bld.positive("NewHexPrism", "height", h)
	return HexPrism{apothem: face2Face / 2, hh: h / 2}
}

func (hp HexPrism) Distance(p ms3.Vec) float32 {
	const k1, k2, k3 = -tribisect, 0.5, 0.57735
	h1 := hp.apothem
	clm := k3 * h1
	p = ms3.AbsElem(p)
	pm := minf(k1*p.X+k2*p.Y, 0)
	p.X -= 2 * k1 * pm
	p.Y -= 2 * k2 * pm
	d1 := hypotf(p.X-Clamp(p.X, -clm, clm), p.Y-h1) * Sign(p.Y-h1)
	d2 := p.Z - hp.hh
	return minf(maxf(d1, d2), 0) + hypotf(maxf(d1, 0), maxf(d2, 0))
}

func (hp HexPrism) Bounds() ms3.Box {
	l := hp.apothem
	lx := l / tribisect
	return ms3.Box{
		Min: ms3.Vec{X: -lx, Y: -l, Z: -hp.hh},
		Max: ms3.Vec{X: lx, Y: l, Z: hp.hh},
	}
}

// Octahedron is a regular octahedron with vertices at distance s from the origin.
// The distance is a bound: conservative but not exact away from the faces.
type Octahedron struct{ s float32 }

// NewOctahedron creates an octahedron whose vertices lie on the axes at distance s.
func (bld *Builder) NewOctahedron(s float32) Octahedron {
	bld.positive("NewOctahedron", "size", s)
	return Octahedron{s: s}
}

func (o Octahedron) Distance(p ms3.Vec) float32 {
	const invSqrt3 = 1 / sqrt3
	return (absf(p.X) + absf(p.Y) + absf(p.Z) - o.s) * invSqrt3
}

func (o Octahedron) Bounds() ms3.Box {
	return ms3.Box{
		Min: ms3.Vec{X: -o.s, Y: -o.s, Z: -o.s},
		Max: ms3.Vec{X: o.s, Y: o.s, Z: o.s},
	}
}

// Plane is the exact half-space below the plane with unit normal n at offset h from the origin.
// Its bounds are unbounded along every axis.
type Plane struct {
	n ms3.Vec
	h float32
}

// NewPlane creates a plane with normal n, which is normalized, at signed offset h along it.
func (bld *Builder) NewPlane(n ms3.Vec, h float32) Plane {
	norm := ms3.Norm(n)
	if !(norm > epstol) {
		bld.paramErr("NewPlane", "normal norm", norm)
		return Plane{n: ms3.Vec{Z: 1}, h: h}
	}
	return Plane{n: ms3.Scale(1/norm, n), h: h}
}

func (pl Plane) Distance(p ms3.Vec) float32 {
	return ms3.Dot(p, pl.n) - pl.h
}

func (pl Plane) Bounds() ms3.Box {
	return ms3.Box{
		Min: ms3.Vec{X: -largenum, Y: -largenum, Z: -largenum},
		Max: ms3.Vec{X: largenum, Y: largenum, Z: largenum},
	}
}

// Ellipsoid is an axis aligned ellipsoid with semi-axes r.
// The distance is a bound: |p/r|-1 scaled by the smallest semi-axis has gradient at most 1
// and vanishes on the surface, so it never overestimates.
type Ellipsoid struct {
	r    ms3.Vec
	rmin float32
}

// NewEllipsoid creates an ellipsoid with semi-axes rx, ry, rz.
func (bld *Builder) NewEllipsoid(rx, ry, rz float32) Ellipsoid {
	bld.positive("NewEllipsoid", "rx", rx)
	bld.positive("NewEllipsoid", "ry", ry)
	bld.positive("NewEllipsoid", "rz", rz)
	return Ellipsoid{r: ms3.Vec{X: rx, Y: ry, Z: rz}, rmin: minf(rx, minf(ry, rz))}
}

func (e Ellipsoid) Distance(p ms3.Vec) float32 {
	k0 := ms3.Norm(ms3.DivElem(p, e.r))
	return (k0 - 1) * e.rmin
}

func (e Ellipsoid) Bounds() ms3.Box {
	return ms3.Box{Min: ms3.Scale(-1, e.r), Max: e.r}
}

// Link is an exact chain link: a torus stretched by a straight section of length 2*le along Y.
type Link struct {
	le, r1, r2 float32
}

// NewLink creates a link with half straight length le, ring radius r1 and tube radius r2.
func (bld *Builder) NewLink(le, r1, r2 float32) Link {
	bld.nonNegative("NewLink", "length", le)
	bld.positive("NewLink", "ring radius", r1)
	bld.positive("NewLink", "tube radius", r2)
	return Link{le: le, r1: r1, r2: r2}
}

func (l Link) Distance(p ms3.Vec) float32 {
	qy := maxf(absf(p.Y)-l.le, 0)
	return hypotf(hypotf(p.X, qy)-l.r1, p.Z) - l.r2
}

func (l Link) Bounds() ms3.Box {
	R := l.r1 + l.r2
	return ms3.Box{
		Min: ms3.Vec{X: -R, Y: -R - l.le, Z: -l.r2},
		Max: ms3.Vec{X: R, Y: R + l.le, Z: l.r2},
	}
}
