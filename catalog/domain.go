package catalog

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfcat"
)

const (
	twistRate = 1.5 // radians per unit along Y.
	bendRate  = 0.8 // radians per unit along X.
)

var (
	twistedBoxLipschitz = sdfcat.TwistLipschitz(twistRate, fieldRadius)
	bentBarLipschitz    = sdfcat.BendLipschitz(bendRate, fieldRadius)
)

func twistedBox(bld *sdfcat.Builder) sdfcat.Func {
	box := bld.NewBox(0.5, 1.6, 0.5, 0)
	inv := 1 / twistedBoxLipschitz
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		return box.Distance(sdfcat.Twist(p, twistRate)) * inv
	}
}

func bentBar(bld *sdfcat.Builder) sdfcat.Func {
	box := bld.NewBox(1.6, 0.2, 0.3, 0)
	inv := 1 / bentBarLipschitz
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		return box.Distance(sdfcat.Bend(p, bendRate)) * inv
	}
}

// repeatedSpheres is an infinite lattice of spheres clipped to a cube.
func repeatedSpheres(bld *sdfcat.Builder) sdfcat.Func {
	ball := bld.NewSphere(0.15)
	clip := bld.NewBox(1.8, 1.8, 1.8, 0)
	period := ms3.Vec{X: 0.5, Y: 0.5, Z: 0.5}
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		return sdfcat.Intersection(ball.Distance(sdfcat.Repeat(p, period)), clip.Distance(p))
	}
}

// pillars is a 5x5 grid of columns standing along Z.
func pillars(bld *sdfcat.Builder) sdfcat.Func {
	column := bld.NewCylinder(0.1, 1.6, 0.02)
	spacing := ms3.Vec{X: 0.4, Y: 0.4}
	limit := ms3.Vec{X: 2, Y: 2}
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		return column.Distance(sdfcat.RepeatLimited(p, spacing, limit))
	}
}

func elongatedTorus(bld *sdfcat.Builder) sdfcat.Func {
	tor := bld.NewTorus(0.4, 0.12)
	h := ms3.Vec{X: 0.3}
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		q, w := sdfcat.Elongate(p, h)
		return tor.Distance(q) + w
	}
}

func rotatedCube(bld *sdfcat.Builder) sdfcat.Func {
	box := bld.NewBox(0.8, 0.8, 0.8, 0)
	rot := bld.NewRotation(math32.Pi/4, ms3.Vec{X: 1, Y: 1})
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		return box.Distance(rot.Domain(p))
	}
}

// mirroredSpheres places one sphere per octant by mirroring across all three planes.
func mirroredSpheres(bld *sdfcat.Builder) sdfcat.Func {
	ball := bld.NewSphere(0.2)
	center := ms3.Vec{X: 0.45, Y: 0.45, Z: 0.45}
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		return ball.Distance(sdfcat.Translate(sdfcat.Symmetry(p, true, true, true), center))
	}
}

// chain is five interlocked links along X alternating between the XY and XZ planes.
func chain(bld *sdfcat.Builder) sdfcat.Func {
	lnk := bld.NewLink(0.1, 0.18, 0.05)
	flat := [...]float32{-0.6, 0, 0.6}
	upright := [...]float32{-0.3, 0.3}
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		d := math32.Inf(1)
		for _, x := range flat {
			d = sdfcat.Union(d, lnk.Distance(ms3.Vec{X: p.Y, Y: p.X - x, Z: p.Z}))
		}
		for _, x := range upright {
			d = sdfcat.Union(d, lnk.Distance(ms3.Vec{X: p.Z, Y: p.X - x, Z: p.Y}))
		}
		return d
	}
}

// gear is a disc with twelve teeth and a bore.
func gear(bld *sdfcat.Builder) sdfcat.Func {
	const teeth = 12
	disc := bld.NewCylinder(0.5, 0.2, 0)
	tooth := bld.NewBox(0.16, 0.1, 0.2, 0)
	bore := bld.NewCylinder(0.12, 0.4, 0)
	toothOffset := ms3.Vec{X: 0.55}
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		d := sdfcat.Union(disc.Distance(p), tooth.Distance(sdfcat.Translate(sdfcat.PolarRepeat(p, teeth), toothOffset)))
		return sdfcat.Subtraction(d, bore.Distance(p))
	}
}

func table(bld *sdfcat.Builder) sdfcat.Func {
	top := bld.NewBox(1.4, 1, 0.08, 0)
	leg := bld.NewBox(0.08, 0.08, 0.8, 0)
	topOffset := ms3.Vec{Z: 0.44}
	legOffset := ms3.Vec{X: 0.6, Y: 0.4}
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		legs := leg.Distance(sdfcat.Translate(sdfcat.Symmetry(p, true, true, false), legOffset))
		return sdfcat.Union(top.Distance(sdfcat.Translate(p, topOffset)), legs)
	}
}
