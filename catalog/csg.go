package catalog

import (
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfcat"
)

func cubeMinusSphere(bld *sdfcat.Builder) sdfcat.Func {
	box := bld.NewBox(1, 1, 1, 0)
	ball := bld.NewSphere(0.65)
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		return sdfcat.Subtraction(box.Distance(p), ball.Distance(p))
	}
}

func sphereCubeIntersection(bld *sdfcat.Builder) sdfcat.Func {
	box := bld.NewBox(1, 1, 1, 0)
	ball := bld.NewSphere(0.65)
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		return sdfcat.Intersection(ball.Distance(p), box.Distance(p))
	}
}

// cross is three square bars along the cartesian axes.
func cross(bld *sdfcat.Builder) sdfcat.Func {
	const long, thick = 1.6, 0.3
	bx := bld.NewBox(long, thick, thick, 0)
	by := bld.NewBox(thick, long, thick, 0)
	bz := bld.NewBox(thick, thick, long, 0)
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		return sdfcat.UnionN(bx.Distance(p), by.Distance(p), bz.Distance(p))
	}
}

// csgDemo is the classic rounded box intersected with a sphere and drilled by three cylinders.
func csgDemo(bld *sdfcat.Builder) sdfcat.Func {
	box := bld.NewBox(1, 1, 1, 0.05)
	ball := bld.NewSphere(0.68)
	drill := bld.NewCylinder(0.3, 1.6, 0)
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		body := sdfcat.Intersection(box.Distance(p), ball.Distance(p))
		holes := sdfcat.UnionN(
			drill.Distance(p),
			drill.Distance(ms3.Vec{X: p.Y, Y: p.Z, Z: p.X}),
			drill.Distance(ms3.Vec{X: p.Z, Y: p.X, Z: p.Y}),
		)
		return sdfcat.Subtraction(body, holes)
	}
}

func smoothBlob(bld *sdfcat.Builder) sdfcat.Func {
	ball := bld.NewSphere(0.3)
	blend := bld.NewBlend(sdfcat.BlendPolynomial, 0.25)
	c1 := ms3.Vec{X: -0.3}
	c2 := ms3.Vec{X: 0.3}
	c3 := ms3.Vec{Y: 0.35}
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		d := blend.Union(ball.Distance(sdfcat.Translate(p, c1)), ball.Distance(sdfcat.Translate(p, c2)))
		return blend.Union(d, ball.Distance(sdfcat.Translate(p, c3)))
	}
}

func cubeSphereXor(bld *sdfcat.Builder) sdfcat.Func {
	box := bld.NewBox(0.9, 0.9, 0.9, 0)
	ball := bld.NewSphere(0.6)
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		return sdfcat.Xor(box.Distance(p), ball.Distance(p))
	}
}

// cutShell is a thin spherical shell with its top sliced off.
func cutShell(bld *sdfcat.Builder) sdfcat.Func {
	ball := bld.NewSphere(0.7)
	below := bld.NewPlane(ms3.Vec{Z: 1}, 0.2)
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		return sdfcat.Intersection(sdfcat.Shell(ball.Distance(p), 0.04), below.Distance(p))
	}
}

func snowman(bld *sdfcat.Builder) sdfcat.Func {
	base := bld.NewSphere(0.4)
	body := bld.NewSphere(0.3)
	head := bld.NewSphere(0.2)
	blend := bld.NewBlend(sdfcat.BlendPolynomial, 0.1)
	eye := bld.NewSphere(0.04)
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		d := blend.Union(base.Distance(sdfcat.Translate(p, ms3.Vec{Z: -0.45})), body.Distance(sdfcat.Translate(p, ms3.Vec{Z: 0.15})))
		d = blend.Union(d, head.Distance(sdfcat.Translate(p, ms3.Vec{Z: 0.6})))
		// Eyes are carved on the -Y side of the head.
		q := sdfcat.Symmetry(sdfcat.Translate(p, ms3.Vec{Y: -0.19, Z: 0.65}), true, false, false)
		return sdfcat.Subtraction(d, eye.Distance(sdfcat.Translate(q, ms3.Vec{X: 0.07})))
	}
}
