package catalog

import (
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfcat"
)

// fromPrimitive adapts a static primitive to the shape function signature.
func fromPrimitive(prim sdfcat.Primitive) sdfcat.Func {
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		return prim.Distance(p)
	}
}

func sphere(bld *sdfcat.Builder) sdfcat.Func {
	return fromPrimitive(bld.NewSphere(0.5))
}

func cube(bld *sdfcat.Builder) sdfcat.Func {
	return fromPrimitive(bld.NewBox(1, 1, 1, 0))
}

func roundedCube(bld *sdfcat.Builder) sdfcat.Func {
	return fromPrimitive(bld.NewBox(1, 1, 1, 0.15))
}

func torus(bld *sdfcat.Builder) sdfcat.Func {
	return fromPrimitive(bld.NewTorus(0.5, 0.2))
}

func cylinder(bld *sdfcat.Builder) sdfcat.Func {
	return fromPrimitive(bld.NewCylinder(0.4, 1.2, 0))
}

func capsule(bld *sdfcat.Builder) sdfcat.Func {
	return fromPrimitive(bld.NewCapsule(0.3, 0.8))
}

func cone(bld *sdfcat.Builder) sdfcat.Func {
	return fromPrimitive(bld.NewCone(0.5, 0, 1))
}

func hexPrism(bld *sdfcat.Builder) sdfcat.Func {
	return fromPrimitive(bld.NewHexPrism(0.8, 1))
}

func octahedron(bld *sdfcat.Builder) sdfcat.Func {
	return fromPrimitive(bld.NewOctahedron(0.7))
}

func ellipsoid(bld *sdfcat.Builder) sdfcat.Func {
	return fromPrimitive(bld.NewEllipsoid(0.7, 0.4, 0.5))
}

func boxFrame(bld *sdfcat.Builder) sdfcat.Func {
	return fromPrimitive(bld.NewBoxFrame(1.2, 1.2, 1.2, 0.08))
}

func link(bld *sdfcat.Builder) sdfcat.Func {
	return fromPrimitive(bld.NewLink(0.3, 0.3, 0.1))
}
