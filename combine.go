package sdfcat

import "github.com/chewxy/math32"

// Combinators merge distances of several shapes into one distance.
//
// The hard combinators are exact identities of min and max and keep conservative inputs
// conservative. The smooth combinators trade exactness for a rounded blend: they deviate from
// their hard counterparts only where the inputs are within k of each other, by at most the
// amount stated on each function. Callers must treat blended shapes as approximately
// conservative within that margin.

// Union is min(a, b). Exact for exact inputs and conservative for conservative inputs.
func Union(a, b float32) float32 {
	return math32.Min(a, b)
}

// UnionN is the union of all distances. It returns +Inf for no arguments.
func UnionN(ds ...float32) float32 {
	d := math32.Inf(1)
	for _, di := range ds {
		d = math32.Min(d, di)
	}
	return d
}

// Intersection is max(a, b). Conservative for conservative inputs; exact only where the
// closest surface point of the intersection lies on a single input surface.
func Intersection(a, b float32) float32 {
	return math32.Max(a, b)
}

// Subtraction removes shape b from shape a: max(a, -b). Conservative for conservative inputs.
func Subtraction(a, b float32) float32 {
	return math32.Max(a, -b)
}

// Xor keeps the regions inside exactly one of the shapes. Exact for exact inputs.
func Xor(a, b float32) float32 {
	return maxf(minf(a, b), -maxf(a, b))
}

// Offset inflates a shape by r (deflates for negative r), rounding its edges. Conservative for conservative inputs.
func Offset(d, r float32) float32 {
	return d - r
}

// Shell hollows a shape leaving a wall of half-thickness t around its surface.
// Conservative when |d| does not exceed the true unsigned distance. t must be positive.
func Shell(d, t float32) float32 {
	if !(t > 0) {
		invalidParam("Shell", "thickness", t)
	}
	return absf(d) - t
}

// SmoothUnion is the polynomial smooth minimum of a and b with blend radius k.
// The result is at most k/4 below min(a, b) and equal to it when |a-b| >= k.
// A non-positive or NaN k panics with a [*ParamError].
func SmoothUnion(a, b, k float32) float32 {
	if !(k > 0) {
		invalidParam("SmoothUnion", "blend radius", k)
	}
	h := Clamp(0.5+0.5*(b-a)/k, 0, 1)
	return Mix(b, a, h) - k*h*(1-h)
}

// SmoothIntersection is the polynomial smooth maximum of a and b. The result is at most k/4
// above max(a, b). A non-positive or NaN k panics with a [*ParamError].
func SmoothIntersection(a, b, k float32) float32 {
	if !(k > 0) {
		invalidParam("SmoothIntersection", "blend radius", k)
	}
	h := Clamp(0.5-0.5*(b-a)/k, 0, 1)
	return Mix(b, a, h) + k*h*(1-h)
}

// SmoothSubtraction removes b from a with a polynomial blend of radius k. The result is at
// most k/4 above max(a, -b). A non-positive or NaN k panics with a [*ParamError].
func SmoothSubtraction(a, b, k float32) float32 {
	if !(k > 0) {
		invalidParam("SmoothSubtraction", "blend radius", k)
	}
	h := Clamp(0.5-0.5*(b+a)/k, 0, 1)
	return Mix(a, -b, h) + k*h*(1-h)
}

// SmoothUnionExp is the exponential smooth minimum of a and b with blend radius k.
// The result is at most k below min(a, b) and approaches it exponentially as |a-b| grows.
// A non-positive or NaN k panics with a [*ParamError].
func SmoothUnionExp(a, b, k float32) float32 {
	if !(k > 0) {
		invalidParam("SmoothUnionExp", "blend radius", k)
	}
	// Shift by the minimum so the exponentials never overflow.
	m := math32.Min(a, b)
	res := math32.Exp2(-(a-m)/k) + math32.Exp2(-(b-m)/k)
	return m - k*math32.Log2(res)
}

// BlendKind selects the smooth minimum used by a [Blend].
type BlendKind uint8

const (
	BlendPolynomial BlendKind = iota
	BlendExponential
)

// Blend is a smooth combinator with a radius validated at construction. Build with [Builder.NewBlend].
type Blend struct {
	kind BlendKind
	k    float32
}

// NewBlend validates k > 0 and returns a Blend of the given kind.
func (bld *Builder) NewBlend(kind BlendKind, k float32) Blend {
	bld.positive("NewBlend", "blend radius", k)
	if kind > BlendExponential {
		bld.paramErr("NewBlend", "kind", float32(kind))
	}
	return Blend{kind: kind, k: k}
}

// Radius returns the blend radius k.
func (bl Blend) Radius() float32 { return bl.k }

// Union blends a and b together.
func (bl Blend) Union(a, b float32) float32 {
	if bl.kind == BlendExponential {
		return SmoothUnionExp(a, b, bl.k)
	}
	return SmoothUnion(a, b, bl.k)
}

// Intersection blends the common region of a and b.
func (bl Blend) Intersection(a, b float32) float32 {
	if bl.kind == BlendExponential {
		return -SmoothUnionExp(-a, -b, bl.k)
	}
	return SmoothIntersection(a, b, bl.k)
}

// Subtraction blends b carved out of a.
func (bl Blend) Subtraction(a, b float32) float32 {
	if bl.kind == BlendExponential {
		return -SmoothUnionExp(-a, b, bl.k)
	}
	return SmoothSubtraction(a, b, bl.k)
}
