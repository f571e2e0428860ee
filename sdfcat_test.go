package sdfcat_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfcat"
)

func expectParamPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, sdfcat.ErrInvalidParameter) {
			t.Errorf("%s: expected invalid parameter panic, got %v", name, r)
			return
		}
		var perr *sdfcat.ParamError
		if !errors.As(err, &perr) || perr.Op == "" {
			t.Errorf("%s: expected *ParamError with op set, got %#v", name, r)
		}
	}()
	fn()
}

func randVec(rng *rand.Rand, scale float32) ms3.Vec {
	return ms3.Vec{
		X: scale * (2*rng.Float32() - 1),
		Y: scale * (2*rng.Float32() - 1),
		Z: scale * (2*rng.Float32() - 1),
	}
}

func vecNear(a, b ms3.Vec, tol float32) bool {
	return ms3.Norm(ms3.Sub(a, b)) <= tol
}

func TestMod(t *testing.T) {
	tests := []struct {
		x, y, want float32
	}{
		{x: 5, y: 3, want: 2},
		{x: -1, y: 3, want: 2},
		{x: -0.5, y: 1, want: 0.5},
		{x: 1, y: -3, want: -2},
		{x: 0, y: 2, want: 0},
		{x: 6, y: 3, want: 0},
	}
	for _, test := range tests {
		got := sdfcat.Mod(test.x, test.y)
		if math32.Abs(got-test.want) > 1e-6 {
			t.Errorf("Mod(%v, %v)=%v, want %v", test.x, test.y, got, test.want)
		}
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		x := 200 * (rng.Float32() - 0.5)
		y := 0.01 + 10*rng.Float32()
		got := sdfcat.Mod(x, y)
		if got < 0 || got >= y {
			t.Fatalf("Mod(%v, %v)=%v outside [0, y)", x, y, got)
		}
	}
	got := sdfcat.ModElem(ms3.Vec{X: -1, Y: 4, Z: 0.5}, ms3.Vec{X: 3, Y: 3, Z: 1})
	if !vecNear(got, ms3.Vec{X: 2, Y: 1, Z: 0.5}, 1e-6) {
		t.Errorf("ModElem=%v", got)
	}
	got = sdfcat.ModElem(ms3.Vec{X: 1, Y: 1, Z: 1}, ms3.Vec{X: 2})
	if got != (ms3.Vec{X: 1, Y: 1, Z: 1}) {
		t.Errorf("zero period components should pass through, got %v", got)
	}
}

func TestFract(t *testing.T) {
	if got := sdfcat.Fract(-0.25); got != 0.75 {
		t.Errorf("Fract(-0.25)=%v", got)
	}
	if got := sdfcat.Fract(1.5); got != 0.5 {
		t.Errorf("Fract(1.5)=%v", got)
	}
	if got := sdfcat.Fract(-1e-9); got < 0 || got >= 1 {
		t.Errorf("Fract(-1e-9)=%v outside [0,1)", got)
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		x := 1000 * (rng.Float32() - 0.5)
		f := sdfcat.Fract(x)
		if f < 0 || f >= 1 {
			t.Fatalf("Fract(%v)=%v outside [0,1)", x, f)
		}
	}
	fe := sdfcat.FractElem(ms3.Vec{X: 1.25, Y: -1.25, Z: 3})
	if fe != (ms3.Vec{X: 0.25, Y: 0.75, Z: 0}) {
		t.Errorf("FractElem=%v", fe)
	}
}

func TestScalarHelpers(t *testing.T) {
	if got := sdfcat.Smoothstep(0, 1, 0.5); got != 0.5 {
		t.Errorf("Smoothstep midpoint=%v", got)
	}
	if got := sdfcat.Smoothstep(0, 1, -3); got != 0 {
		t.Errorf("Smoothstep below=%v", got)
	}
	if got := sdfcat.Smoothstep(0, 1, 3); got != 1 {
		t.Errorf("Smoothstep above=%v", got)
	}
	prev := float32(0)
	for x := float32(0); x <= 1; x += 1. / 64 {
		v := sdfcat.Smoothstep(0, 1, x)
		if v < prev {
			t.Fatalf("Smoothstep not monotonic at %v", x)
		}
		prev = v
	}
	if sdfcat.Clamp(5, 0, 1) != 1 || sdfcat.Clamp(-5, 0, 1) != 0 || sdfcat.Clamp(0.5, 0, 1) != 0.5 {
		t.Error("Clamp")
	}
	if sdfcat.Mix(2, 4, 0.5) != 3 || sdfcat.Mix(2, 4, 0) != 2 || sdfcat.Mix(2, 4, 1) != 4 {
		t.Error("Mix")
	}
	if sdfcat.Sign(-2) != -1 || sdfcat.Sign(3) != 1 || sdfcat.Sign(0) != 0 {
		t.Error("Sign")
	}
	if sdfcat.Step(1, 0.5) != 0 || sdfcat.Step(1, 1) != 1 {
		t.Error("Step")
	}
	if sdfcat.Dot2(ms3.Vec{X: 1, Y: 2, Z: 2}) != 9 {
		t.Error("Dot2")
	}
}

func TestRotationPreservesNorm(t *testing.T) {
	var bld sdfcat.Builder
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		p := randVec(rng, 3)
		axis := randVec(rng, 1)
		if ms3.Norm(axis) < 0.05 {
			continue
		}
		angle := 10 * (rng.Float32() - 0.5)
		n := ms3.Norm(p)
		tol := 1e-5 * (1 + n)
		rotated := []ms3.Vec{
			sdfcat.RotateX(p, angle),
			sdfcat.RotateY(p, angle),
			sdfcat.RotateZ(p, angle),
			sdfcat.RotateAxis(p, axis, angle),
		}
		for j, r := range rotated {
			if math32.Abs(ms3.Norm(r)-n) > tol {
				t.Fatalf("rotation %d changed norm of %v: %v -> %v", j, p, n, ms3.Norm(r))
			}
		}
		rot := bld.NewRotation(angle, axis)
		if back := rot.Domain(rot.Apply(p)); !vecNear(back, p, tol) {
			t.Fatalf("rotation round trip %v -> %v", p, back)
		}
		if got, want := rot.Apply(p), sdfcat.RotateAxis(p, axis, angle); !vecNear(got, want, tol) {
			t.Fatalf("Rotation.Apply=%v, RotateAxis=%v", got, want)
		}
		if got, want := sdfcat.RotateAxis(p, ms3.Vec{Z: 2}, angle), sdfcat.RotateZ(p, angle); !vecNear(got, want, tol) {
			t.Fatalf("RotateAxis around Z=%v, RotateZ=%v", got, want)
		}
	}
	expectParamPanic(t, "RotateAxis zero axis", func() { sdfcat.RotateAxis(ms3.Vec{X: 1}, ms3.Vec{}, 1) })
}

func TestRepeat(t *testing.T) {
	period := ms3.Vec{X: 0.5, Y: 1, Z: 2}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		p := randVec(rng, 4)
		q := sdfcat.Repeat(p, period)
		if math32.Abs(q.X) > period.X/2+1e-5 || math32.Abs(q.Y) > period.Y/2+1e-5 || math32.Abs(q.Z) > period.Z/2+1e-5 {
			t.Fatalf("Repeat(%v)=%v outside centered cell", p, q)
		}
		shift := ms3.Vec{
			X: period.X * float32(rng.Intn(5)-2),
			Y: period.Y * float32(rng.Intn(5)-2),
			Z: period.Z * float32(rng.Intn(5)-2),
		}
		q2 := sdfcat.Repeat(ms3.Add(p, shift), period)
		// Points on a cell face may land on either side.
		d := ms3.AbsElem(ms3.Sub(q, q2))
		if (d.X > 1e-4 && math32.Abs(d.X-period.X) > 1e-4) ||
			(d.Y > 1e-4 && math32.Abs(d.Y-period.Y) > 1e-4) ||
			(d.Z > 1e-4 && math32.Abs(d.Z-period.Z) > 1e-4) {
			t.Fatalf("Repeat not periodic: %v vs %v", q, q2)
		}
	}
	p := ms3.Vec{X: 3.3, Y: -7, Z: 1}
	if got := sdfcat.Repeat(p, ms3.Vec{}); got != p {
		t.Errorf("zero period should pass through, got %v", got)
	}
	got := sdfcat.RepeatLimited(ms3.Vec{X: 10, Y: 0.3, Z: 5}, ms3.Vec{X: 1, Y: 1}, ms3.Vec{X: 2, Y: 2})
	if !vecNear(got, ms3.Vec{X: 8, Y: 0.3, Z: 5}, 1e-5) {
		t.Errorf("RepeatLimited=%v", got)
	}
	got = sdfcat.RepeatLimited(ms3.Vec{X: 0.9}, ms3.Vec{X: 0.4}, ms3.Vec{})
	if got != (ms3.Vec{X: 0.9}) {
		t.Errorf("zero limit should keep only the center cell, got %v", got)
	}
	expectParamPanic(t, "RepeatLimited negative limit", func() {
		sdfcat.RepeatLimited(ms3.Vec{X: 0.9}, ms3.Vec{X: 0.4}, ms3.Vec{X: -1})
	})
	expectParamPanic(t, "RepeatLimited NaN limit", func() {
		sdfcat.RepeatLimited(ms3.Vec{X: 0.9}, ms3.Vec{X: 0.4}, ms3.Vec{Y: math32.NaN()})
	})
}

func TestPolarRepeat(t *testing.T) {
	const n = 12
	sector := 2 * math32.Pi / n
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		p := randVec(rng, 2)
		q := sdfcat.PolarRepeat(p, n)
		if math32.Abs(math32.Hypot(q.X, q.Y)-math32.Hypot(p.X, p.Y)) > 1e-5 || q.Z != p.Z {
			t.Fatalf("PolarRepeat(%v)=%v changed radius or height", p, q)
		}
		if a := math32.Abs(math32.Atan2(q.Y, q.X)); a > sector/2+1e-4 {
			t.Fatalf("PolarRepeat(%v)=%v outside sector, angle %v", p, q, a)
		}
	}
	expectParamPanic(t, "PolarRepeat zero count", func() { sdfcat.PolarRepeat(ms3.Vec{X: 1}, 0) })
}

func TestSymmetryElongate(t *testing.T) {
	got := sdfcat.Symmetry(ms3.Vec{X: -1, Y: -2, Z: -3}, true, false, true)
	if got != (ms3.Vec{X: 1, Y: -2, Z: 3}) {
		t.Errorf("Symmetry=%v", got)
	}
	q, w := sdfcat.Elongate(ms3.Vec{X: 0.5}, ms3.Vec{X: 0.3})
	if !vecNear(q, ms3.Vec{X: 0.2}, 1e-6) || w != 0 {
		t.Errorf("Elongate outside slab: q=%v w=%v", q, w)
	}
	q, w = sdfcat.Elongate(ms3.Vec{X: 0.1}, ms3.Vec{X: 0.3, Y: 0.3, Z: 0.3})
	if q != (ms3.Vec{}) || math32.Abs(w+0.2) > 1e-6 {
		t.Errorf("Elongate inside slab: q=%v w=%v", q, w)
	}
	expectParamPanic(t, "Elongate negative", func() { sdfcat.Elongate(ms3.Vec{}, ms3.Vec{Y: -1}) })
}

func TestTwistBend(t *testing.T) {
	p := ms3.Vec{X: 0.3, Y: 0, Z: -0.2}
	if got := sdfcat.Twist(p, 3); !vecNear(got, p, 1e-7) {
		t.Errorf("Twist at y=0 should be identity, got %v", got)
	}
	p = ms3.Vec{X: 0, Y: 0.4, Z: 1}
	if got := sdfcat.Bend(p, 3); !vecNear(got, p, 1e-7) {
		t.Errorf("Bend at x=0 should be identity, got %v", got)
	}
	if sdfcat.TwistLipschitz(0, 5) != 1 || sdfcat.BendLipschitz(0, 5) != 1 {
		t.Error("zero rate deformations must not stretch")
	}
	for _, c := range []float64{0, 0.1, 0.5, 1, 2.5, 10} {
		// Largest singular value of the shear [[1 c] [0 1]].
		tr := 2 + c*c
		want := math.Sqrt((tr + math.Sqrt(tr*tr-4)) / 2)
		got := sdfcat.ShearLipschitz(float32(c))
		if math.Abs(float64(got)-want) > 1e-5*want {
			t.Errorf("ShearLipschitz(%v)=%v, want %v", c, got, want)
		}
	}
	// Empirical stretch of Twist never exceeds the reported factor.
	const k, r = 2, 1
	L := sdfcat.TwistLipschitz(k, r)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 5000; i++ {
		a := ms3.Vec{X: 0.7 * (2*rng.Float32() - 1), Y: 2*rng.Float32() - 1, Z: 0.7 * (2*rng.Float32() - 1)}
		b := ms3.Add(a, randVec(rng, 0.01))
		if math32.Hypot(b.X, b.Z) > r || math32.Hypot(a.X, a.Z) > r {
			continue
		}
		num := ms3.Norm(ms3.Sub(sdfcat.Twist(a, k), sdfcat.Twist(b, k)))
		den := ms3.Norm(ms3.Sub(a, b))
		if num > den*L*1.001+1e-6 {
			t.Fatalf("twist stretch %v exceeds %v", num/den, L)
		}
	}
}

func TestHardCombinatorsExact(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		a := 10 * (rng.Float32() - 0.5)
		b := 10 * (rng.Float32() - 0.5)
		if sdfcat.Union(a, b) != math32.Min(a, b) {
			t.Fatalf("Union(%v,%v) != min", a, b)
		}
		if sdfcat.Intersection(a, b) != math32.Max(a, b) {
			t.Fatalf("Intersection(%v,%v) != max", a, b)
		}
		if sdfcat.Subtraction(a, b) != math32.Max(a, -b) {
			t.Fatalf("Subtraction(%v,%v) != max(a,-b)", a, b)
		}
		if sdfcat.UnionN(a, b, 0.25) != math32.Min(0.25, math32.Min(a, b)) {
			t.Fatalf("UnionN(%v,%v,0.25)", a, b)
		}
	}
	if !math32.IsInf(sdfcat.UnionN(), 1) {
		t.Error("UnionN of nothing should be +Inf")
	}
	if sdfcat.Xor(-1, 2) != -1 || sdfcat.Xor(-1, -0.5) != 0.5 || sdfcat.Xor(1, 2) != 1 {
		t.Error("Xor")
	}
	if sdfcat.Offset(1, 0.25) != 0.75 || math32.Abs(sdfcat.Shell(-0.5, 0.1)-0.4) > 1e-7 {
		t.Error("Offset or Shell")
	}
}

func TestSmoothCombinatorsBounds(t *testing.T) {
	const tol = 1e-5
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		a := 4 * (rng.Float32() - 0.5)
		b := 4 * (rng.Float32() - 0.5)
		k := 0.01 + rng.Float32()
		min, max := math32.Min(a, b), math32.Max(a, b)

		su := sdfcat.SmoothUnion(a, b, k)
		if su > min+tol || su < min-k/4-tol {
			t.Fatalf("SmoothUnion(%v,%v,%v)=%v outside [min-k/4, min]", a, b, k, su)
		}
		if math32.Abs(a-b) >= k && su != min {
			t.Fatalf("SmoothUnion must equal min outside blend band: %v vs %v", su, min)
		}
		si := sdfcat.SmoothIntersection(a, b, k)
		if si < max-tol || si > max+k/4+tol {
			t.Fatalf("SmoothIntersection(%v,%v,%v)=%v outside [max, max+k/4]", a, b, k, si)
		}
		ss := sdfcat.SmoothSubtraction(a, b, k)
		hard := math32.Max(a, -b)
		if ss < hard-tol || ss > hard+k/4+tol {
			t.Fatalf("SmoothSubtraction(%v,%v,%v)=%v outside [hard, hard+k/4]", a, b, k, ss)
		}
		se := sdfcat.SmoothUnionExp(a, b, k)
		if se > min+tol || se < min-k-tol {
			t.Fatalf("SmoothUnionExp(%v,%v,%v)=%v outside [min-k, min]", a, b, k, se)
		}
	}
	// Large inputs must not overflow the exponential blend.
	if got := sdfcat.SmoothUnionExp(1000, 1001, 0.01); math32.IsInf(got, 0) || math32.IsNaN(got) || math32.Abs(got-1000) > 1e-3 {
		t.Errorf("SmoothUnionExp overflowed: %v", got)
	}
}

func TestInvalidBlendRadius(t *testing.T) {
	for _, k := range []float32{0, -1, math32.NaN()} {
		expectParamPanic(t, "SmoothUnion", func() { sdfcat.SmoothUnion(1, 2, k) })
		expectParamPanic(t, "SmoothIntersection", func() { sdfcat.SmoothIntersection(1, 2, k) })
		expectParamPanic(t, "SmoothSubtraction", func() { sdfcat.SmoothSubtraction(1, 2, k) })
		expectParamPanic(t, "SmoothUnionExp", func() { sdfcat.SmoothUnionExp(1, 2, k) })
		expectParamPanic(t, "Shell", func() { sdfcat.Shell(1, k) })
	}
	var bld sdfcat.Builder
	expectParamPanic(t, "NewBlend", func() { bld.NewBlend(sdfcat.BlendPolynomial, 0) })
}

func TestBlend(t *testing.T) {
	var bld sdfcat.Builder
	poly := bld.NewBlend(sdfcat.BlendPolynomial, 0.3)
	exp := bld.NewBlend(sdfcat.BlendExponential, 0.3)
	if poly.Radius() != 0.3 {
		t.Errorf("Radius=%v", poly.Radius())
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		a := 2 * (rng.Float32() - 0.5)
		b := 2 * (rng.Float32() - 0.5)
		if poly.Union(a, b) != sdfcat.SmoothUnion(a, b, 0.3) ||
			poly.Intersection(a, b) != sdfcat.SmoothIntersection(a, b, 0.3) ||
			poly.Subtraction(a, b) != sdfcat.SmoothSubtraction(a, b, 0.3) {
			t.Fatal("polynomial Blend must match free functions")
		}
		if exp.Union(a, b) != sdfcat.SmoothUnionExp(a, b, 0.3) {
			t.Fatal("exponential Blend.Union must match SmoothUnionExp")
		}
		if got := exp.Intersection(a, b); got < math32.Max(a, b)-1e-5 {
			t.Fatalf("exponential intersection %v below max(%v,%v)", got, a, b)
		}
		if got := exp.Subtraction(a, b); got < math32.Max(a, -b)-1e-5 {
			t.Fatalf("exponential subtraction %v below max(%v,%v)", got, a, -b)
		}
	}
}

func TestBuilderErrors(t *testing.T) {
	var bld sdfcat.Builder
	expectParamPanic(t, "NewSphere negative", func() { bld.NewSphere(-1) })
	expectParamPanic(t, "NewTorus inverted", func() { bld.NewTorus(0.1, 0.5) })

	bld.SetFlags(sdfcat.FlagNoDimensionPanic)
	if bld.Flags()&sdfcat.FlagNoDimensionPanic == 0 {
		t.Fatal("flag not set")
	}
	bld.NewSphere(0)
	bld.NewBox(1, 1, 1, 0.6)
	bld.NewCylinder(float32(math.NaN()), 1, 0)
	bld.NewRotation(1, ms3.Vec{})
	bld.NewSphere(1) // Valid, no error.
	err := bld.Err()
	if err == nil {
		t.Fatal("expected accumulated errors")
	}
	if !errors.Is(err, sdfcat.ErrInvalidParameter) {
		t.Errorf("accumulated error should match ErrInvalidParameter: %v", err)
	}
	var perr *sdfcat.ParamError
	if !errors.As(err, &perr) || perr.Op != "NewSphere" {
		t.Errorf("first accumulated error should come from NewSphere, got %v", perr)
	}
	if joined, ok := err.(interface{ Unwrap() []error }); !ok || len(joined.Unwrap()) != 4 {
		t.Errorf("expected 4 joined errors, got %v", err)
	}
	bld.ClearErrors()
	if bld.Err() != nil {
		t.Error("ClearErrors did not clear")
	}
}

func TestRandDeterminism(t *testing.T) {
	a := sdfcat.NewRand(sdfcat.DefaultSeed)
	b := sdfcat.NewRand(sdfcat.DefaultSeed)
	c := sdfcat.NewRand(sdfcat.DefaultSeed + 1)
	same := true
	for i := 0; i < 100; i++ {
		va, vb, vc := a.Uint32(), b.Uint32(), c.Uint32()
		if va != vb {
			t.Fatalf("equal seeds diverged at %d", i)
		}
		same = same && va == vc
	}
	if same {
		t.Error("different seeds produced equal sequences")
	}
	box := ms3.Box{Min: ms3.Vec{X: -1, Y: 2, Z: 0}, Max: ms3.Vec{X: 1, Y: 3, Z: 0.5}}
	for i := 0; i < 1000; i++ {
		f := a.Float32()
		if f < 0 || f >= 1 {
			t.Fatalf("Float32=%v", f)
		}
		r := a.Range(-2, 5)
		if r < -2 || r > 5 {
			t.Fatalf("Range=%v", r)
		}
		p := a.InBox(box)
		if p.X < box.Min.X || p.X > box.Max.X || p.Y < box.Min.Y || p.Y > box.Max.Y || p.Z < box.Min.Z || p.Z > box.Max.Z {
			t.Fatalf("InBox=%v outside %v", p, box)
		}
	}
	if sdfcat.Hash3(1, 2, 3, 4) != sdfcat.Hash3(1, 2, 3, 4) {
		t.Error("Hash3 not deterministic")
	}
	if sdfcat.Hash3(1, 2, 3, 4) == sdfcat.Hash3(2, 2, 3, 4) || sdfcat.Hash3(1, 2, 3, 4) == sdfcat.Hash3(1, 2, 3, 5) {
		t.Error("Hash3 collisions on neighbouring inputs")
	}
	if h := sdfcat.HashFloat(math.MaxUint32); h < 0 || h >= 1 {
		t.Errorf("HashFloat=%v", h)
	}
}
