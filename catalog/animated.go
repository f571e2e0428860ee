package catalog

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfcat"
)

// Animated shapes read the context time in seconds. One animation cycle lasts one second
// unless stated otherwise.

const (
	fishAmplitude = 0.06
	fishFrequency = 4 // radians per unit along X.

	waveAmplitude = 0.2
	waveFrequency = 3
)

var (
	fishLipschitz = sdfcat.ShearLipschitz(fishAmplitude * fishFrequency)
	// The height field gradient is at most amplitude*frequency.
	waveLipschitz = math32.Sqrt(1 + waveAmplitude*waveFrequency*waveAmplitude*waveFrequency)
)

func pulsingSphere(bld *sdfcat.Builder) sdfcat.Func {
	return func(p ms3.Vec, c sdfcat.Context) float32 {
		r := 0.5 + 0.15*math32.Sin(2*math32.Pi*c.Time)
		return ms3.Norm(p) - r
	}
}

// metaballs are four spheres on independent orbits melted together.
func metaballs(bld *sdfcat.Builder) sdfcat.Func {
	ball := bld.NewSphere(0.22)
	blend := bld.NewBlend(sdfcat.BlendPolynomial, 0.3)
	speeds := [4]float32{1, 1.3, 0.7, 1.7}
	return func(p ms3.Vec, c sdfcat.Context) float32 {
		d := math32.Inf(1)
		for i, w := range speeds {
			phase := float32(i) * math32.Pi / 2
			a := 2*math32.Pi*w*c.Time + phase
			center := ms3.Vec{
				X: 0.4 * math32.Cos(a),
				Y: 0.4 * math32.Sin(1.3*a),
				Z: 0.2 * math32.Sin(a+phase),
			}
			dist := ball.Distance(sdfcat.Translate(p, center))
			if i == 0 {
				d = dist
			} else {
				d = blend.Union(d, dist)
			}
		}
		return d
	}
}

// fish swims along X, its body swaying sideways as a travelling wave.
func fish(bld *sdfcat.Builder) sdfcat.Func {
	body := bld.NewEllipsoid(0.55, 0.2, 0.18)
	tail := bld.NewEllipsoid(0.15, 0.03, 0.22)
	eye := bld.NewSphere(0.04)
	blend := bld.NewBlend(sdfcat.BlendPolynomial, 0.08)
	tailOffset := ms3.Vec{X: -0.62}
	eyeOffset := ms3.Vec{X: 0.4, Y: 0.12, Z: 0.05}
	inv := 1 / fishLipschitz
	return func(p ms3.Vec, c sdfcat.Context) float32 {
		p.Y -= fishAmplitude * math32.Sin(fishFrequency*p.X-2*math32.Pi*c.Time)
		d := blend.Union(body.Distance(p), tail.Distance(sdfcat.Translate(p, tailOffset)))
		eyes := eye.Distance(sdfcat.Translate(sdfcat.Symmetry(p, false, true, false), eyeOffset))
		return sdfcat.Subtraction(d, eyes) * inv
	}
}

// wave is a block of water whose top surface is a travelling sinusoidal height field.
func wave(bld *sdfcat.Builder) sdfcat.Func {
	block := bld.NewBox(1.6, 1.6, 1.2, 0)
	inv := 1 / waveLipschitz
	return func(p ms3.Vec, c sdfcat.Context) float32 {
		phase := 2 * math32.Pi * c.Time
		h := waveAmplitude * math32.Sin(waveFrequency*p.X+phase) * math32.Cos(waveFrequency*p.Y+phase)
		return sdfcat.Intersection((p.Z-h)*inv, block.Distance(p))
	}
}

func spinningTorus(bld *sdfcat.Builder) sdfcat.Func {
	tor := bld.NewTorus(0.5, 0.15)
	return func(p ms3.Vec, c sdfcat.Context) float32 {
		a := 2 * math32.Pi * c.Time
		p = sdfcat.RotateZ(sdfcat.RotateX(p, -a/2), -a/4)
		return tor.Distance(p)
	}
}

// orbitingMoons is a planet circled by three moons on inclined orbits.
func orbitingMoons(bld *sdfcat.Builder) sdfcat.Func {
	planet := bld.NewSphere(0.35)
	moon := bld.NewSphere(0.1)
	incl := [3]sdfcat.Rotation{
		bld.NewRotation(0, ms3.Vec{X: 1}),
		bld.NewRotation(math32.Pi/3, ms3.Vec{X: 1}),
		bld.NewRotation(-math32.Pi/3, ms3.Vec{Y: 1}),
	}
	speeds := [3]float32{1, 0.6, 0.35}
	return func(p ms3.Vec, c sdfcat.Context) float32 {
		d := planet.Distance(p)
		for i := range incl {
			a := 2*math32.Pi*speeds[i]*c.Time + float32(i)*2
			s, co := math32.Sincos(a)
			center := incl[i].Apply(ms3.Vec{X: 0.65 * co, Y: 0.65 * s})
			d = sdfcat.Union(d, moon.Distance(sdfcat.Translate(p, center)))
		}
		return d
	}
}
