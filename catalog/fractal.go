package catalog

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfcat"
)

// Fractal shapes are distance estimators: they track the derivative of an escape-time or
// folding iteration and are conservative only approximately. They are scaled to fit [-1,1]^3.

// mandelbulb is the power 8 Mandelbulb. The 0.5*log(r)*r/dr estimate overshoots by a few
// percent near the surface when iteration stops close to r = 2, so bailout is kept at 4.
func mandelbulb(bld *sdfcat.Builder) sdfcat.Func {
	const (
		scale      = 0.75
		power      = 8
		iterations = 8
		bailout    = 4
	)
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		c := ms3.Scale(1/scale, p)
		z := c
		dr := float32(1)
		var r float32
		for range iterations {
			r = ms3.Norm(z)
			if r > bailout {
				break
			}
			var theta, phi float32
			if r > 0 {
				theta = math32.Acos(sdfcat.Clamp(z.Z/r, -1, 1))
				phi = math32.Atan2(z.Y, z.X)
			}
			rp := math32.Pow(r, power-1)
			dr = rp*power*dr + 1
			st, ct := math32.Sincos(theta * power)
			sp, cp := math32.Sincos(phi * power)
			z = ms3.Add(ms3.Scale(rp*r, ms3.Vec{X: st * cp, Y: st * sp, Z: ct}), c)
		}
		if r == 0 {
			return 0
		}
		return 0.5 * math32.Log(r) * r / dr * scale
	}
}

// mengerSponge is three levels of the Menger sponge carved out of a cube.
func mengerSponge(bld *sdfcat.Builder) sdfcat.Func {
	const (
		scale  = 0.8
		levels = 3
	)
	// The iteration works on a cube of half-size 1.
	box := bld.NewBox(2, 2, 2, 0)
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		p = ms3.Scale(1/scale, p)
		d := box.Distance(p)
		s := float32(1)
		for range levels {
			a := ms3.AddScalar(-1, sdfcat.ModElem(ms3.Scale(s, p), ms3.Vec{X: 2, Y: 2, Z: 2}))
			s *= 3
			r := ms3.AbsElem(ms3.AddScalar(1, ms3.Scale(-3, ms3.AbsElem(a))))
			da := math32.Max(r.X, r.Y)
			db := math32.Max(r.Y, r.Z)
			dc := math32.Max(r.Z, r.X)
			c := (math32.Min(da, math32.Min(db, dc)) - 1) / s
			d = sdfcat.Intersection(d, c)
		}
		return d * scale
	}
}

// sierpinski is the Sierpinski tetrahedron obtained by folding space across the
// tetrahedron's symmetry planes and scaling towards a vertex.
func sierpinski(bld *sdfcat.Builder) sdfcat.Func {
	const (
		scale      = 0.5
		fold       = 2
		iterations = 10
		// Orbits that stay bounded end within this skin and count as inside.
		skin = 1e-3
	)
	return func(p ms3.Vec, _ sdfcat.Context) float32 {
		z := ms3.Scale(1/scale, p)
		for range iterations {
			if z.X+z.Y < 0 {
				z.X, z.Y = -z.Y, -z.X
			}
			if z.X+z.Z < 0 {
				z.X, z.Z = -z.Z, -z.X
			}
			if z.Y+z.Z < 0 {
				z.Y, z.Z = -z.Z, -z.Y
			}
			z = ms3.AddScalar(-(fold - 1), ms3.Scale(fold, z))
		}
		return ms3.Norm(z)*math32.Pow(fold, -iterations)*scale - skin
	}
}
