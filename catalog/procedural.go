package catalog

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfcat"
)

// Procedural shapes derive their layout from the context seed. Each evaluation seeds
// its own generator so equal seeds always produce equal shapes.

const (
	gyroidFrequency = 8
	sqrt3           = 1.732050807568877293527446341505872366942805253810380628055806979
)

// The gradient of the gyroid scaled by 1/frequency has components of the form
// cx*cy - sz*sx, so its squared norm is at most cx²+sx²+cy²+sy²+cz²+sz² = 3.
var gyroidLipschitz float32 = sqrt3

// unitDir returns a pseudo-random unit vector.
func unitDir(rng *sdfcat.Rand) ms3.Vec {
	cube := ms3.Box{Min: ms3.Vec{X: -1, Y: -1, Z: -1}, Max: ms3.Vec{X: 1, Y: 1, Z: 1}}
	for {
		v := rng.InBox(cube)
		n := ms3.Norm(v)
		if n > 0.1 && n <= 1 {
			return ms3.Scale(1/n, v)
		}
	}
}

// asteroid is a sphere pocked with craters.
func asteroid(bld *sdfcat.Builder) sdfcat.Func {
	const radius, craters = 0.6, 10
	blend := bld.NewBlend(sdfcat.BlendPolynomial, 0.05)
	return func(p ms3.Vec, c sdfcat.Context) float32 {
		rng := sdfcat.NewRand(c.Seed)
		d := ms3.Norm(p) - radius
		for range craters {
			center := ms3.Scale(radius, unitDir(&rng))
			r := rng.Range(0.08, 0.22)
			d = blend.Subtraction(d, ms3.Norm(ms3.Sub(p, center))-r)
		}
		return d
	}
}

func randomSpheres(bld *sdfcat.Builder) sdfcat.Func {
	const count = 12
	region := ms3.Box{Min: ms3.Vec{X: -0.6, Y: -0.6, Z: -0.6}, Max: ms3.Vec{X: 0.6, Y: 0.6, Z: 0.6}}
	return func(p ms3.Vec, c sdfcat.Context) float32 {
		rng := sdfcat.NewRand(c.Seed)
		d := math32.Inf(1)
		for range count {
			center := rng.InBox(region)
			r := rng.Range(0.1, 0.3)
			d = sdfcat.Union(d, ms3.Norm(ms3.Sub(p, center))-r)
		}
		return d
	}
}

// crystal is a cluster of hexagonal prisms growing upward from the origin.
func crystal(bld *sdfcat.Builder) sdfcat.Func {
	const count = 7
	base := bld.NewSphere(0.15)
	return func(p ms3.Vec, c sdfcat.Context) float32 {
		rng := sdfcat.NewRand(c.Seed)
		var local sdfcat.Builder
		d := base.Distance(p)
		for range count {
			dir := ms3.Vec{X: rng.Range(-1, 1), Y: rng.Range(0.2, 1), Z: rng.Range(-1, 1)}
			dir = ms3.Unit(dir)
			length := rng.Range(0.5, 0.9)
			prism := local.NewHexPrism(rng.Range(0.1, 0.2), length)
			// Rotation taking the prism axis Z onto dir. dir.Y is never zero so the axis is valid.
			axis := ms3.Vec{X: -dir.Y, Y: dir.X}
			angle := math32.Acos(sdfcat.Clamp(dir.Z, -1, 1))
			center := ms3.Scale(length/2-0.05, dir)
			q := sdfcat.RotateAxis(sdfcat.Translate(p, center), axis, -angle)
			d = sdfcat.Union(d, prism.Distance(q))
		}
		return d
	}
}

// pebbles fills a ball with one randomly sized and placed pebble per lattice cell.
// Each pebble stays pebbleMargin away from its cell faces so a neighbouring pebble is
// never closer than the distance to the nearest face plus that margin.
func pebbles(bld *sdfcat.Builder) sdfcat.Func {
	const (
		cell         = 0.4
		half         = cell / 2
		maxOffset    = 0.06
		maxRadius    = 0.12
		pebbleMargin = half - maxOffset - maxRadius
	)
	clip := bld.NewSphere(0.85)
	return func(p ms3.Vec, c sdfcat.Context) float32 {
		i := int32(math32.Floor(p.X / cell))
		j := int32(math32.Floor(p.Y / cell))
		k := int32(math32.Floor(p.Z / cell))
		q := ms3.Sub(p, ms3.Vec{
			X: (float32(i) + 0.5) * cell,
			Y: (float32(j) + 0.5) * cell,
			Z: (float32(k) + 0.5) * cell,
		})
		h := sdfcat.Hash3(c.Seed, i, j, k)
		off := ms3.Vec{
			X: (2*sdfcat.HashFloat(h) - 1) * maxOffset,
			Y: (2*sdfcat.HashFloat(h*0x9e3779b1) - 1) * maxOffset,
			Z: (2*sdfcat.HashFloat(h*0x85ebca6b) - 1) * maxOffset,
		}
		r := maxRadius/2 + sdfcat.HashFloat(h*0xc2b2ae35)*maxRadius/2
		own := ms3.Norm(ms3.Sub(q, off)) - r
		neighbour := half - ms3.AbsElem(q).Max() + pebbleMargin
		return sdfcat.Intersection(sdfcat.Union(own, neighbour), clip.Distance(p))
	}
}

// gyroid is a thin gyroid sheet clipped to a ball. The seed shifts the lattice.
func gyroid(bld *sdfcat.Builder) sdfcat.Func {
	const thickness = 0.03
	clip := bld.NewSphere(0.9)
	return func(p ms3.Vec, c sdfcat.Context) float32 {
		rng := sdfcat.NewRand(c.Seed)
		shift := ms3.Vec{X: rng.Float32(), Y: rng.Float32(), Z: rng.Float32()}
		q := ms3.Scale(gyroidFrequency, ms3.Add(p, shift))
		sx, cx := math32.Sincos(q.X)
		sy, cy := math32.Sincos(q.Y)
		sz, cz := math32.Sincos(q.Z)
		g := (sx*cy + sy*cz + sz*cx) / gyroidFrequency
		return sdfcat.Intersection(absf(g)/gyroidLipschitz-thickness, clip.Distance(p))
	}
}

func absf(a float32) float32 { return math32.Abs(a) }
