package sdfcat

import (
	"math/rand/v2"

	"github.com/soypat/geometry/ms3"
)

// pcgStream selects the PCG stream shared by every seeded generator in the package.
const pcgStream = 0x9e3779b97f4a7c15

// Rand is a deterministic pseudo-random generator seeded from a [Context] seed.
// It is a value type so procedural shapes construct a fresh one on every call
// instead of sharing a generator between goroutines.
type Rand struct {
	pcg rand.PCG
}

// NewRand returns a generator seeded with seed. Equal seeds produce equal sequences.
func NewRand(seed uint32) Rand {
	var r Rand
	r.pcg.Seed(uint64(seed), pcgStream)
	return r
}

// Uint32 returns a pseudo-random 32-bit value.
func (r *Rand) Uint32() uint32 {
	return uint32(r.pcg.Uint64() >> 32)
}

// Float32 returns a pseudo-random number in [0, 1).
func (r *Rand) Float32() float32 {
	return float32(r.pcg.Uint64()>>40) / (1 << 24)
}

// Range returns a pseudo-random number in [lo, hi).
func (r *Rand) Range(lo, hi float32) float32 {
	return lo + (hi-lo)*r.Float32()
}

// InBox returns a pseudo-random point inside box.
func (r *Rand) InBox(box ms3.Box) ms3.Vec {
	return ms3.Vec{
		X: r.Range(box.Min.X, box.Max.X),
		Y: r.Range(box.Min.Y, box.Max.Y),
		Z: r.Range(box.Min.Z, box.Max.Z),
	}
}

// Hash3 hashes integer cell coordinates together with a seed. Used by procedural
// shapes to derive per-cell values without any generator state.
func Hash3(seed uint32, i, j, k int32) uint32 {
	h := seed
	h = mix32(h ^ uint32(i)*0x8da6b343)
	h = mix32(h ^ uint32(j)*0xd8163841)
	h = mix32(h ^ uint32(k)*0xcb1ab31f)
	return h
}

// HashFloat maps a hash to [0, 1).
func HashFloat(h uint32) float32 {
	return float32(h>>8) / (1 << 24)
}

// mix32 is a 32-bit integer finalizer with good avalanche behaviour.
func mix32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}
