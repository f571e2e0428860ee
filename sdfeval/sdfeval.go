// Package sdfeval evaluates registered distance functions over batches of points.
//
// Results are index aligned with the input and identical to evaluating every point
// on its own, regardless of how the batch is split across goroutines.
package sdfeval

import (
	"errors"
	"fmt"
	"sync"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfcat"
	"github.com/soypat/sdfcat/catalog"
)

var (
	// ErrLengthMismatch is returned when position and distance buffers differ in length.
	ErrLengthMismatch = errors.New("position and distance buffer length mismatch")
	errEmptyBuffers   = errors.New("empty buffers")
)

// SDF3 implements a 3D signed distance field in vectorized form, so renderers may
// consume any registered shape without knowing about names or contexts.
type SDF3 interface {
	// Evaluate evaluates the signed distance field over pos positions.
	// dist and pos must be of same length. Resulting distances are stored
	// in dist.
	//
	// userData is passed through untouched and is not used by the adapters in this package.
	Evaluate(pos []ms3.Vec, dist []float32, userData any) error
	// Bounds returns the SDF's bounding box such that all of the shape is contained within.
	Bounds() ms3.Box
}

// NewSDF3 binds f to a fixed evaluation context and bounding box.
func NewSDF3(f sdfcat.Func, c sdfcat.Context, bounds ms3.Box) (SDF3, error) {
	if f == nil {
		return nil, errors.New("nil shape function")
	}
	sz := bounds.Size()
	if !(sz.X > 0 && sz.Y > 0 && sz.Z > 0) {
		return nil, fmt.Errorf("invalid bounds %v", bounds)
	}
	return &funcSDF3{fn: f, ctx: c, bb: bounds}, nil
}

type funcSDF3 struct {
	fn  sdfcat.Func
	ctx sdfcat.Context
	bb  ms3.Box
}

func (s *funcSDF3) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	if len(pos) != len(dist) {
		return ErrLengthMismatch
	} else if len(pos) == 0 {
		return errEmptyBuffers
	}
	return evalChunk(s.fn, pos, dist, s.ctx)
}

func (s *funcSDF3) Bounds() ms3.Box { return s.bb }

// evalChunk evaluates fn over pos. Invalid parameter panics raised by the shape are
// returned as errors; any other panic is not ours to handle and keeps unwinding.
func evalChunk(fn sdfcat.Func, pos []ms3.Vec, dist []float32, c sdfcat.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(*sdfcat.ParamError)
			if !ok {
				panic(r)
			}
			err = perr
		}
	}()
	for i, p := range pos {
		dist[i] = fn(p, c)
	}
	return nil
}

// Summary describes a set of distance samples.
type Summary struct {
	Count int
	// Min and Max ignore NaN samples. Both are NaN if every sample is NaN.
	Min, Max float32
	// Inside counts samples strictly below zero.
	Inside int
	NaN    int
}

// Summarize computes the summary of dist.
func Summarize(dist []float32) Summary {
	s := Summary{Count: len(dist), Min: math32.Inf(1), Max: math32.Inf(-1)}
	for _, d := range dist {
		if math32.IsNaN(d) {
			s.NaN++
			continue
		}
		s.Min = math32.Min(s.Min, d)
		s.Max = math32.Max(s.Max, d)
		if d < 0 {
			s.Inside++
		}
	}
	if s.NaN == s.Count {
		s.Min, s.Max = math32.NaN(), math32.NaN()
	}
	return s
}

var defaultEvaluator = sync.OnceValues(func() (*Evaluator, error) {
	reg, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	return New(reg)
})

// Evaluate evaluates the catalog shape called name at every point using the
// process-wide registry. See [Evaluator.Evaluate].
func Evaluate(name string, points []ms3.Vec, c sdfcat.Context) ([]float32, error) {
	ev, err := defaultEvaluator()
	if err != nil {
		return nil, err
	}
	return ev.Evaluate(name, points, c)
}

// EvaluatePoint evaluates the catalog shape called name at a single point.
func EvaluatePoint(name string, p ms3.Vec, c sdfcat.Context) (float32, error) {
	ev, err := defaultEvaluator()
	if err != nil {
		return 0, err
	}
	return ev.EvaluatePoint(name, p, c)
}

// ListAvailable returns the catalog shape names in registration order.
func ListAvailable() []string {
	return catalog.MustDefault().Names()
}
