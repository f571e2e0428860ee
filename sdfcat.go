// Package sdfcat provides the building blocks for conservative 3D signed distance
// fields: scalar helpers, domain operators, combinators and primitives.
//
// A conservative distance never overestimates the distance from a point to the surface
// of a shape, so a ball of that radius centered at the point never crosses the surface.
// Every operator in this package states whether it preserves that property exactly,
// preserves it as a bound, or degrades it by a documented factor.
package sdfcat

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

const (
	// For an equilateral triangle of side length L the length of bisector is L multiplied this number which is sqrt(1-0.25).
	tribisect = 0.8660254037844386467637231707529361834714026269051903140279034897
	sqrt3     = 1.7320508075688772935274463415058723669428052538103806280558069794
	largenum  = 1e20
	// epstol is used to check for badly conditioned denominators
	// such as lengths used for normalization.
	epstol = 6e-7
)

// DefaultSeed is the seed used by callers that do not supply one.
const DefaultSeed uint32 = 12345

// Context is the evaluation context passed to every shape function.
// Static shapes ignore it, animated shapes read Time and procedural shapes read Seed.
type Context struct {
	Time float32
	Seed uint32
}

// DefaultContext returns the context at time zero with [DefaultSeed].
func DefaultContext() Context {
	return Context{Seed: DefaultSeed}
}

// Func is the shape function contract: a pure function of the query point and the
// evaluation context returning a conservative signed distance. Negative values are inside.
// A Func must not retain state between invocations so that it may be called concurrently.
type Func func(p ms3.Vec, c Context) float32

// ErrInvalidParameter is matched by every [ParamError].
var ErrInvalidParameter = errors.New("invalid parameter")

// ParamError reports an out-of-contract argument to a combinator, domain operator or primitive.
type ParamError struct {
	Op    string
	Param string
	Value float32
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: invalid %s %v", e.Op, e.Param, e.Value)
}

// Is reports true for [ErrInvalidParameter].
func (e *ParamError) Is(target error) bool { return target == ErrInvalidParameter }

// invalidParam panics with a *ParamError. Used by free functions evaluated inside shapes
// where no error return is available. The batch evaluator recovers these panics.
func invalidParam(op, param string, v float32) {
	panic(&ParamError{Op: op, Param: param, Value: v})
}

// Flags modify the Builder's behaviour.
type Flags uint64

const (
	// FlagNoDimensionPanic makes the Builder accumulate errors instead of panicking
	// on invalid dimensions. Errors are then available through [Builder.Err].
	FlagNoDimensionPanic Flags = 1 << iota
)

// Builder validates shape construction parameters. By default an invalid
// parameter panics at the point of construction. With [FlagNoDimensionPanic]
// set errors are accumulated and the returned value is still usable but meaningless.
type Builder struct {
	flags     Flags
	accumErrs []error
}

// Flags returns the flags set on the Builder.
func (bld *Builder) Flags() Flags { return bld.flags }

// SetFlags replaces the Builder's flags.
func (bld *Builder) SetFlags(flags Flags) { bld.flags = flags }

// Err returns all accumulated errors joined, or nil.
func (bld *Builder) Err() error {
	if len(bld.accumErrs) == 0 {
		return nil
	}
	return errors.Join(bld.accumErrs...)
}

// ClearErrors discards accumulated errors.
func (bld *Builder) ClearErrors() {
	bld.accumErrs = bld.accumErrs[:0]
}

func (bld *Builder) paramErr(op, param string, v float32) {
	err := &ParamError{Op: op, Param: param, Value: v}
	if bld.flags&FlagNoDimensionPanic == 0 {
		panic(err)
	}
	bld.accumErrs = append(bld.accumErrs, err)
}

// positive checks v > 0, which also rejects NaN.
func (bld *Builder) positive(op, param string, v float32) {
	if !(v > 0) {
		bld.paramErr(op, param, v)
	}
}

func (bld *Builder) nonNegative(op, param string, v float32) {
	if !(v >= 0) {
		bld.paramErr(op, param, v)
	}
}

func minf(a, b float32) float32 {
	return math32.Min(a, b)
}

func maxf(a, b float32) float32 {
	return math32.Max(a, b)
}

func absf(a float32) float32 {
	return math32.Abs(a)
}

func hypotf(a, b float32) float32 {
	return math32.Hypot(a, b)
}
