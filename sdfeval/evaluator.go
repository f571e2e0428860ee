package sdfeval

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sdfcat"
	"github.com/soypat/sdfcat/registry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errChunkPanicked = errors.New("chunk panicked")

// DefaultChunkSize is the number of points evaluated by one goroutine at a time.
const DefaultChunkSize = 4096

// Evaluator applies registered shape functions over point batches. It holds no
// mutable state and may be used concurrently.
type Evaluator struct {
	reg       *registry.Registry
	workers   int
	chunkSize int
	log       *zap.Logger
}

// Option configures an [Evaluator].
type Option func(*Evaluator)

// WithWorkers limits the number of goroutines evaluating a single batch.
// Values below 1 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(ev *Evaluator) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		ev.workers = n
	}
}

// WithChunkSize sets how many consecutive points a goroutine evaluates.
// Values below 1 select [DefaultChunkSize].
func WithChunkSize(n int) Option {
	return func(ev *Evaluator) {
		if n < 1 {
			n = DefaultChunkSize
		}
		ev.chunkSize = n
	}
}

// WithLogger sets the logger used for debug output. A nil logger disables logging.
func WithLogger(log *zap.Logger) Option {
	return func(ev *Evaluator) {
		if log == nil {
			log = zap.NewNop()
		}
		ev.log = log
	}
}

// New creates an evaluator resolving names in reg.
func New(reg *registry.Registry, opts ...Option) (*Evaluator, error) {
	if reg == nil {
		return nil, errors.New("nil registry")
	}
	ev := &Evaluator{
		reg:       reg,
		workers:   runtime.GOMAXPROCS(0),
		chunkSize: DefaultChunkSize,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ev)
	}
	return ev, nil
}

// Registry returns the registry the evaluator resolves names in.
func (ev *Evaluator) Registry() *registry.Registry { return ev.reg }

// Evaluate evaluates the shape called name at every point with context c. The name is
// resolved before any evaluation so an unknown name fails with a [*registry.UnknownShapeError]
// and no work done. The result has the length of points and result[i] is the distance at
// points[i]. An invalid parameter raised by the shape fails the whole batch: no partial
// results are returned. Any other panic raised by the shape is re-raised on the calling
// goroutine regardless of the worker count. NaN and infinite values produced by the shape
// are returned as is.
func (ev *Evaluator) Evaluate(name string, points []ms3.Vec, c sdfcat.Context) ([]float32, error) {
	fn, err := ev.reg.Resolve(name)
	if err != nil {
		return nil, err
	}
	dist := make([]float32, len(points))
	err = ev.run(name, fn, points, dist, c)
	if err != nil {
		return nil, err
	}
	return dist, nil
}

// EvaluatePoint evaluates the shape called name at p. It behaves as a one point batch.
func (ev *Evaluator) EvaluatePoint(name string, p ms3.Vec, c sdfcat.Context) (float32, error) {
	dist, err := ev.Evaluate(name, []ms3.Vec{p}, c)
	if err != nil {
		return 0, err
	}
	return dist[0], nil
}

// EvaluateInto is like [Evaluator.Evaluate] but stores results in dst, which must have the
// length of points. The contents of dst are unspecified if an error is returned.
func (ev *Evaluator) EvaluateInto(name string, points []ms3.Vec, dst []float32, c sdfcat.Context) error {
	fn, err := ev.reg.Resolve(name)
	if err != nil {
		return err
	}
	if len(points) != len(dst) {
		return fmt.Errorf("%w: %d points, %d distances", ErrLengthMismatch, len(points), len(dst))
	}
	return ev.run(name, fn, points, dst, c)
}

// EvaluateGrid evaluates the shape called name at every node of grid.
func (ev *Evaluator) EvaluateGrid(name string, grid NodeGrid, c sdfcat.Context) ([]ms3.Vec, []float32, error) {
	if _, err := ev.reg.Resolve(name); err != nil {
		return nil, nil, err
	}
	points, err := grid.Points()
	if err != nil {
		return nil, nil, err
	}
	dist, err := ev.Evaluate(name, points, c)
	if err != nil {
		return nil, nil, err
	}
	return points, dist, nil
}

func (ev *Evaluator) run(name string, fn sdfcat.Func, points []ms3.Vec, dist []float32, c sdfcat.Context) error {
	n := len(points)
	if n == 0 {
		return nil
	}
	chunk := ev.chunkSize
	nchunks := (n + chunk - 1) / chunk
	workers := min(ev.workers, nchunks)
	ev.log.Debug("evaluating batch",
		zap.String("shape", name),
		zap.Int("points", n),
		zap.Int("chunks", nchunks),
		zap.Int("workers", workers),
		zap.Float32("time", c.Time),
		zap.Uint32("seed", c.Seed),
	)
	var err error
	if workers <= 1 {
		err = evalChunk(fn, points, dist, c)
	} else {
		var (
			panicOnce sync.Once
			panicVal  any
		)
		g, ctx := errgroup.WithContext(context.Background())
		g.SetLimit(workers)
		for start := 0; start < n; start += chunk {
			end := min(start+chunk, n)
			g.Go(func() (err error) {
				if ctx.Err() != nil {
					// Another chunk already failed, the batch is discarded.
					return nil
				}
				defer func() {
					// Foreign panics are carried to the calling goroutine.
					if r := recover(); r != nil {
						panicOnce.Do(func() { panicVal = r })
						err = errChunkPanicked
					}
				}()
				return evalChunk(fn, points[start:end], dist[start:end], c)
			})
		}
		err = g.Wait()
		if panicVal != nil {
			panic(panicVal)
		}
	}
	if err != nil {
		ev.log.Debug("batch failed", zap.String("shape", name), zap.Error(err))
		return fmt.Errorf("evaluating %s: %w", name, err)
	}
	return nil
}
