package remap

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const _progressInterval = time.Second

// Solver finds the lowest value any seed resolves to.
type Solver struct {
	pipeline *Pipeline
	workers  int
	logger   *zap.Logger
}

type Option func(*Solver)

// WithWorkers bounds the number of seed intervals resolved at once.
// Values below 1 mean GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *Solver) { s.workers = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewSolver(p *Pipeline, opts ...Option) *Solver {
	s := &Solver{pipeline: p, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	return s
}

func (s *Solver) check(seeds []Interval) error {
	if len(seeds) == 0 {
		return fmt.Errorf("%w: no seeds", ErrEmptyInput)
	}
	if s.pipeline == nil || s.pipeline.Len() == 0 {
		return fmt.Errorf("%w: no stages", ErrEmptyInput)
	}
	for _, iv := range seeds {
		if err := iv.validate(); err != nil {
			return err
		}
	}
	return nil
}

// MinimumLocation resolves every seed interval through the pipeline and
// returns the smallest resulting value. Seeds are resolved independently;
// each task reports its own minimum and the results are reduced once all
// tasks finish.
func (s *Solver) MinimumLocation(ctx context.Context, seeds []Interval) (uint64, error) {
	if err := s.check(seeds); err != nil {
		return 0, err
	}

	logger := s.logger.With(zap.String("solve", uuid.NewString()))
	logger.Debug("solving",
		zap.Int("seeds", len(seeds)),
		zap.Int("stages", s.pipeline.Len()),
		zap.Int("workers", s.workers))

	var (
		minima   = make([]uint64, len(seeds))
		done     atomic.Int64
		progress = rate.NewLimiter(rate.Every(_progressInterval), 1)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, iv := range seeds {
		if gctx.Err() != nil {
			break
		}
		i, iv := i, iv
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			low, _ := s.pipeline.Resolve(NewRangeSet(iv)).Min()
			minima[i] = low
			n := done.Add(1)
			if progress.Allow() {
				logger.Debug("progress", zap.Int64("done", n), zap.Int("total", len(seeds)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	lowest := minima[0]
	for _, v := range minima[1:] {
		lowest = min(lowest, v)
	}

	logger.Debug("solved", zap.Uint64("minimum", lowest))
	return lowest, nil
}

// Trace resolves all seeds as one set and logs the size of the working set
// after each stage. It returns the per-stage sets.
func (s *Solver) Trace(seeds []Interval) ([]RangeSet, error) {
	if err := s.check(seeds); err != nil {
		return nil, err
	}

	trace := s.pipeline.Trace(NewRangeSet(seeds...))
	for i, m := range s.pipeline.stages {
		x := trace[i+1]
		s.logger.Debug("stage",
			zap.String("map", m.Name()),
			zap.Int("intervals", x.Len()),
			zap.Uint64("values", x.Count()))
	}
	return trace, nil
}
