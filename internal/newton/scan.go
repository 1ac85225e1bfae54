package newton

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/polyroot/internal/poly"
)

type ScanConfig struct {
	Min, Max float64
	Steps    int
	// Workers bounds the number of concurrent solves. Zero uses GOMAXPROCS.
	Workers int
}

func (c ScanConfig) Validate() error {
	if c.Steps < 1 {
		return fmt.Errorf("%w: scan needs at least one step, got %d", ErrInvalidConfig, c.Steps)
	}
	if c.Max < c.Min {
		return fmt.Errorf("%w: scan range [%g, %g] is reversed", ErrInvalidConfig, c.Min, c.Max)
	}
	return nil
}

// Guesses returns Steps evenly spaced starting points across [Min, Max].
func (c ScanConfig) Guesses() []float64 {
	if c.Steps == 1 {
		return []float64{(c.Min + c.Max) / 2}
	}
	guesses := make([]float64, c.Steps)
	h := (c.Max - c.Min) / float64(c.Steps-1)
	for i := range guesses {
		guesses[i] = c.Min + float64(i)*h
	}
	return guesses
}

// Scan starts the solver from every guess of sc in parallel and returns the
// distinct roots found, sorted ascending. Runs that fail are skipped; roots
// closer than 10*Epsilon are merged.
func (s *Solver) Scan(ctx context.Context, p poly.Poly, sc ScanConfig) ([]float64, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	guesses := sc.Guesses()
	found := make([]float64, len(guesses))
	ok := make([]bool, len(guesses))

	workers := sc.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, guess := range guesses {
		g.Go(func() error {
			// observers are not shared with workers
			res, err := New(s.cfg).Solve(gctx, p, guess)
			if err != nil {
				if gctx.Err() != nil {
					return err
				}
				return nil
			}
			found[i], ok[i] = res.Root, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	roots := make([]float64, 0, len(found))
	for i, r := range found {
		if ok[i] {
			roots = append(roots, r)
		}
	}
	return mergeRoots(roots, 10*s.cfg.Epsilon), nil
}

func mergeRoots(roots []float64, tol float64) []float64 {
	sort.Float64s(roots)
	merged := make([]float64, 0, len(roots))
	for _, r := range roots {
		if n := len(merged); n > 0 && math.Abs(r-merged[n-1]) < tol {
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
