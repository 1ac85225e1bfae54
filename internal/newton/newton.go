package newton

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/san-kum/polyroot/internal/poly"
)

const (
	DefaultEpsilon         = 1e-6
	DefaultMaxIterations   = 100
	DefaultDivergenceBound = 1e12

	// FindRootMaxIterations is the cap FindRoot runs under. Roots of high
	// multiplicity converge only linearly, so it sits well above
	// DefaultMaxIterations.
	FindRootMaxIterations = 10000
)

type Config struct {
	// Epsilon is the step size below which two guesses count as equal.
	Epsilon float64
	// MaxIterations caps the loop. Zero or less means no cap.
	MaxIterations int
	// DivergenceBound stops the search once |guess| exceeds it. Zero or less
	// only rejects non-finite guesses.
	DivergenceBound float64
}

func DefaultConfig() Config {
	return Config{
		Epsilon:         DefaultEpsilon,
		MaxIterations:   DefaultMaxIterations,
		DivergenceBound: DefaultDivergenceBound,
	}
}

func (c Config) Validate() error {
	if !(c.Epsilon > 0) || math.IsInf(c.Epsilon, 0) {
		return fmt.Errorf("%w: epsilon must be positive, got %g", ErrInvalidConfig, c.Epsilon)
	}
	return nil
}

// Diverged reports whether x is not finite or lies outside DivergenceBound.
func (c Config) Diverged(x float64) bool {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return true
	}
	return c.DivergenceBound > 0 && math.Abs(x) > c.DivergenceBound
}

// Converged reports whether a step from guess to next is below Epsilon.
func (c Config) Converged(guess, next float64) bool {
	return math.Abs(next-guess) < c.Epsilon
}

// Step records one Newton update: Next = Guess - Value/Slope.
type Step struct {
	Iteration int     `json:"iteration"`
	Guess     float64 `json:"guess"`
	Value     float64 `json:"value"`
	Slope     float64 `json:"slope"`
	Next      float64 `json:"next"`
}

// MarshalJSON writes NaN and Inf fields, which a diverging run can produce,
// as null.
func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Iteration int      `json:"iteration"`
		Guess     *float64 `json:"guess"`
		Value     *float64 `json:"value"`
		Slope     *float64 `json:"slope"`
		Next      *float64 `json:"next"`
	}{s.Iteration, finiteOrNil(s.Guess), finiteOrNil(s.Value), finiteOrNil(s.Slope), finiteOrNil(s.Next)})
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

type Result struct {
	Root       float64
	Iterations int
	Residual   float64
	Converged  bool
	Steps      []Step
}

type Observer interface {
	OnStep(s Step)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(s Step)

func (f ObserverFunc) OnStep(s Step) { f(s) }

type Solver struct {
	cfg       Config
	observers []Observer
}

func New(cfg Config) *Solver {
	return &Solver{cfg: cfg}
}

func (s *Solver) Config() Config {
	return s.cfg
}

func (s *Solver) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// Solve runs Newton-Raphson on p from guess. The derivative is computed once.
// On failure the partial Result is returned together with a *SolveError.
func (s *Solver) Solve(ctx context.Context, p poly.Poly, guess float64) (*Result, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	derivative := p.Differentiate()
	result := &Result{Root: guess}
	if s.cfg.MaxIterations > 0 {
		result.Steps = make([]Step, 0, s.cfg.MaxIterations)
	}

	for i := 1; s.cfg.MaxIterations <= 0 || i <= s.cfg.MaxIterations; i++ {
		select {
		case <-ctx.Done():
			return result, &SolveError{Iteration: i, Guess: guess, Wrapped: ErrCanceled}
		default:
		}

		step, err := Iterate(p, derivative, guess)
		if err != nil {
			result.Residual = math.Abs(step.Value)
			return result, &SolveError{Iteration: i, Guess: guess, Wrapped: err}
		}
		step.Iteration = i

		result.Steps = append(result.Steps, step)
		result.Iterations = i
		result.Root = step.Next
		for _, o := range s.observers {
			o.OnStep(step)
		}

		if s.cfg.Diverged(step.Next) {
			return result, &SolveError{Iteration: i, Guess: step.Next, Wrapped: ErrDiverged}
		}

		if s.cfg.Converged(guess, step.Next) {
			result.Converged = true
			result.Residual = math.Abs(p.Eval(step.Next))
			return result, nil
		}
		guess = step.Next
	}

	result.Residual = math.Abs(p.Eval(guess))
	return result, &SolveError{Iteration: result.Iterations, Guess: guess, Wrapped: ErrMaxIterations}
}

// Iterate performs one Newton update from guess. The returned Step has no
// iteration number.
func Iterate(p, derivative poly.Poly, guess float64) (Step, error) {
	step := Step{
		Guess: guess,
		Value: p.Eval(guess),
		Slope: derivative.Eval(guess),
	}
	if step.Slope == 0 {
		return step, ErrZeroDerivative
	}
	step.Next = guess - step.Value/step.Slope
	return step, nil
}

// FindRoot returns the root Newton-Raphson reaches from guess with the default
// epsilon and divergence bound, or NaN when the iteration fails. Its cap is
// FindRootMaxIterations.
func FindRoot(p poly.Poly, guess float64) float64 {
	cfg := DefaultConfig()
	cfg.MaxIterations = FindRootMaxIterations
	res, err := New(cfg).Solve(context.Background(), p, guess)
	if err != nil {
		return math.NaN()
	}
	return res.Root
}
