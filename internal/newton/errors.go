package newton

import (
	"errors"
	"fmt"
)

// Domain errors for root finding.
var (
	// ErrZeroDerivative indicates a guess where the derivative is exactly zero.
	ErrZeroDerivative = errors.New("newton: derivative is zero at guess")

	// ErrDiverged indicates an iterate that is not finite or left the divergence bound.
	ErrDiverged = errors.New("newton: iteration diverged")

	// ErrMaxIterations indicates the iteration cap was reached before convergence.
	ErrMaxIterations = errors.New("newton: no convergence within iteration limit")

	// ErrCanceled indicates the search was interrupted.
	ErrCanceled = errors.New("newton: search canceled by context")

	// ErrInvalidConfig indicates a non-positive epsilon or a bad scan range.
	ErrInvalidConfig = errors.New("newton: invalid configuration")
)

// SolveError wraps an error with the iteration it happened at.
type SolveError struct {
	Iteration int
	Guess     float64
	Wrapped   error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("%v (iteration %d, guess %g)", e.Wrapped, e.Iteration, e.Guess)
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}
