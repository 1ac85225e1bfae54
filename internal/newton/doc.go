// Package newton finds real roots of polynomials with Newton-Raphson.
//
//   - [FindRoot]: plain iteration from one guess, NaN on failure
//   - [Solver]: configurable search returning every [Step]
//   - [Solver.Scan]: parallel search from many guesses, distinct roots only
//
// # Convergence
//
// The search stops once two successive guesses differ by less than
// [Config.Epsilon]. A zero derivative, a guess beyond
// [Config.DivergenceBound] or hitting [Config.MaxIterations] ends the search
// with an error instead; see [ErrZeroDerivative], [ErrDiverged] and
// [ErrMaxIterations].
//
//	s := newton.New(newton.DefaultConfig())
//	res, err := s.Solve(ctx, p, 2.5)
//	if errors.Is(err, newton.ErrDiverged) {
//	    // try another guess
//	}
package newton
