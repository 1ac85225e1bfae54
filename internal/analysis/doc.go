// Package analysis provides numeric inspection of polynomials over an interval.
//
//   - [Sample]: evenly spaced (x, p(x)) pairs for plotting
//   - [Brackets]: sub-intervals where the polynomial changes sign
//   - [Bounds]: min and max of a sampled series
//
// # Choosing starting guesses
//
// Every sign change of a continuous function brackets at least one root, so
// the midpoint of a bracket is a reasonable Newton starting point:
//
//	for _, b := range analysis.Brackets(p, -10, 10, 400) {
//	    root := newton.FindRoot(p, b.Mid())
//	}
package analysis
