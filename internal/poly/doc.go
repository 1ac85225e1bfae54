// Package poly provides immutable single-variable polynomials with real
// coefficients.
//
// A [Poly] is a chain of terms kept in insertion order:
//
//   - [Empty]: the zero polynomial, also the end of every chain
//   - [AppendTerm]: returns a new chain with one more term at the tail
//   - [Poly.Eval]: value at a point using integer powers
//   - [Poly.Differentiate]: power-rule derivative, zero terms dropped
//   - [Parse]: reads the text produced by [Poly.String]
//
// # Example
//
//	p := poly.Empty().
//		Append(1, 3).
//		Append(-2, 2).
//		Append(-11, 1).
//		Append(12, 0)
//	fmt.Println(p)                 // 1x^3 -2x^2 -11x + 12
//	fmt.Println(p.Eval(1))         // 0
//	fmt.Println(p.Differentiate()) // 3x^2 -4x -11
//
// # Thread Safety
//
// A Poly is never modified after construction, so a value may be shared
// between goroutines without locking.
package poly
