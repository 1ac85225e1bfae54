package poly

import "math"

// Eval returns the value of the polynomial at x. Terms are summed as
// c*x^e + eval(rest), so the last term is added first.
func (p Poly) Eval(x float64) float64 {
	terms := p.Terms()
	sum := 0.0
	for i := len(terms) - 1; i >= 0; i-- {
		t := terms[i]
		sum = t.Coefficient*powi(x, t.Exponent) + sum
	}
	return sum
}

// Differentiate applies the power rule term by term. Terms whose new
// coefficient is exactly zero are left out, which removes constants.
// An exponent of math.MinInt has nothing below it and stays math.MinInt.
func (p Poly) Differentiate() Poly {
	out := make([]Term, 0, p.Len())
	for n := p.head; n != nil; n = n.next {
		c := n.term.Coefficient * float64(n.term.Exponent)
		if c == 0 {
			continue
		}
		e := n.term.Exponent
		if e != math.MinInt {
			e--
		}
		out = append(out, Term{Coefficient: c, Exponent: e})
	}
	return New(out...)
}

// Derivative returns the n-th derivative. n <= 0 returns p unchanged.
func (p Poly) Derivative(n int) Poly {
	d := p
	for i := 0; i < n; i++ {
		if d.IsEmpty() {
			break
		}
		d = d.Differentiate()
	}
	return d
}

// powi raises x to an integer power by repeated squaring. x^0 is 1 for
// every x, and negative powers are reciprocals, so 0^-n is +Inf.
func powi(x float64, n int) float64 {
	if n < 0 {
		// -n overflows for math.MinInt, so peel one factor off first.
		return 1 / (x * powi(x, -(n+1)))
	}
	result := 1.0
	for n > 0 {
		if n&1 == 1 {
			result *= x
		}
		x *= x
		n >>= 1
	}
	return result
}
