package analysis

import (
	"math"

	"github.com/san-kum/polyroot/internal/poly"
)

// Sample evaluates p at n evenly spaced points across [lo, hi]. n below 2 is
// raised to 2.
func Sample(p poly.Poly, lo, hi float64, n int) (xs, ys []float64) {
	if n < 2 {
		n = 2
	}
	xs = make([]float64, n)
	ys = make([]float64, n)
	h := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		x := lo + float64(i)*h
		if i == n-1 {
			x = hi
		}
		xs[i] = x
		ys[i] = p.Eval(x)
	}
	return xs, ys
}

// Bracket is an interval whose endpoints give values of opposite sign, or
// where one endpoint is an exact root.
type Bracket struct {
	Lo, Hi float64
}

func (b Bracket) Mid() float64 {
	return (b.Lo + b.Hi) / 2
}

// Brackets samples p at n points and returns the sub-intervals containing a
// sign change. Non-finite samples never form a bracket.
func Brackets(p poly.Poly, lo, hi float64, n int) []Bracket {
	xs, ys := Sample(p, lo, hi, n)
	var out []Bracket
	for i := 1; i < len(xs); i++ {
		a, b := ys[i-1], ys[i]
		if !finite(a) || !finite(b) {
			continue
		}
		if a == 0 && i > 1 {
			// already reported as the right end of the previous interval
			continue
		}
		if a*b <= 0 {
			out = append(out, Bracket{Lo: xs[i-1], Hi: xs[i]})
		}
	}
	return out
}

// Bounds returns the smallest and largest finite values in ys, ignoring
// NaN and Inf. ok is false when nothing finite is present.
func Bounds(ys []float64) (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, y := range ys {
		if !finite(y) {
			continue
		}
		if y < min {
			min = y
		}
		if y > max {
			max = y
		}
		ok = true
	}
	return min, max, ok
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
