package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/polyroot/internal/poly"
)

var cubic = poly.MustParse("1x^3 -2x^2 -11x + 12")

func TestSample(t *testing.T) {
	xs, ys := Sample(cubic, -1, 1, 5)

	if len(xs) != 5 || len(ys) != 5 {
		t.Fatalf("expected 5 samples, got %d/%d", len(xs), len(ys))
	}
	if xs[0] != -1 || xs[4] != 1 {
		t.Errorf("endpoints: got %v, %v", xs[0], xs[4])
	}
	if ys[0] != 20 || ys[4] != 0 {
		t.Errorf("values at endpoints: got %v, %v", ys[0], ys[4])
	}
}

func TestSample_MinimumPoints(t *testing.T) {
	xs, _ := Sample(cubic, 0, 1, 0)
	if len(xs) != 2 {
		t.Errorf("expected 2 samples, got %d", len(xs))
	}
}

func TestBrackets(t *testing.T) {
	brackets := Brackets(cubic, -5, 5, 100)
	if len(brackets) != 3 {
		t.Fatalf("expected 3 brackets, got %d: %v", len(brackets), brackets)
	}

	roots := []float64{-3, 1, 4}
	for i, b := range brackets {
		if roots[i] < b.Lo || roots[i] > b.Hi {
			t.Errorf("bracket %d [%v, %v] misses root %v", i, b.Lo, b.Hi, roots[i])
		}
	}
}

func TestBrackets_ExactZeroReportedOnce(t *testing.T) {
	brackets := Brackets(cubic, -5, 5, 11)
	if len(brackets) != 3 {
		t.Fatalf("expected 3 brackets, got %d: %v", len(brackets), brackets)
	}
	if brackets[0].Hi != -3 {
		t.Errorf("expected first bracket to end at -3, got %v", brackets[0])
	}
}

func TestBrackets_NoRealRoot(t *testing.T) {
	if got := Brackets(poly.MustParse("1x^2 + 1"), -3, 3, 50); len(got) != 0 {
		t.Errorf("expected no brackets, got %v", got)
	}
}

func TestBounds(t *testing.T) {
	min, max, ok := Bounds([]float64{3, math.NaN(), -2, math.Inf(1), 7})
	if !ok || min != -2 || max != 7 {
		t.Errorf("Bounds() = %v, %v, %v", min, max, ok)
	}

	if _, _, ok := Bounds([]float64{math.NaN()}); ok {
		t.Error("expected ok=false for no finite values")
	}
}
