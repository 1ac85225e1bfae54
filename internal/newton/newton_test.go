package newton_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/polyroot/internal/newton"
	"github.com/san-kum/polyroot/internal/poly"
)

const precision = 1e-6

var _ = Describe("FindRoot", func() {
	DescribeTable("x^3 - 2x^2 - 11x + 12",
		func(guess, root float64) {
			p := poly.Empty().Append(1, 3).Append(-2, 2).Append(-11, 1).Append(12, 0)
			Expect(newton.FindRoot(p, guess)).To(BeNumerically("~", root, precision))
		},
		Entry("from -4", -4.0, -3.0),
		Entry("from 0", 0.0, 1.0),
		Entry("from 2.35287527", 2.35287527, 4.0),
	)

	DescribeTable("x^3 - 2x^2 - 5x + 6",
		func(guess, root float64) {
			p := poly.Empty().Append(1, 3).Append(-2, 2).Append(-5, 1).Append(6, 0)
			Expect(newton.FindRoot(p, guess)).To(BeNumerically("~", root, precision))
		},
		Entry("from -3", -3.0, -2.0),
		Entry("from 0", 0.0, 1.0),
		Entry("from 4", 4.0, 3.0),
	)

	It("finds the real root of 2x^4 + 7x^3 + 6x^2 + 8x + 12 from 0", func() {
		p := poly.Empty().Append(2, 4).Append(7, 3).Append(6, 2).Append(8, 1).Append(12, 0)
		Expect(newton.FindRoot(p, 0)).To(BeNumerically("~", -1.5, precision))
	})

	It("converges near a known simple root", func() {
		p := poly.MustParse("1x^2 -2")
		for _, guess := range []float64{1.2, 1.4, 1.6, 2.0} {
			Expect(newton.FindRoot(p, guess)).To(BeNumerically("~", math.Sqrt2, 1e-5))
		}
	})

	It("reaches a root of high multiplicity past the solver's default cap", func() {
		p := poly.MustParse("1x^10")
		Expect(newton.FindRoot(p, 1)).To(BeNumerically("~", 0, 1e-5))

		_, err := newton.New(newton.DefaultConfig()).Solve(context.Background(), p, 1)
		Expect(errors.Is(err, newton.ErrMaxIterations)).To(BeTrue())
	})

	It("returns NaN when the iteration cannot proceed", func() {
		Expect(math.IsNaN(newton.FindRoot(poly.MustParse("1x^2 + 1"), 0))).To(BeTrue())
		Expect(math.IsNaN(newton.FindRoot(poly.Empty(), 3))).To(BeTrue())
	})
})

var _ = Describe("Solver", func() {
	var (
		ctx   context.Context
		cubic poly.Poly
	)

	BeforeEach(func() {
		ctx = context.Background()
		cubic = poly.MustParse("1x^3 -2x^2 -11x + 12")
	})

	It("records every step", func() {
		var seen []newton.Step
		s := newton.New(newton.DefaultConfig())
		s.AddObserver(newton.ObserverFunc(func(st newton.Step) { seen = append(seen, st) }))

		res, err := s.Solve(ctx, cubic, -4)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Converged).To(BeTrue())
		Expect(res.Root).To(BeNumerically("~", -3, precision))
		Expect(res.Residual).To(BeNumerically("<", 1e-6))
		Expect(res.Steps).To(HaveLen(res.Iterations))
		Expect(seen).To(Equal(res.Steps))
		Expect(res.Steps[0].Guess).To(Equal(-4.0))
		for i := 1; i < len(res.Steps); i++ {
			Expect(res.Steps[i].Guess).To(Equal(res.Steps[i-1].Next))
		}
	})

	It("reports a zero derivative", func() {
		res, err := newton.New(newton.DefaultConfig()).Solve(ctx, poly.MustParse("1x^2 + 1"), 0)
		Expect(errors.Is(err, newton.ErrZeroDerivative)).To(BeTrue())
		Expect(res.Converged).To(BeFalse())

		var se *newton.SolveError
		Expect(errors.As(err, &se)).To(BeTrue())
		Expect(se.Iteration).To(Equal(1))
		Expect(se.Guess).To(Equal(0.0))
	})

	It("stops at the iteration cap when there is no real root", func() {
		cfg := newton.DefaultConfig()
		cfg.MaxIterations = 25
		res, err := newton.New(cfg).Solve(ctx, poly.MustParse("1x^2 + 1"), 0.5)
		Expect(errors.Is(err, newton.ErrMaxIterations)).To(BeTrue())
		Expect(res.Iterations).To(Equal(25))
		Expect(res.Converged).To(BeFalse())
	})

	It("detects divergence", func() {
		cfg := newton.DefaultConfig()
		cfg.DivergenceBound = 10
		_, err := newton.New(cfg).Solve(ctx, poly.MustParse("1x^3 -2x^2 -11x + 12"), 2.69)
		Expect(errors.Is(err, newton.ErrDiverged)).To(BeTrue())
	})

	It("honours a coarser epsilon", func() {
		cfg := newton.DefaultConfig()
		cfg.Epsilon = 1e-3
		coarse, err := newton.New(cfg).Solve(ctx, cubic, 0)
		Expect(err).NotTo(HaveOccurred())

		fine, err := newton.New(newton.DefaultConfig()).Solve(ctx, cubic, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(coarse.Iterations).To(BeNumerically("<=", fine.Iterations))
		Expect(coarse.Root).To(BeNumerically("~", 1, 1e-3))
	})

	It("rejects a non-positive epsilon", func() {
		cfg := newton.DefaultConfig()
		cfg.Epsilon = 0
		_, err := newton.New(cfg).Solve(ctx, cubic, 0)
		Expect(errors.Is(err, newton.ErrInvalidConfig)).To(BeTrue())
	})

	It("stops an uncapped search when the context is canceled", func() {
		cfg := newton.DefaultConfig()
		cfg.MaxIterations = 0
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := newton.New(cfg).Solve(canceled, poly.MustParse("1x^2 + 1"), 0.5)
		Expect(errors.Is(err, newton.ErrCanceled)).To(BeTrue())
	})
})

var _ = Describe("Scan", func() {
	It("finds all three roots of the cubic", func() {
		p := poly.MustParse("1x^3 -2x^2 -11x + 12")
		roots, err := newton.New(newton.DefaultConfig()).Scan(context.Background(), p,
			newton.ScanConfig{Min: -6, Max: 6, Steps: 49, Workers: 4})
		Expect(err).NotTo(HaveOccurred())
		Expect(roots).To(HaveLen(3))
		Expect(roots[0]).To(BeNumerically("~", -3, precision))
		Expect(roots[1]).To(BeNumerically("~", 1, precision))
		Expect(roots[2]).To(BeNumerically("~", 4, precision))
	})

	It("returns nothing for a polynomial without real roots", func() {
		roots, err := newton.New(newton.DefaultConfig()).Scan(context.Background(),
			poly.MustParse("1x^2 + 1"), newton.ScanConfig{Min: -2, Max: 2, Steps: 8})
		Expect(err).NotTo(HaveOccurred())
		Expect(roots).To(BeEmpty())
	})

	It("rejects a reversed range", func() {
		_, err := newton.New(newton.DefaultConfig()).Scan(context.Background(),
			poly.MustParse("1x"), newton.ScanConfig{Min: 2, Max: -2, Steps: 8})
		Expect(errors.Is(err, newton.ErrInvalidConfig)).To(BeTrue())
	})
})
