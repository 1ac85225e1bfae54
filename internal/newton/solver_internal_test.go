package newton

import (
	"context"
	"testing"

	"github.com/san-kum/polyroot/internal/poly"
)

func mustCubic() poly.Poly {
	return poly.Empty().Append(1, 3).Append(-2, 2).Append(-11, 1).Append(12, 0)
}

func TestScanConfig_Guesses(t *testing.T) {
	tests := []struct {
		name string
		sc   ScanConfig
		want []float64
	}{
		{"single", ScanConfig{Min: -2, Max: 4, Steps: 1}, []float64{1}},
		{"range", ScanConfig{Min: -1, Max: 1, Steps: 5}, []float64{-1, -0.5, 0, 0.5, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.sc.Guesses()
			if len(got) != len(tt.want) {
				t.Fatalf("Guesses() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Guesses()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMergeRoots(t *testing.T) {
	got := mergeRoots([]float64{4, -3, 1.0000001, 1, -3.00000001, 4}, 1e-5)
	want := []float64{-3.00000001, 1, 4}
	if len(got) != len(want) {
		t.Fatalf("mergeRoots() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mergeRoots()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestIterate(t *testing.T) {
	cubic := mustCubic()
	st, err := Iterate(cubic, cubic.Differentiate(), 0)
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if st.Value != 12 || st.Slope != -11 {
		t.Errorf("unexpected step %+v", st)
	}
	if want := 12.0 / 11.0; st.Next != want {
		t.Errorf("Next = %v, want %v", st.Next, want)
	}
}

func BenchmarkSolve(b *testing.B) {
	cubic := mustCubic()
	s := New(DefaultConfig())
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Solve(ctx, cubic, 0)
	}
}
