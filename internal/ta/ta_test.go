package ta

import (
	"math"
	"testing"
)

func TestSMA(t *testing.T) {
	if got := SMA([]float64{1, 2, 3, 4}, 2); got != 3.5 {
		t.Errorf("SMA = %v, want 3.5", got)
	}
	if got := SMA([]float64{1}, 2); !math.IsNaN(got) {
		t.Errorf("expected NaN for short input, got %v", got)
	}
	if got := SMA([]float64{1, 2}, 0); !math.IsNaN(got) {
		t.Errorf("expected NaN for n=0, got %v", got)
	}
}

func TestTrailingSMA(t *testing.T) {
	cases := []struct {
		vals []float64
		n    int
		want float64
	}{
		{[]float64{1}, 3, 1},
		{[]float64{1, -1}, 3, 0},
		{[]float64{1, -1, 2, 0}, 3, 1.0 / 3},
		{[]float64{5, 7}, 0, 7},
	}
	for _, c := range cases {
		if got := TrailingSMA(c.vals, c.n); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("TrailingSMA(%v, %d) = %v, want %v", c.vals, c.n, got, c.want)
		}
	}
	if got := TrailingSMA(nil, 3); !math.IsNaN(got) {
		t.Errorf("expected NaN for empty input, got %v", got)
	}
}

func TestStdDev(t *testing.T) {
	if got := StdDev([]float64{9, 2, 4, 4, 4, 5, 5, 7, 9}, 8); got != 2 {
		t.Errorf("StdDev = %v, want 2", got)
	}
	if got := StdDev([]float64{3, 3, 3}, 3); got != 0 {
		t.Errorf("StdDev of constant = %v, want 0", got)
	}
}

func TestDelta(t *testing.T) {
	if got := Delta([]float64{1, 4, 2.5}); got != -1.5 {
		t.Errorf("Delta = %v, want -1.5", got)
	}
	if got := Delta([]float64{1}); got != 0 {
		t.Errorf("Delta of one value = %v, want 0", got)
	}
}
