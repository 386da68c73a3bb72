package ta

import "math"

// SMA is the mean of the last n values, NaN when fewer than n are available
func SMA(vals []float64, n int) float64 {
	if len(vals) < n || n <= 0 {
		return math.NaN()
	}
	sum := 0.0
	for i := len(vals) - n; i < len(vals); i++ {
		sum += vals[i]
	}
	return sum / float64(n)
}

// TrailingSMA is SMA over at most n trailing values; the window shrinks to
// whatever history exists.
func TrailingSMA(vals []float64, n int) float64 {
	return SMA(vals, min(max(n, 1), len(vals)))
}

// StdDev is the population standard deviation of the last n values
func StdDev(vals []float64, n int) float64 {
	if len(vals) < n || n <= 0 {
		return math.NaN()
	}
	m := SMA(vals, n)
	s := 0.0
	for i := len(vals) - n; i < len(vals); i++ {
		d := vals[i] - m
		s += d * d
	}
	return math.Sqrt(s / float64(n))
}

// Delta is the change between the last two values, 0 below two values
func Delta(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	return vals[len(vals)-1] - vals[len(vals)-2]
}
