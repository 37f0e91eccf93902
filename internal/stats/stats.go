package stats

import (
	"errors"
	"math"
	"sort"
)

// ErrEmptyPopulation is returned when a rank, mean, or quantile is requested
// over zero values. Percentile metrics depend on the full population, so an
// empty table is a caller error rather than a NaN to propagate.
var ErrEmptyPopulation = errors.New("empty population")

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyPopulation
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// RankPct returns the fractional percentile rank of every value within the
// slice: tied values receive the average rank of their tie group, and ranks
// are scaled by the population size so results fall in (0, 1].
func RankPct(values []float64) ([]float64, error) {
	n := len(values)
	if n == 0 {
		return nil, ErrEmptyPopulation
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		// 1-based average rank of the tie group spanning sorted positions i..j
		avg := float64(i+j+2) / 2.0
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg / float64(n)
		}
		i = j + 1
	}
	return ranks, nil
}

// Quantile returns the linearly interpolated q-quantile of values, q in [0,1].
// The input slice is not modified.
func Quantile(values []float64, q float64) (float64, error) {
	n := len(values)
	if n == 0 {
		return 0, ErrEmptyPopulation
	}
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	if q <= 0 {
		return s[0], nil
	}
	if q >= 1 {
		return s[n-1], nil
	}
	h := q * float64(n-1)
	lo := int(math.Floor(h))
	if lo+1 >= n {
		return s[lo], nil
	}
	return s[lo] + (h-float64(lo))*(s[lo+1]-s[lo]), nil
}
