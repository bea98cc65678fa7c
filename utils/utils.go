package utils

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// SortWithPermutation returns a sorted copy of values in ascending order and
// the permutation such that sorted[i] == values[perm[i]]. Equal values keep
// their original relative order.
func SortWithPermutation(values []float64) ([]float64, []int) {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	perm := make([]int, len(values))
	floats.ArgsortStable(sorted, perm)
	return sorted, perm
}

// SortWithPermutationDesc is SortWithPermutation in descending order.
func SortWithPermutationDesc(values []float64) ([]float64, []int) {
	sorted, perm := SortWithPermutation(values)
	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		sorted[i], sorted[j] = sorted[j], sorted[i]
		perm[i], perm[j] = perm[j], perm[i]
	}
	return sorted, perm
}

// Median of x, x is not modified. Even sized input returns the mean of the
// two middle values, empty input returns NaN.
func Median(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return math.NaN()
	}
	tmp := make([]float64, n)
	copy(tmp, x)
	sort.Float64s(tmp)
	if n%2 == 1 {
		return tmp[n/2]
	}
	return (tmp[n/2-1] + tmp[n/2]) / 2
}

func RelativeError(estimate, truth float64) float64 {
	return math.Abs(estimate-truth) / truth
}

func IntMin(i1, i2 int) int {
	if i1 < i2 {
		return i1
	}
	return i2
}

func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
