package kde

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// EstimateDiameter returns an upper estimate of the diameter of X in units
// of bandwidth: twice the largest distance from a random anchor row. Points
// further than log(1/tau) bandwidths apart contribute less than tau under
// the exponential kernel, so the estimate is capped there.
func EstimateDiameter(X *mat.Dense, tau float64, bandwidth float64, src rand.Source) float64 {
	if X == nil || X.IsEmpty() {
		return 0
	}
	if bandwidth <= 0 {
		bandwidth = DefaultBandwidth
	}
	n, _ := X.Dims()
	anchor := X.RawRowView(rand.New(src).IntN(n))

	maxDist := 0.0
	for i := 0; i < n; i++ {
		maxDist = math.Max(maxDist, floats.Distance(anchor, X.RawRowView(i), 2))
	}
	diam := 2 * maxDist / bandwidth
	if tau > 0 && tau < 1 {
		diam = math.Min(diam, math.Log(1/tau))
	}
	return diam
}

// DerivePower is the hash concatenation power for a dataset of the given
// diameter, always at least 1.
func DerivePower(diameter, beta float64) int {
	k := 3 * int(math.Ceil(beta*diameter))
	if k < 1 {
		return 1
	}
	return k
}

func DeriveWidth(power int, beta float64) float64 {
	return math.Sqrt(2/math.Pi) * float64(power) / beta
}
