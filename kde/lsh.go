package kde

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// EuclideanCollisionProb is the collision probability of the p-stable
// Euclidean hash with unit bucket width, for two points at distance c
// (in bucket widths), raised to the concatenation power k.
func EuclideanCollisionProb(c float64, k int) float64 {
	if c <= 0 {
		return 1
	}
	inv := 1 / c
	p := 1 - 2*distuv.UnitNormal.CDF(-inv) -
		2/(math.Sqrt(2*math.Pi)*inv)*(1-math.Exp(-inv*inv/2))
	if p < 0 {
		p = 0
	}
	return math.Pow(p, float64(k))
}
