package adaptive

import (
	"math"

	"github.com/uyouii/adaptive-kde/model"
)

// buildLevels fills the precision hierarchy. tau must lie in (0, 1) and eps
// must be positive, the constructor checks both.
func (e *Estimator) buildLevels(tau, eps float64) {
	tmp := math.Log(1 / tau)
	// effective diameter
	e.r = math.Sqrt(tmp)
	numLevels := int(math.Ceil(tmp / math.Ln2))

	e.levels = make([]model.Level, numLevels)
	mu := 1.0
	for i := range e.levels {
		mu *= 1 - e.gamma
		// Gaussian analytic substitute for the hashing parameters
		t := math.Sqrt(math.Log(1 / mu))
		k := 3 * int(math.Ceil(e.r*t))
		e.levels[i] = model.Level{
			Mu: mu,
			M:  int(math.Ceil(e.relVar(mu) / eps / eps)),
			T:  t,
			K:  k,
			W:  float64(k) / t * sqrt2Pi,
		}
	}
}

func (e *Estimator) Levels() []model.Level {
	res := make([]model.Level, len(e.levels))
	copy(res, e.levels)
	return res
}

func (e *Estimator) NumLevels() int {
	return len(e.levels)
}

func (e *Estimator) clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level >= len(e.levels) {
		return len(e.levels) - 1
	}
	return level
}
