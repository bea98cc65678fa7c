package adaptive

import (
	"github.com/uyouii/adaptive-kde/model"
	"github.com/uyouii/adaptive-kde/utils"
	"go.uber.org/zap"
)

// FindActualLevel evaluates q at increasing levels and returns the first
// level whose relative error against truth is below eps, with its estimate.
// If no level qualifies it returns the last level and false.
func (e *Estimator) FindActualLevel(d *Diagnostics, q []float64, truth, eps float64) (int, model.Estimate, bool) {
	e.rng.Shuffle(d.Len(), d.swap)

	var est model.Estimate
	for i := range e.levels {
		est = e.EvaluateQuery(d, q, i)
		if utils.RelativeError(est.Value, truth) < eps {
			return i, est, true
		}
	}

	last := len(e.levels) - 1
	e.logger.Warn("no level reached target accuracy",
		zap.Int("level", last),
		zap.Float64("estimate", est.Value),
		zap.Float64("truth", truth),
		zap.Float64("eps", eps))
	return last, est, false
}
