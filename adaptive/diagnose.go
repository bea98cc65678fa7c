package adaptive

import (
	"context"
	"fmt"

	"github.com/uyouii/adaptive-kde/common"
	"github.com/uyouii/adaptive-kde/model"
	"github.com/uyouii/adaptive-kde/utils"
	"go.uber.org/zap"
)

// Diagnose runs the full diagnostic pass for one query with known density
// truth: it finds the cheapest level reaching eps, then bounds the variance
// of random sampling and of hashing based estimation from the contributions
// observed on the way.
func (e *Estimator) Diagnose(ctx context.Context, q []float64, truth, eps float64,
	strategy RingStrategy) (report *model.DiagnosticReport, err error) {
	logger := e.logger

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Diagnose recover panic error!", zap.Any("err", r),
				zap.String("panic info", utils.GetPanicInfo()), zap.Float64s("query", q))
			report, err = nil, fmt.Errorf("diagnose: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(q) != e.dim {
		logger.Error("query dimension mismatch", zap.Int("dim", e.dim), zap.Int("queryDim", len(q)))
		return nil, fmt.Errorf("query dimension %d, dataset dimension %d: %w",
			len(q), e.dim, common.ErrorInvalidValue)
	}
	if !(truth > 0) || !(eps > 0) {
		return nil, fmt.Errorf("truth %v, eps %v must be positive: %w", truth, eps, common.ErrorInvalidValue)
	}

	d := NewDiagnostics()
	level, est, qualified := e.FindActualLevel(d, q, truth, eps)
	e.GetConstants(d)
	e.FindRings(d, strategy, eps, q, level)

	report = &model.DiagnosticReport{
		Level:       level,
		Qualified:   qualified,
		Estimate:    est.Value,
		Evaluations: est.Evaluations,
		RetainedCnt: d.Len(),
		VarianceRS:  d.VarianceBoundRS(),
		VarianceHBE: d.VarianceBoundHBE(),
	}
	if est.Value > 0 {
		sq := est.Value * est.Value
		report.RelVarRS = report.VarianceRS / sq
		report.RelVarHBE = report.VarianceHBE / sq
	}

	logger.Debug("diagnose done", zap.String("report", report.DebugString()))
	return report, nil
}
