package kde

import (
	"context"
	"fmt"

	"github.com/uyouii/adaptive-kde/common"
	"github.com/uyouii/adaptive-kde/utils"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// ExactDensities computes the exact density of every row of queries
// against X. These are the ground truth values the adaptive estimator is
// measured against.
func ExactDensities(ctx context.Context, X *mat.Dense, kernel Kernel,
	queries *mat.Dense) (res []float64, err error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("ExactDensities recover panic error!", zap.Any("err", r),
				zap.String("panic info", utils.GetPanicInfo()))
			res, err = nil, fmt.Errorf("exact densities: %v", r)
		}
	}()

	naive, err := NewNaiveKDE(X, kernel)
	if err != nil {
		logger.Error("NewNaiveKDE failed", zap.Error(err))
		return nil, err
	}
	if queries == nil || queries.IsEmpty() {
		return []float64{}, nil
	}

	_, dim := X.Dims()
	m, qdim := queries.Dims()
	if qdim != dim {
		logger.Error("query dimension mismatch", zap.Int("dim", dim), zap.Int("queryDim", qdim))
		return nil, fmt.Errorf("query dimension %d, dataset dimension %d: %w",
			qdim, dim, common.ErrorInvalidValue)
	}

	res = make([]float64, m)
	for i := 0; i < m; i++ {
		res[i] = naive.Query(queries.RawRowView(i))
	}
	logger.Debug("exact densities done", zap.String("kernel", kernel.Name()), zap.Int("queries", m))
	return res, nil
}
