package adaptive

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/uyouii/adaptive-kde/common"
	"github.com/uyouii/adaptive-kde/kde"
	"github.com/uyouii/adaptive-kde/model"
	"github.com/uyouii/adaptive-kde/utils"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Estimator is the adaptive random sampling density estimator with
// variance diagnostics. The dataset and kernel are shared read-only; the
// random stream is owned by the estimator, so one Estimator must not be
// used from several goroutines at once. Per-query state lives in
// Diagnostics.
type Estimator struct {
	X         *mat.Dense
	kernel    kde.Kernel
	numPoints int
	dim       int

	gamma        float64
	medianGroups int
	relVar       RelVarFunc

	r      float64
	levels []model.Level

	// hashing params provided by a HashCompatible kernel
	native bool
	hashW  float64
	hashK  int

	rng    *rand.Rand
	logger *zap.Logger
}

func NewEstimator(ctx context.Context, X *mat.Dense, kernel kde.Kernel,
	tau, eps float64, opts ...Option) (*Estimator, error) {
	return newEstimator(ctx, X, kernel, 0, tau, eps, opts)
}

// NewEstimatorWithSamples builds the estimator on a uniform subset of
// samples rows of X, drawn without replacement. If samples >= the number of
// rows it behaves like NewEstimator.
func NewEstimatorWithSamples(ctx context.Context, X *mat.Dense, kernel kde.Kernel,
	samples int, tau, eps float64, opts ...Option) (*Estimator, error) {
	if samples < 1 {
		return nil, fmt.Errorf("samples %v < 1: %w", samples, common.ErrorInvalidValue)
	}
	return newEstimator(ctx, X, kernel, samples, tau, eps, opts)
}

func newEstimator(ctx context.Context, X *mat.Dense, kernel kde.Kernel,
	samples int, tau, eps float64, opts []Option) (*Estimator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = utils.GetLogger(ctx)
	}
	logger := o.logger

	err := o.validate()
	if X == nil || X.IsEmpty() {
		err = multierr.Append(err, common.ErrorEmptyDataset)
	}
	if kernel == nil {
		err = multierr.Append(err, fmt.Errorf("nil kernel: %w", common.ErrorInvalidValue))
	}
	if !(tau > 0 && tau < 1) {
		err = multierr.Append(err, fmt.Errorf("tau %v not in (0, 1): %w", tau, common.ErrorInvalidValue))
	}
	if !(eps > 0) {
		err = multierr.Append(err, fmt.Errorf("eps %v not positive: %w", eps, common.ErrorInvalidValue))
	}
	if err != nil {
		logger.Error("invalid estimator arguments", zap.Error(err))
		return nil, err
	}

	src := o.src
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	e := &Estimator{
		kernel:       kernel,
		gamma:        o.gamma,
		medianGroups: o.medianGroups,
		relVar:       o.relVar,
		rng:          rand.New(src),
		logger:       logger,
	}

	n, dim := X.Dims()
	e.X = X
	if samples > 0 && samples < n {
		e.X = e.subsampleRows(X, samples)
	}
	e.numPoints, e.dim = e.X.Dims()

	if hk, ok := kernel.(kde.HashCompatible); ok {
		e.hashW, e.hashK = hk.HashParams(X, tau, e.rng)
		e.native = true
	}

	e.buildLevels(tau, eps)

	logger.Info("adaptive estimator built",
		zap.String("kernel", kernel.Name()),
		zap.Int("points", e.numPoints),
		zap.Int("dim", dim),
		zap.Float64("tau", tau),
		zap.Float64("eps", eps),
		zap.Int("levels", len(e.levels)),
		zap.Bool("nativeHash", e.native))
	return e, nil
}

func (e *Estimator) subsampleRows(X *mat.Dense, samples int) *mat.Dense {
	n, dim := X.Dims()
	indices := make([]int, samples)
	sampleuv.WithoutReplacement(indices, n, e.rng)
	sort.Ints(indices)

	res := mat.NewDense(samples, dim, nil)
	for i, idx := range indices {
		res.SetRow(i, X.RawRowView(idx))
	}
	return res
}

func (e *Estimator) NumPoints() int {
	return e.numPoints
}

func (e *Estimator) Kernel() kde.Kernel {
	return e.kernel
}

// HashParams returns the hashing width and power used for collision
// probabilities at level.
func (e *Estimator) HashParams(level int) (float64, int) {
	if e.native {
		return e.hashW, e.hashK
	}
	lvl := e.levels[e.clampLevel(level)]
	return lvl.W, lvl.K
}

// EvaluateQuery estimates the density of q at level. When the level's
// budget exceeds the dataset every point is evaluated once and the record
// in d is replaced; otherwise it runs median-of-means over uniform draws and
// appends every evaluation to d.
func (e *Estimator) EvaluateQuery(d *Diagnostics, q []float64, level int) model.Estimate {
	level = e.clampLevel(level)
	m := e.levels[level].M
	budget := e.medianGroups * m

	if budget > e.numPoints {
		// exact
		d.Reset()
		var sum float64
		for i := 0; i < e.numPoints; i++ {
			v := e.kernel.Density(q, e.X.RawRowView(i))
			d.record(i, v)
			sum += v
		}
		return model.Estimate{
			Value:       sum / float64(e.numPoints),
			Evaluations: e.numPoints,
		}
	}

	Z := make([]float64, e.medianGroups)
	indices := make([]int, m)
	for g := range Z {
		for j := range indices {
			indices[j] = e.rng.IntN(e.numPoints)
		}
		sort.Ints(indices)
		for _, idx := range indices {
			v := e.kernel.Density(q, e.X.RawRowView(idx))
			d.record(idx, v)
			Z[g] += v
		}
	}

	return model.Estimate{
		Value:       utils.Median(Z) / float64(m),
		Evaluations: budget,
	}
}
