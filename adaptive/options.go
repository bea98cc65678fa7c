package adaptive

import (
	"fmt"
	"math/rand/v2"

	"github.com/uyouii/adaptive-kde/common"
	"github.com/uyouii/adaptive-kde/kde"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// RelVarFunc returns the relative variance of one sample at confidence
// target mu.
type RelVarFunc func(mu float64) float64

type options struct {
	src          rand.Source
	gamma        float64
	medianGroups int
	relVar       RelVarFunc
	logger       *zap.Logger
}

type Option func(*options)

func defaultOptions() *options {
	return &options{
		gamma:        DefaultGamma,
		medianGroups: DefaultMedianGroups,
		relVar:       kde.RandomRelVar,
	}
}

// WithSeed makes every random draw of the estimator reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.src = rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	}
}

func WithRandSource(src rand.Source) Option {
	return func(o *options) {
		o.src = src
	}
}

func WithGamma(gamma float64) Option {
	return func(o *options) {
		o.gamma = gamma
	}
}

func WithMedianGroups(groups int) Option {
	return func(o *options) {
		o.medianGroups = groups
	}
}

func WithRelVar(relVar RelVarFunc) Option {
	return func(o *options) {
		o.relVar = relVar
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func (o *options) validate() error {
	var err error
	if !(o.gamma > 0 && o.gamma < 1) {
		err = multierr.Append(err, fmt.Errorf("gamma %v not in (0, 1): %w", o.gamma, common.ErrorInvalidValue))
	}
	if o.medianGroups < 1 {
		err = multierr.Append(err, fmt.Errorf("median groups %v < 1: %w", o.medianGroups, common.ErrorInvalidValue))
	}
	if o.relVar == nil {
		err = multierr.Append(err, fmt.Errorf("nil relative variance func: %w", common.ErrorInvalidValue))
	}
	return err
}
