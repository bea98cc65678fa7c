package adaptive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/adaptive-kde/kde"
)

func TestBuildLevels(t *testing.T) {
	X := uniformData(10, 2, 1)

	for _, tau := range []float64{0.5, 0.1, 0.01, 1e-4} {
		for _, eps := range []float64{0.05, 0.1, 0.5} {
			e := newTestEstimator(t, X, kde.NewGaussianKernel(), tau, eps)
			levels := e.Levels()

			require.Len(t, levels, int(math.Ceil(math.Log(1/tau)/math.Ln2)))
			require.GreaterOrEqual(t, len(levels), 1)
			assert.InDelta(t, 1-DefaultGamma, levels[0].Mu, 1e-15)

			r := math.Sqrt(math.Log(1 / tau))
			for i, lvl := range levels {
				assert.Greater(t, lvl.Mu, 0.0)
				if i > 0 {
					assert.Less(t, lvl.Mu, levels[i-1].Mu)
					assert.InDelta(t, (1-DefaultGamma)*levels[i-1].Mu, lvl.Mu, 1e-15)
					assert.GreaterOrEqual(t, lvl.M, levels[i-1].M)
				}
				assert.Equal(t, int(math.Ceil(kde.RandomRelVar(lvl.Mu)/eps/eps)), lvl.M)
				assert.InDelta(t, math.Sqrt(math.Log(1/lvl.Mu)), lvl.T, 1e-12)
				assert.Equal(t, 3*int(math.Ceil(r*lvl.T)), lvl.K)
				assert.Zero(t, lvl.K%3)
				assert.InDelta(t, float64(lvl.K)/lvl.T*math.Sqrt(2*math.Pi), lvl.W, 1e-9)
			}
		}
	}
}

func TestBuildLevelsOptions(t *testing.T) {
	X := uniformData(10, 2, 1)
	relVar := func(mu float64) float64 { return 1 }

	e := newTestEstimator(t, X, kde.NewGaussianKernel(), 0.01, 0.1, WithGamma(0.25), WithRelVar(relVar))
	levels := e.Levels()
	assert.InDelta(t, 0.75, levels[0].Mu, 1e-15)
	assert.InDelta(t, 0.75*0.75, levels[1].Mu, 1e-15)
	for _, lvl := range levels {
		assert.Equal(t, int(math.Ceil(1/0.1/0.1)), lvl.M)
	}
}

func TestLevelsCopy(t *testing.T) {
	e := newTestEstimator(t, uniformData(10, 2, 1), kde.NewGaussianKernel(), 0.01, 0.1)
	levels := e.Levels()
	levels[0].M = -1
	assert.NotEqual(t, -1, e.Levels()[0].M)
}
