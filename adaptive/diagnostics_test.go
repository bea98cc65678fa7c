package adaptive

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/adaptive-kde/kde"
	"github.com/uyouii/adaptive-kde/model"
)

func TestGetConstants(t *testing.T) {
	e := newTestEstimator(t, uniformData(10, 2, 1), kde.NewGaussianKernel(), 0.01, 0.1)
	d := NewDiagnostics()
	for i, v := range []float64{0.5, 1, 0.2, 1.0, 0.9, 0.1} {
		d.record(i, v)
	}

	e.GetConstants(d)

	assert.Equal(t, []model.Contribution{
		{Index: 5, Value: 0.1},
		{Index: 2, Value: 0.2},
		{Index: 0, Value: 0.5},
		{Index: 4, Value: 0.9},
	}, d.Contributions())
	assert.InDelta(t, 1.7/4, d.GlobalMean(), 1e-12)
	assert.Equal(t, [5]int{0, 2, 2, 2, 4}, d.Boundaries())
	assert.InDelta(t, 0.3/4, d.RingMass(noiseRing), 1e-12)
}

func TestGetConstantsSubsampleCap(t *testing.T) {
	e := newTestEstimator(t, uniformData(10, 2, 1), kde.NewGaussianKernel(), 0.01, 0.1)
	d := NewDiagnostics()

	const n = 100000
	r := rand.New(rand.NewPCG(5, 6))
	for _, i := range r.Perm(n) {
		d.record(i, 0.9*float64(i)/n)
	}
	// dropped before the cap applies
	d.record(-1, 1)

	e.GetConstants(d)

	require.Equal(t, MaxRetainedSamples, d.Len())
	contribs := d.Contributions()
	values := make([]float64, len(contribs))
	for i, c := range contribs {
		values[i] = c.Value
		assert.Equal(t, 0.9*float64(c.Index)/n, c.Value)
	}
	assert.True(t, sort.Float64sAreSorted(values))
	assert.Equal(t, MaxRetainedSamples, d.Boundaries()[4])
}

func TestGetConstantsEmpty(t *testing.T) {
	e := newTestEstimator(t, uniformData(10, 2, 1), kde.NewGaussianKernel(), 0.01, 0.1)
	d := NewDiagnostics()
	d.record(0, 1)

	e.GetConstants(d)
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, 0.0, d.GlobalMean())
	assert.Equal(t, [5]int{}, d.Boundaries())

	e.FindRings(d, RingsThreshold, 0.1, []float64{0, 0}, 0)
	assert.Equal(t, 0.0, d.VarianceBoundRS())
	assert.Equal(t, 0.0, d.VarianceBoundHBE())
}

func TestDiagnosticsReset(t *testing.T) {
	e := newTestEstimator(t, uniformData(10, 2, 1), kde.NewGaussianKernel(), 0.01, 0.1)
	d := NewDiagnostics()
	e.EvaluateQuery(d, []float64{0.5, 0.5}, 0)
	e.GetConstants(d)
	require.NotZero(t, d.Len())

	d.Reset()
	assert.Equal(t, 0, d.Len())
	assert.Empty(t, d.Contributions())
	assert.Equal(t, 0.0, d.GlobalMean())
	assert.Equal(t, [5]int{}, d.Boundaries())
}
