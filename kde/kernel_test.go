package kde

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestGaussianKernelDensity(t *testing.T) {
	k := NewGaussianKernel()
	x := []float64{0, 0}

	assert.Equal(t, 1.0, k.Density(x, x))
	assert.InDelta(t, math.Exp(-1), k.Density(x, []float64{1, 0}), 1e-12)
	assert.InDelta(t, math.Exp(-2), k.Density(x, []float64{1, 1}), 1e-12)

	k.SetH(2)
	assert.InDelta(t, math.Exp(-0.25), k.Density(x, []float64{1, 0}), 1e-12)
	assert.Equal(t, GaussianName, k.Name())
}

func TestExponentialKernelDensity(t *testing.T) {
	k := NewExponentialKernel()
	x := []float64{0, 0, 0}

	assert.Equal(t, 1.0, k.Density(x, x))
	assert.InDelta(t, math.Exp(-5), k.Density(x, []float64{3, 4, 0}), 1e-12)
	assert.Equal(t, ExponentialName, k.Name())
}

func TestKernelCapabilities(t *testing.T) {
	var gk Kernel = NewGaussianKernel()
	var ek Kernel = NewExponentialKernel()

	_, ok := gk.(HashCompatible)
	assert.False(t, ok)
	_, ok = ek.(HashCompatible)
	assert.True(t, ok)
}

func TestEuclideanCollisionProb(t *testing.T) {
	assert.Equal(t, 1.0, EuclideanCollisionProb(0, 5))
	assert.InDelta(t, 0.36874638, EuclideanCollisionProb(1, 1), 1e-6)
	assert.InDelta(t, 0.60954842, EuclideanCollisionProb(0.5, 1), 1e-6)
	assert.InDelta(t, 0.19541711, EuclideanCollisionProb(2, 1), 1e-6)
	assert.InDelta(t, 0.05013988, EuclideanCollisionProb(1, 3), 1e-6)

	prev := 1.0
	for c := 0.1; c < 10; c += 0.1 {
		p := EuclideanCollisionProb(c, 2)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, prev)
		prev = p
	}
}

func TestExponentialHashParams(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{0, 1, 2})
	k := NewExponentialKernel()

	w, power := k.HashParams(X, 0.01, rand.NewPCG(1, 2))
	require.GreaterOrEqual(t, power, 1)
	assert.InDelta(t, DeriveWidth(power, HashExponent), w, 1e-12)
}
