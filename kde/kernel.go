package kde

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Kernel evaluates the similarity between two points. Values lie in [0, 1],
// a point has value 1 against itself.
type Kernel interface {
	Density(x, y []float64) float64
	Name() string
	Bandwidth() float64
	// CollisionProbability is the probability that two points at normalized
	// distance c share a bucket of a k-wise concatenated hash.
	CollisionProbability(c float64, k int) float64
}

// HashCompatible kernels derive their own hashing width and power from the
// dataset. Kernels without it use per-level analytic parameters.
type HashCompatible interface {
	Kernel
	HashParams(X *mat.Dense, tau float64, src rand.Source) (w float64, k int)
}

type GaussianKernel struct {
	h float64
}

func NewGaussianKernel() *GaussianKernel {
	return &GaussianKernel{
		h: DefaultBandwidth,
	}
}

func (k *GaussianKernel) SetH(h float64) {
	k.h = h
}

func (k *GaussianKernel) Name() string {
	return GaussianName
}

func (k *GaussianKernel) Bandwidth() float64 {
	return k.h
}

// exp(-|x-y|^2 / h^2)
func (k *GaussianKernel) Density(x, y []float64) float64 {
	d := floats.Distance(x, y, 2) / k.h
	return math.Exp(-d * d)
}

func (k *GaussianKernel) CollisionProbability(c float64, power int) float64 {
	return EuclideanCollisionProb(c, power)
}

type ExponentialKernel struct {
	h float64
}

func NewExponentialKernel() *ExponentialKernel {
	return &ExponentialKernel{
		h: DefaultBandwidth,
	}
}

func (k *ExponentialKernel) SetH(h float64) {
	k.h = h
}

func (k *ExponentialKernel) Name() string {
	return ExponentialName
}

func (k *ExponentialKernel) Bandwidth() float64 {
	return k.h
}

// exp(-|x-y| / h)
func (k *ExponentialKernel) Density(x, y []float64) float64 {
	return math.Exp(-floats.Distance(x, y, 2) / k.h)
}

func (k *ExponentialKernel) CollisionProbability(c float64, power int) float64 {
	return EuclideanCollisionProb(c, power)
}

func (k *ExponentialKernel) HashParams(X *mat.Dense, tau float64, src rand.Source) (float64, int) {
	diam := EstimateDiameter(X, tau, k.h, src)
	power := DerivePower(diam, HashExponent)
	return DeriveWidth(power, HashExponent), power
}
