package kde

import (
	"github.com/uyouii/adaptive-kde/common"
	"gonum.org/v1/gonum/mat"
)

// NaiveKDE computes exact kernel densities by enumerating every point.
type NaiveKDE struct {
	X      *mat.Dense
	kernel Kernel
}

func NewNaiveKDE(X *mat.Dense, kernel Kernel) (*NaiveKDE, error) {
	if X == nil || X.IsEmpty() {
		return nil, common.ErrorEmptyDataset
	}
	if kernel == nil {
		return nil, common.ErrorInvalidValue
	}
	return &NaiveKDE{
		X:      X,
		kernel: kernel,
	}, nil
}

func (k *NaiveKDE) Kernel() Kernel {
	return k.kernel
}

// Query returns the mean kernel value of q against all points.
func (k *NaiveKDE) Query(q []float64) float64 {
	n, _ := k.X.Dims()
	var sum float64
	for i := 0; i < n; i++ {
		sum += k.kernel.Density(q, k.X.RawRowView(i))
	}
	return sum / float64(n)
}

// Contributions returns the kernel value of q against every point, in row
// order.
func (k *NaiveKDE) Contributions(q []float64) []float64 {
	n, _ := k.X.Dims()
	res := make([]float64, n)
	for i := 0; i < n; i++ {
		res[i] = k.kernel.Density(q, k.X.RawRowView(i))
	}
	return res
}
