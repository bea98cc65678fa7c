package adaptive

import (
	"sort"

	"github.com/uyouii/adaptive-kde/model"
	"github.com/uyouii/adaptive-kde/utils"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Diagnostics is the per-query scratch state of the estimator: every
// (point index, kernel value) pair observed while evaluating one query,
// and the rings derived from them. It is owned by the caller; use one
// Diagnostics per in-flight query and Reset it between independent queries.
type Diagnostics struct {
	samples []int
	contrib []float64

	sampleCount int
	uGlobal     float64
	lambda      float64 // upper threshold of S3
	l           float64 // lower threshold of S1

	// ring i spans setStart[3-i]..setStart[4-i]
	setStart [numRings + 1]int
	u        [numRings]float64
	rings    [numRings]ringStats
}

type ringStats struct {
	wMin, wMax float64
	pMin, pMax float64

	// contrib/p ascending and contrib/p^2 descending, with ring-local
	// positions of the retained contributions
	wp     []float64
	wpIdx  []int
	wpp    []float64
	wppIdx []int
}

func NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		samples: []int{},
		contrib: []float64{},
	}
}

// Reset drops every recorded contribution and derived ring.
func (d *Diagnostics) Reset() {
	d.samples = d.samples[:0]
	d.contrib = d.contrib[:0]
	d.sampleCount = 0
	d.uGlobal = 0
	d.lambda, d.l = 0, 0
	d.setStart = [numRings + 1]int{}
	d.u = [numRings]float64{}
	d.rings = [numRings]ringStats{}
}

func (d *Diagnostics) record(idx int, value float64) {
	d.samples = append(d.samples, idx)
	d.contrib = append(d.contrib, value)
}

func (d *Diagnostics) swap(i, j int) {
	d.samples[i], d.samples[j] = d.samples[j], d.samples[i]
	d.contrib[i], d.contrib[j] = d.contrib[j], d.contrib[i]
}

// Len is the number of recorded contributions.
func (d *Diagnostics) Len() int {
	return len(d.contrib)
}

func (d *Diagnostics) Contributions() []model.Contribution {
	res := make([]model.Contribution, len(d.contrib))
	for i := range d.contrib {
		res[i] = model.Contribution{Index: d.samples[i], Value: d.contrib[i]}
	}
	return res
}

// Boundaries returns the five ring offsets into the retained contributions.
func (d *Diagnostics) Boundaries() [numRings + 1]int {
	return d.setStart
}

// GlobalMean is the mean retained contribution computed by GetConstants.
func (d *Diagnostics) GlobalMean() float64 {
	return d.uGlobal
}

// RingMass returns the normalized mass of ring i, 0 is the ring of largest
// contributions and 3 the noise ring.
func (d *Diagnostics) RingMass(i int) float64 {
	return d.u[i]
}

// Thresholds returns lambda, the upper contribution of S3, and l, the lower
// contribution of S1.
func (d *Diagnostics) Thresholds() (float64, float64) {
	return d.lambda, d.l
}

// GetConstants sorts the record, drops contributions >= 1 (the query
// itself), caps what is left at MaxRetainedSamples and computes the global
// mean and the noise ring S4.
func (e *Estimator) GetConstants(d *Diagnostics) {
	sorted, perm := utils.SortWithPermutation(d.contrib)
	keep := sort.SearchFloat64s(sorted, 1)

	var samples []int
	var contrib []float64
	if keep > MaxRetainedSamples {
		ranks := make([]int, MaxRetainedSamples)
		sampleuv.WithoutReplacement(ranks, keep, e.rng)
		sort.Ints(ranks)

		samples = make([]int, len(ranks))
		contrib = make([]float64, len(ranks))
		for i, rank := range ranks {
			samples[i] = d.samples[perm[rank]]
			contrib[i] = sorted[rank]
		}
		e.logger.Debug("contributions subsampled", zap.Int("retained", keep),
			zap.Int("kept", MaxRetainedSamples))
	} else {
		samples = make([]int, keep)
		for i := 0; i < keep; i++ {
			samples[i] = d.samples[perm[i]]
		}
		contrib = sorted[:keep]
	}
	d.samples, d.contrib = samples, contrib

	d.sampleCount = len(d.contrib)
	d.uGlobal = 0
	d.lambda, d.l = 0, 0
	d.setStart = [numRings + 1]int{}
	d.u = [numRings]float64{}
	d.rings = [numRings]ringStats{}
	if d.sampleCount == 0 {
		return
	}

	cnt := float64(d.sampleCount)
	d.uGlobal = floats.Sum(d.contrib) / cnt

	// S4: every contribution below the mean
	end := sort.SearchFloat64s(d.contrib, d.uGlobal)
	d.u[noiseRing] = floats.Sum(d.contrib[:end]) / cnt
	d.setStart[1] = end
	d.setStart[2] = end
	d.setStart[3] = end
	d.setStart[4] = d.sampleCount
}
