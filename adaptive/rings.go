package adaptive

import (
	"math"

	"github.com/uyouii/adaptive-kde/utils"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

type RingStrategy int

const (
	// RingsTrivial keeps S4 and puts every other contribution in one ring.
	RingsTrivial RingStrategy = 0
	// RingsThreshold splits off S3 and S1 so each holds about half of the
	// error budget left by S4.
	RingsThreshold RingStrategy = 1
)

func (s RingStrategy) String() string {
	switch s {
	case RingsTrivial:
		return "trivial"
	case RingsThreshold:
		return "threshold"
	}
	return "unknown"
}

// FindRings partitions the contributions retained by GetConstants into four
// rings and computes their weight and collision probability statistics for
// query q at level. It can be called again with other arguments without
// calling GetConstants first.
func (e *Estimator) FindRings(d *Diagnostics, strategy RingStrategy, eps float64, q []float64, level int) {
	n := d.sampleCount
	s4End := d.setStart[1]

	if strategy != RingsThreshold || n < minRingSamples {
		d.lambda, d.l = d.uGlobal, d.uGlobal
		d.setStart[2], d.setStart[3] = s4End, s4End
	} else {
		cnt := float64(n)
		minU := (eps*d.uGlobal - d.u[noiseRing]) / 2

		// S3
		s := 0.0
		i := s4End
		for s < minU && i < n {
			s += d.contrib[i] / cnt
			i++
		}
		d.lambda = d.contrib[utils.IntMax(i-1, 0)]
		d.setStart[2] = i

		// S1
		s = 0
		j := n - 1
		for s < minU && j >= d.setStart[2] {
			s += d.contrib[j] / cnt
			j--
		}
		start := utils.IntMax(utils.IntMin(n-2, j)+1, d.setStart[2])
		d.l = d.contrib[utils.IntMin(start, n-1)]
		d.setStart[3] = start
	}
	d.setStart[4] = n

	w, k := e.HashParams(level)
	width := w * e.kernel.Bandwidth()
	for i := 0; i < numRings; i++ {
		d.u[i], d.rings[i] = e.ringStats(d, i, q, width, k)
	}

	e.logger.Debug("rings found",
		zap.Stringer("strategy", strategy),
		zap.Int("level", level),
		zap.Ints("setStart", d.setStart[:]),
		zap.Float64("lambda", d.lambda),
		zap.Float64("l", d.l))
}

func (e *Estimator) ringStats(d *Diagnostics, ring int, q []float64, width float64, power int) (float64, ringStats) {
	st := ringStats{wMin: 1, pMin: 1}
	lo, hi := d.setStart[numRings-1-ring], d.setStart[numRings-ring]

	wp := make([]float64, 0, hi-lo)
	wpp := make([]float64, 0, hi-lo)
	for j := lo; j < hi; j++ {
		c := d.contrib[j]
		if c < ContributionFloor {
			continue
		}
		st.wMax = math.Max(st.wMax, c)
		st.wMin = math.Min(st.wMin, c)

		dist := floats.Distance(e.X.RawRowView(d.samples[j]), q, 2)
		p := math.Max(e.kernel.CollisionProbability(dist/width, power), probabilityFloor)
		st.pMin = math.Min(st.pMin, p)
		st.pMax = math.Max(st.pMax, p)

		wpp = append(wpp, c/p/p)
		wp = append(wp, c/p)
	}
	st.wp, st.wpIdx = utils.SortWithPermutation(wp)
	st.wpp, st.wppIdx = utils.SortWithPermutationDesc(wpp)

	var mass float64
	if d.sampleCount > 0 {
		mass = floats.Sum(d.contrib[lo:hi]) / float64(d.sampleCount)
	}
	return mass, st
}

func (r *ringStats) maxWP() float64 {
	if len(r.wp) == 0 {
		return 0
	}
	return r.wp[len(r.wp)-1]
}

func (r *ringStats) minWP() float64 {
	if len(r.wp) == 0 {
		return 0
	}
	return r.wp[0]
}

func (r *ringStats) maxWPP() float64 {
	if len(r.wpp) == 0 {
		return 0
	}
	return r.wpp[0]
}
