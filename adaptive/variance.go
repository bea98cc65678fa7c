package adaptive

import "math"

func (d *Diagnostics) ringEmpty(i int) bool {
	return d.setStart[numRings-1-i] == d.setStart[numRings-i]
}

// noiseFactor is the normalized size of S4.
func (d *Diagnostics) noiseFactor() float64 {
	if d.sampleCount == 0 {
		return 0
	}
	return float64(d.setStart[1]-d.setStart[0]) / float64(d.sampleCount)
}

// VarianceBoundRS is an upper bound on the variance of plain random
// sampling for the analyzed query, computed from the ring statistics of the
// last FindRings call.
func (d *Diagnostics) VarianceBoundRS() float64 {
	if d.sampleCount == 0 {
		return 0
	}
	up := d.rings[noiseRing].wMax * d.u[noiseRing]
	t2 := d.noiseFactor()
	for i := 0; i < noiseRing; i++ {
		if d.ringEmpty(i) {
			continue
		}
		for j := 0; j < noiseRing; j++ {
			if d.ringEmpty(j) {
				continue
			}
			up += (d.rings[i].wMax / d.rings[j].wMin) * d.u[i] * d.u[j]
		}
		up += t2 * d.rings[i].wMax * d.u[i]
	}
	return up
}

// VarianceBoundHBE is the hashing based estimator counterpart of
// VarianceBoundRS, weighting contributions by their collision probability.
func (d *Diagnostics) VarianceBoundHBE() float64 {
	if d.sampleCount == 0 {
		return 0
	}
	noise := &d.rings[noiseRing]
	up := noise.maxWP() * d.u[noiseRing]
	t2 := d.noiseFactor()
	for i := 0; i < noiseRing; i++ {
		if d.ringEmpty(i) {
			continue
		}
		ri := &d.rings[i]
		for j := 0; j < noiseRing; j++ {
			if d.ringEmpty(j) {
				continue
			}
			rj := &d.rings[j]

			var sup float64
			switch {
			case i == j:
				sup = ri.diagonalSup()
			case len(ri.wp) == 0 || len(rj.wp) == 0:
				sup = 0
			case i < j:
				sup = ri.maxWPP() / rj.minWP()
			default:
				sup = ri.maxWP() / rj.wMin
			}
			up += sup * d.u[i] * d.u[j]
		}
		up += t2 * ri.maxWPP() * noise.pMax * d.u[i]
	}
	return up
}

// diagonalSup bounds contrib(x)/p(x)^2 / (contrib(y)/p(y)) over pairs of
// the ring with y no larger than x. 1/pMin always holds; the walk over the
// largest contrib/p^2 values looks for a tighter candidate.
func (r *ringStats) diagonalSup() float64 {
	if len(r.wpp) == 0 {
		return 0
	}
	sup := 1 / r.pMin
	steps := min(hbeMergeSteps, len(r.wpp))
	for k := 0; k < steps; k++ {
		// wpIdx is a permutation, so l stops at wppIdx[k] at the latest
		l := 0
		for r.wpIdx[l] > r.wppIdx[k] {
			l++
		}
		sup = math.Max(sup, r.wpp[k]/r.wp[l])
		if (k == 0 && l == 0) || r.wpIdx[l] == 0 {
			break
		}
	}
	return sup
}
