package adaptive

import "math"

const (
	// geometric decay of the confidence target between levels
	DefaultGamma = 0.5
	// number of median-of-means groups
	DefaultMedianGroups = 3

	// contributions kept for ring analysis after GetConstants
	MaxRetainedSamples = 50000
	// contributions below this are left out of extremal weights and
	// collision probabilities
	ContributionFloor = 1e-10

	probabilityFloor = 1e-10
	hbeMergeSteps    = 10
	minRingSamples   = 3

	numRings  = 4
	noiseRing = 3
)

var sqrt2Pi = math.Sqrt(2 * math.Pi)
