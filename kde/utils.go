package kde

// RandomRelVar bounds the relative variance of a single uniform random
// sample whose kernel value is in [0, 1] and whose mean is mu.
func RandomRelVar(mu float64) float64 {
	return 1 / mu
}
