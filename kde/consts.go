package kde

const (
	GaussianName    = "gaussian"
	ExponentialName = "exponential"

	// exponent used to turn a dataset diameter into hashing power and width
	// for the exponential kernel
	HashExponent = 0.5

	DefaultBandwidth = 1.0
)
