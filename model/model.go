package model

import "fmt"

// Level is one entry of the precision hierarchy.
type Level struct {
	Mu float64 `json:"mu"` // confidence target
	M  int     `json:"m"`  // repetitions per median-of-means group
	T  float64 `json:"t"`  // bandwidth scale, sqrt(log(1/mu))
	K  int     `json:"k"`  // hashing power
	W  float64 `json:"w"`  // hashing width
}

func (l Level) String() string {
	return fmt.Sprintf("mu=%v m=%v k=%v w=%.4f", l.Mu, l.M, l.K, l.W)
}

// Estimate is the result of evaluating a query at one level.
type Estimate struct {
	Value       float64 `json:"v"`
	Evaluations int     `json:"evals"`
}

// Contribution is an observed (point index, kernel value) pair.
type Contribution struct {
	Index int
	Value float64
}

type DiagnosticReport struct {
	Level       int     `json:"level"`
	Qualified   bool    `json:"qualified"` // level reached the target accuracy
	Estimate    float64 `json:"estimate"`
	Evaluations int     `json:"evaluations"`
	RetainedCnt int     `json:"retained"`

	VarianceRS  float64 `json:"var_rs"`
	VarianceHBE float64 `json:"var_hbe"`
	// relative variances, variance bound / estimate^2
	RelVarRS  float64 `json:"rel_var_rs,omitempty"`
	RelVarHBE float64 `json:"rel_var_hbe,omitempty"`
}

func (r *DiagnosticReport) DebugString() string {
	if r == nil {
		return "<nil>"
	}
	return fmt.Sprintf("level: %v, estimate: %v, evaluations: %v, varRS: %v, varHBE: %v",
		r.Level, r.Estimate, r.Evaluations, r.VarianceRS, r.VarianceHBE)
}
