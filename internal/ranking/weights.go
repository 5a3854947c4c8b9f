package ranking

import "math"

// weightTolerance bounds the rounding error accepted when weights are summed.
const weightTolerance = 0.001

// Weights are the per-component multipliers of the match score. They must sum to 1.
type Weights struct {
	Skills     float64 `json:"skills" mapstructure:"skills"`
	Experience float64 `json:"experience" mapstructure:"experience"`
	Education  float64 `json:"education" mapstructure:"education"`
	Location   float64 `json:"location" mapstructure:"location"`
	JobType    float64 `json:"job_type" mapstructure:"job_type"`
	Salary     float64 `json:"salary" mapstructure:"salary"`
}

// DefaultWeights returns the standard weighting: skills 0.35, experience 0.20,
// education 0.15, location 0.15, job type 0.10, salary 0.05.
func DefaultWeights() Weights {
	return Weights{
		Skills:     0.35,
		Experience: 0.20,
		Education:  0.15,
		Location:   0.15,
		JobType:    0.10,
		Salary:     0.05,
	}
}

// Sum returns the total of all six weights.
func (w Weights) Sum() float64 {
	return w.Skills + w.Experience + w.Education + w.Location + w.JobType + w.Salary
}

// Validate rejects negative weights and weights that do not sum to 1.
func (w Weights) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"skills", w.Skills},
		{"experience", w.Experience},
		{"education", w.Education},
		{"location", w.Location},
		{"job_type", w.JobType},
		{"salary", w.Salary},
	}
	for _, f := range fields {
		if f.value < 0 || math.IsNaN(f.value) {
			return &WeightsError{Field: f.name, Message: "must be non-negative"}
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > weightTolerance {
		return &WeightsError{Message: "weights must sum to 1.0", Sum: sum}
	}
	return nil
}
