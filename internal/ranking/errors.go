package ranking

import "fmt"

// WeightsError reports an invalid weight configuration.
type WeightsError struct {
	Field   string
	Message string
	Sum     float64
}

func (e *WeightsError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid weight %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid weights: %s (sum %.3f)", e.Message, e.Sum)
}
