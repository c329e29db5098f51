package eventmodels

import (
	"fmt"
	"math"
)

// ValidateNonNegative rejects negative, NaN and infinite inputs.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be a finite number: %v", name, v)
	}

	if v < 0 {
		return fmt.Errorf("%s must be non-negative: %v", name, v)
	}

	return nil
}
