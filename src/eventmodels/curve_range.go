package eventmodels

import (
	"fmt"
	"math"
)

// MaxCurveSamples bounds the number of points a single range may produce.
const MaxCurveSamples = 10000

// CurveRange is the inclusive price window scanned by the payoff sampler.
type CurveRange struct {
	Min  float64 `json:"min" yaml:"min" schema:"min"`
	Max  float64 `json:"max" yaml:"max" schema:"max"`
	Step float64 `json:"step" yaml:"step" schema:"step"`
}

func (r CurveRange) Validate() error {
	if err := ValidateNonNegative("min", r.Min); err != nil {
		return fmt.Errorf("CurveRange: Validate: %w", err)
	}

	if err := ValidateNonNegative("max", r.Max); err != nil {
		return fmt.Errorf("CurveRange: Validate: %w", err)
	}

	if err := ValidateNonNegative("step", r.Step); err != nil {
		return fmt.Errorf("CurveRange: Validate: %w", err)
	}

	if r.Max < r.Min {
		return fmt.Errorf("CurveRange: Validate: max (%v) must not be less than min (%v)", r.Max, r.Min)
	}

	if r.Step == 0 {
		return fmt.Errorf("CurveRange: Validate: step must be greater than 0: %v", r.Step)
	}

	// same count the sampler uses, including its rounding tolerance
	if math.Floor((r.Max-r.Min)/r.Step+1e-9)+1 > MaxCurveSamples {
		return fmt.Errorf("CurveRange: Validate: range %v-%v with step %v exceeds %d samples", r.Min, r.Max, r.Step, MaxCurveSamples)
	}

	return nil
}

func (r CurveRange) IsZero() bool {
	return r.Min == 0 && r.Max == 0 && r.Step == 0
}

// CurveRangeAroundStrike scans half the strike below and above it, in 100 steps.
func CurveRangeAroundStrike(strike float64) CurveRange {
	if strike <= 0 {
		return CurveRange{Min: 0, Max: 100, Step: 1}
	}

	return CurveRange{
		Min:  strike * 0.5,
		Max:  strike * 1.5,
		Step: strike / 100,
	}
}
