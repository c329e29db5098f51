package eventmodels

import "fmt"

// EngineConfig holds the reference constants the valuation engine scales time value against.
// A non-positive reference disables the matching factor.
type EngineConfig struct {
	ReferenceExpiryDays float64 `json:"reference_expiry_days" yaml:"referenceExpiryDays"`
	ReferenceVolatility float64 `json:"reference_volatility" yaml:"referenceVolatility"`
}

func (c EngineConfig) Validate() error {
	if err := ValidateNonNegative("reference expiry days", c.ReferenceExpiryDays); err != nil {
		return fmt.Errorf("EngineConfig: Validate: %w", err)
	}

	if err := ValidateNonNegative("reference volatility", c.ReferenceVolatility); err != nil {
		return fmt.Errorf("EngineConfig: Validate: %w", err)
	}

	return nil
}
