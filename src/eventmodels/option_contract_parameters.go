package eventmodels

import (
	"fmt"
)

// OptionContractParameters is the complete snapshot that drives one valuation and one payoff curve.
// It is replaced wholesale on every edit.
type OptionContractParameters struct {
	OptionType      OptionType     `json:"option_type" yaml:"optionType" schema:"type"`
	Position        OptionPosition `json:"position" yaml:"position" schema:"position"`
	UnderlyingPrice float64        `json:"underlying_price" yaml:"underlyingPrice" schema:"underlying"`
	StrikePrice     float64        `json:"strike_price" yaml:"strikePrice" schema:"strike"`
	DaysToExpiry    float64        `json:"days_to_expiry" yaml:"daysToExpiry" schema:"days"`
	Volatility      float64        `json:"volatility" yaml:"volatility" schema:"volatility"`
	Premium         float64        `json:"premium" yaml:"premium" schema:"premium"`
	Quantity        int            `json:"quantity" yaml:"quantity" schema:"quantity"`
}

func (p *OptionContractParameters) Validate() error {
	if err := p.OptionType.Validate(); err != nil {
		return fmt.Errorf("invalid option type: %w", err)
	}

	if err := p.Position.Validate(); err != nil {
		return fmt.Errorf("invalid position: %w", err)
	}

	if err := ValidateNonNegative("underlying price", p.UnderlyingPrice); err != nil {
		return err
	}

	if err := ValidateNonNegative("strike price", p.StrikePrice); err != nil {
		return err
	}

	if err := ValidateNonNegative("days to expiry", p.DaysToExpiry); err != nil {
		return err
	}

	if err := ValidateNonNegative("volatility", p.Volatility); err != nil {
		return err
	}

	if err := ValidateNonNegative("premium", p.Premium); err != nil {
		return err
	}

	if p.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1: %d", p.Quantity)
	}

	return nil
}

func (p OptionContractParameters) String() string {
	return fmt.Sprintf("%s %s K=%.2f S=%.2f T=%.0fd vol=%.0f%% premium=%.2f x%d",
		p.Position, p.OptionType, p.StrikePrice, p.UnderlyingPrice, p.DaysToExpiry, p.Volatility*100, p.Premium, p.Quantity)
}
