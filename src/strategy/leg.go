package strategy

import (
	"fmt"

	"github.com/jiaming2012/options-machine/src/eventmodels"
	"github.com/jiaming2012/options-machine/src/valuation"
)

type Leg struct {
	OptionType  eventmodels.OptionType     `json:"option_type"`
	Position    eventmodels.OptionPosition `json:"position"`
	StrikePrice float64                    `json:"strike_price"`
	Premium     float64                    `json:"premium"`
	Quantity    int                        `json:"quantity"`
}

func (l Leg) Validate() error {
	if err := l.OptionType.Validate(); err != nil {
		return fmt.Errorf("Leg: %w", err)
	}

	if err := l.Position.Validate(); err != nil {
		return fmt.Errorf("Leg: %w", err)
	}

	if err := eventmodels.ValidateNonNegative("strike", l.StrikePrice); err != nil {
		return fmt.Errorf("Leg: %w", err)
	}

	if err := eventmodels.ValidateNonNegative("premium", l.Premium); err != nil {
		return fmt.Errorf("Leg: %w", err)
	}

	if l.Quantity < 1 {
		return fmt.Errorf("Leg: quantity must be at least 1: %d", l.Quantity)
	}

	return nil
}

func (l Leg) PayoffAtExpiration(price float64) float64 {
	return valuation.ComputePayoffAtExpiration(l.OptionType, l.Position, price, l.StrikePrice, l.Premium, l.Quantity)
}

// cashFlow is negative for premium paid and positive for premium received.
func (l Leg) cashFlow() float64 {
	amount := l.Premium * float64(l.Quantity)
	if l.Position == eventmodels.OptionPositionLong {
		return -amount
	}

	return amount
}
