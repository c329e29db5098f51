package strategy

import (
	"fmt"

	"github.com/jiaming2012/options-machine/src/eventmodels"
	"github.com/jiaming2012/options-machine/src/payoff"
)

type Strategy struct {
	Name string `json:"name"`
	Legs []Leg  `json:"legs"`
}

func (s *Strategy) Validate() error {
	if len(s.Legs) == 0 {
		return fmt.Errorf("Strategy: %s: no legs", s.Name)
	}

	for i, leg := range s.Legs {
		if err := leg.Validate(); err != nil {
			return fmt.Errorf("Strategy: %s: leg %d: %w", s.Name, i, err)
		}
	}

	return nil
}

// PayoffAtExpiration sums every leg's payoff at the given expiry price.
func (s *Strategy) PayoffAtExpiration(price float64) float64 {
	total := 0.0
	for _, leg := range s.Legs {
		total += leg.PayoffAtExpiration(price)
	}

	return total
}

// NetPremium is positive when opening the strategy costs money (a debit).
func (s *Strategy) NetPremium() float64 {
	total := 0.0
	for _, leg := range s.Legs {
		total -= leg.cashFlow()
	}

	return total
}

func (s *Strategy) SampleCurve(r eventmodels.CurveRange) []eventmodels.PayoffPoint {
	n := payoff.SampleCount(r.Min, r.Max, r.Step)
	points := make([]eventmodels.PayoffPoint, 0, n)

	for i := 0; i < n; i++ {
		price := r.Min + float64(i)*r.Step
		points = append(points, eventmodels.PayoffPoint{
			Price:          price,
			PayoffPerShare: s.PayoffAtExpiration(price),
		})
	}

	return points
}

// BuildCurve samples the strategy and marks the point at the live underlying price.
func (s *Strategy) BuildCurve(underlyingPrice float64, r eventmodels.CurveRange) eventmodels.PayoffCurve {
	return eventmodels.PayoffCurve{
		Points: s.SampleCurve(r),
		Current: eventmodels.PayoffPoint{
			Price:          underlyingPrice,
			PayoffPerShare: s.PayoffAtExpiration(underlyingPrice),
		},
	}
}
