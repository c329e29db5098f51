package payoff

import (
	"math"

	"github.com/jiaming2012/options-machine/src/eventmodels"
	"github.com/jiaming2012/options-machine/src/valuation"
)

// stepTolerance lets a final point that lands on rangeMax survive float division error.
const stepTolerance = 1e-9

// SampleCount is floor((max-min)/step) + 1, or 0 for an empty or non-finite range.
func SampleCount(rangeMin, rangeMax, step float64) int {
	if step <= 0 || rangeMax < rangeMin {
		return 0
	}

	span := math.Floor((rangeMax-rangeMin)/step + stepTolerance)
	if math.IsNaN(span) || math.IsInf(span, 0) || span >= math.MaxInt32 {
		return 0
	}

	return int(span) + 1
}

func payoffPerShare(params eventmodels.OptionContractParameters, price float64) float64 {
	return valuation.ComputePayoffAtExpiration(params.OptionType, params.Position, price, params.StrikePrice, params.Premium, 1)
}

// SampleCurve walks [rangeMin, rangeMax] in fixed steps. The curve is always per share.
func SampleCurve(params eventmodels.OptionContractParameters, rangeMin, rangeMax, step float64) []eventmodels.PayoffPoint {
	n := SampleCount(rangeMin, rangeMax, step)
	points := make([]eventmodels.PayoffPoint, 0, n)

	for i := 0; i < n; i++ {
		price := rangeMin + float64(i)*step
		points = append(points, eventmodels.PayoffPoint{
			Price:          price,
			PayoffPerShare: payoffPerShare(params, price),
		})
	}

	return points
}

func CurrentPoint(params eventmodels.OptionContractParameters) eventmodels.PayoffPoint {
	return eventmodels.PayoffPoint{
		Price:          params.UnderlyingPrice,
		PayoffPerShare: payoffPerShare(params, params.UnderlyingPrice),
	}
}

func BuildCurve(params eventmodels.OptionContractParameters, r eventmodels.CurveRange) eventmodels.PayoffCurve {
	return eventmodels.PayoffCurve{
		Points:  SampleCurve(params, r.Min, r.Max, r.Step),
		Current: CurrentPoint(params),
	}
}
