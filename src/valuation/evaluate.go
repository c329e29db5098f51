package valuation

import (
	"math"

	"github.com/jiaming2012/options-machine/src/eventmodels"
)

const (
	volFactorFloor = 0.1

	// time value never exceeds 3x the premium not explained by intrinsic value
	timeValueCapMultiple = 3.0

	timeValueCapEpsilon = 1e-6
)

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// TimeFactor is the remaining fraction of the reference expiry window, in [0, 1].
func TimeFactor(daysToExpiry float64, cfg eventmodels.EngineConfig) float64 {
	if cfg.ReferenceExpiryDays <= 0 {
		return 0
	}

	return clamp(daysToExpiry/cfg.ReferenceExpiryDays, 0, 1)
}

// VolFactor grows with volatility relative to the reference and never drops below 0.1.
func VolFactor(volatility float64, cfg eventmodels.EngineConfig) float64 {
	if cfg.ReferenceVolatility <= 0 {
		return 1
	}

	return math.Max(volFactorFloor, 0.5+volatility/(2*cfg.ReferenceVolatility))
}

// Evaluate values the snapshot with the simplified time value model. The caller validates params.
func Evaluate(params eventmodels.OptionContractParameters, cfg eventmodels.EngineConfig) eventmodels.ValuationResult {
	intrinsic := ComputeIntrinsicValue(params.OptionType, params.UnderlyingPrice, params.StrikePrice)
	maxTimeValue := math.Max(params.Premium-intrinsic, 0)

	timeFactor := TimeFactor(params.DaysToExpiry, cfg)
	volFactor := VolFactor(params.Volatility, cfg)

	timeValue := clamp(maxTimeValue*timeFactor*volFactor, 0, timeValueCapMultiple*maxTimeValue+timeValueCapEpsilon)

	settleNow := ComputePayoffAtExpiration(params.OptionType, params.Position, params.UnderlyingPrice, params.StrikePrice, params.Premium, params.Quantity)

	return eventmodels.ValuationResult{
		IntrinsicValuePerShare:   intrinsic,
		TimeValuePerShare:        timeValue,
		TotalOptionValuePerShare: intrinsic + timeValue,
		SettleNowPayoffTotal:     settleNow,
		SettleNowProfitLossTotal: settleNow,
		MaxTimeValueAtInception:  maxTimeValue,
		TimeFactor:               timeFactor,
		VolFactor:                volFactor,
		Moneyness:                Moneyness(params.OptionType, params.UnderlyingPrice, params.StrikePrice),
		BreakevenPrice:           BreakevenPrice(params.OptionType, params.StrikePrice, params.Premium),
		MaxProfitPerShare:        MaxProfitPerShare(params.OptionType, params.Position, params.StrikePrice, params.Premium),
		MaxLossPerShare:          MaxLossPerShare(params.OptionType, params.Position, params.StrikePrice, params.Premium),
	}
}
