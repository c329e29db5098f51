package valuation

import (
	"math"

	"github.com/jiaming2012/options-machine/src/eventmodels"
)

func ComputeIntrinsicValue(optionType eventmodels.OptionType, underlyingPrice, strikePrice float64) float64 {
	if optionType == eventmodels.OptionTypePut {
		return math.Max(strikePrice-underlyingPrice, 0)
	}

	return math.Max(underlyingPrice-strikePrice, 0)
}

// ComputePayoffAtExpiration nets the premium against the intrinsic value at expiry and scales by quantity.
func ComputePayoffAtExpiration(optionType eventmodels.OptionType, position eventmodels.OptionPosition, priceAtExpiry, strikePrice, premium float64, quantity int) float64 {
	intrinsic := ComputeIntrinsicValue(optionType, priceAtExpiry, strikePrice)

	var perShare float64
	if position == eventmodels.OptionPositionShort {
		perShare = premium - intrinsic
	} else {
		perShare = intrinsic - premium
	}

	return perShare * float64(quantity)
}

func Moneyness(optionType eventmodels.OptionType, underlyingPrice, strikePrice float64) eventmodels.OptionMoneyness {
	if underlyingPrice == strikePrice {
		return eventmodels.OptionMoneynessAtTheMoney
	}

	if ComputeIntrinsicValue(optionType, underlyingPrice, strikePrice) > 0 {
		return eventmodels.OptionMoneynessIntheMoney
	}

	return eventmodels.OptionMoneynessOutOfTheMoney
}

// BreakevenPrice is the expiry price at which a single leg's payoff crosses zero.
func BreakevenPrice(optionType eventmodels.OptionType, strikePrice, premium float64) float64 {
	if optionType == eventmodels.OptionTypePut {
		return math.Max(strikePrice-premium, 0)
	}

	return strikePrice + premium
}

func MaxProfitPerShare(optionType eventmodels.OptionType, position eventmodels.OptionPosition, strikePrice, premium float64) eventmodels.PayoffBound {
	if position == eventmodels.OptionPositionShort {
		return eventmodels.NewPayoffBound(premium)
	}

	// clamped at zero like the put breakeven
	if optionType == eventmodels.OptionTypePut {
		return eventmodels.NewPayoffBound(math.Max(strikePrice-premium, 0))
	}

	return eventmodels.UnboundedPayoff()
}

func MaxLossPerShare(optionType eventmodels.OptionType, position eventmodels.OptionPosition, strikePrice, premium float64) eventmodels.PayoffBound {
	if position == eventmodels.OptionPositionLong {
		return eventmodels.NewPayoffBound(premium)
	}

	// clamped at zero like the put breakeven
	if optionType == eventmodels.OptionTypePut {
		return eventmodels.NewPayoffBound(math.Max(strikePrice-premium, 0))
	}

	return eventmodels.UnboundedPayoff()
}
