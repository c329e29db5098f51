package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/options-machine/src/eventmodels"
)

func TestStrategyPayoff(t *testing.T) {
	t.Run("call spread matches the sum of its legs", func(t *testing.T) {
		s := &Strategy{
			Name: "call spread",
			Legs: []Leg{
				{OptionType: eventmodels.OptionTypeCall, Position: eventmodels.OptionPositionShort, StrikePrice: 100, Premium: 1, Quantity: 1},
				{OptionType: eventmodels.OptionTypeCall, Position: eventmodels.OptionPositionLong, StrikePrice: 120, Premium: 0.5, Quantity: 1},
			},
		}

		require.NoError(t, s.Validate())

		assert.Equal(t, 0.5, s.PayoffAtExpiration(90))
		assert.Equal(t, -9.5, s.PayoffAtExpiration(110))
		assert.Equal(t, -19.5, s.PayoffAtExpiration(130))
		assert.Equal(t, -0.5, s.NetPremium())
	})

	t.Run("leg quantity scales the payoff", func(t *testing.T) {
		s := &Strategy{
			Name: "two puts",
			Legs: []Leg{
				{OptionType: eventmodels.OptionTypePut, Position: eventmodels.OptionPositionLong, StrikePrice: 100, Premium: 4, Quantity: 2},
			},
		}

		assert.Equal(t, 32.0, s.PayoffAtExpiration(80))
		assert.Equal(t, 8.0, s.NetPremium())
	})

	t.Run("invalid strategy", func(t *testing.T) {
		s := &Strategy{Name: "empty"}
		assert.Error(t, s.Validate())

		s = &Strategy{Name: "bad", Legs: []Leg{{OptionType: "straddle", Position: eventmodels.OptionPositionLong, Quantity: 1}}}
		assert.Error(t, s.Validate())

		s = &Strategy{Name: "bad", Legs: []Leg{{OptionType: eventmodels.OptionTypeCall, Position: eventmodels.OptionPositionLong, Quantity: 0}}}
		assert.Error(t, s.Validate())
	})
}

func TestPresets(t *testing.T) {
	params := PresetParams{Strike: 100, Width: 10, Premium: 4}

	t.Run("every preset builds", func(t *testing.T) {
		for _, name := range PresetNames() {
			s, err := NewPreset(name, params)
			require.NoError(t, err, name)
			assert.Equal(t, name, s.Name)
		}
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, err := NewPreset("iron_butterfly", params)
		assert.ErrorIs(t, err, ErrUnknownPreset)
	})

	t.Run("invalid preset parameters", func(t *testing.T) {
		_, err := NewPreset("bear_put_spread", PresetParams{Strike: 5, Width: 10, Premium: 1})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnknownPreset)

		_, err = NewPreset("long_call", PresetParams{Strike: 100, Premium: math.NaN()})
		assert.Error(t, err)

		_, err = NewPreset("long_put", PresetParams{Strike: math.Inf(1), Premium: 1})
		assert.Error(t, err)
	})

	t.Run("long straddle profits from a move either way", func(t *testing.T) {
		s, err := NewPreset("long_straddle", params)
		require.NoError(t, err)

		assert.Equal(t, -8.0, s.PayoffAtExpiration(100))
		assert.Equal(t, 12.0, s.PayoffAtExpiration(80))
		assert.Equal(t, 12.0, s.PayoffAtExpiration(120))
	})

	t.Run("short straddle mirrors the long straddle", func(t *testing.T) {
		long, err := NewPreset("long_straddle", params)
		require.NoError(t, err)
		short, err := NewPreset("short_straddle", params)
		require.NoError(t, err)

		for _, price := range []float64{70, 95, 100, 130} {
			assert.Equal(t, 0.0, long.PayoffAtExpiration(price)+short.PayoffAtExpiration(price))
		}
	})

	t.Run("bull call spread caps the upside", func(t *testing.T) {
		s, err := NewPreset("bull_call_spread", params)
		require.NoError(t, err)

		assert.Equal(t, 2.0, s.NetPremium())
		assert.Equal(t, -2.0, s.PayoffAtExpiration(90))
		assert.Equal(t, 8.0, s.PayoffAtExpiration(110))
		assert.Equal(t, 8.0, s.PayoffAtExpiration(200))
	})

	t.Run("bear put spread caps the downside profit", func(t *testing.T) {
		s, err := NewPreset("bear_put_spread", params)
		require.NoError(t, err)

		assert.Equal(t, -2.0, s.PayoffAtExpiration(110))
		assert.Equal(t, 8.0, s.PayoffAtExpiration(90))
		assert.Equal(t, 8.0, s.PayoffAtExpiration(10))
	})

	t.Run("sampled curve", func(t *testing.T) {
		s, err := NewPreset("long_strangle", params)
		require.NoError(t, err)

		curve := s.BuildCurve(100, eventmodels.CurveRange{Min: 80, Max: 120, Step: 10})

		require.Len(t, curve.Points, 5)
		assert.Equal(t, eventmodels.PayoffPoint{Price: 80, PayoffPerShare: 6}, curve.Points[0])
		assert.Equal(t, eventmodels.PayoffPoint{Price: 100, PayoffPerShare: -4}, curve.Current)
		assert.Equal(t, eventmodels.PayoffPoint{Price: 120, PayoffPerShare: 6}, curve.Points[4])
	})
}
