package strategy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jiaming2012/options-machine/src/eventmodels"
)

// PresetParams describes a preset around a center strike. Width separates the strikes of spreads and strangles.
type PresetParams struct {
	Strike  float64 `schema:"strike"`
	Width   float64 `schema:"width"`
	Premium float64 `schema:"premium"`
}

var ErrUnknownPreset = errors.New("unknown strategy")

type presetBuilder func(p PresetParams) []Leg

func leg(optionType eventmodels.OptionType, position eventmodels.OptionPosition, strike, premium float64) Leg {
	return Leg{
		OptionType:  optionType,
		Position:    position,
		StrikePrice: strike,
		Premium:     premium,
		Quantity:    1,
	}
}

var presets = map[string]presetBuilder{
	"long_call": func(p PresetParams) []Leg {
		return []Leg{leg(eventmodels.OptionTypeCall, eventmodels.OptionPositionLong, p.Strike, p.Premium)}
	},
	"long_put": func(p PresetParams) []Leg {
		return []Leg{leg(eventmodels.OptionTypePut, eventmodels.OptionPositionLong, p.Strike, p.Premium)}
	},
	// the farther leg is priced at half the premium
	"bull_call_spread": func(p PresetParams) []Leg {
		return []Leg{
			leg(eventmodels.OptionTypeCall, eventmodels.OptionPositionLong, p.Strike, p.Premium),
			leg(eventmodels.OptionTypeCall, eventmodels.OptionPositionShort, p.Strike+p.Width, p.Premium/2),
		}
	},
	"bear_put_spread": func(p PresetParams) []Leg {
		return []Leg{
			leg(eventmodels.OptionTypePut, eventmodels.OptionPositionLong, p.Strike, p.Premium),
			leg(eventmodels.OptionTypePut, eventmodels.OptionPositionShort, p.Strike-p.Width, p.Premium/2),
		}
	},
	"long_straddle": func(p PresetParams) []Leg {
		return []Leg{
			leg(eventmodels.OptionTypeCall, eventmodels.OptionPositionLong, p.Strike, p.Premium),
			leg(eventmodels.OptionTypePut, eventmodels.OptionPositionLong, p.Strike, p.Premium),
		}
	},
	"short_straddle": func(p PresetParams) []Leg {
		return []Leg{
			leg(eventmodels.OptionTypeCall, eventmodels.OptionPositionShort, p.Strike, p.Premium),
			leg(eventmodels.OptionTypePut, eventmodels.OptionPositionShort, p.Strike, p.Premium),
		}
	},
	"long_strangle": func(p PresetParams) []Leg {
		return []Leg{
			leg(eventmodels.OptionTypeCall, eventmodels.OptionPositionLong, p.Strike+p.Width, p.Premium/2),
			leg(eventmodels.OptionTypePut, eventmodels.OptionPositionLong, p.Strike-p.Width, p.Premium/2),
		}
	},
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func NewPreset(name string, p PresetParams) (*Strategy, error) {
	build, found := presets[name]
	if !found {
		return nil, fmt.Errorf("NewPreset: %w %q", ErrUnknownPreset, name)
	}

	s := &Strategy{
		Name: name,
		Legs: build(p),
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("NewPreset: %w", err)
	}

	return s, nil
}
