package eventmodels

import "fmt"

// ScenarioYAML is one teaching scenario: the starting snapshot plus the constants the engine scales against.
type ScenarioYAML struct {
	Name        string                   `yaml:"name" json:"name"`
	Description string                   `yaml:"description" json:"description"`
	Defaults    OptionContractParameters `yaml:"defaults" json:"defaults"`
	Engine      EngineConfig             `yaml:"engine" json:"engine"`
	Range       CurveRange               `yaml:"range" json:"range"`
}

func (s *ScenarioYAML) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("ScenarioYAML: Validate: missing name")
	}

	if err := s.Defaults.Validate(); err != nil {
		return fmt.Errorf("ScenarioYAML: Validate: %s: invalid defaults: %w", s.Name, err)
	}

	if err := s.Engine.Validate(); err != nil {
		return fmt.Errorf("ScenarioYAML: Validate: %s: %w", s.Name, err)
	}

	if err := s.Range.Validate(); err != nil {
		return fmt.Errorf("ScenarioYAML: Validate: %s: %w", s.Name, err)
	}

	return nil
}

const DefaultScenarioName = "options-machine"

// DefaultScenario is the at-the-money long call the lesson sequence ends on.
func DefaultScenario() ScenarioYAML {
	return ScenarioYAML{
		Name:        DefaultScenarioName,
		Description: "At-the-money long call, one month to expiry",
		Defaults: OptionContractParameters{
			OptionType:      OptionTypeCall,
			Position:        OptionPositionLong,
			UnderlyingPrice: 100,
			StrikePrice:     100,
			DaysToExpiry:    30,
			Volatility:      0.25,
			Premium:         5,
			Quantity:        1,
		},
		Engine: EngineConfig{
			ReferenceExpiryDays: 30,
			ReferenceVolatility: 0.25,
		},
		Range: CurveRange{
			Min:  50,
			Max:  150,
			Step: 1,
		},
	}
}
