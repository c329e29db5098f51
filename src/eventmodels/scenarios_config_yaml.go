package eventmodels

import (
	"fmt"
	"strings"
)

type ScenariosConfigYAML struct {
	Scenarios []ScenarioYAML `yaml:"scenarios"`
}

func (c *ScenariosConfigYAML) GetScenario(name string) (*ScenarioYAML, error) {
	name1 := strings.ToLower(name)
	for _, scenario := range c.Scenarios {
		name2 := strings.ToLower(scenario.Name)
		if name1 == name2 {
			s := scenario
			return &s, nil
		}
	}

	return nil, fmt.Errorf("ScenariosConfigYAML: scenario %q not found", name)
}

// Validate fills a missing curve range from the strike before checking each scenario.
func (c *ScenariosConfigYAML) Validate() error {
	if len(c.Scenarios) == 0 {
		return fmt.Errorf("ScenariosConfigYAML: Validate: no scenarios defined")
	}

	seen := map[string]bool{}
	for i := range c.Scenarios {
		s := &c.Scenarios[i]
		if s.Range.IsZero() {
			s.Range = CurveRangeAroundStrike(s.Defaults.StrikePrice)
		}

		if err := s.Validate(); err != nil {
			return err
		}

		key := strings.ToLower(s.Name)
		if seen[key] {
			return fmt.Errorf("ScenariosConfigYAML: Validate: duplicate scenario %q", s.Name)
		}
		seen[key] = true
	}

	return nil
}
