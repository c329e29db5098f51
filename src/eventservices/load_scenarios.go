package eventservices

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jiaming2012/options-machine/src/eventmodels"
)

func ParseScenarios(data []byte) (*eventmodels.ScenariosConfigYAML, error) {
	var config eventmodels.ScenariosConfigYAML
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("ParseScenarios: failed to unmarshal: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("ParseScenarios: %w", err)
	}

	return &config, nil
}

// LoadScenarios reads the scenarios file. An empty path yields only the built-in scenario.
func LoadScenarios(path string) (*eventmodels.ScenariosConfigYAML, error) {
	if path == "" {
		return &eventmodels.ScenariosConfigYAML{
			Scenarios: []eventmodels.ScenarioYAML{eventmodels.DefaultScenario()},
		}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadScenarios: failed to read %s: %w", path, err)
	}

	return ParseScenarios(data)
}
