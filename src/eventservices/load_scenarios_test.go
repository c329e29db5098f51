package eventservices

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/options-machine/src/eventmodels"
)

const scenariosYAML = `
scenarios:
  - name: protective-put
    description: Insure a stock position
    defaults:
      optionType: put
      position: long
      underlyingPrice: 80
      strikePrice: 100
      daysToExpiry: 45
      volatility: 0.3
      premium: 4
      quantity: 2
    engine:
      referenceExpiryDays: 45
      referenceVolatility: 0.3
    range:
      min: 50
      max: 150
      step: 2
  - name: covered-call-income
    defaults:
      optionType: call
      position: short
      underlyingPrice: 90
      strikePrice: 100
      daysToExpiry: 30
      volatility: 0.2
      premium: 5
      quantity: 3
    engine:
      referenceExpiryDays: 30
      referenceVolatility: 0.25
`

func TestParseScenarios(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		config, err := ParseScenarios([]byte(scenariosYAML))
		require.NoError(t, err)
		require.Len(t, config.Scenarios, 2)

		put, err := config.GetScenario("Protective-Put")
		require.NoError(t, err)
		assert.Equal(t, eventmodels.OptionTypePut, put.Defaults.OptionType)
		assert.Equal(t, 2, put.Defaults.Quantity)
		assert.Equal(t, eventmodels.EngineConfig{ReferenceExpiryDays: 45, ReferenceVolatility: 0.3}, put.Engine)
		assert.Equal(t, eventmodels.CurveRange{Min: 50, Max: 150, Step: 2}, put.Range)

		call, err := config.GetScenario("covered-call-income")
		require.NoError(t, err)
		assert.Equal(t, eventmodels.CurveRange{Min: 50, Max: 150, Step: 1}, call.Range)

		_, err = config.GetScenario("missing")
		assert.Error(t, err)
	})

	t.Run("invalid defaults", func(t *testing.T) {
		_, err := ParseScenarios([]byte(`
scenarios:
  - name: broken
    defaults:
      optionType: call
      position: long
      underlyingPrice: 100
      strikePrice: 100
      premium: 5
      quantity: 0
`))
		assert.Error(t, err)
	})

	t.Run("duplicate names", func(t *testing.T) {
		_, err := ParseScenarios([]byte(`
scenarios:
  - name: a
    defaults: {optionType: call, position: long, underlyingPrice: 1, strikePrice: 1, premium: 1, quantity: 1}
  - name: A
    defaults: {optionType: call, position: long, underlyingPrice: 1, strikePrice: 1, premium: 1, quantity: 1}
`))
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseScenarios([]byte("scenarios: []"))
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseScenarios([]byte("scenarios: [:"))
		assert.Error(t, err)
	})
}

func TestLoadScenarios(t *testing.T) {
	t.Run("built-in", func(t *testing.T) {
		config, err := LoadScenarios("")
		require.NoError(t, err)
		require.Len(t, config.Scenarios, 1)
		assert.Equal(t, eventmodels.DefaultScenarioName, config.Scenarios[0].Name)
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scenarios.yaml")
		require.NoError(t, os.WriteFile(path, []byte(scenariosYAML), 0644))

		config, err := LoadScenarios(path)
		require.NoError(t, err)
		assert.Len(t, config.Scenarios, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadScenarios(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestLoadBundledScenarios(t *testing.T) {
	config, err := LoadScenarios(filepath.Join("..", "..", "config", "scenarios.yaml"))
	require.NoError(t, err)

	first := config.Scenarios[0]
	assert.Equal(t, eventmodels.DefaultScenario(), first)

	for _, name := range []string{"deep-itm-call", "protective-put", "covered-call-writer", "expiry-day"} {
		_, err := config.GetScenario(name)
		assert.NoError(t, err, name)
	}
}
