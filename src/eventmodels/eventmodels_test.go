package eventmodels

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() OptionContractParameters {
	return DefaultScenario().Defaults
}

func TestOptionContractParametersValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p := validParams()
		assert.NoError(t, p.Validate())
	})

	t.Run("zero values allowed", func(t *testing.T) {
		p := validParams()
		p.UnderlyingPrice = 0
		p.StrikePrice = 0
		p.DaysToExpiry = 0
		p.Volatility = 0
		p.Premium = 0
		assert.NoError(t, p.Validate())
	})

	cases := map[string]func(p *OptionContractParameters){
		"option type": func(p *OptionContractParameters) { p.OptionType = "straddle" },
		"position":    func(p *OptionContractParameters) { p.Position = "flat" },
		"underlying":  func(p *OptionContractParameters) { p.UnderlyingPrice = -1 },
		"strike":      func(p *OptionContractParameters) { p.StrikePrice = -1 },
		"days":        func(p *OptionContractParameters) { p.DaysToExpiry = -1 },
		"volatility":  func(p *OptionContractParameters) { p.Volatility = -0.1 },
		"premium":     func(p *OptionContractParameters) { p.Premium = -1 },
		"quantity":    func(p *OptionContractParameters) { p.Quantity = 0 },
		"nan premium": func(p *OptionContractParameters) { p.Premium = math.NaN() },
		"inf strike":  func(p *OptionContractParameters) { p.StrikePrice = math.Inf(1) },
		"nan days":    func(p *OptionContractParameters) { p.DaysToExpiry = math.NaN() },
		"inf vol":     func(p *OptionContractParameters) { p.Volatility = math.Inf(1) },
		"-inf spot":   func(p *OptionContractParameters) { p.UnderlyingPrice = math.Inf(-1) },
	}

	for name, mutate := range cases {
		t.Run("invalid "+name, func(t *testing.T) {
			p := validParams()
			mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestCurveRange(t *testing.T) {
	t.Run("validate", func(t *testing.T) {
		assert.NoError(t, CurveRange{Min: 50, Max: 150, Step: 1}.Validate())
		assert.NoError(t, CurveRange{Min: 100, Max: 100, Step: 1}.Validate())
		assert.Error(t, CurveRange{Min: 150, Max: 50, Step: 1}.Validate())
		assert.Error(t, CurveRange{Min: 50, Max: 150, Step: 0}.Validate())
		assert.Error(t, CurveRange{Min: -1, Max: 150, Step: 1}.Validate())
	})

	t.Run("non-finite bounds", func(t *testing.T) {
		assert.Error(t, CurveRange{Min: 0, Max: math.Inf(1), Step: 1}.Validate())
		assert.Error(t, CurveRange{Min: math.NaN(), Max: 150, Step: 1}.Validate())
		assert.Error(t, CurveRange{Min: 0, Max: 150, Step: math.NaN()}.Validate())
		assert.Error(t, CurveRange{Min: 0, Max: 150, Step: math.Inf(1)}.Validate())
	})

	t.Run("sample limit", func(t *testing.T) {
		assert.NoError(t, CurveRange{Min: 0, Max: MaxCurveSamples - 1, Step: 1}.Validate())
		assert.Error(t, CurveRange{Min: 0, Max: MaxCurveSamples, Step: 1}.Validate())
		assert.Error(t, CurveRange{Min: 0, Max: 1e9, Step: 1}.Validate())
		assert.Error(t, CurveRange{Min: 0, Max: 1e12, Step: 1e-6}.Validate())
	})

	t.Run("around strike", func(t *testing.T) {
		assert.Equal(t, CurveRange{Min: 50, Max: 150, Step: 1}, CurveRangeAroundStrike(100))
		assert.Equal(t, CurveRange{Min: 0, Max: 100, Step: 1}, CurveRangeAroundStrike(0))
	})

	t.Run("is zero", func(t *testing.T) {
		assert.True(t, CurveRange{}.IsZero())
		assert.False(t, CurveRange{Step: 1}.IsZero())
	})
}

func TestEngineConfigValidate(t *testing.T) {
	assert.NoError(t, EngineConfig{}.Validate())
	assert.NoError(t, EngineConfig{ReferenceExpiryDays: 30, ReferenceVolatility: 0.25}.Validate())
	assert.Error(t, EngineConfig{ReferenceExpiryDays: -1}.Validate())
	assert.Error(t, EngineConfig{ReferenceVolatility: -1}.Validate())
	assert.Error(t, EngineConfig{ReferenceExpiryDays: math.NaN()}.Validate())
	assert.Error(t, EngineConfig{ReferenceVolatility: math.Inf(1)}.Validate())
}

func TestPayoffBoundJSON(t *testing.T) {
	data, err := json.Marshal([]PayoffBound{NewPayoffBound(4.5), UnboundedPayoff()})
	require.NoError(t, err)
	assert.Equal(t, `[4.5,"unlimited"]`, string(data))

	var bounds []PayoffBound
	require.NoError(t, json.Unmarshal(data, &bounds))
	assert.Equal(t, []PayoffBound{NewPayoffBound(4.5), UnboundedPayoff()}, bounds)

	var b PayoffBound
	assert.Error(t, json.Unmarshal([]byte(`"lots"`), &b))

	assert.Equal(t, "4.50", NewPayoffBound(4.5).String())
	assert.Equal(t, "unlimited", UnboundedPayoff().String())
}

func TestValuationResult(t *testing.T) {
	result := ValuationResult{
		IntrinsicValuePerShare:   1234.5,
		TimeValuePerShare:        1.23456,
		TotalOptionValuePerShare: 1235.73456,
		SettleNowProfitLossTotal: -5,
		TimeFactor:               0.333333,
		VolFactor:                1,
		Moneyness:                OptionMoneynessIntheMoney,
		MaxProfitPerShare:        UnboundedPayoff(),
		MaxLossPerShare:          NewPayoffBound(5.004),
	}

	t.Run("dto rounds", func(t *testing.T) {
		dto := result.ToDTO()
		assert.Equal(t, 1.23, dto.TimeValuePerShare)
		assert.Equal(t, 1235.73, dto.TotalOptionValuePerShare)
		assert.Equal(t, 0.3333, dto.TimeFactor)
		assert.Equal(t, 5.0, dto.MaxLossPerShare.Value)
		assert.True(t, dto.MaxProfitPerShare.Unbounded)
	})

	t.Run("table", func(t *testing.T) {
		out := result.String()
		assert.Contains(t, out, "$1,234.50")
		assert.Contains(t, out, "unlimited")
		assert.Contains(t, out, string(OptionMoneynessIntheMoney))
	})
}

func TestScenariosConfigYAML(t *testing.T) {
	t.Run("fills missing range", func(t *testing.T) {
		s := DefaultScenario()
		s.Range = CurveRange{}
		s.Defaults.StrikePrice = 40

		config := ScenariosConfigYAML{Scenarios: []ScenarioYAML{s}}
		require.NoError(t, config.Validate())
		assert.Equal(t, CurveRange{Min: 20, Max: 60, Step: 0.4}, config.Scenarios[0].Range)
	})

	t.Run("missing name", func(t *testing.T) {
		s := DefaultScenario()
		s.Name = ""
		config := ScenariosConfigYAML{Scenarios: []ScenarioYAML{s}}
		assert.Error(t, config.Validate())
	})

	t.Run("lookup ignores case", func(t *testing.T) {
		config := ScenariosConfigYAML{Scenarios: []ScenarioYAML{DefaultScenario()}}
		s, err := config.GetScenario("Options-Machine")
		require.NoError(t, err)
		assert.Equal(t, DefaultScenarioName, s.Name)
	})
}

func TestSessionTopic(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	assert.Equal(t, "parameters.updated:6ba7b810-9dad-11d1-80b4-00c04fd430c8", SessionTopic(id))
}

func TestWebError(t *testing.T) {
	cause := assert.AnError
	err := NewWebError(404, "not found", cause)
	assert.Equal(t, cause.Error(), err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "not found", NewWebError(400, "not found", nil).Error())
}
