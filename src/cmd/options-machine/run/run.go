package run

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/olekukonko/tablewriter"

	"github.com/jiaming2012/options-machine/src/eventmodels"
	"github.com/jiaming2012/options-machine/src/eventservices"
	"github.com/jiaming2012/options-machine/src/payoff"
	"github.com/jiaming2012/options-machine/src/strategy"
	"github.com/jiaming2012/options-machine/src/valuation"
)

// LoadScenario returns the named scenario from the scenarios file, or the first one when name is empty.
func LoadScenario(scenariosFile, name string) (*eventmodels.ScenarioYAML, error) {
	config, err := eventservices.LoadScenarios(scenariosFile)
	if err != nil {
		return nil, fmt.Errorf("LoadScenario: %w", err)
	}

	if name == "" {
		s := config.Scenarios[0]
		return &s, nil
	}

	scenario, err := config.GetScenario(name)
	if err != nil {
		return nil, fmt.Errorf("LoadScenario: %w", err)
	}

	return scenario, nil
}

func Evaluate(scenario *eventmodels.ScenarioYAML, params eventmodels.OptionContractParameters) (eventmodels.ValuationResult, error) {
	if err := params.Validate(); err != nil {
		return eventmodels.ValuationResult{}, fmt.Errorf("Evaluate: %w", err)
	}

	return valuation.Evaluate(params, scenario.Engine), nil
}

func Curve(params eventmodels.OptionContractParameters, r eventmodels.CurveRange) (eventmodels.PayoffCurve, eventmodels.CurveStats, error) {
	if err := params.Validate(); err != nil {
		return eventmodels.PayoffCurve{}, eventmodels.CurveStats{}, fmt.Errorf("Curve: %w", err)
	}

	if err := r.Validate(); err != nil {
		return eventmodels.PayoffCurve{}, eventmodels.CurveStats{}, fmt.Errorf("Curve: %w", err)
	}

	curve := payoff.BuildCurve(params, r)

	stats, err := payoff.Stats(curve.Points)
	if err != nil {
		return eventmodels.PayoffCurve{}, eventmodels.CurveStats{}, fmt.Errorf("Curve: %w", err)
	}

	return curve, stats, nil
}

// StrategyCurve builds a preset. A nil underlying places the current point at the strike.
func StrategyCurve(name string, preset strategy.PresetParams, underlying *float64, r eventmodels.CurveRange) (*strategy.Strategy, eventmodels.PayoffCurve, error) {
	if r.IsZero() {
		r = eventmodels.CurveRangeAroundStrike(preset.Strike)
	}

	if err := r.Validate(); err != nil {
		return nil, eventmodels.PayoffCurve{}, fmt.Errorf("StrategyCurve: %w", err)
	}

	strat, err := strategy.NewPreset(name, preset)
	if err != nil {
		return nil, eventmodels.PayoffCurve{}, fmt.Errorf("StrategyCurve: %w", err)
	}

	price := preset.Strike
	if underlying != nil {
		price = *underlying
	}

	return strat, strat.BuildCurve(price, r), nil
}

func WriteCurveCSV(points []eventmodels.PayoffPoint, w io.Writer) error {
	if err := gocsv.Marshal(&points, w); err != nil {
		return fmt.Errorf("WriteCurveCSV: %w", err)
	}

	return nil
}

func WriteStats(stats eventmodels.CurveStats, w io.Writer) {
	breakevens := make([]string, len(stats.Breakevens))
	for i, b := range stats.Breakevens {
		breakevens[i] = fmt.Sprintf("%.2f", b)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Samples", "Min", "Max", "Mean", "Breakevens"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.SampleCount),
		fmt.Sprintf("%.2f", stats.MinPayoff),
		fmt.Sprintf("%.2f", stats.MaxPayoff),
		fmt.Sprintf("%.2f", stats.MeanPayoff),
		strings.Join(breakevens, ", "),
	})
	table.Render()
}

func WriteScenarios(config *eventmodels.ScenariosConfigYAML, w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Contract", "Range", "Description"})

	for _, s := range config.Scenarios {
		table.Append([]string{
			s.Name,
			s.Defaults.String(),
			fmt.Sprintf("%.2f-%.2f step %.2f", s.Range.Min, s.Range.Max, s.Range.Step),
			s.Description,
		})
	}

	table.Render()
}

func WriteStrategy(strat *strategy.Strategy, w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Leg", "Type", "Position", "Strike", "Premium", "Qty"})

	for i, leg := range strat.Legs {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			string(leg.OptionType),
			string(leg.Position),
			fmt.Sprintf("%.2f", leg.StrikePrice),
			fmt.Sprintf("%.2f", leg.Premium),
			fmt.Sprintf("%d", leg.Quantity),
		})
	}

	table.SetFooter([]string{"", "", "", "", "Net premium", fmt.Sprintf("%.2f", strat.NetPremium())})
	table.Render()
}
