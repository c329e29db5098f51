package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/options-machine/src/cmd/options-machine/run"
	"github.com/jiaming2012/options-machine/src/eventmodels"
	"github.com/jiaming2012/options-machine/src/eventservices"
	"github.com/jiaming2012/options-machine/src/logger"
	"github.com/jiaming2012/options-machine/src/strategy"
	"github.com/jiaming2012/options-machine/src/utils"
)

var rootCmd = &cobra.Command{
	Use:   "options-machine",
	Short: "Value an option contract and chart its payoff at expiry",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := cmd.Flags().GetString("log-level")
		if err != nil {
			return err
		}

		format, err := cmd.Flags().GetString("log-format")
		if err != nil {
			return err
		}

		if err := logger.Setup(os.Stderr, level, logger.Format(format)); err != nil {
			return err
		}

		envFile, err := cmd.Flags().GetString("env-file")
		if err != nil {
			return err
		}

		return utils.InitEnvironmentVariables(envFile)
	},
}

// scenariosFile prefers the flag and falls back to SCENARIOS_FILE.
func scenariosFile(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("scenarios-file")
	if err != nil {
		log.Fatalf("error getting scenarios-file: %v", err)
	}

	if path == "" {
		path = utils.GetEnvOrDefault("SCENARIOS_FILE", "")
	}

	return path
}

func loadScenario(cmd *cobra.Command) *eventmodels.ScenarioYAML {
	name, err := cmd.Flags().GetString("scenario")
	if err != nil {
		log.Fatalf("error getting scenario: %v", err)
	}

	scenario, err := run.LoadScenario(scenariosFile(cmd), name)
	if err != nil {
		log.Fatalf("failed to load scenario: %v", err)
	}

	return scenario
}

func addContractFlags(cmd *cobra.Command) {
	cmd.Flags().String("scenario", "", "Scenario supplying the defaults (first scenario when empty)")
	cmd.Flags().String("type", "", "Option type: call or put")
	cmd.Flags().String("position", "", "Position: long or short")
	cmd.Flags().Float64("underlying", 0, "Underlying price")
	cmd.Flags().Float64("strike", 0, "Strike price")
	cmd.Flags().Float64("days", 0, "Days to expiry")
	cmd.Flags().Float64("volatility", 0, "Volatility, e.g. 0.25")
	cmd.Flags().Float64("premium", 0, "Premium per share")
	cmd.Flags().Int("quantity", 0, "Number of contracts")
}

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("min", 0, "Lowest price at expiry")
	cmd.Flags().Float64("max", 0, "Highest price at expiry")
	cmd.Flags().Float64("step", 0, "Price step")
}

// overrideFloat replaces dst only when the flag was set on the command line.
func overrideFloat(cmd *cobra.Command, name string, dst *float64) {
	if !cmd.Flags().Changed(name) {
		return
	}

	v, err := cmd.Flags().GetFloat64(name)
	if err != nil {
		log.Fatalf("error getting %s: %v", name, err)
	}

	*dst = v
}

func contractParams(cmd *cobra.Command, scenario *eventmodels.ScenarioYAML) eventmodels.OptionContractParameters {
	params := scenario.Defaults

	if cmd.Flags().Changed("type") {
		v, _ := cmd.Flags().GetString("type")
		params.OptionType = eventmodels.OptionType(v)
	}

	if cmd.Flags().Changed("position") {
		v, _ := cmd.Flags().GetString("position")
		params.Position = eventmodels.OptionPosition(v)
	}

	overrideFloat(cmd, "underlying", &params.UnderlyingPrice)
	overrideFloat(cmd, "strike", &params.StrikePrice)
	overrideFloat(cmd, "days", &params.DaysToExpiry)
	overrideFloat(cmd, "volatility", &params.Volatility)
	overrideFloat(cmd, "premium", &params.Premium)

	if cmd.Flags().Changed("quantity") {
		v, _ := cmd.Flags().GetInt("quantity")
		params.Quantity = v
	}

	return params
}

func curveRange(cmd *cobra.Command, defaultRange eventmodels.CurveRange) eventmodels.CurveRange {
	r := defaultRange
	overrideFloat(cmd, "min", &r.Min)
	overrideFloat(cmd, "max", &r.Max)
	overrideFloat(cmd, "step", &r.Step)
	return r
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the options machine HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		addr, err := cmd.Flags().GetString("addr")
		if err != nil {
			log.Fatalf("error getting addr: %v", err)
		}

		telemetry, err := cmd.Flags().GetBool("telemetry")
		if err != nil {
			log.Fatalf("error getting telemetry: %v", err)
		}

		scenarios, err := eventservices.LoadScenarios(scenariosFile(cmd))
		if err != nil {
			log.Fatalf("failed to load scenarios: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := run.Serve(ctx, run.ServeArgs{
			Addr:      addr,
			Scenarios: scenarios,
			Telemetry: telemetry,
		}); err != nil {
			log.Fatalf("server error: %v", err)
		}
	},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Value a single option contract",
	Run: func(cmd *cobra.Command, args []string) {
		scenario := loadScenario(cmd)
		params := contractParams(cmd, scenario)

		result, err := run.Evaluate(scenario, params)
		if err != nil {
			log.Fatalf("failed to evaluate: %v", err)
		}

		fmt.Println(params)
		fmt.Println(result)
	},
}

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the payoff at expiry across a price range",
	Run: func(cmd *cobra.Command, args []string) {
		scenario := loadScenario(cmd)
		params := contractParams(cmd, scenario)
		r := curveRange(cmd, scenario.Range)

		curve, stats, err := run.Curve(params, r)
		if err != nil {
			log.Fatalf("failed to build curve: %v", err)
		}

		asCSV, err := cmd.Flags().GetBool("csv")
		if err != nil {
			log.Fatalf("error getting csv: %v", err)
		}

		if asCSV {
			if err := run.WriteCurveCSV(curve.Points, os.Stdout); err != nil {
				log.Fatalf("failed to write csv: %v", err)
			}
			return
		}

		fmt.Println(params)
		fmt.Print(curve)
		run.WriteStats(stats, os.Stdout)
	},
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the available scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		config, err := eventservices.LoadScenarios(scenariosFile(cmd))
		if err != nil {
			log.Fatalf("failed to load scenarios: %v", err)
		}

		run.WriteScenarios(config, os.Stdout)
	},
}

var strategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "Print the combined payoff of a multi-leg preset",
	Run: func(cmd *cobra.Command, args []string) {
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			log.Fatalf("error getting name: %v", err)
		}

		var preset strategy.PresetParams
		if preset.Strike, err = cmd.Flags().GetFloat64("strike"); err != nil {
			log.Fatalf("error getting strike: %v", err)
		}

		if preset.Width, err = cmd.Flags().GetFloat64("width"); err != nil {
			log.Fatalf("error getting width: %v", err)
		}

		if preset.Premium, err = cmd.Flags().GetFloat64("premium"); err != nil {
			log.Fatalf("error getting premium: %v", err)
		}

		var underlying *float64
		if cmd.Flags().Changed("underlying") {
			v, _ := cmd.Flags().GetFloat64("underlying")
			underlying = &v
		}

		r := curveRange(cmd, eventmodels.CurveRange{})

		strat, curve, err := run.StrategyCurve(name, preset, underlying, r)
		if err != nil {
			log.Fatalf("failed to build strategy: %v", err)
		}

		run.WriteStrategy(strat, os.Stdout)
		fmt.Print(curve)
	},
}

func main() {
	rootCmd.PersistentFlags().String("scenarios-file", "", "Path to the scenarios YAML file")
	rootCmd.PersistentFlags().String("env-file", utils.DEV_ENV_FILENAME, "Path to a .env file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level")
	rootCmd.PersistentFlags().String("log-format", string(logger.FormatText), "Log format: text or json")

	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().Bool("telemetry", false, "Export traces and metrics over OTLP")

	addContractFlags(evaluateCmd)

	addContractFlags(curveCmd)
	addRangeFlags(curveCmd)
	curveCmd.Flags().Bool("csv", false, "Write the curve as CSV")

	strategyCmd.Flags().String("name", "", fmt.Sprintf("Preset name: %v", strategy.PresetNames()))
	strategyCmd.Flags().Float64("strike", 100, "Center strike")
	strategyCmd.Flags().Float64("width", 10, "Distance between strikes")
	strategyCmd.Flags().Float64("premium", 5, "Premium of the center leg")
	strategyCmd.Flags().Float64("underlying", 0, "Current underlying price (defaults to the strike)")
	addRangeFlags(strategyCmd)
	strategyCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(serveCmd, evaluateCmd, curveCmd, scenariosCmd, strategyCmd)

	cobra.CheckErr(rootCmd.Execute())
}
