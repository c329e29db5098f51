package payoff

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/jiaming2012/options-machine/src/eventmodels"
)

func payoffs(points []eventmodels.PayoffPoint) []float64 {
	out := make([]float64, len(points))
	for i, pt := range points {
		out[i] = pt.PayoffPerShare
	}

	return out
}

// Stats summarizes a sampled curve. An empty curve returns an error.
func Stats(points []eventmodels.PayoffPoint) (eventmodels.CurveStats, error) {
	data := payoffs(points)

	minPayoff, err := stats.Min(data)
	if err != nil {
		return eventmodels.CurveStats{}, fmt.Errorf("Stats: failed to calculate min: %w", err)
	}

	maxPayoff, err := stats.Max(data)
	if err != nil {
		return eventmodels.CurveStats{}, fmt.Errorf("Stats: failed to calculate max: %w", err)
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return eventmodels.CurveStats{}, fmt.Errorf("Stats: failed to calculate mean: %w", err)
	}

	return eventmodels.CurveStats{
		MinPayoff:   minPayoff,
		MaxPayoff:   maxPayoff,
		MeanPayoff:  mean,
		Breakevens:  Breakevens(points),
		SampleCount: len(points),
	}, nil
}

// Breakevens returns the prices where the payoff crosses zero, interpolated between neighbouring samples.
func Breakevens(points []eventmodels.PayoffPoint) []float64 {
	out := []float64{}

	for i, pt := range points {
		if pt.PayoffPerShare == 0 {
			// a flat run of zeros only counts once
			if i == 0 || points[i-1].PayoffPerShare != 0 {
				out = append(out, pt.Price)
			}
			continue
		}

		if i == 0 {
			continue
		}

		prev := points[i-1]
		if prev.PayoffPerShare == 0 {
			continue
		}

		if (prev.PayoffPerShare < 0) != (pt.PayoffPerShare < 0) {
			ratio := -prev.PayoffPerShare / (pt.PayoffPerShare - prev.PayoffPerShare)
			out = append(out, prev.Price+ratio*(pt.Price-prev.Price))
		}
	}

	return out
}
