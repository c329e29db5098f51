package eventmodels

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// PayoffCurve is the per-share payoff at expiry across a price range plus the live point.
type PayoffCurve struct {
	Points  []PayoffPoint `json:"points"`
	Current PayoffPoint   `json:"current"`
}

type CurveStats struct {
	MinPayoff   float64   `json:"min_payoff"`
	MaxPayoff   float64   `json:"max_payoff"`
	MeanPayoff  float64   `json:"mean_payoff"`
	Breakevens  []float64 `json:"breakevens"`
	SampleCount int       `json:"sample_count"`
}

func (c PayoffCurve) String() string {
	display := &strings.Builder{}

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Price at expiry", "Payoff / share", ""})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetColumnSeparator("")

	for _, pt := range c.Points {
		marker := ""
		if pt.Price == c.Current.Price {
			marker = "<- now"
		}

		table.Append([]string{fmt.Sprintf("%.2f", pt.Price), fmt.Sprintf("%.2f", pt.PayoffPerShare), marker})
	}

	table.Render()
	fmt.Fprintf(display, "Current: price=%.2f payoff=%.2f\n", c.Current.Price, c.Current.PayoffPerShare)
	return display.String()
}
