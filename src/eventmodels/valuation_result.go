package eventmodels

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type ValuationResult struct {
	IntrinsicValuePerShare   float64         `json:"intrinsic_value_per_share"`
	TimeValuePerShare        float64         `json:"time_value_per_share"`
	TotalOptionValuePerShare float64         `json:"total_option_value_per_share"`
	SettleNowPayoffTotal     float64         `json:"settle_now_payoff_total"`
	SettleNowProfitLossTotal float64         `json:"settle_now_profit_loss_total"`
	MaxTimeValueAtInception  float64         `json:"max_time_value_at_inception"`
	TimeFactor               float64         `json:"time_factor"`
	VolFactor                float64         `json:"vol_factor"`
	Moneyness                OptionMoneyness `json:"moneyness"`
	BreakevenPrice           float64         `json:"breakeven_price"`
	MaxProfitPerShare        PayoffBound     `json:"max_profit_per_share"`
	MaxLossPerShare          PayoffBound     `json:"max_loss_per_share"`
}

type ValuationResultDTO struct {
	IntrinsicValuePerShare   float64         `json:"intrinsic_value_per_share"`
	TimeValuePerShare        float64         `json:"time_value_per_share"`
	TotalOptionValuePerShare float64         `json:"total_option_value_per_share"`
	SettleNowPayoffTotal     float64         `json:"settle_now_payoff_total"`
	SettleNowProfitLossTotal float64         `json:"settle_now_profit_loss_total"`
	TimeFactor               float64         `json:"time_factor"`
	VolFactor                float64         `json:"vol_factor"`
	Moneyness                OptionMoneyness `json:"moneyness"`
	BreakevenPrice           float64         `json:"breakeven_price"`
	MaxProfitPerShare        PayoffBound     `json:"max_profit_per_share"`
	MaxLossPerShare          PayoffBound     `json:"max_loss_per_share"`
}

func roundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// ToDTO rounds money to cents for display. Factors keep four decimals.
func (r ValuationResult) ToDTO() *ValuationResultDTO {
	maxProfit, maxLoss := r.MaxProfitPerShare, r.MaxLossPerShare
	maxProfit.Value = roundCents(maxProfit.Value)
	maxLoss.Value = roundCents(maxLoss.Value)

	return &ValuationResultDTO{
		IntrinsicValuePerShare:   roundCents(r.IntrinsicValuePerShare),
		TimeValuePerShare:        roundCents(r.TimeValuePerShare),
		TotalOptionValuePerShare: roundCents(r.TotalOptionValuePerShare),
		SettleNowPayoffTotal:     roundCents(r.SettleNowPayoffTotal),
		SettleNowProfitLossTotal: roundCents(r.SettleNowProfitLossTotal),
		TimeFactor:               decimal.NewFromFloat(r.TimeFactor).Round(4).InexactFloat64(),
		VolFactor:                decimal.NewFromFloat(r.VolFactor).Round(4).InexactFloat64(),
		Moneyness:                r.Moneyness,
		BreakevenPrice:           roundCents(r.BreakevenPrice),
		MaxProfitPerShare:        maxProfit,
		MaxLossPerShare:          maxLoss,
	}
}

func (r ValuationResult) String() string {
	display := &strings.Builder{}
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	money := func(v float64) string {
		return fmt.Sprintf("$%s", p.Sprintf("%.2f", v))
	}

	table.Append([]string{"Intrinsic value / share", money(r.IntrinsicValuePerShare)})
	table.Append([]string{"Time value / share", money(r.TimeValuePerShare)})
	table.Append([]string{"Option value / share", money(r.TotalOptionValuePerShare)})
	table.Append([]string{"Settle now P/L (total)", money(r.SettleNowProfitLossTotal)})
	table.Append([]string{"Time factor", fmt.Sprintf("%.4f", r.TimeFactor)})
	table.Append([]string{"Vol factor", fmt.Sprintf("%.4f", r.VolFactor)})
	table.Append([]string{"Moneyness", string(r.Moneyness)})
	table.Append([]string{"Breakeven", money(r.BreakevenPrice)})
	table.Append([]string{"Max profit / share", r.MaxProfitPerShare.String()})
	table.Append([]string{"Max loss / share", r.MaxLossPerShare.String()})

	table.Render()
	return display.String()
}
