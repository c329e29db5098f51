package eventmodels

type PayoffPoint struct {
	Price          float64 `json:"price" csv:"underlying_price_at_expiry"`
	PayoffPerShare float64 `json:"payoff_per_share" csv:"payoff_per_share"`
}
