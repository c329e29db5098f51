package eventmodels

// OptionMoneyness compares the live underlying price with the strike from the holder's side.
type OptionMoneyness string

const (
	OptionMoneynessIntheMoney    OptionMoneyness = "in_the_money"
	OptionMoneynessOutOfTheMoney OptionMoneyness = "out_of_the_money"
	OptionMoneynessAtTheMoney    OptionMoneyness = "at_the_money"
)
