package eventmodels

import "fmt"

// OptionPosition is the side of the contract: the buyer pays the premium, the seller receives it.
type OptionPosition string

func (p OptionPosition) Validate() error {
	if p != OptionPositionLong && p != OptionPositionShort {
		return fmt.Errorf("OptionPosition: Validate: invalid position: %s", p)
	}

	return nil
}

const (
	OptionPositionLong  OptionPosition = "long"
	OptionPositionShort OptionPosition = "short"
)
