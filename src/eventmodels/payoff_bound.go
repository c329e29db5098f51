package eventmodels

import (
	"encoding/json"
	"fmt"
)

// PayoffBound is a per-share profit or loss ceiling. Naked calls have no ceiling on one side.
type PayoffBound struct {
	Value     float64
	Unbounded bool
}

func NewPayoffBound(value float64) PayoffBound {
	return PayoffBound{Value: value}
}

func UnboundedPayoff() PayoffBound {
	return PayoffBound{Unbounded: true}
}

func (b PayoffBound) MarshalJSON() ([]byte, error) {
	if b.Unbounded {
		return json.Marshal("unlimited")
	}

	return json.Marshal(b.Value)
}

func (b *PayoffBound) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		if label != "unlimited" {
			return fmt.Errorf("PayoffBound: UnmarshalJSON: unexpected value %q", label)
		}

		*b = UnboundedPayoff()
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("PayoffBound: UnmarshalJSON: %w", err)
	}

	*b = NewPayoffBound(value)
	return nil
}

func (b PayoffBound) String() string {
	if b.Unbounded {
		return "unlimited"
	}

	return fmt.Sprintf("%.2f", b.Value)
}
