package eventmodels

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const ParametersUpdatedEventName = "parameters.updated"

// SessionTopic is the per-session channel a view stream listens on.
func SessionTopic(sessionID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", ParametersUpdatedEventName, sessionID)
}

type ParametersUpdatedEvent struct {
	SessionID uuid.UUID    `json:"session_id"`
	Timestamp time.Time    `json:"timestamp"`
	View      *MachineView `json:"view"`
}

// MachineView is everything a presentation layer needs to re-render after an edit.
type MachineView struct {
	SessionID  uuid.UUID                `json:"session_id"`
	Scenario   string                   `json:"scenario"`
	Parameters OptionContractParameters `json:"parameters"`
	Valuation  *ValuationResultDTO      `json:"valuation"`
	Curve      PayoffCurve              `json:"curve"`
	Stats      CurveStats               `json:"stats"`
}
