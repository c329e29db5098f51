package machine

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/options-machine/src/eventmodels"
	"github.com/jiaming2012/options-machine/src/eventpubsub"
	"github.com/jiaming2012/options-machine/src/payoff"
	"github.com/jiaming2012/options-machine/src/valuation"
)

// Machine holds one learner's parameter snapshot. Every accepted edit replaces the snapshot and
// recomputes the view from scratch; nothing else is remembered between edits.
type Machine struct {
	// publishMu serializes whole edits so events leave in the order they were applied
	publishMu sync.Mutex
	mu        sync.Mutex
	id        uuid.UUID
	scenario  eventmodels.ScenarioYAML
	params    eventmodels.OptionContractParameters
	view      *eventmodels.MachineView
	bus       *eventpubsub.Bus
}

func New(id uuid.UUID, scenario eventmodels.ScenarioYAML, bus *eventpubsub.Bus) (*Machine, error) {
	if scenario.Range.IsZero() {
		scenario.Range = eventmodels.CurveRangeAroundStrike(scenario.Defaults.StrikePrice)
	}

	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("machine.New: %w", err)
	}

	m := &Machine{
		id:       id,
		scenario: scenario,
		params:   scenario.Defaults,
		bus:      bus,
	}

	view, err := m.compute(m.params)
	if err != nil {
		return nil, fmt.Errorf("machine.New: %w", err)
	}

	m.view = view
	return m, nil
}

func (m *Machine) ID() uuid.UUID {
	return m.id
}

func (m *Machine) Scenario() eventmodels.ScenarioYAML {
	return m.scenario
}

func (m *Machine) Parameters() eventmodels.OptionContractParameters {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.params
}

func (m *Machine) View() *eventmodels.MachineView {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.view
}

// Update validates the new snapshot before touching any state. A rejected edit leaves the previous view in place.
func (m *Machine) Update(params eventmodels.OptionContractParameters) (*eventmodels.MachineView, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("Machine: Update: %w", err)
	}

	m.publishMu.Lock()
	defer m.publishMu.Unlock()

	view, err := m.compute(params)
	if err != nil {
		return nil, fmt.Errorf("Machine: Update: %w", err)
	}

	m.mu.Lock()
	m.params = params
	m.view = view
	m.mu.Unlock()

	log.WithField("session", m.id).Debugf("parameters updated: %v", params)

	m.publish(view)
	return view, nil
}

// Reset returns to the scenario's starting snapshot.
func (m *Machine) Reset() (*eventmodels.MachineView, error) {
	return m.Update(m.scenario.Defaults)
}

func (m *Machine) compute(params eventmodels.OptionContractParameters) (*eventmodels.MachineView, error) {
	result := valuation.Evaluate(params, m.scenario.Engine)
	curve := payoff.BuildCurve(params, m.scenario.Range)

	curveStats, err := payoff.Stats(curve.Points)
	if err != nil {
		return nil, fmt.Errorf("compute: %w", err)
	}

	return &eventmodels.MachineView{
		SessionID:  m.id,
		Scenario:   m.scenario.Name,
		Parameters: params,
		Valuation:  result.ToDTO(),
		Curve:      curve,
		Stats:      curveStats,
	}, nil
}

func (m *Machine) publish(view *eventmodels.MachineView) {
	if m.bus == nil {
		return
	}

	event := eventmodels.ParametersUpdatedEvent{
		SessionID: m.id,
		Timestamp: time.Now().UTC(),
		View:      view,
	}

	m.bus.Publish(eventmodels.ParametersUpdatedEventName, event)
	m.bus.Publish(eventmodels.SessionTopic(m.id), event)
}
