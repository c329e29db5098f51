package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jiaming2012/options-machine/src/eventmodels"
	"github.com/jiaming2012/options-machine/src/eventpubsub"
	"github.com/jiaming2012/options-machine/src/machine"
	"github.com/jiaming2012/options-machine/src/payoff"
	"github.com/jiaming2012/options-machine/src/strategy"
	"github.com/jiaming2012/options-machine/src/utils"
	"github.com/jiaming2012/options-machine/src/valuation"
)

type session struct {
	machine *machine.Machine
	hub     *hub
}

// Handler serves the stateless calculators and the per-learner sessions.
type Handler struct {
	scenarios *eventmodels.ScenariosConfigYAML
	bus       *eventpubsub.Bus
	decoder   *schema.Decoder
	upgrader  websocket.Upgrader

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

func NewHandler(scenarios *eventmodels.ScenariosConfigYAML, bus *eventpubsub.Bus) *Handler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Handler{
		scenarios: scenarios,
		bus:       bus,
		decoder:   decoder,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sessions: make(map[uuid.UUID]*session),
	}
}

type CreateSessionRequest struct {
	Scenario string `json:"scenario"`
}

type CreateSessionResponse struct {
	SessionID uuid.UUID                `json:"session_id"`
	View      *eventmodels.MachineView `json:"view"`
}

type EvaluateResponse struct {
	Parameters eventmodels.OptionContractParameters `json:"parameters"`
	Valuation  *eventmodels.ValuationResultDTO      `json:"valuation"`
}

type CurveResponse struct {
	Curve eventmodels.PayoffCurve `json:"curve"`
	Stats eventmodels.CurveStats  `json:"stats"`
	Chart *ChartResponse          `json:"chart,omitempty"`
}

// ChartResponse is the curve projected onto a canvas, present when width and height are requested.
type ChartResponse struct {
	Scale    payoff.ChartScale    `json:"scale"`
	Points   []payoff.CanvasPoint `json:"points"`
	Current  payoff.CanvasPoint   `json:"current"`
	ZeroLine float64              `json:"zero_line"`
}

type chartQuery struct {
	Width  float64  `schema:"width"`
	Height float64  `schema:"height"`
	Margin *float64 `schema:"margin"`
}

func newChartResponse(curve eventmodels.PayoffCurve, q chartQuery) *ChartResponse {
	margin := payoff.DefaultChartMargin
	if q.Margin != nil {
		margin = *q.Margin
	}

	scale := payoff.NewChartScale(curve, q.Width, q.Height, margin)

	return &ChartResponse{
		Scale:    scale,
		Points:   scale.Project(curve.Points),
		Current:  scale.Project([]eventmodels.PayoffPoint{curve.Current})[0],
		ZeroLine: scale.ZeroLine(),
	}
}

type StrategyCurveResponse struct {
	Strategy   *strategy.Strategy      `json:"strategy"`
	NetPremium float64                 `json:"net_premium"`
	Curve      eventmodels.PayoffCurve `json:"curve"`
	Stats      eventmodels.CurveStats  `json:"stats"`
}

type strategyQuery struct {
	Underlying *float64 `schema:"underlying"`
}

// scenario resolves a name, with "" meaning the first configured scenario.
func (h *Handler) scenario(name string) (*eventmodels.ScenarioYAML, error) {
	if name == "" {
		if len(h.scenarios.Scenarios) == 0 {
			return nil, eventmodels.NewWebError(500, "no scenarios configured", fmt.Errorf("no scenarios configured"))
		}

		s := h.scenarios.Scenarios[0]
		return &s, nil
	}

	s, err := h.scenarios.GetScenario(name)
	if err != nil {
		return nil, eventmodels.NewWebError(404, "scenario not found", err)
	}

	return s, nil
}

func (h *Handler) getSession(r *http.Request) (*session, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return nil, eventmodels.NewWebError(400, "invalid session id", err)
	}

	trace.SpanFromContext(r.Context()).SetAttributes(attribute.String("session.id", id.String()))

	h.mu.RLock()
	defer h.mu.RUnlock()

	s, found := h.sessions[id]
	if !found {
		return nil, eventmodels.NewWebError(404, "session not found", fmt.Errorf("session %s not found", id))
	}

	return s, nil
}

// decodeQuery overlays the query string onto the scenario's defaults.
func (h *Handler) decodeQuery(r *http.Request) (*eventmodels.ScenarioYAML, eventmodels.OptionContractParameters, eventmodels.CurveRange, error) {
	var params eventmodels.OptionContractParameters
	var curveRange eventmodels.CurveRange

	if err := r.ParseForm(); err != nil {
		return nil, params, curveRange, eventmodels.NewWebError(400, "failed to parse form", err)
	}

	scenario, err := h.scenario(r.Form.Get("scenario"))
	if err != nil {
		return nil, params, curveRange, err
	}

	params = scenario.Defaults
	if err := h.decoder.Decode(&params, r.Form); err != nil {
		return nil, params, curveRange, eventmodels.NewWebError(400, "failed to decode parameters", err)
	}

	if err := params.Validate(); err != nil {
		return nil, params, curveRange, eventmodels.NewWebError(400, "invalid parameters", err)
	}

	curveRange = scenario.Range
	if err := h.decoder.Decode(&curveRange, r.Form); err != nil {
		return nil, params, curveRange, eventmodels.NewWebError(400, "failed to decode range", err)
	}

	if err := curveRange.Validate(); err != nil {
		return nil, params, curveRange, eventmodels.NewWebError(400, "invalid range", err)
	}

	return scenario, params, curveRange, nil
}

func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	scenario, params, _, err := h.decodeQuery(r)
	if err != nil {
		setWebErrorResponse("handleEvaluate: failed to decode request", err, w)
		return
	}

	result := valuation.Evaluate(params, scenario.Engine)

	response := EvaluateResponse{
		Parameters: params,
		Valuation:  result.ToDTO(),
	}

	if err := setResponse(response, w); err != nil {
		setErrorResponse("handleEvaluate: failed to set response", 500, err, w)
		return
	}
}

func (h *Handler) handleCurve(w http.ResponseWriter, r *http.Request) {
	_, params, curveRange, err := h.decodeQuery(r)
	if err != nil {
		setWebErrorResponse("handleCurve: failed to decode request", err, w)
		return
	}

	curve := payoff.BuildCurve(params, curveRange)

	if r.Form.Get("format") == "csv" {
		if err := setCSVResponse(curve.Points, w); err != nil {
			log.Errorf("handleCurve: failed to write csv: %v", err)
		}
		return
	}

	stats, err := payoff.Stats(curve.Points)
	if err != nil {
		setErrorResponse("handleCurve: failed to compute stats", 500, err, w)
		return
	}

	var chart chartQuery
	if err := h.decoder.Decode(&chart, r.Form); err != nil {
		setErrorResponse("handleCurve: failed to decode chart size", 400, err, w)
		return
	}

	response := CurveResponse{Curve: curve, Stats: stats}
	if chart.Width > 0 && chart.Height > 0 {
		response.Chart = newChartResponse(curve, chart)
	}

	if err := setResponse(response, w); err != nil {
		setErrorResponse("handleCurve: failed to set response", 500, err, w)
		return
	}
}

func setCSVResponse(points []eventmodels.PayoffPoint, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "text/csv")
	w.WriteHeader(200)

	if err := gocsv.Marshal(&points, w); err != nil {
		return fmt.Errorf("setCSVResponse: %w", err)
	}

	return nil
}

func (h *Handler) handleScenarios(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"scenarios": h.scenarios.Scenarios,
	}

	if err := setResponse(response, w); err != nil {
		setErrorResponse("handleScenarios: failed to set response", 500, err, w)
		return
	}
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		setErrorResponse("handleCreateSession: failed to decode request", 400, err, w)
		return
	}

	scenario, err := h.scenario(req.Scenario)
	if err != nil {
		setWebErrorResponse("handleCreateSession: failed to find scenario", err, w)
		return
	}

	s, err := h.createSession(*scenario)
	if err != nil {
		setWebErrorResponse("handleCreateSession: failed to create session", err, w)
		return
	}

	log.WithContext(r.Context()).WithField("trace_id", utils.TraceID(r.Context())).Infof("created session %s from scenario %s", s.machine.ID(), scenario.Name)

	response := CreateSessionResponse{
		SessionID: s.machine.ID(),
		View:      s.machine.View(),
	}

	if err := setResponse(response, w); err != nil {
		setErrorResponse("handleCreateSession: failed to set response", 500, err, w)
		return
	}
}

func (h *Handler) createSession(scenario eventmodels.ScenarioYAML) (*session, error) {
	id := uuid.New()

	m, err := machine.New(id, scenario, h.bus)
	if err != nil {
		return nil, eventmodels.NewWebError(400, "invalid scenario", err)
	}

	streamHub, err := newHub(id, h.bus)
	if err != nil {
		return nil, fmt.Errorf("createSession: %w", err)
	}

	s := &session{machine: m, hub: streamHub}

	h.mu.Lock()
	h.sessions[id] = s
	h.mu.Unlock()

	return s, nil
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.getSession(r)
	if err != nil {
		setWebErrorResponse("handleGetSession: failed to get session", err, w)
		return
	}

	if err := setResponse(s.machine.View(), w); err != nil {
		setErrorResponse("handleGetSession: failed to set response", 500, err, w)
		return
	}
}

func (h *Handler) handleUpdateParameters(w http.ResponseWriter, r *http.Request) {
	s, err := h.getSession(r)
	if err != nil {
		setWebErrorResponse("handleUpdateParameters: failed to get session", err, w)
		return
	}

	var params eventmodels.OptionContractParameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		setErrorResponse("handleUpdateParameters: failed to decode request", 400, err, w)
		return
	}

	view, err := s.machine.Update(params)
	if err != nil {
		setErrorResponse("handleUpdateParameters: invalid parameters", 400, err, w)
		return
	}

	if err := setResponse(view, w); err != nil {
		setErrorResponse("handleUpdateParameters: failed to set response", 500, err, w)
		return
	}
}

func (h *Handler) handleResetSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.getSession(r)
	if err != nil {
		setWebErrorResponse("handleResetSession: failed to get session", err, w)
		return
	}

	view, err := s.machine.Reset()
	if err != nil {
		setErrorResponse("handleResetSession: failed to reset", 500, err, w)
		return
	}

	if err := setResponse(view, w); err != nil {
		setErrorResponse("handleResetSession: failed to set response", 500, err, w)
		return
	}
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.getSession(r)
	if err != nil {
		setWebErrorResponse("handleDeleteSession: failed to get session", err, w)
		return
	}

	h.mu.Lock()
	delete(h.sessions, s.machine.ID())
	h.mu.Unlock()

	s.hub.close()

	log.Infof("deleted session %s", s.machine.ID())

	response := map[string]interface{}{
		"session_id": s.machine.ID(),
	}

	if err := setResponse(response, w); err != nil {
		setErrorResponse("handleDeleteSession: failed to set response", 500, err, w)
		return
	}
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	s, err := h.getSession(r)
	if err != nil {
		setWebErrorResponse("handleStream: failed to get session", err, w)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("handleStream: failed to upgrade: %v", err)
		return
	}

	if err := s.hub.add(conn, s.machine.View); err != nil {
		log.Errorf("handleStream: %v", err)
		conn.Close()
		return
	}

	// clients only listen; reading detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.hub.remove(conn)
}

func (h *Handler) handleStrategies(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"strategies": strategy.PresetNames(),
	}

	if err := setResponse(response, w); err != nil {
		setErrorResponse("handleStrategies: failed to set response", 500, err, w)
		return
	}
}

func (h *Handler) handleStrategyCurve(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setErrorResponse("handleStrategyCurve: failed to parse form", 400, err, w)
		return
	}

	var preset strategy.PresetParams
	if err := h.decoder.Decode(&preset, r.Form); err != nil {
		setErrorResponse("handleStrategyCurve: failed to decode preset", 400, err, w)
		return
	}

	var query strategyQuery
	if err := h.decoder.Decode(&query, r.Form); err != nil {
		setErrorResponse("handleStrategyCurve: failed to decode underlying", 400, err, w)
		return
	}

	curveRange := eventmodels.CurveRangeAroundStrike(preset.Strike)
	if err := h.decoder.Decode(&curveRange, r.Form); err != nil {
		setErrorResponse("handleStrategyCurve: failed to decode range", 400, err, w)
		return
	}

	if err := curveRange.Validate(); err != nil {
		setErrorResponse("handleStrategyCurve: invalid range", 400, err, w)
		return
	}

	name := mux.Vars(r)["name"]
	strat, err := strategy.NewPreset(name, preset)
	if err != nil {
		statusCode := 400
		if errors.Is(err, strategy.ErrUnknownPreset) {
			statusCode = 404
		}

		setErrorResponse("handleStrategyCurve: failed to build strategy", statusCode, err, w)
		return
	}

	underlying := preset.Strike
	if query.Underlying != nil {
		underlying = *query.Underlying
	}

	curve := strat.BuildCurve(underlying, curveRange)

	stats, err := payoff.Stats(curve.Points)
	if err != nil {
		setErrorResponse("handleStrategyCurve: failed to compute stats", 500, err, w)
		return
	}

	response := StrategyCurveResponse{
		Strategy:   strat,
		NetPremium: strat.NetPremium(),
		Curve:      curve,
		Stats:      stats,
	}

	if err := setResponse(response, w); err != nil {
		setErrorResponse("handleStrategyCurve: failed to set response", 500, err, w)
		return
	}
}

// Close drops every session and its stream clients.
func (h *Handler) Close() {
	h.mu.Lock()
	sessions := h.sessions
	h.sessions = make(map[uuid.UUID]*session)
	h.mu.Unlock()

	for _, s := range sessions {
		s.hub.close()
	}
}

func (h *Handler) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.sessions)
}

// SetupHandler registers every route, tagging each with its pattern as the http.route.
func SetupHandler(router *mux.Router, h *Handler) {
	handleFunc := func(pattern string, handlerFunc func(http.ResponseWriter, *http.Request), methods ...string) {
		handler := otelhttp.WithRouteTag(pattern, http.HandlerFunc(handlerFunc))
		router.Handle(pattern, handler).Methods(methods...)
	}

	handleFunc("/evaluate", h.handleEvaluate, "GET")
	handleFunc("/curve", h.handleCurve, "GET")
	handleFunc("/scenarios", h.handleScenarios, "GET")
	handleFunc("/sessions", h.handleCreateSession, "POST")
	handleFunc("/sessions/{id}", h.handleGetSession, "GET")
	handleFunc("/sessions/{id}", h.handleDeleteSession, "DELETE")
	handleFunc("/sessions/{id}/parameters", h.handleUpdateParameters, "PUT")
	handleFunc("/sessions/{id}/reset", h.handleResetSession, "POST")
	handleFunc("/sessions/{id}/stream", h.handleStream, "GET")
	handleFunc("/strategies", h.handleStrategies, "GET")
	handleFunc("/strategies/{name}/curve", h.handleStrategyCurve, "GET")
}
