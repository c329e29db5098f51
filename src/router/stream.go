package router

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/options-machine/src/eventmodels"
	"github.com/jiaming2012/options-machine/src/eventpubsub"
)

// hub fans one session's update events out to its websocket clients.
type hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
	topic string
	bus   *eventpubsub.Bus
}

func newHub(sessionID uuid.UUID, bus *eventpubsub.Bus) (*hub, error) {
	h := &hub{
		conns: make(map[*websocket.Conn]bool),
		topic: eventmodels.SessionTopic(sessionID),
		bus:   bus,
	}

	if err := bus.Subscribe(h.topic, h.broadcast); err != nil {
		return nil, fmt.Errorf("newHub: %w", err)
	}

	return h, nil
}

// add reads the current view and registers conn under one lock. A concurrent update either lands in
// that view or is broadcast after conn joins, so the client never misses it.
func (h *hub) add(conn *websocket.Conn, currentView func() *eventmodels.MachineView) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := conn.WriteJSON(currentView()); err != nil {
		return fmt.Errorf("hub: add: %w", err)
	}

	h.conns[conn] = true
	return nil
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conns[conn] {
		delete(h.conns, conn)
		conn.Close()
	}
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.conns)
}

// broadcast runs inside bus.Publish and must not touch the bus.
func (h *hub) broadcast(event eventmodels.ParametersUpdatedEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(event.View); err != nil {
			log.WithField("session", event.SessionID).Warnf("dropping stream client: %v", err)
			delete(h.conns, conn)
			conn.Close()
		}
	}
}

func (h *hub) close() {
	if err := h.bus.Unsubscribe(h.topic, h.broadcast); err != nil {
		log.Warnf("hub: close: %v", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session deleted"))
		conn.Close()
	}

	h.conns = make(map[*websocket.Conn]bool)
}
