package eventpubsub

import (
	"fmt"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

// Bus delivers events synchronously so subscribers see updates in publish order.
type Bus struct {
	bus EventBus.Bus
}

func New() *Bus {
	return &Bus{
		bus: EventBus.New(),
	}
}

func (b *Bus) Publish(topic string, event interface{}) {
	b.bus.Publish(topic, event)
}

func (b *Bus) Subscribe(topic string, callbackFn interface{}) error {
	if err := b.bus.Subscribe(topic, callbackFn); err != nil {
		return fmt.Errorf("Bus: Subscribe: %s: %w", topic, err)
	}

	log.Debugf("Subscribed to topic %s", topic)
	return nil
}

func (b *Bus) Unsubscribe(topic string, callbackFn interface{}) error {
	if err := b.bus.Unsubscribe(topic, callbackFn); err != nil {
		return fmt.Errorf("Bus: Unsubscribe: %s: %w", topic, err)
	}

	log.Debugf("Unsubscribed from topic %s", topic)
	return nil
}

func (b *Bus) HasSubscribers(topic string) bool {
	return b.bus.HasCallback(topic)
}
