// ABOUTME: Publish/subscribe bus for visualization notifications
// ABOUTME: Topic-keyed subscriptions with uuid tokens and buffered delivery
package event

import (
	"sync"

	"github.com/google/uuid"
)

// subscriberBuffer is the per-subscription channel depth. Publish never
// blocks; events beyond the buffer are dropped for that subscriber.
const subscriberBuffer = 16

// Event is one published notification.
type Event struct {
	Topic   string
	Payload any
}

// Bus is a topic-keyed publish/subscribe channel. Extensions listen on
// topics instead of reaching into the canvas, so the rendering core stays
// free of dynamic hooks.
type Bus struct {
	mtx  sync.Mutex
	subs map[string]map[string]chan Event
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[string]map[string]chan Event),
	}
}

// Subscribe registers for a topic and returns the subscription token plus
// the delivery channel. The channel is closed on Unsubscribe.
func (b *Bus) Subscribe(topic string) (string, <-chan Event) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	id := uuid.New().String()
	ch := make(chan Event, subscriberBuffer)
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[string]chan Event)
	}
	b.subs[topic][id] = ch
	return id, ch
}

// Unsubscribe removes a subscription by token and closes its channel.
func (b *Bus) Unsubscribe(id string) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	for topic, subs := range b.subs {
		if ch, ok := subs[id]; ok {
			close(ch)
			delete(subs, id)
			if len(subs) == 0 {
				delete(b.subs, topic)
			}
			return
		}
	}
}

// Publish delivers payload to every subscriber of topic without blocking.
// A subscriber whose buffer is full misses the event.
func (b *Bus) Publish(topic string, payload any) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	for _, ch := range b.subs[topic] {
		select {
		case ch <- Event{Topic: topic, Payload: payload}:
		default:
		}
	}
}

// Close drops every subscription and closes all delivery channels.
func (b *Bus) Close() {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	for topic, subs := range b.subs {
		for id, ch := range subs {
			close(ch)
			delete(subs, id)
		}
		delete(b.subs, topic)
	}
}
