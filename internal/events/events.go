// Package events carries the "data changed" notifications raised by every
// successful mutation and by restore. Notifications are fire-and-forget:
// publishers never block on, or fail because of, a slow or absent listener.
package events

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// ChangeKind identifies which kind of data changed.
type ChangeKind string

const (
	ClientChanged  ChangeKind = "client.changed"
	ActionChanged  ChangeKind = "action.changed"
	PaymentChanged ChangeKind = "payment.changed"
	DataImported   ChangeKind = "data.imported"
)

// Event is one change notification. EntityID is zero for DataImported.
type Event struct {
	Kind     ChangeKind `json:"kind"`
	EntityID uint       `json:"entity_id,omitempty"`
	At       time.Time  `json:"at"`
}

// Publisher raises change notifications.
type Publisher interface {
	Publish(kind ChangeKind, entityID uint)
}

// Discard is a Publisher that drops every event.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(ChangeKind, uint) {}

var changeEvents = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "juris_change_events_total",
		Help: "Change notifications published, by kind.",
	},
	[]string{"kind"},
)

var droppedEvents = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "juris_change_events_dropped_total",
		Help: "Change notifications dropped because a subscriber was not keeping up.",
	},
	[]string{"kind"},
)

func init() {
	prometheus.MustRegister(changeEvents, droppedEvents)
}

// Bus fans events out to subscribers. The zero value is not usable; call NewBus.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
	now    func() time.Time
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[int]chan Event),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Publish delivers an event to every subscriber without blocking. A
// subscriber whose buffer is full misses the event.
func (b *Bus) Publish(kind ChangeKind, entityID uint) {
	ev := Event{Kind: kind, EntityID: entityID, At: b.now()}
	changeEvents.WithLabelValues(string(kind)).Inc()

	b.mu.RLock()
	defer b.mu.RUnlock()
	for id, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			droppedEvents.WithLabelValues(string(kind)).Inc()
			log.Warn().Int("subscriber", id).Str("kind", string(kind)).Msg("change event dropped")
		}
	}
}

// Subscribe registers a listener with the given buffer size. The returned
// cancel func unregisters it and closes the channel; it is safe to call
// more than once.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Subscribers reports the number of active subscriptions.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
