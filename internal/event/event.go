// Package event carries game events from the engines to whoever renders or
// records them. Engines publish; the console and the logger subscribe.
package event

// Type identifies an event kind
type Type string

// String returns the string representation of the event type
func (t Type) String() string {
	return string(t)
}

// Event is anything an engine publishes
type Event interface {
	EventType() Type
}

// Subscriber receives published events
type Subscriber interface {
	OnEvent(e Event)
}

// SubscriberFunc adapts a plain function to Subscriber
type SubscriberFunc func(e Event)

// OnEvent calls f(e)
func (f SubscriberFunc) OnEvent(e Event) { f(e) }

// Bus manages event publishing and subscription
type Bus interface {
	Subscribe(subscriber Subscriber)
	Publish(e Event)
}

// SimpleBus is a synchronous in-memory bus. Delivery happens on the
// publisher's goroutine, in subscription order.
type SimpleBus struct {
	subscribers []Subscriber
}

// NewBus creates a new event bus
func NewBus() *SimpleBus {
	return &SimpleBus{}
}

// Subscribe adds a subscriber to receive events
func (b *SimpleBus) Subscribe(subscriber Subscriber) {
	b.subscribers = append(b.subscribers, subscriber)
}

// Publish sends an event to all subscribers
func (b *SimpleBus) Publish(e Event) {
	for _, s := range b.subscribers {
		s.OnEvent(e)
	}
}

// Discard is a bus that drops every event
var Discard Bus = discard{}

type discard struct{}

func (discard) Subscribe(Subscriber) {}
func (discard) Publish(Event)        {}

// Recorder is a subscriber that keeps every event, mostly for tests
type Recorder struct {
	Events []Event
}

// OnEvent records e
func (r *Recorder) OnEvent(e Event) {
	r.Events = append(r.Events, e)
}

// Types returns the recorded event types in order
func (r *Recorder) Types() []Type {
	types := make([]Type, len(r.Events))
	for i, e := range r.Events {
		types[i] = e.EventType()
	}
	return types
}
