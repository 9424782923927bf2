package bus

import "time"

// EventBus is an in-process pub/sub bus.
//
// - Handlers subscribe by Event.Type().
// - Delivery is synchronous, in the publisher's goroutine, in subscription order.
// - Handler errors are joined and returned from Publish/PublishBatch.
// - All methods are safe for concurrent use.
type EventBus interface {
	// Publish delivers the event to every active subscriber of event.Type().
	Publish(event Event) error
	// PublishBatch publishes events in order and joins all handler errors.
	PublishBatch(events ...Event) error
	// Subscribe registers a handler for an event type.
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels the subscription. Nil is a no-op.
	Unsubscribe(Subscription) error
	// Subscribers reports how many handlers listen to eventType.
	Subscribers(eventType string) int
	// GetMetrics returns a snapshot of delivery counters.
	GetMetrics() EventBusMetrics
}

// Event is an immutable message transported by the EventBus.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

// EventHandler is invoked once per delivered event.
type EventHandler func(event Event) error

// Subscription is a registered handler bound to an event type.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler. Multiple calls are safe.
	Cancel() error
}

// EventBusMetrics holds delivery counters.
type EventBusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
}
