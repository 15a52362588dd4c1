// Package pubsub is the in-process event bus used to report what the
// application did, e.g. settled dashboard fetches.
package pubsub

import (
	"context"
)

// Message is the structure passed between components on the bus.
type Message struct {
	// Topic identifies the channel the message belongs to (e.g., "dashboard.fetch").
	Topic string
	// Payload contains the encoded event.
	Payload []byte
	// Metadata carries small string attributes for filtering and logging.
	Metadata map[string]string
}

// Handler defines the function signature for processing a received message.
type Handler func(ctx context.Context, msg Message) error

// Publisher defines the contract for sending messages.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber defines the contract for receiving messages.
type Subscriber interface {
	// Subscribe starts delivering messages for topic to handler in the
	// background until ctx is cancelled or the subscriber is closed.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
