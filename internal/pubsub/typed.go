package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
)

// Event binds a topic to a JSON-encoded payload type.
type Event[T any] struct {
	Topic string
}

// NewEvent creates a typed event for topic.
func NewEvent[T any](topic string) Event[T] {
	return Event[T]{Topic: topic}
}

// Publish encodes v and publishes it on the event's topic.
func (e Event[T]) Publish(ctx context.Context, pub Publisher, v T, metadata map[string]string) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", e.Topic, err)
	}
	return pub.Publish(ctx, Message{Topic: e.Topic, Payload: payload, Metadata: metadata})
}

// Decode unmarshals a message received on the event's topic.
func (e Event[T]) Decode(msg Message) (T, error) {
	var v T
	if err := json.Unmarshal(msg.Payload, &v); err != nil {
		return v, fmt.Errorf("decode %s event: %w", e.Topic, err)
	}
	return v, nil
}

// Subscribe delivers decoded events to fn.
func (e Event[T]) Subscribe(ctx context.Context, sub Subscriber, fn func(ctx context.Context, v T, msg Message) error) error {
	return sub.Subscribe(ctx, e.Topic, func(ctx context.Context, msg Message) error {
		v, err := e.Decode(msg)
		if err != nil {
			return err
		}
		return fn(ctx, v, msg)
	})
}
