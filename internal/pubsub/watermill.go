package pubsub

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const metaKeyTopic = "topic"

// WatermillBridge implements Publisher and Subscriber on watermill's GoChannel.
type WatermillBridge struct {
	pub message.Publisher
	sub message.Subscriber
}

// NewWatermillBridge creates an in-memory bus. Messages published while no
// one is subscribed are dropped.
func NewWatermillBridge() *WatermillBridge {
	goChannel := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	return &WatermillBridge{
		pub: goChannel,
		sub: goChannel,
	}
}

func toWatermill(msg Message) *message.Message {
	wmMsg := message.NewMessage(watermill.NewUUID(), msg.Payload)
	for k, v := range msg.Metadata {
		wmMsg.Metadata.Set(k, v)
	}
	wmMsg.Metadata.Set(metaKeyTopic, msg.Topic)
	return wmMsg
}

func fromWatermill(wmMsg *message.Message) Message {
	metadata := make(map[string]string, len(wmMsg.Metadata))
	for k, v := range wmMsg.Metadata {
		if k != metaKeyTopic {
			metadata[k] = v
		}
	}
	return Message{
		Topic:    wmMsg.Metadata.Get(metaKeyTopic),
		Payload:  wmMsg.Payload,
		Metadata: metadata,
	}
}

// Publish implements Publisher.
func (wb *WatermillBridge) Publish(ctx context.Context, msg Message) error {
	return wb.pub.Publish(msg.Topic, toWatermill(msg))
}

// Subscribe implements Subscriber. It returns once the subscription is active.
func (wb *WatermillBridge) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := wb.sub.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for wmMsg := range messages {
			if err := handler(ctx, fromWatermill(wmMsg)); err != nil {
				slog.Error("Failed to handle message", "topic", topic, "msg_id", wmMsg.UUID, "error", err)
				// GoChannel redelivers on Nack; acking avoids a hot loop on a poison message.
				wmMsg.Ack()
				continue
			}
			wmMsg.Ack()
		}
		slog.Debug("Subscription message loop ended", "topic", topic)
	}()
	return nil
}

// Close shuts down the bus and ends all subscriptions.
func (wb *WatermillBridge) Close() error {
	return wb.pub.Close()
}
