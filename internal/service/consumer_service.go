package service

import (
	"context"
	"encoding/json"

	"ai-notes-be/internal/pkg/logger"
	"ai-notes-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventRelay forwards activity events to an external broker.
// *nats.Publisher implements it.
type EventRelay interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	relay      EventRelay
	logger     logger.ILogger
}

// NewConsumerService builds the activity consumer. relay may be nil, in which
// case events are only logged.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	relay EventRelay,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		relay:      relay,
		logger:     log,
	}
}

// Consume subscribes and processes messages in the background until ctx is
// cancelled or the subscriber is closed.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var envelope eventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal activity event", map[string]interface{}{"error": err, "message_id": msg.UUID})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	event := events.BaseEvent{
		Type:       envelope.Type,
		Data:       envelope.Data,
		OccurredAt: envelope.OccurredAt,
	}

	cs.logger.Info("ConsumerService", "Note activity", map[string]interface{}{
		"type":        event.Type,
		"data":        event.Data,
		"occurred_at": event.OccurredAt,
	})

	if cs.relay != nil {
		// Relay failures are logged; the message is acked regardless.
		if err := cs.relay.Publish(ctx, event); err != nil {
			cs.logger.Warn("ConsumerService", "Failed to relay activity event", map[string]interface{}{"error": err.Error(), "type": event.Type})
		}
	}

	msg.Ack()
}
