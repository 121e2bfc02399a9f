package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-notes-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const (
	EventNoteCreated    = "NOTE_CREATED"
	EventNoteUpdated    = "NOTE_UPDATED"
	EventNoteDeleted    = "NOTE_DELETED"
	EventNoteSummarized = "NOTE_SUMMARIZED"
)

// eventEnvelope is the wire form of an events.Event on the in-process bus.
type eventEnvelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

type IPublisherService interface {
	Publish(ctx context.Context, event events.Event) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (p *publisherService) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(eventEnvelope{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	return p.publisher.Publish(p.topicName, msg)
}
