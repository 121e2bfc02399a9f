package events

import "time"

// Event is a note lifecycle notification.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

// NewNoteEvent builds an event about a single note. data may be nil.
func NewNoteEvent(eventType, noteId string, data map[string]interface{}, at time.Time) BaseEvent {
	payload := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		payload[k] = v
	}
	payload["note_id"] = noteId

	return BaseEvent{
		Type:       eventType,
		Data:       payload,
		OccurredAt: at,
	}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
