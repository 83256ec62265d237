package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "FEEDBACK_RECORDED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
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

// NewFeedbackRecorded announces a newly persisted feedback row.
func NewFeedbackRecorded(feedbackId, senderId, productName string, mediaCount int) Event {
	return BaseEvent{
		Type: "FEEDBACK_RECORDED",
		Data: map[string]interface{}{
			"feedback_id":  feedbackId,
			"sender_id":    senderId,
			"product_name": productName,
			"media_count":  mediaCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewSessionLimited announces a moderation cool-down on a session.
func NewSessionLimited(sessionId, senderId string, limitedUntil time.Time) Event {
	return BaseEvent{
		Type: "SESSION_LIMITED",
		Data: map[string]interface{}{
			"session_id":    sessionId,
			"sender_id":     senderId,
			"limited_until": limitedUntil.Format(time.RFC3339),
		},
		OccurredAt: time.Now(),
	}
}
