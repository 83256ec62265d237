package dto

import "github.com/google/uuid"

type InboundMediaDTO struct {
	MessageSid string `json:"message_sid" validate:"required"`
	MediaSid   string `json:"media_sid" validate:"required"`
	URL        string `json:"url,omitempty"`
}

type ReplyRequest struct {
	SenderId   string            `json:"sender_id" validate:"required"`
	Message    string            `json:"message" validate:"required"`
	MediaItems []InboundMediaDTO `json:"media_items,omitempty" validate:"max=5,dive"`
}

const (
	ReplyStatusSent           = "sent"
	ReplyStatusDeliveryFailed = "delivery_failed"
	ReplyStatusLimited        = "limited"
)

type ReplyResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	MessageId uuid.UUID `json:"message_id"`
	Status    string    `json:"status"`
}

// PublishArchiveTranscriptMessage is the payload for the in-process
// transcript archival topic.
type PublishArchiveTranscriptMessage struct {
	SessionId uuid.UUID `json:"session_id"`
	SenderId  string    `json:"sender_id"`
}
