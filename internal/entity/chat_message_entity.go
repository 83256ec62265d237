package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChatDirectionInbound  = "inbound"
	ChatDirectionOutbound = "outbound"
)

// MediaItem is a provider-side media reference attached to a chat turn.
// URL points at the messaging provider until the archiver exchanges it
// for a durable object-store URL.
type MediaItem struct {
	MessageSid string `json:"message_sid"`
	MediaSid   string `json:"media_sid"`
	URL        string `json:"url"`
}

type ChatMessage struct {
	Id         uuid.UUID   `json:"id"`
	SessionId  uuid.UUID   `json:"session_id"`
	SenderId   string      `json:"sender_id"`
	Direction  string      `json:"direction"`
	Text       string      `json:"text"`
	MediaItems []MediaItem `json:"media_items,omitempty"`
	ReplyStage string      `json:"reply_stage,omitempty"` // outbound only
	CreatedAt  time.Time   `json:"created_at"`
}
