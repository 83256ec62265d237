package contract

import (
	"context"

	"wa-feedback-be/internal/entity"

	"github.com/google/uuid"
)

// MessageStore is append-only, timestamp-ordered chat turn storage keyed by
// session. Messages are immutable once written.
type MessageStore interface {
	Append(ctx context.Context, msg *entity.ChatMessage) error
	ListBySession(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error)
}
