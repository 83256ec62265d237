package contract

import (
	"context"

	"wa-feedback-be/internal/entity"
)

// SessionStore keeps session records and tracks the current session per
// sender. Sessions are never deleted; Put both saves the record and moves the
// sender's current pointer onto it.
type SessionStore interface {
	GetCurrent(ctx context.Context, senderId string) (*entity.Session, error) // nil when the sender has no session yet
	Put(ctx context.Context, session *entity.Session) error
}
