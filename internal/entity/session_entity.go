package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusLimited   = "limited"
)

type Session struct {
	Id           uuid.UUID  `json:"id"`
	SenderId     string     `json:"sender_id"`
	Status       string     `json:"status"`
	LimitedUntil *time.Time `json:"limited_until,omitempty"` // set only while status is "limited"
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func (s *Session) IsActive() bool {
	return s.Status == SessionStatusActive
}

// CooldownElapsed reports whether a limited session may be reopened.
func (s *Session) CooldownElapsed(now time.Time) bool {
	if s.Status != SessionStatusLimited {
		return false
	}
	return s.LimitedUntil == nil || !now.Before(*s.LimitedUntil)
}
