package entity

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	Id             uuid.UUID
	SenderId       string
	ProductName    string
	FeedbackText   string
	MediaURLs      []string
	IdempotencyKey string
	CreatedAt      time.Time
}
