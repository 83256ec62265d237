package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Feedback struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SenderId       string         `gorm:"type:varchar(64);not null;index"`
	ProductName    string         `gorm:"type:varchar(255);not null"`
	FeedbackText   string         `gorm:"type:text;not null"`
	MediaURLs      datatypes.JSON `gorm:"type:jsonb"`
	IdempotencyKey string         `gorm:"type:varchar(128);uniqueIndex;not null"` // guards duplicate rows on retried completion
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}
