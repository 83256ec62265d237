package contract

import (
	"context"

	"wa-feedback-be/internal/entity"
)

// FeedbackRepository persists finalized feedback records. Save is the
// authoritative guard against duplicates: when a row already exists for the
// idempotency key it returns that row instead of inserting another.
type FeedbackRepository interface {
	Save(ctx context.Context, feedback *entity.Feedback, idempotencyKey string) (*entity.Feedback, error)
	FindByIdempotencyKey(ctx context.Context, idempotencyKey string) (*entity.Feedback, error)
}
