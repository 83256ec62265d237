package implementation

import (
	"context"
	"errors"

	"wa-feedback-be/internal/entity"
	"wa-feedback-be/internal/mapper"
	"wa-feedback-be/internal/model"
	"wa-feedback-be/internal/pkg/apperror"
	"wa-feedback-be/internal/repository/contract"

	"gorm.io/gorm"
)

type FeedbackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FeedbackMapper
}

func NewFeedbackRepository(db *gorm.DB) contract.FeedbackRepository {
	return &FeedbackRepositoryImpl{
		db:     db,
		mapper: mapper.NewFeedbackMapper(),
	}
}

func (r *FeedbackRepositoryImpl) FindByIdempotencyKey(ctx context.Context, idempotencyKey string) (*entity.Feedback, error) {
	var m model.Feedback
	err := r.db.WithContext(ctx).Where("idempotency_key = ?", idempotencyKey).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.NewTransientStore("feedback", err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FeedbackRepositoryImpl) Save(ctx context.Context, feedback *entity.Feedback, idempotencyKey string) (*entity.Feedback, error) {
	// 1. Short-circuit when this completion was already recorded
	existing, err := r.FindByIdempotencyKey(ctx, idempotencyKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	feedback.IdempotencyKey = idempotencyKey
	m, err := r.mapper.ToModel(feedback)
	if err != nil {
		return nil, err
	}

	// 2. Insert; a concurrent retry may have won the race on the unique key,
	// in which case the existing row is the result
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		raced, findErr := r.FindByIdempotencyKey(ctx, idempotencyKey)
		if findErr == nil && raced != nil {
			return raced, nil
		}
		return nil, apperror.NewTransientStore("feedback", err)
	}

	return r.mapper.ToEntity(m), nil
}
