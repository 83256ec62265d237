package mapper

import (
	"encoding/json"

	"wa-feedback-be/internal/entity"
	"wa-feedback-be/internal/model"

	"gorm.io/datatypes"
)

type FeedbackMapper struct{}

func NewFeedbackMapper() *FeedbackMapper {
	return &FeedbackMapper{}
}

func (m *FeedbackMapper) ToEntity(f *model.Feedback) *entity.Feedback {
	if f == nil {
		return nil
	}

	var mediaURLs []string
	if len(f.MediaURLs) > 0 {
		// Column is written by ToModel; a decode failure means a hand-edited row.
		_ = json.Unmarshal(f.MediaURLs, &mediaURLs)
	}

	return &entity.Feedback{
		Id:             f.Id,
		SenderId:       f.SenderId,
		ProductName:    f.ProductName,
		FeedbackText:   f.FeedbackText,
		MediaURLs:      mediaURLs,
		IdempotencyKey: f.IdempotencyKey,
		CreatedAt:      f.CreatedAt,
	}
}

func (m *FeedbackMapper) ToModel(f *entity.Feedback) (*model.Feedback, error) {
	if f == nil {
		return nil, nil
	}

	mediaURLs := f.MediaURLs
	if mediaURLs == nil {
		mediaURLs = []string{}
	}
	raw, err := json.Marshal(mediaURLs)
	if err != nil {
		return nil, err
	}

	return &model.Feedback{
		Id:             f.Id,
		SenderId:       f.SenderId,
		ProductName:    f.ProductName,
		FeedbackText:   f.FeedbackText,
		MediaURLs:      datatypes.JSON(raw),
		IdempotencyKey: f.IdempotencyKey,
		CreatedAt:      f.CreatedAt,
	}, nil
}
