package mapper

import (
	"testing"
	"time"

	"wa-feedback-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackMapperRoundTrip(t *testing.T) {
	m := NewFeedbackMapper()

	original := &entity.Feedback{
		Id:             uuid.New(),
		SenderId:       "14155550100",
		ProductName:    "Apple Watch",
		FeedbackText:   "Band clasp came loose after a week.",
		MediaURLs:      []string{"https://bucket.s3.amazonaws.com/feedback-media/MM1/ME1.jpeg"},
		IdempotencyKey: uuid.NewString() + ":completed",
		CreatedAt:      time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}

	model, err := m.ToModel(original)
	require.NoError(t, err)
	assert.JSONEq(t, `["https://bucket.s3.amazonaws.com/feedback-media/MM1/ME1.jpeg"]`, string(model.MediaURLs))

	back := m.ToEntity(model)
	assert.Equal(t, original, back)
}

func TestFeedbackMapperNilAndEmptyMedia(t *testing.T) {
	m := NewFeedbackMapper()

	assert.Nil(t, m.ToEntity(nil))

	model, err := m.ToModel(&entity.Feedback{Id: uuid.New(), SenderId: "1", ProductName: "iPhone", FeedbackText: "ok"})
	require.NoError(t, err)
	// Nil media serializes as an empty array, never null
	assert.JSONEq(t, `[]`, string(model.MediaURLs))

	back := m.ToEntity(model)
	assert.Empty(t, back.MediaURLs)
}
