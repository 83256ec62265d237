package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"wa-feedback-be/internal/entity"
	"wa-feedback-be/internal/pkg/apperror"
	"wa-feedback-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const chatKeyPrefix = "chats:"

// MessageStoreImpl stores chat turns in a sorted set per session, scored by
// creation time in nanoseconds, which keeps history timestamp-ordered on read.
type MessageStoreImpl struct {
	rdb *redis.Client
}

func NewMessageStore(rdb *redis.Client) contract.MessageStore {
	return &MessageStoreImpl{rdb: rdb}
}

func (s *MessageStoreImpl) Append(ctx context.Context, msg *entity.ChatMessage) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode chat message %s: %w", msg.Id, err)
	}

	err = s.rdb.ZAdd(ctx, chatKeyPrefix+msg.SessionId.String(), redis.Z{
		Score:  float64(msg.CreatedAt.UnixNano()),
		Member: raw,
	}).Err()
	if err != nil {
		return apperror.NewTransientStore("message", err)
	}
	return nil
}

func (s *MessageStoreImpl) ListBySession(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error) {
	raws, err := s.rdb.ZRange(ctx, chatKeyPrefix+sessionId.String(), 0, -1).Result()
	if err != nil {
		return nil, apperror.NewTransientStore("message", err)
	}

	messages := make([]*entity.ChatMessage, 0, len(raws))
	for _, raw := range raws {
		var msg entity.ChatMessage
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			return nil, fmt.Errorf("decode chat message in session %s: %w", sessionId, err)
		}
		messages = append(messages, &msg)
	}
	return messages, nil
}
