package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"wa-feedback-be/internal/entity"
	"wa-feedback-be/internal/pkg/apperror"
	"wa-feedback-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	currentKeyPrefix = "session:current:"
)

// SessionStoreImpl keeps every session record under session:{id} and a
// per-sender pointer under session:current:{senderId}. Records carry no TTL:
// sessions are a historical record and are only ever status-transitioned.
type SessionStoreImpl struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) contract.SessionStore {
	return &SessionStoreImpl{rdb: rdb}
}

func (s *SessionStoreImpl) GetCurrent(ctx context.Context, senderId string) (*entity.Session, error) {
	sessionId, err := s.rdb.Get(ctx, currentKeyPrefix+senderId).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, apperror.NewTransientStore("session", err)
	}

	raw, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionId).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Dangling pointer; treat as no session rather than failing the turn
			return nil, nil
		}
		return nil, apperror.NewTransientStore("session", err)
	}

	var session entity.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionId, err)
	}
	return &session, nil
}

func (s *SessionStoreImpl) Put(ctx context.Context, session *entity.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.Id, err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+session.Id.String(), raw, 0)
	pipe.Set(ctx, currentKeyPrefix+session.SenderId, session.Id.String(), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperror.NewTransientStore("session", err)
	}
	return nil
}
