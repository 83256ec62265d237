package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"wa-feedback-be/internal/entity"
	"wa-feedback-be/internal/repository/redisstore"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}

	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		t.Skipf("Redis unreachable: %v", err)
	}
	return client
}

func TestSessionStoreCurrentPointer(t *testing.T) {
	client := redisClient(t)
	store := redisstore.NewSessionStore(client)
	ctx := context.Background()

	senderId := "test-" + uuid.NewString()

	// Unknown sender has no current session
	sess, err := store.GetCurrent(ctx, senderId)
	require.NoError(t, err)
	assert.Nil(t, sess)

	first := &entity.Session{
		Id:        uuid.New(),
		SenderId:  senderId,
		Status:    entity.SessionStatusActive,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Put(ctx, first))

	got, err := store.GetCurrent(ctx, senderId)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.Id, got.Id)
	assert.Equal(t, entity.SessionStatusActive, got.Status)

	// A newer session moves the pointer
	second := &entity.Session{
		Id:        uuid.New(),
		SenderId:  senderId,
		Status:    entity.SessionStatusActive,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Put(ctx, second))

	got, err = store.GetCurrent(ctx, senderId)
	require.NoError(t, err)
	assert.Equal(t, second.Id, got.Id)
}

func TestMessageStoreOrdering(t *testing.T) {
	client := redisClient(t)
	store := redisstore.NewMessageStore(client)
	ctx := context.Background()

	sessionId := uuid.New()
	base := time.Now().UTC()

	// Appended out of order on purpose; reads must come back by timestamp
	msgs := []*entity.ChatMessage{
		{Id: uuid.New(), SessionId: sessionId, Direction: entity.ChatDirectionOutbound, Text: "second", CreatedAt: base.Add(time.Second)},
		{Id: uuid.New(), SessionId: sessionId, Direction: entity.ChatDirectionInbound, Text: "first", CreatedAt: base},
		{Id: uuid.New(), SessionId: sessionId, Direction: entity.ChatDirectionInbound, Text: "third", CreatedAt: base.Add(2 * time.Second)},
	}
	for _, msg := range msgs {
		require.NoError(t, store.Append(ctx, msg))
	}

	history, err := store.ListBySession(ctx, sessionId)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "first", history[0].Text)
	assert.Equal(t, "second", history[1].Text)
	assert.Equal(t, "third", history[2].Text)

	// Cleanup
	client.Del(ctx, "chats:"+sessionId.String())
}
