package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"wa-feedback-be/internal/entity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTranscriptStore struct {
	mu   sync.Mutex
	puts map[string]string
}

func newFakeTranscriptStore() *fakeTranscriptStore {
	return &fakeTranscriptStore{puts: map[string]string{}}
}

func (s *fakeTranscriptStore) Put(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts[key] = string(content)
	return "https://bucket.s3.amazonaws.com/" + key, nil
}

func (s *fakeTranscriptStore) get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.puts[key]
	return content, ok
}

func TestTranscriptPipeline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	messages := &fakeMessageStore{}
	store := newFakeTranscriptStore()

	consumer := NewConsumerService(pubSub, "ARCHIVE_SESSION_TRANSCRIPT", messages, store)
	require.NoError(t, consumer.Consume(ctx))

	sessionId := uuid.New()
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	turns := []*entity.ChatMessage{
		{Id: uuid.New(), SessionId: sessionId, Direction: entity.ChatDirectionInbound, Text: "Hello", CreatedAt: base},
		{Id: uuid.New(), SessionId: sessionId, Direction: entity.ChatDirectionOutbound, Text: "Which product?", CreatedAt: base.Add(time.Second)},
	}
	for _, turn := range turns {
		require.NoError(t, messages.Append(ctx, turn))
	}

	publisher := NewPublisherService("ARCHIVE_SESSION_TRANSCRIPT", pubSub)
	require.NoError(t, publisher.PublishArchiveTranscript(sessionId, "14155550100"))

	key := "feedback-transcripts/" + sessionId.String() + ".txt"
	var transcript string
	require.Eventually(t, func() bool {
		content, ok := store.get(key)
		transcript = content
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	assert.True(t, strings.HasPrefix(transcript, "Sender: 14155550100\n"))
	assert.Contains(t, transcript, "User: Hello")
	assert.Contains(t, transcript, "System: Which product?")
}

func TestTranscriptPipelineSkipsEmptySession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	store := newFakeTranscriptStore()

	consumer := NewConsumerService(pubSub, "ARCHIVE_SESSION_TRANSCRIPT", &fakeMessageStore{}, store)
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("ARCHIVE_SESSION_TRANSCRIPT", pubSub)
	require.NoError(t, publisher.PublishArchiveTranscript(uuid.New(), "14155550100"))

	time.Sleep(100 * time.Millisecond)
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Empty(t, store.puts)
}
