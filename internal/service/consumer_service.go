package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"wa-feedback-be/internal/dto"
	"wa-feedback-be/internal/entity"
	"wa-feedback-be/internal/repository/contract"
	"wa-feedback-be/pkg/objectstore"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains the transcript-archival topic: for each completed
// session it renders the full conversation and copies it into the object
// store next to the archived media.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	messages  contract.MessageStore
	store     objectstore.ObjectStore
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	messages contract.MessageStore,
	store objectstore.ObjectStore,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		messages:  messages,
		store:     store,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishArchiveTranscriptMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal transcript message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	history, err := cs.messages.ListBySession(ctx, payload.SessionId)
	if err != nil {
		log.Printf("[ERROR] Failed to load session %s for transcript: %v", payload.SessionId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if len(history) == 0 {
		log.Printf("[WARN] No turns for session %s, skipping transcript", payload.SessionId)
		msg.Ack()
		return
	}

	key := fmt.Sprintf("feedback-transcripts/%s.txt", payload.SessionId)
	url, err := cs.store.Put(ctx, key, []byte(renderTranscript(payload.SenderId, history)), "text/plain; charset=utf-8")
	if err != nil {
		log.Printf("[ERROR] Failed to archive transcript for session %s: %v", payload.SessionId, err)
		msg.Nack()
		return
	}

	log.Printf("[INFO] Transcript archived for session %s: %s", payload.SessionId, url)
	msg.Ack()
}

func renderTranscript(senderId string, history []*entity.ChatMessage) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Sender: %s\n\n", senderId)
	for _, turn := range history {
		label := "User"
		if turn.Direction == entity.ChatDirectionOutbound {
			label = "System"
		}
		if turn.Text != "" {
			fmt.Fprintf(&sb, "[%s] %s: %s\n", turn.CreatedAt.Format("2006-01-02 15:04:05"), label, turn.Text)
		}
		for _, media := range turn.MediaItems {
			fmt.Fprintf(&sb, "[%s] %s: [media] %s\n", turn.CreatedAt.Format("2006-01-02 15:04:05"), label, media.URL)
		}
	}
	return sb.String()
}
