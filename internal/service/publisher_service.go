package service

import (
	"encoding/json"
	"fmt"

	"wa-feedback-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IPublisherService enqueues in-process background work for completed
// sessions.
type IPublisherService interface {
	PublishArchiveTranscript(sessionId uuid.UUID, senderId string) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (p *publisherService) PublishArchiveTranscript(sessionId uuid.UUID, senderId string) error {
	payload, err := json.Marshal(dto.PublishArchiveTranscriptMessage{
		SessionId: sessionId,
		SenderId:  senderId,
	})
	if err != nil {
		return fmt.Errorf("marshal transcript message: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return p.pubSub.Publish(p.topicName, msg)
}
