package service

import (
	"context"
	"time"

	"wa-feedback-be/internal/constant"
	"wa-feedback-be/internal/dto"
	"wa-feedback-be/internal/entity"
	"wa-feedback-be/internal/pkg/apperror"
	"wa-feedback-be/internal/pkg/logger"
	"wa-feedback-be/internal/repository/contract"
	"wa-feedback-be/pkg/analyzer"
	"wa-feedback-be/pkg/archive"
	"wa-feedback-be/pkg/events"
	"wa-feedback-be/pkg/gateway"
	"wa-feedback-be/pkg/keyedmutex"
	"wa-feedback-be/pkg/workerpool"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

// EventPublisher is the outbound domain-event surface (NATS in production).
// Event publication is best-effort and never fails a turn.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// IChatService processes one inbound message end-to-end: session state
// machine, analysis, reply, persistence.
type IChatService interface {
	ReplyUser(ctx context.Context, request *dto.ReplyRequest) (*dto.ReplyResponse, error)
}

type chatService struct {
	sessions  contract.SessionStore
	messages  contract.MessageStore
	feedbacks contract.FeedbackRepository
	analyzer  analyzer.ConversationAnalyzer
	archiver  archive.MediaArchiver
	gateway   gateway.MessagingGateway
	publisher IPublisherService
	eventBus  EventPublisher // may be nil when NATS is unavailable
	pool      *workerpool.Pool
	logger    logger.ILogger

	senderLock      *keyedmutex.KeyedMutex
	analyzerTimeout time.Duration
	cooldownWindow  time.Duration

	now func() time.Time
}

func NewChatService(
	sessions contract.SessionStore,
	messages contract.MessageStore,
	feedbacks contract.FeedbackRepository,
	conversationAnalyzer analyzer.ConversationAnalyzer,
	mediaArchiver archive.MediaArchiver,
	messagingGateway gateway.MessagingGateway,
	publisherService IPublisherService,
	eventBus EventPublisher,
	pool *workerpool.Pool,
	sysLogger logger.ILogger,
	analyzerTimeout time.Duration,
	cooldownWindow time.Duration,
) IChatService {
	return &chatService{
		sessions:        sessions,
		messages:        messages,
		feedbacks:       feedbacks,
		analyzer:        conversationAnalyzer,
		archiver:        mediaArchiver,
		gateway:         messagingGateway,
		publisher:       publisherService,
		eventBus:        eventBus,
		pool:            pool,
		logger:          sysLogger,
		senderLock:      keyedmutex.New(),
		analyzerTimeout: analyzerTimeout,
		cooldownWindow:  cooldownWindow,
		now:             time.Now,
	}
}

// ReplyUser drives the session state machine for one inbound turn:
//
//	NoSession -> Active -> {Completed, Limited}; Limited -> Active once the
//	cool-down has elapsed; Completed is terminal, a new message opens a fresh
//	session.
//
// Side effects run in a fixed order (send, chat history, feedback, session
// commit last) so a retried turn redoes them safely: the feedback save is
// idempotency-guarded and a duplicate reply is tolerated.
func (cs *chatService) ReplyUser(ctx context.Context, request *dto.ReplyRequest) (*dto.ReplyResponse, error) {
	// Same-sender turns are strictly serialized; different senders proceed
	// concurrently.
	unlock := cs.senderLock.Lock(request.SenderId)
	defer unlock()

	now := cs.now()

	// 1. Load the current session; absent or completed means a fresh one
	session, err := cs.sessions.GetCurrent(ctx, request.SenderId)
	if err != nil {
		return nil, err
	}

	opened := false
	switch {
	case session == nil || session.Status == entity.SessionStatusCompleted:
		session = cs.newSession(request.SenderId, now)
		opened = true
	case session.Status == entity.SessionStatusLimited:
		if !session.CooldownElapsed(now) {
			return cs.replyWhileLimited(ctx, session, request, now)
		}
		// Reopen: the analyzer always sees an Active-compatible context
		session = cs.newSession(request.SenderId, now)
		opened = true
	}

	// An aborted request stops cleanly before any side effect; once they
	// begin, the turn runs to completion. Opening the session is the first
	// side effect.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	if opened {
		if err := cs.sessions.Put(ctx, session); err != nil {
			return nil, err
		}
		cs.logger.Info("chat", "Session opened", map[string]interface{}{
			"session_id": session.Id, "sender_id": request.SenderId,
		})
	}

	// 2. Ordered history for the analyzer input
	var history []*entity.ChatMessage
	if !opened {
		history, err = cs.messages.ListBySession(ctx, session.Id)
		if err != nil {
			return nil, err
		}
	}

	inbound := cs.buildInbound(session, request, now)

	// 3. Analyze with a bounded timeout. A malformed or failed analysis is
	// recoverable: generic reply, inbound still recorded, session unchanged.
	result, analysisFailed := cs.analyze(ctx, history, inbound)

	// 4. Compute the transition
	targetStatus := entity.SessionStatusActive
	var limitedUntil *time.Time
	if result.Moderated() {
		targetStatus = entity.SessionStatusLimited
		until := now.Add(cs.cooldownWindow)
		limitedUntil = &until
		result.Reply = constant.ReplySuspension
		result.ShouldPersistReply = false
	} else if result.IsFeedbackSessionComplete {
		targetStatus = entity.SessionStatusCompleted
	}

	// 5a. Send the reply. Delivery failure degrades the result but never
	// blocks persistence.
	status := dto.ReplyStatusSent
	if result.Reply != "" {
		if deliveryId, sendErr := cs.sendWithRetry(ctx, request.SenderId, result.Reply); sendErr != nil {
			status = dto.ReplyStatusDeliveryFailed
			cs.logger.Error("chat", "Failed to send reply", map[string]interface{}{
				"sender_id": request.SenderId, "error": sendErr.Error(),
			})
		} else {
			cs.logger.Info("chat", "Reply sent", map[string]interface{}{
				"sender_id": request.SenderId, "delivery_id": deliveryId,
			})
		}
	}

	// 5b. Chat history: the inbound turn is always recorded, the outbound
	// one only when analysis allows it
	if err := cs.messages.Append(ctx, inbound); err != nil {
		return nil, err
	}

	outboundId := uuid.New()
	if result.ShouldPersistReply {
		outbound := &entity.ChatMessage{
			Id:         outboundId,
			SessionId:  session.Id,
			SenderId:   request.SenderId,
			Direction:  entity.ChatDirectionOutbound,
			Text:       result.Reply,
			ReplyStage: result.ReplyStage,
			CreatedAt:  cs.now(),
		}
		if err := cs.messages.Append(ctx, outbound); err != nil {
			// The reply was already delivered; losing its record is preferable
			// to failing the turn after the send
			cs.logger.Warn("chat", "Failed to persist outbound turn", map[string]interface{}{
				"session_id": session.Id, "error": err.Error(),
			})
		}
	}

	// 5c. Completed sessions produce exactly one feedback row, guarded by the
	// session-scoped idempotency key
	if targetStatus == entity.SessionStatusCompleted {
		if err := cs.recordFeedback(ctx, session, request.SenderId, result, now); err != nil {
			return nil, err
		}
	}

	// 5d. Session commit is the latch and goes last: if it fails, the next
	// inbound message naturally retries the transition
	if !analysisFailed {
		updated := cs.now()
		session.Status = targetStatus
		session.LimitedUntil = limitedUntil
		session.UpdatedAt = &updated
		if err := cs.commitSession(ctx, session); err != nil {
			return nil, err
		}

		if targetStatus == entity.SessionStatusLimited {
			cs.publishEvent(ctx, events.NewSessionLimited(session.Id.String(), request.SenderId, *limitedUntil))
		}
		if targetStatus == entity.SessionStatusCompleted && cs.publisher != nil {
			if err := cs.publisher.PublishArchiveTranscript(session.Id, request.SenderId); err != nil {
				cs.logger.Warn("chat", "Failed to enqueue transcript archival", map[string]interface{}{
					"session_id": session.Id, "error": err.Error(),
				})
			}
		}
	}

	return &dto.ReplyResponse{
		SessionId: session.Id,
		MessageId: outboundId,
		Status:    status,
	}, nil
}

// replyWhileLimited handles a turn arriving inside an open cool-down: the
// inbound message is still recorded, the canned suspension reply goes out,
// and the session is left untouched. No analysis runs.
func (cs *chatService) replyWhileLimited(ctx context.Context, session *entity.Session, request *dto.ReplyRequest, now time.Time) (*dto.ReplyResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	status := dto.ReplyStatusLimited
	if _, err := cs.sendWithRetry(ctx, request.SenderId, constant.ReplySuspension); err != nil {
		cs.logger.Warn("chat", "Failed to send suspension reply", map[string]interface{}{
			"sender_id": request.SenderId, "error": err.Error(),
		})
	}

	inbound := cs.buildInbound(session, request, now)
	if err := cs.messages.Append(ctx, inbound); err != nil {
		return nil, err
	}

	return &dto.ReplyResponse{
		SessionId: session.Id,
		MessageId: inbound.Id,
		Status:    status,
	}, nil
}

func (cs *chatService) newSession(senderId string, now time.Time) *entity.Session {
	return &entity.Session{
		Id:        uuid.New(),
		SenderId:  senderId,
		Status:    entity.SessionStatusActive,
		CreatedAt: now,
	}
}

func (cs *chatService) buildInbound(session *entity.Session, request *dto.ReplyRequest, now time.Time) *entity.ChatMessage {
	mediaItems := make([]entity.MediaItem, 0, len(request.MediaItems))
	for _, item := range request.MediaItems {
		url := item.URL
		if url == "" {
			url = "https://api.twilio.com/2010-04-01/Messages/" + item.MessageSid + "/Media/" + item.MediaSid
		}
		mediaItems = append(mediaItems, entity.MediaItem{
			MessageSid: item.MessageSid,
			MediaSid:   item.MediaSid,
			URL:        url,
		})
	}

	return &entity.ChatMessage{
		Id:         uuid.New(),
		SessionId:  session.Id,
		SenderId:   request.SenderId,
		Direction:  entity.ChatDirectionInbound,
		Text:       request.Message,
		MediaItems: mediaItems,
		CreatedAt:  now,
	}
}

func (cs *chatService) analyze(ctx context.Context, history []*entity.ChatMessage, inbound *entity.ChatMessage) (*entity.AnalysisResult, bool) {
	var result *entity.AnalysisResult
	err := cs.pool.Submit(ctx, func(ctx context.Context) error {
		actx, cancel := context.WithTimeout(ctx, cs.analyzerTimeout)
		defer cancel()
		analyzed, err := cs.analyzer.Analyze(actx, history, inbound)
		if err != nil {
			return err
		}
		result = analyzed
		return nil
	})
	if err != nil {
		cs.logger.Error("chat", "Conversation analysis failed", map[string]interface{}{
			"session_id": inbound.SessionId, "error": err.Error(),
		})
		return &entity.AnalysisResult{
			Reply:              constant.ReplyFallback,
			ShouldPersistReply: false,
		}, true
	}
	return result, false
}

// sendWithRetry attempts the gateway send and retries exactly once on
// failure, to keep duplicate-message annoyance bounded.
func (cs *chatService) sendWithRetry(ctx context.Context, senderId, body string) (string, error) {
	var deliveryId string
	op := func(ctx context.Context) error {
		id, err := cs.gateway.Send(ctx, senderId, body)
		if err != nil {
			return err
		}
		deliveryId = id
		return nil
	}

	err := cs.pool.Submit(ctx, op)
	if err != nil {
		cs.logger.Warn("chat", "Gateway send failed, retrying once", map[string]interface{}{
			"sender_id": senderId, "error": err.Error(),
		})
		err = cs.pool.Submit(ctx, op)
	}
	if err != nil {
		return "", apperror.NewGateway(err)
	}
	return deliveryId, nil
}

func (cs *chatService) recordFeedback(ctx context.Context, session *entity.Session, senderId string, result *entity.AnalysisResult, now time.Time) error {
	// ArchiveAll bounds its own fan-out, no pool hop needed
	archivedURLs := cs.archiver.ArchiveAll(ctx, result.MediaURLs)

	feedback := &entity.Feedback{
		Id:           uuid.New(),
		SenderId:     senderId,
		ProductName:  result.ProductName,
		FeedbackText: result.FeedbackText,
		MediaURLs:    archivedURLs,
		CreatedAt:    now,
	}
	idempotencyKey := session.Id.String() + ":completed"

	var saved *entity.Feedback
	err := cs.retryIdempotent(ctx, func(ctx context.Context) error {
		record, err := cs.feedbacks.Save(ctx, feedback, idempotencyKey)
		if err != nil {
			return err
		}
		saved = record
		return nil
	})
	if err != nil {
		return err
	}

	cs.logger.Info("chat", "Feedback recorded", map[string]interface{}{
		"feedback_id": saved.Id, "sender_id": senderId, "product_name": saved.ProductName,
	})
	cs.publishEvent(ctx, events.NewFeedbackRecorded(saved.Id.String(), senderId, saved.ProductName, len(saved.MediaURLs)))
	return nil
}

func (cs *chatService) commitSession(ctx context.Context, session *entity.Session) error {
	return cs.retryIdempotent(ctx, func(ctx context.Context) error {
		return cs.sessions.Put(ctx, session)
	})
}

// retryIdempotent applies bounded exponential backoff to an idempotent step.
// Non-transient failures stop immediately.
func (cs *chatService) retryIdempotent(ctx context.Context, op func(ctx context.Context) error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxElapsedTime = 5 * time.Second

	return backoff.Retry(func() error {
		err := cs.pool.Submit(ctx, op)
		if err != nil && !apperror.IsTransientStore(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(bo, ctx))
}

func (cs *chatService) publishEvent(ctx context.Context, event events.Event) {
	if cs.eventBus == nil {
		return
	}
	if err := cs.eventBus.Publish(ctx, event); err != nil {
		cs.logger.Warn("chat", "Failed to publish event", map[string]interface{}{
			"event": event.EventType(), "error": err.Error(),
		})
	}
}
