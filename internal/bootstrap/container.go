package bootstrap

import (
	"context"
	"log"

	"wa-feedback-be/internal/config"
	"wa-feedback-be/internal/controller"
	"wa-feedback-be/internal/pkg/logger"
	"wa-feedback-be/internal/repository/implementation"
	"wa-feedback-be/internal/repository/redisstore"
	"wa-feedback-be/internal/service"
	"wa-feedback-be/pkg/analyzer"
	"wa-feedback-be/pkg/archive"
	"wa-feedback-be/pkg/gateway"
	"wa-feedback-be/pkg/llm/factory"
	pktNats "wa-feedback-be/pkg/nats"
	"wa-feedback-be/pkg/objectstore"
	"wa-feedback-be/pkg/workerpool"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ReplyController  controller.IReplyController
	HealthController controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Shared infrastructure, torn down on shutdown
	Logger  logger.ILogger
	NatsPub *pktNats.Publisher
	Redis   *redis.Client
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Infrastructure clients (process-wide singletons)
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	objectStore, err := objectstore.NewS3Store(context.Background(), cfg.Storage.Bucket, cfg.Storage.Region)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize object store: %v", err)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OpenAIKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3. Event Bus (in-process)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 4. Stores and adapters
	sessionStore := redisstore.NewSessionStore(rdb)
	messageStore := redisstore.NewMessageStore(rdb)
	feedbackRepo := implementation.NewFeedbackRepository(db)

	mediaFetcher := archive.NewTwilioMediaClient(cfg.Twilio.AccountSid, cfg.Twilio.AuthToken)
	mediaArchiver := archive.NewArchiver(mediaFetcher, objectStore, sysLogger)
	messagingGateway := gateway.NewTwilioGateway(cfg.Twilio.AccountSid, cfg.Twilio.AuthToken, cfg.Twilio.WhatsappFrom)
	conversationAnalyzer := analyzer.NewLLMAnalyzer(llmProvider)

	pool := workerpool.New(cfg.Chat.WorkerPoolSize)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Chat.TranscriptTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Chat.TranscriptTopic, messageStore, objectStore)

	var eventBus service.EventPublisher
	if natsPub != nil {
		eventBus = natsPub
	}

	chatService := service.NewChatService(
		sessionStore,
		messageStore,
		feedbackRepo,
		conversationAnalyzer,
		mediaArchiver,
		messagingGateway,
		publisherService,
		eventBus,
		pool,
		sysLogger,
		cfg.Chat.AnalyzerTimeout,
		cfg.Chat.CooldownWindow,
	)

	return &Container{
		ReplyController:  controller.NewReplyController(chatService, cfg.App.ApiSecret),
		HealthController: controller.NewHealthController(),
		ConsumerService:  consumerService,
		Logger:           sysLogger,
		NatsPub:          natsPub,
		Redis:            rdb,
	}
}
