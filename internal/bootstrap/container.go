package bootstrap

import (
	"context"
	"log"

	"ai-notes-be/internal/config"
	"ai-notes-be/internal/controller"
	"ai-notes-be/internal/pkg/logger"
	"ai-notes-be/internal/repository/contract"
	"ai-notes-be/internal/repository/implementation"
	"ai-notes-be/internal/service"
	"ai-notes-be/pkg/llm/factory"
	pktNats "ai-notes-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	Logger         logger.ILogger
	NoteRepository contract.NoteRepository

	// Controllers
	NoteController   controller.INoteController
	SystemController controller.ISystemController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	pubSub  *gochannel.GoChannel
	natsPub *pktNats.Publisher
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	noteRepository := implementation.NewNoteRepository(db)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS is optional; activity is only logged without it.
	var relay service.EventRelay
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(ctx, cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS, activity relay disabled", map[string]interface{}{"error": err.Error()})
		} else {
			natsPub = pub
			relay = pub
		}
	}

	// 3. Services
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Keys.Nvidia,
		cfg.Ai.LLMModel,
	)
	if err != nil {
		_ = pubSub.Close()
		if natsPub != nil {
			natsPub.Close()
		}
		return nil, err
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	if cfg.Keys.Nvidia == "" {
		sysLogger.Warn("Bootstrap", "NVIDIA_API_KEY is not set, summarize endpoints will fail", nil)
	}

	summarizerService := service.NewSummarizerService(llmProvider)
	publisherService := service.NewPublisherService(cfg.App.ActivityTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.ActivityTopic, relay, sysLogger)

	noteService := service.NewNoteService(noteRepository, summarizerService, publisherService, sysLogger)
	uploadService := service.NewUploadService()

	// 4. Controllers
	return &Container{
		Logger:           sysLogger,
		NoteRepository:   noteRepository,
		NoteController:   controller.NewNoteController(noteService),
		SystemController: controller.NewSystemController(uploadService),
		ConsumerService:  consumerService,
		pubSub:           pubSub,
		natsPub:          natsPub,
	}, nil
}

// Close releases the event bus and the NATS connection. The database is owned
// by the caller.
func (c *Container) Close() error {
	err := c.pubSub.Close()
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	return err
}
