package bootstrap

import (
	"log"
	"time"

	"eum-chatbot-be/internal/config"
	"eum-chatbot-be/internal/controller"
	"eum-chatbot-be/internal/pkg/logger"
	"eum-chatbot-be/internal/repository/memory"
	"eum-chatbot-be/internal/repository/unitofwork"
	"eum-chatbot-be/internal/service"
	"eum-chatbot-be/pkg/agent"
	"eum-chatbot-be/pkg/classify"
	"eum-chatbot-be/pkg/embedding"
	"eum-chatbot-be/pkg/llm/factory"
	"eum-chatbot-be/pkg/rag"
	"eum-chatbot-be/pkg/respond"
	"eum-chatbot-be/pkg/translate"
	"eum-chatbot-be/pkg/websearch"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatbotController    controller.IChatbotController
	AgenticController    controller.IAgenticController
	PreprocessController controller.IPreprocessController
	AdminController      controller.IAdminController

	// Background services (run from main.go)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Model backends
	embeddingProvider := embedding.NewOllamaProvider(cfg.Embedding.BaseURL, cfg.Embedding.Model)

	lightweight, err := factory.NewLLMProvider(factory.Params{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.LightweightModel,
		BaseURL:  cfg.LLM.BaseURL,
		APIKey:   cfg.LLM.APIKey,
		Timeout:  cfg.LLM.LightweightTimeout,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize lightweight LLM provider: %v", err)
	}

	highPerformance, err := factory.NewLLMProvider(factory.Params{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.HighPerformanceModel,
		BaseURL:  cfg.LLM.BaseURL,
		APIKey:   cfg.LLM.APIKey,
		Timeout:  cfg.LLM.HighPerformanceTimeout,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize high-performance LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM provider: %s (%s / %s)", cfg.LLM.Provider, cfg.LLM.LightweightModel, cfg.LLM.HighPerformanceModel)

	// 4. Pipeline stages
	preprocessor := translate.NewPreprocessor(lightweight, sysLogger)
	postprocessor := translate.NewPostprocessor(lightweight, sysLogger)
	chatbotClassifier := classify.NewChatbotClassifier(lightweight, sysLogger)
	agenticClassifier := classify.NewAgenticClassifier(lightweight, sysLogger)

	retriever := rag.NewRetriever(uowFactory, embeddingProvider, rag.Config{
		SearchK:   cfg.RAG.SearchK,
		Threshold: cfg.RAG.Threshold,
	}, sysLogger)

	webSearch := websearch.NewTavilyProvider(cfg.WebSearch.APIKey, cfg.WebSearch.BaseURL, 15*time.Second)

	generator := respond.NewGenerator(lightweight, highPerformance, retriever, webSearch, sysLogger)

	// 5. Agent state machine
	sessionRepo := memory.NewSessionRepository()
	machine := agent.NewMachine(sessionRepo, []agent.Task{
		agent.NewScheduleTask(),
		agent.NewJobTask(lightweight),
		agent.NewWritingTask(highPerformance, sysLogger),
	}, sysLogger)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Ingest.TopicName, pubSub)
	chatbotService := service.NewChatbotService(preprocessor, chatbotClassifier, generator, postprocessor, sysLogger)
	agenticService := service.NewAgenticService(machine, preprocessor, agenticClassifier, generator, postprocessor, sysLogger)
	adminService := service.NewAdminService(sysLogger, publisherService, uowFactory)
	consumerService := service.NewConsumerService(pubSub, cfg.Ingest.TopicName, uowFactory, embeddingProvider, sysLogger)

	// 7. Controllers
	return &Container{
		ChatbotController:    controller.NewChatbotController(chatbotService),
		AgenticController:    controller.NewAgenticController(agenticService),
		PreprocessController: controller.NewPreprocessController(chatbotService, lightweight),
		AdminController:      controller.NewAdminController(adminService),
		ConsumerService:      consumerService,
		Logger:               sysLogger,
	}
}
