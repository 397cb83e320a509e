package bootstrap

import (
	"log"

	"ai-deepsearch-be/internal/config"
	"ai-deepsearch-be/internal/controller"
	"ai-deepsearch-be/internal/pkg/logger"
	"ai-deepsearch-be/internal/repository/implementation"
	"ai-deepsearch-be/internal/service"
	internalWS "ai-deepsearch-be/internal/websocket"
	"ai-deepsearch-be/pkg/agent"
	"ai-deepsearch-be/pkg/embedding"
	"ai-deepsearch-be/pkg/extract"
	"ai-deepsearch-be/pkg/llm/factory"
	"ai-deepsearch-be/pkg/search/arxiv"
	"ai-deepsearch-be/pkg/search/web"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SearchController controller.ISearchController

	// WebSocket streaming
	SessionHandler *internalWS.Handler
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	sessionLogger := logger.NewIsolatedLogger(cfg.App.SessionLogFilePath)

	// 2. Event Bus (in-process, one progress topic per session)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else if cfg.Ai.EmbeddingProvider == "openai" {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI)
		log.Printf("[INFO] Using Embedding Provider: OPENAI")
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmAPIKey := cfg.Keys.GoogleGemini
	if cfg.Ai.LLMProvider == "openai" {
		llmAPIKey = cfg.Keys.OpenAI
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		llmAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Knowledge Store (pgvector + full-text, RRF fusion)
	knowledgeRepo := implementation.NewKnowledgeRepository(db)
	knowledgeStore := service.NewKnowledgeStoreService(knowledgeRepo, embeddingProvider, sysLogger)

	// 5. External Source Adapters
	webSearcher := web.NewSearcher(cfg.Agent.WebSearchLimit)
	arxivSearcher := arxiv.NewSearcher()
	extractor := extract.NewExtractor(cfg.Agent.PDFPageLimit)

	// 6. Agent Graph
	graph := agent.New(agent.Deps{
		LLM:       llmProvider,
		Store:     knowledgeStore,
		Web:       webSearcher,
		Arxiv:     arxivSearcher,
		Extractor: extractor,
		Progress:  agent.NewWatermillNotifier(pubSub),
		Logger:    sessionLogger,
	}, agent.Config{
		MaxSteps:         cfg.Agent.MaxSteps,
		TopK:             cfg.Agent.RetrieveTopK,
		ArxivMaxResults:  cfg.Agent.ArxivMaxResults,
		ContextCharLimit: cfg.Agent.ContextCharLimit,
	})

	searchService := service.NewSearchService(graph, sessionLogger)

	return &Container{
		SearchController: controller.NewSearchController(searchService),
		SessionHandler:   internalWS.NewHandler(searchService, pubSub, sessionLogger),
	}
}
