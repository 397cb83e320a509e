package service

import (
	"context"
	"time"

	"ai-deepsearch-be/internal/pkg/logger"
	"ai-deepsearch-be/pkg/agent"
)

type ISearchService interface {
	Run(ctx context.Context, sessionID, query string) (*agent.Result, error)
}

type searchService struct {
	graph  *agent.Graph
	logger logger.ILogger
}

func NewSearchService(graph *agent.Graph, log logger.ILogger) ISearchService {
	return &searchService{
		graph:  graph,
		logger: log,
	}
}

// Run drives one deep-search session. Each session owns an independent
// state; nothing is shared across concurrent calls except the content store.
func (s *searchService) Run(ctx context.Context, sessionID, query string) (*agent.Result, error) {
	start := time.Now()
	s.logger.Info("Search", "Session started", map[string]interface{}{
		"session_id": sessionID,
	})

	result, err := s.graph.Run(ctx, sessionID, query)
	if err != nil {
		s.logger.Error("Search", "Session failed", map[string]interface{}{
			"session_id": sessionID,
			"elapsed_ms": time.Since(start).Milliseconds(),
			"error":      err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Search", "Session finished", map[string]interface{}{
		"session_id": sessionID,
		"elapsed_ms": time.Since(start).Milliseconds(),
		"results":    len(result.FinalResults),
	})
	return result, nil
}
