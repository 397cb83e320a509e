package service

import (
	"context"
	"fmt"

	"ai-deepsearch-be/internal/model"
	"ai-deepsearch-be/internal/pkg/logger"
	"ai-deepsearch-be/internal/repository/contract"
	"ai-deepsearch-be/pkg/embedding"
	"ai-deepsearch-be/pkg/store"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// knowledgeStoreService implements store.ContentStore over Postgres:
// dense pgvector KNN plus lexical full-text, fused with RRF.
type knowledgeStoreService struct {
	repo              contract.KnowledgeRepository
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewKnowledgeStoreService(
	repo contract.KnowledgeRepository,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) store.ContentStore {
	return &knowledgeStoreService{
		repo:              repo,
		embeddingProvider: embeddingProvider,
		logger:            log,
	}
}

func (s *knowledgeStoreService) SimilaritySearch(ctx context.Context, query string, k int) ([]store.Document, error) {
	embeddingRes, err := s.embeddingProvider.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	scored, err := s.repo.SearchSimilarWithScore(ctx, embeddingRes.Embedding.Values, k)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	dense := make([]store.Document, 0, len(scored))
	for _, res := range scored {
		dense = append(dense, toStoreDocument(res.Document, res.Similarity))
	}

	// Lexical signal is additive: if full-text search fails, degrade to
	// dense-only ranking rather than failing the retrieval.
	var lexical []store.Document
	lexDocs, err := s.repo.SearchFullText(ctx, query, k)
	if err != nil {
		s.logger.Warn("KnowledgeStore", "Full-text search failed, using dense ranking only", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		for _, doc := range lexDocs {
			lexical = append(lexical, toStoreDocument(doc, 0))
		}
	}

	return store.FuseRRF(dense, lexical, k), nil
}

func (s *knowledgeStoreService) Upsert(ctx context.Context, items []store.UpsertItem) error {
	if len(items) == 0 {
		return nil
	}

	docs := make([]*model.KnowledgeDocument, 0, len(items))
	for _, item := range items {
		embeddingRes, err := s.embeddingProvider.Generate(item.Content, embedding.TaskRetrievalDocument)
		if err != nil {
			return fmt.Errorf("embedding generation failed for %s: %w", item.ID, err)
		}

		docs = append(docs, &model.KnowledgeDocument{
			Id:             item.ID,
			Content:        item.Content,
			EmbeddingValue: pgvector.NewVector(embeddingRes.Embedding.Values),
			Metadata:       datatypes.JSONMap(item.Metadata),
		})
	}

	if err := s.repo.UpsertBulk(ctx, docs); err != nil {
		return fmt.Errorf("knowledge upsert failed: %w", err)
	}
	return nil
}

func toStoreDocument(m *model.KnowledgeDocument, score float64) store.Document {
	return store.Document{
		ID:       m.Id.String(),
		Content:  m.Content,
		Score:    score,
		Metadata: map[string]interface{}(m.Metadata),
	}
}
