package contract

import (
	"context"

	"ai-deepsearch-be/internal/model"
)

// ScoredKnowledgeDocument pairs a document with its dense similarity score.
type ScoredKnowledgeDocument struct {
	Document   *model.KnowledgeDocument
	Similarity float64
}

type KnowledgeRepository interface {
	// SearchSimilarWithScore runs dense KNN over the embedding column.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*ScoredKnowledgeDocument, error)

	// SearchFullText runs lexical full-text search over the content column.
	SearchFullText(ctx context.Context, query string, limit int) ([]*model.KnowledgeDocument, error)

	// UpsertBulk writes documents in one batch; conflicting ids are updated.
	UpsertBulk(ctx context.Context, docs []*model.KnowledgeDocument) error
}
