package implementation

import (
	"context"

	"ai-deepsearch-be/internal/model"
	"ai-deepsearch-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KnowledgeRepositoryImpl struct {
	db *gorm.DB
}

func NewKnowledgeRepository(db *gorm.DB) contract.KnowledgeRepository {
	return &KnowledgeRepositoryImpl{
		db: db,
	}
}

// SearchSimilarWithScore returns documents with cosine similarity scores.
// Cosine distance in pgvector is 1 - cosine_similarity, so we compute
// 1 - (embedding_value <=> query_vector).
func (r *KnowledgeRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredKnowledgeDocument, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.KnowledgeDocument
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("knowledge_documents").
		Select("knowledge_documents.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredKnowledgeDocument, len(results))
	for i, res := range results {
		doc := res.KnowledgeDocument
		scored[i] = &contract.ScoredKnowledgeDocument{
			Document:   &doc,
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

// SearchFullText ranks documents by websearch-style full-text match.
// The 'simple' config keeps matching language-neutral (content may be
// Vietnamese, which no Postgres stemmer covers).
func (r *KnowledgeRepositoryImpl) SearchFullText(ctx context.Context, query string, limit int) ([]*model.KnowledgeDocument, error) {
	if limit <= 0 {
		limit = 5
	}

	var docs []*model.KnowledgeDocument
	err := r.db.WithContext(ctx).
		Table("knowledge_documents").
		Where("to_tsvector('simple', content) @@ websearch_to_tsquery('simple', ?)", query).
		Order(gorm.Expr("ts_rank(to_tsvector('simple', content), websearch_to_tsquery('simple', ?)) DESC", query)).
		Limit(limit).
		Find(&docs).Error

	if err != nil {
		return nil, err
	}
	return docs, nil
}

// UpsertBulk inserts the batch, overwriting content/embedding/metadata for
// already-present ids (last writer wins per id).
func (r *KnowledgeRepositoryImpl) UpsertBulk(ctx context.Context, docs []*model.KnowledgeDocument) error {
	if len(docs) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "embedding_value", "metadata", "updated_at"}),
		}).
		Create(&docs).Error
}
