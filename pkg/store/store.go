package store

import (
	"context"

	"github.com/google/uuid"
)

// Document is a read-only snapshot of a stored knowledge entry.
type Document struct {
	ID       string                 `json:"id"`
	Content  string                 `json:"content"`
	Score    float64                `json:"score"`
	Metadata map[string]interface{} `json:"metadata"`
}

// UpsertItem is one entry to be written. ID is content-addressed so a repeat
// write for the same source overwrites instead of duplicating.
type UpsertItem struct {
	ID       uuid.UUID
	Content  string
	Metadata map[string]interface{}
}

// ContentStore is the knowledge base the agent reads from and writes back to.
type ContentStore interface {
	// SimilaritySearch returns the top k documents for the query, ranked by
	// hybrid (dense + lexical) relevance. An empty result is not an error.
	SimilaritySearch(ctx context.Context, query string, k int) ([]Document, error)

	// Upsert writes the items in one batch. Existing ids are overwritten.
	Upsert(ctx context.Context, items []UpsertItem) error
}

// DocumentID derives the deterministic store key for a source URL.
// Re-ingesting the same URL always maps to the same id.
func DocumentID(sourceURL string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(sourceURL))
}
