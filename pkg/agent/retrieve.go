package agent

import (
	"context"
	"fmt"
)

// retrieveDocuments queries the content store for prior knowledge.
// An empty result is a normal outcome, not an error.
func (g *Graph) retrieveDocuments(ctx context.Context, state *SessionState) (Step, error) {
	docs, err := g.store.SimilaritySearch(ctx, state.RewrittenQuery, g.cfg.TopK)
	if err != nil {
		return "", fmt.Errorf("similarity search: %w", err)
	}

	state.Retrieved = docs
	return StepGrade, nil
}
