package agent

import (
	"context"
	"fmt"

	"ai-deepsearch-be/pkg/store"
)

// ingestSummaries writes the surviving summaries back into the content store
// keyed by content-addressed source id, so re-ingesting a URL overwrites
// instead of duplicating. A store failure is converted into a status string;
// it never aborts the session.
func (g *Graph) ingestSummaries(ctx context.Context, state *SessionState) (Step, error) {
	if len(state.SearchResults) == 0 || len(state.Summaries) == 0 {
		state.IngestStatus = "no new knowledge to ingest"
		return StepRetrieve, nil
	}

	academic := state.Routing != nil && state.Routing.Route == BranchArxiv

	items := make([]store.UpsertItem, 0, len(state.Summaries))
	for _, pair := range state.Summaries {
		metadata := map[string]interface{}{
			"title":  pair.Item.Title,
			"source": pair.Item.Source,
		}
		if academic && pair.Item.Authors != "" {
			metadata["authors"] = pair.Item.Authors
		}

		items = append(items, store.UpsertItem{
			ID:       store.DocumentID(pair.Item.Source),
			Content:  pair.Text,
			Metadata: metadata,
		})
	}

	if err := g.store.Upsert(ctx, items); err != nil {
		g.logger.Error("Agent", "Knowledge upsert failed", map[string]interface{}{
			"error": err.Error(),
		})
		state.IngestStatus = fmt.Sprintf("failed to save new knowledge: %v", err)
		return StepRetrieve, nil
	}

	state.IngestStatus = fmt.Sprintf("ingested %d documents", len(items))
	return StepRetrieve, nil
}
