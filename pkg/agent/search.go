package agent

import (
	"context"
	"fmt"

	"ai-deepsearch-be/pkg/search/arxiv"
)

// searchWeb fetches general-web candidates. A request-level failure is fatal
// to the adapter call and propagates.
func (g *Graph) searchWeb(ctx context.Context, state *SessionState) (Step, error) {
	hits, err := g.web.Search(ctx, state.RewrittenQuery)
	if err != nil {
		return "", fmt.Errorf("web search: %w", err)
	}

	results := make([]SearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, SearchResult{
			Title:  hit.Title,
			Source: hit.URL,
		})
	}

	state.SearchResults = results
	return StepSummarize, nil
}

// searchArxiv fetches academic candidates using the routed field selector.
func (g *Graph) searchArxiv(ctx context.Context, state *SessionState) (Step, error) {
	field := arxiv.FieldAll
	if state.Routing != nil {
		field = arxiv.NormalizeField(state.Routing.ArxivField)
	}

	papers, err := g.arxiv.Search(ctx, state.RewrittenQuery, field, g.cfg.ArxivMaxResults)
	if err != nil {
		return "", fmt.Errorf("arxiv search: %w", err)
	}

	results := make([]SearchResult, 0, len(papers))
	for _, paper := range papers {
		results = append(results, SearchResult{
			Title:    paper.Title,
			Source:   paper.Link,
			Authors:  paper.Authors,
			Abstract: paper.Abstract,
		})
	}

	state.SearchResults = results
	return StepSummarize, nil
}
