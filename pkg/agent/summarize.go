package agent

import (
	"context"
	"fmt"
	"strings"

	"ai-deepsearch-be/internal/constant"
	"ai-deepsearch-be/pkg/search/arxiv"
	"ai-deepsearch-be/pkg/utils"
)

// summarizeResults converts each raw search result into one bounded-length
// paragraph. Faults are isolated per item: a fetch, extraction, or
// generation failure skips that item and the batch continues, so the output
// can be shorter than the input. Surviving summaries stay paired with their
// source.
func (g *Graph) summarizeResults(ctx context.Context, state *SessionState) (Step, error) {
	academic := state.Routing != nil && state.Routing.Route == BranchArxiv

	summaries := make([]SummaryPair, 0, len(state.SearchResults))
	for _, item := range state.SearchResults {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := g.extractItem(ctx, item, academic)
		if err != nil {
			g.logger.Warn("Agent", "Skipping source, extraction failed", map[string]interface{}{
				"source": item.Source,
				"error":  err.Error(),
			})
			continue
		}

		template := constant.WebSummaryPromptTemplate
		if academic {
			template = constant.ArxivSummaryPromptTemplate
		}
		prompt := fmt.Sprintf(template,
			state.RewrittenQuery,
			utils.ClampChars(text, g.cfg.ContextCharLimit),
		)

		summary, err := g.llm.Generate(ctx, prompt)
		if err != nil {
			g.logger.Warn("Agent", "Skipping source, summarization failed", map[string]interface{}{
				"source": item.Source,
				"error":  err.Error(),
			})
			continue
		}

		summaries = append(summaries, SummaryPair{
			Item: item,
			Text: strings.TrimSpace(summary),
		})
	}

	state.Summaries = summaries
	return StepIngest, nil
}

func (g *Graph) extractItem(ctx context.Context, item SearchResult, academic bool) (string, error) {
	if academic {
		return g.extractor.PDFText(ctx, arxiv.DerivePDFURL(item.Source))
	}
	return g.extractor.PageText(ctx, item.Source)
}
