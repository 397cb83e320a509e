package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-deepsearch-be/internal/constant"
	"ai-deepsearch-be/pkg/llm"
	"ai-deepsearch-be/pkg/search/arxiv"
)

// routeQuery classifies the rewritten query into an external-search branch.
// The web branch is the default: only the literal arxiv route value selects
// the academic branch, and malformed classifier output also resolves to web.
// A transport-level capability failure still aborts the session.
func (g *Graph) routeQuery(ctx context.Context, state *SessionState) (Step, error) {
	prompt := fmt.Sprintf(constant.RouterPromptTemplate, state.RewrittenQuery)

	raw, err := g.llm.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("route query: %w", err)
	}

	decision := &RoutingDecision{Route: BranchWeb, ArxivField: arxiv.FieldAll}

	var parsed RoutingDecision
	if jsonErr := json.Unmarshal(llm.CleanJSONResponse(raw), &parsed); jsonErr != nil {
		g.logger.Warn("Agent", "Malformed router output, defaulting to web branch", map[string]interface{}{
			"error": jsonErr.Error(),
		})
	} else if parsed.Route == BranchArxiv {
		decision.Route = BranchArxiv
		decision.ArxivField = arxiv.NormalizeField(parsed.ArxivField)
	}

	state.Routing = decision

	if decision.Route == BranchArxiv {
		return StepArxivSearch, nil
	}
	return StepWebSearch, nil
}
