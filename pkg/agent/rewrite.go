package agent

import (
	"context"
	"fmt"
	"strings"

	"ai-deepsearch-be/internal/constant"
	"ai-deepsearch-be/pkg/llm"
)

// rewriteQuery normalizes the raw user query into a search-optimized form.
func (g *Graph) rewriteQuery(ctx context.Context, state *SessionState) (Step, error) {
	reply, err := g.llm.Chat(ctx, []llm.Message{
		{Role: "system", Content: constant.RewriteSystemPrompt},
		{Role: "user", Content: state.UserQuery},
	})
	if err != nil {
		return "", fmt.Errorf("rewrite query: %w", err)
	}

	state.RewrittenQuery = strings.TrimSpace(reply)
	if state.RewrittenQuery == "" {
		return "", fmt.Errorf("rewrite query: model returned an empty rewrite")
	}

	return StepRetrieve, nil
}
