package agent

import (
	"context"
	"fmt"
	"strings"

	"ai-deepsearch-be/internal/constant"
	"ai-deepsearch-be/pkg/llm"
)

// maxRelevant caps how many graded document ids survive into the answer.
const maxRelevant = 3

type gradeResponse struct {
	RelevantIndices []int `json:"relevant_indices"`
}

// gradeDocuments classifies which retrieved documents actually answer the
// query. With nothing retrieved it short-circuits without an LLM call. A
// capability failure here is swallowed by the graph's fallback policy and
// resolves to "no relevant ids" (fail-open), pushing the session into the
// external-search branch instead of aborting it.
func (g *Graph) gradeDocuments(ctx context.Context, state *SessionState) (Step, error) {
	state.RelevantIDs = nil

	if len(state.Retrieved) == 0 {
		return StepRoute, nil
	}

	var sb strings.Builder
	for i, doc := range state.Retrieved {
		fmt.Fprintf(&sb, "[%d] %s\n", i, doc.Content)
	}

	prompt := fmt.Sprintf(constant.DocumentGraderPromptTemplate, state.RewrittenQuery, sb.String())
	parsed, err := llm.GenerateStructured[gradeResponse](ctx, g.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("grade documents: %w", err)
	}

	for _, idx := range parsed.RelevantIndices {
		if idx < 0 || idx >= len(state.Retrieved) {
			continue // silently discard out-of-range indices
		}
		state.RelevantIDs = append(state.RelevantIDs, state.Retrieved[idx].ID)
		if len(state.RelevantIDs) == maxRelevant {
			break
		}
	}

	if len(state.RelevantIDs) > 0 {
		return StepFinal, nil
	}
	return StepRoute, nil
}
