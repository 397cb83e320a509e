package agent

import (
	"context"
)

// finalResults assembles the answer from exactly the retrieved documents the
// grader marked relevant, in grading order.
func (g *Graph) finalResults(ctx context.Context, state *SessionState) (Step, error) {
	byID := make(map[string]string, len(state.Retrieved))
	for _, doc := range state.Retrieved {
		byID[doc.ID] = doc.Content
	}

	results := make([]string, 0, len(state.RelevantIDs))
	for _, id := range state.RelevantIDs {
		if content, ok := byID[id]; ok {
			results = append(results, content)
		}
	}

	state.FinalResults = results
	return StepEnd, nil
}
