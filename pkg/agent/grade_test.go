package agent

import (
	"context"
	"testing"

	"ai-deepsearch-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func retrievedDocs(n int) []store.Document {
	docs := make([]store.Document, n)
	for i := range docs {
		docs[i] = store.Document{ID: string(rune('a' + i)), Content: "content"}
	}
	return docs
}

func TestGradeDocumentsEmptyRetrievalSkipsModel(t *testing.T) {
	h := newHarness(DefaultConfig())
	state := &SessionState{RewrittenQuery: "query"}

	next, err := h.graph.gradeDocuments(context.Background(), state)
	require.NoError(t, err)

	assert.Equal(t, StepRoute, next)
	assert.Zero(t, h.llm.gradeCalls, "nothing retrieved means nothing to grade")
}

func TestGradeDocuments(t *testing.T) {
	tests := []struct {
		name     string
		docs     int
		reply    string
		wantIDs  []string
		wantStep Step
	}{
		{
			name:     "relevant subset",
			docs:     3,
			reply:    `{"relevant_indices": [2, 0]}`,
			wantIDs:  []string{"c", "a"},
			wantStep: StepFinal,
		},
		{
			name:     "no relevant documents",
			docs:     3,
			reply:    `{"relevant_indices": []}`,
			wantIDs:  nil,
			wantStep: StepRoute,
		},
		{
			name:     "out of range indices are discarded",
			docs:     2,
			reply:    `{"relevant_indices": [0, 7, -1, 1]}`,
			wantIDs:  []string{"a", "b"},
			wantStep: StepFinal,
		},
		{
			name:     "only out of range indices",
			docs:     2,
			reply:    `{"relevant_indices": [5, 9]}`,
			wantIDs:  nil,
			wantStep: StepRoute,
		},
		{
			name:     "relevant ids are capped",
			docs:     5,
			reply:    `{"relevant_indices": [0, 1, 2, 3, 4]}`,
			wantIDs:  []string{"a", "b", "c"},
			wantStep: StepFinal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(DefaultConfig())
			h.llm.grade = []canned{{text: tt.reply}}
			state := &SessionState{
				RewrittenQuery: "query",
				Retrieved:      retrievedDocs(tt.docs),
				RelevantIDs:    []string{"stale"},
			}

			next, err := h.graph.gradeDocuments(context.Background(), state)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStep, next)
			assert.Equal(t, tt.wantIDs, state.RelevantIDs, "stale ids from the previous pass must not leak")
		})
	}
}

func TestGradeDocumentsMalformedReply(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.llm.grade = []canned{{text: "these all look great to me!"}}
	state := &SessionState{
		RewrittenQuery: "query",
		Retrieved:      retrievedDocs(2),
	}

	_, err := h.graph.gradeDocuments(context.Background(), state)
	require.Error(t, err, "the graph's fallback policy handles this, not the node")
}
