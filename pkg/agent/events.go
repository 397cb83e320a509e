package agent

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// stepDescriptions are the human-readable progress messages streamed to the
// client before each node runs.
var stepDescriptions = map[Step]string{
	StepRewrite:     "✍️ Optimizing query...",
	StepRetrieve:    "🔎 Searching internal knowledge base...",
	StepGrade:       "⚖️ Grading document relevance...",
	StepRoute:       "🧭 Analyzing and routing for external search...",
	StepWebSearch:   "🌐 Searching the web...",
	StepArxivSearch: "🔬 Searching ArXiv...",
	StepSummarize:   "📄 Summarizing new information...",
	StepIngest:      "💾 Saving new information to database...",
	StepFinal:       "✅ Preparing final answer...",
}

// StepDescription returns the progress message for a step, or "" for steps
// that are not announced (e.g. the end marker).
func StepDescription(step Step) string {
	return stepDescriptions[step]
}

// ProgressTopic names the per-session pub/sub topic progress events flow on.
func ProgressTopic(sessionID string) string {
	return "agent.progress." + sessionID
}

// ProgressEvent is the wire shape of one client-visible event. Exactly one
// "result" or "error" event terminates a session's stream.
type ProgressEvent struct {
	Type    string      `json:"type"` // "step" | "result" | "error"
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// WatermillNotifier publishes step events on a watermill publisher.
// Publishing is fire-and-forget: a failed publish is dropped, never allowed
// to gate a transition.
type WatermillNotifier struct {
	publisher message.Publisher
}

func NewWatermillNotifier(publisher message.Publisher) *WatermillNotifier {
	return &WatermillNotifier{publisher: publisher}
}

func (n *WatermillNotifier) Step(sessionID string, step Step, msg string) {
	payload, err := json.Marshal(ProgressEvent{Type: "step", Message: msg})
	if err != nil {
		return
	}
	_ = n.publisher.Publish(ProgressTopic(sessionID), message.NewMessage(watermill.NewUUID(), payload))
}
