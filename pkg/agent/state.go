package agent

import (
	"errors"

	"ai-deepsearch-be/pkg/store"
)

// Step identifies one node of the control graph.
type Step string

const (
	StepRewrite     Step = "rewrite_query"
	StepRetrieve    Step = "retrieve_from_db"
	StepGrade       Step = "grade"
	StepRoute       Step = "router"
	StepWebSearch   Step = "web_search"
	StepArxivSearch Step = "arxiv_search"
	StepSummarize   Step = "summarize"
	StepIngest      Step = "add_to_db"
	StepFinal       Step = "final"
	StepEnd         Step = "end"
)

// Routing branches. Anything other than the arxiv literal resolves to web.
const (
	BranchWeb   = "web_search"
	BranchArxiv = "arxiv_search"
)

// ErrBudgetExceeded is the distinct terminal condition for a session that
// consumed its step budget without reaching Final. No partial answer is
// attached; ungraded content must never masquerade as one.
var ErrBudgetExceeded = errors.New("step budget exhausted before an answer was found")

// RoutingDecision is the router's classification for one loop iteration.
type RoutingDecision struct {
	Route      string `json:"route"`
	ArxivField string `json:"arxiv_field"`
}

// SearchResult is one raw external hit, normalized across branches.
// Authors and Abstract are only set on the academic branch.
type SearchResult struct {
	Title    string `json:"title"`
	Source   string `json:"source"`
	Authors  string `json:"authors,omitempty"`
	Abstract string `json:"abstract,omitempty"`
}

// SummaryPair couples a surviving summary with the search result it was
// produced from. Pairing is positional per the summarizer contract.
type SummaryPair struct {
	Item SearchResult
	Text string
}

// SessionState is the mutable record threaded through one graph run.
// It is owned by exactly one Run invocation and never shared.
type SessionState struct {
	UserQuery      string
	RewrittenQuery string
	Routing        *RoutingDecision
	Retrieved      []store.Document
	RelevantIDs    []string
	SearchResults  []SearchResult
	Summaries      []SummaryPair
	IngestStatus   string
	FinalResults   []string
}

// Result is the graph's terminal output for a successful session.
type Result struct {
	UserQuery      string           `json:"user_query"`
	RewrittenQuery string           `json:"rewritten_query"`
	Routing        *RoutingDecision `json:"routing_decision,omitempty"`
	FinalResults   []string         `json:"final_results"`
}

func (s *SessionState) result() *Result {
	return &Result{
		UserQuery:      s.UserQuery,
		RewrittenQuery: s.RewrittenQuery,
		Routing:        s.Routing,
		FinalResults:   s.FinalResults,
	}
}
