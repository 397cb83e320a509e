package agent

import (
	"context"
	"fmt"
	"strings"

	"ai-deepsearch-be/internal/pkg/logger"
	"ai-deepsearch-be/pkg/llm"
	"ai-deepsearch-be/pkg/store"
)

// Config encapsulates the agent's tunable knobs.
type Config struct {
	// MaxSteps bounds total graph transitions per session. It is the sole
	// termination guarantee for the retrieve-search-ingest cycle, because
	// ingestion does not guarantee the next grading pass finds a match.
	MaxSteps int
	// TopK is the retrieval depth for similarity search.
	TopK int
	// ArxivMaxResults caps accumulated academic hits (hard-clamped to 50
	// inside the adapter).
	ArxivMaxResults int
	// ContextCharLimit clamps extracted source text before summarization.
	ContextCharLimit int
}

// DefaultConfig returns the agent defaults.
func DefaultConfig() Config {
	return Config{
		MaxSteps:         50,
		TopK:             3,
		ArxivMaxResults:  25,
		ContextCharLimit: 8000,
	}
}

// failurePolicy makes each node's error behavior an explicit configuration
// instead of an accident of which function catches.
type failurePolicy int

const (
	// policyAbort propagates a node failure to the session boundary.
	policyAbort failurePolicy = iota
	// policyFallback swallows the failure and continues at the node's
	// fallback step (the grader's fail-open behavior).
	policyFallback
)

type node struct {
	run       func(ctx context.Context, state *SessionState) (Step, error)
	onFailure failurePolicy
	fallback  Step
}

// Graph is the cyclic control graph driving one deep-search session:
// Rewrite → Retrieve → Grade → {Final | Route} → {Web | Arxiv} →
// Summarize → Ingest → Retrieve → … under a bounded step budget.
type Graph struct {
	llm       llm.LLMProvider
	store     store.ContentStore
	web       WebSearcher
	arxiv     PaperSearcher
	extractor TextExtractor
	progress  ProgressNotifier
	logger    logger.ILogger
	cfg       Config
	nodes     map[Step]node
}

// Deps carries the injected capability providers.
type Deps struct {
	LLM       llm.LLMProvider
	Store     store.ContentStore
	Web       WebSearcher
	Arxiv     PaperSearcher
	Extractor TextExtractor
	Progress  ProgressNotifier // optional, observation only
	Logger    logger.ILogger
}

func New(deps Deps, cfg Config) *Graph {
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultConfig().MaxSteps
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultConfig().TopK
	}
	if cfg.ArxivMaxResults <= 0 {
		cfg.ArxivMaxResults = DefaultConfig().ArxivMaxResults
	}
	if cfg.ContextCharLimit <= 0 {
		cfg.ContextCharLimit = DefaultConfig().ContextCharLimit
	}

	g := &Graph{
		llm:       deps.LLM,
		store:     deps.Store,
		web:       deps.Web,
		arxiv:     deps.Arxiv,
		extractor: deps.Extractor,
		progress:  deps.Progress,
		logger:    deps.Logger,
		cfg:       cfg,
	}

	g.nodes = map[Step]node{
		StepRewrite:     {run: g.rewriteQuery, onFailure: policyAbort},
		StepRetrieve:    {run: g.retrieveDocuments, onFailure: policyAbort},
		StepGrade:       {run: g.gradeDocuments, onFailure: policyFallback, fallback: StepRoute},
		StepRoute:       {run: g.routeQuery, onFailure: policyAbort},
		StepWebSearch:   {run: g.searchWeb, onFailure: policyAbort},
		StepArxivSearch: {run: g.searchArxiv, onFailure: policyAbort},
		StepSummarize:   {run: g.summarizeResults, onFailure: policyAbort},
		StepIngest:      {run: g.ingestSummaries, onFailure: policyAbort},
		StepFinal:       {run: g.finalResults, onFailure: policyAbort},
	}

	return g
}

// Run drives the state machine for one session until Final, a fatal node
// error, context cancellation, or budget exhaustion.
func (g *Graph) Run(ctx context.Context, sessionID, userQuery string) (*Result, error) {
	if strings.TrimSpace(userQuery) == "" {
		return nil, fmt.Errorf("user query must not be empty")
	}

	state := &SessionState{UserQuery: userQuery}
	current := StepRewrite

	for transitions := 0; ; transitions++ {
		if current == StepEnd {
			return state.result(), nil
		}
		if transitions >= g.cfg.MaxSteps {
			g.logger.Warn("Agent", "Step budget exhausted", map[string]interface{}{
				"session_id": sessionID,
				"max_steps":  g.cfg.MaxSteps,
			})
			return nil, ErrBudgetExceeded
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		g.notify(sessionID, current)

		n, ok := g.nodes[current]
		if !ok {
			return nil, fmt.Errorf("no node registered for step %s", current)
		}

		next, err := n.run(ctx, state)
		if err != nil {
			if n.onFailure != policyFallback {
				return nil, fmt.Errorf("step %s: %w", current, err)
			}
			g.logger.Warn("Agent", "Step failed, continuing on fallback path", map[string]interface{}{
				"session_id": sessionID,
				"step":       string(current),
				"error":      err.Error(),
			})
			next = n.fallback
		}

		current = next
	}
}

func (g *Graph) notify(sessionID string, step Step) {
	if g.progress == nil {
		return
	}
	if msg := StepDescription(step); msg != "" {
		g.progress.Step(sessionID, step, msg)
	}
}
