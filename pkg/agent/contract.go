package agent

import (
	"context"

	"ai-deepsearch-be/pkg/search/arxiv"
	"ai-deepsearch-be/pkg/search/web"
)

// WebSearcher fetches raw general-web candidates for a query.
type WebSearcher interface {
	Search(ctx context.Context, query string) ([]web.Result, error)
}

// PaperSearcher fetches academic candidates for a query and field selector.
type PaperSearcher interface {
	Search(ctx context.Context, query, field string, maxResults int) ([]arxiv.Paper, error)
}

// TextExtractor turns a source URL into plain text.
type TextExtractor interface {
	PageText(ctx context.Context, pageURL string) (string, error)
	PDFText(ctx context.Context, pdfURL string) (string, error)
}

// ProgressNotifier receives a notification before each step executes.
// Implementations must never block or fail a transition; delivery is
// best-effort observation only.
type ProgressNotifier interface {
	Step(sessionID string, step Step, message string)
}
