package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"ai-deepsearch-be/pkg/llm"
	"ai-deepsearch-be/pkg/search/arxiv"
	"ai-deepsearch-be/pkg/search/web"
	"ai-deepsearch-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

type canned struct {
	text string
	err  error
}

// fakeLLM dispatches on prompt content so each node gets its own scripted
// response queue. Queues repeat their last entry once exhausted.
type fakeLLM struct {
	rewrite    []canned
	grade      []canned
	route      []canned
	summary    []canned
	gradeCalls int
	routeCalls int
}

func pop(queue *[]canned) (string, error) {
	if len(*queue) == 0 {
		return "", errors.New("no scripted response")
	}
	head := (*queue)[0]
	if len(*queue) > 1 {
		*queue = (*queue)[1:]
	}
	return head.text, head.err
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return pop(&f.rewrite)
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	switch {
	case strings.Contains(prompt, "relevance grader"):
		f.gradeCalls++
		return pop(&f.grade)
	case strings.Contains(prompt, "routing agent"):
		f.routeCalls++
		return pop(&f.route)
	default:
		return pop(&f.summary)
	}
}

// fakeStore replays scripted retrieval responses and records upserts.
type fakeStore struct {
	searches  [][]store.Document
	searchErr error
	upsertErr error
	upserted  [][]store.UpsertItem
}

func (f *fakeStore) SimilaritySearch(ctx context.Context, query string, k int) ([]store.Document, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if len(f.searches) == 0 {
		return nil, nil
	}
	head := f.searches[0]
	if len(f.searches) > 1 {
		f.searches = f.searches[1:]
	}
	return head, nil
}

func (f *fakeStore) Upsert(ctx context.Context, items []store.UpsertItem) error {
	f.upserted = append(f.upserted, items)
	return f.upsertErr
}

type fakeWeb struct {
	hits []web.Result
	err  error
}

func (f *fakeWeb) Search(ctx context.Context, query string) ([]web.Result, error) {
	return f.hits, f.err
}

type fakeArxiv struct {
	papers    []arxiv.Paper
	err       error
	lastField string
}

func (f *fakeArxiv) Search(ctx context.Context, query, field string, maxResults int) ([]arxiv.Paper, error) {
	f.lastField = field
	return f.papers, f.err
}

type fakeExtractor struct {
	pages    map[string]string
	pdfs     map[string]string
	pdfCalls []string
}

func (f *fakeExtractor) PageText(ctx context.Context, pageURL string) (string, error) {
	text, ok := f.pages[pageURL]
	if !ok {
		return "", fmt.Errorf("no page fixture for %s", pageURL)
	}
	return text, nil
}

func (f *fakeExtractor) PDFText(ctx context.Context, pdfURL string) (string, error) {
	f.pdfCalls = append(f.pdfCalls, pdfURL)
	text, ok := f.pdfs[pdfURL]
	if !ok {
		return "", fmt.Errorf("no pdf fixture for %s", pdfURL)
	}
	return text, nil
}

type stepRecorder struct {
	steps []Step
}

func (r *stepRecorder) Step(sessionID string, step Step, message string) {
	r.steps = append(r.steps, step)
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type harness struct {
	llm       *fakeLLM
	store     *fakeStore
	web       *fakeWeb
	arxiv     *fakeArxiv
	extractor *fakeExtractor
	recorder  *stepRecorder
	graph     *Graph
}

func newHarness(cfg Config) *harness {
	h := &harness{
		llm:       &fakeLLM{},
		store:     &fakeStore{},
		web:       &fakeWeb{},
		arxiv:     &fakeArxiv{},
		extractor: &fakeExtractor{pages: map[string]string{}, pdfs: map[string]string{}},
		recorder:  &stepRecorder{},
	}
	h.graph = New(Deps{
		LLM:       h.llm,
		Store:     h.store,
		Web:       h.web,
		Arxiv:     h.arxiv,
		Extractor: h.extractor,
		Progress:  h.recorder,
		Logger:    nopLogger{},
	}, cfg)
	return h
}

// --- Scenarios ---

func TestRunDirectHit(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.llm.rewrite = []canned{{text: "transformer attention mechanism"}}
	h.store.searches = [][]store.Document{{
		{ID: "doc-a", Content: "attention is all you need"},
		{ID: "doc-b", Content: "unrelated cooking recipe"},
	}}
	h.llm.grade = []canned{{text: `{"relevant_indices": [0]}`}}

	result, err := h.graph.Run(context.Background(), "s1", "giải thích cơ chế attention")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "giải thích cơ chế attention", result.UserQuery)
	assert.Equal(t, "transformer attention mechanism", result.RewrittenQuery)
	assert.Equal(t, []string{"attention is all you need"}, result.FinalResults)
	assert.Nil(t, result.Routing, "a direct hit never consults the router")

	assert.Equal(t, []Step{StepRewrite, StepRetrieve, StepGrade, StepFinal}, h.recorder.steps)
	assert.Empty(t, h.store.upserted)
}

func TestRunWebLoop(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.llm.rewrite = []canned{{text: "tin tức AI"}}
	// First retrieval misses, second (after ingestion) hits.
	h.store.searches = [][]store.Document{
		nil,
		{{ID: "doc-new", Content: "tóm tắt tin AI mới"}},
	}
	h.llm.route = []canned{{text: `{"route": "web_search", "arxiv_field": null}`}}
	h.web.hits = []web.Result{
		{Title: "AI News", URL: "https://example.com/ai"},
		{Title: "More AI", URL: "https://example.com/more"},
	}
	h.extractor.pages["https://example.com/ai"] = "page one text"
	h.extractor.pages["https://example.com/more"] = "page two text"
	h.llm.summary = []canned{{text: "tóm tắt một"}, {text: "tóm tắt hai"}}
	h.llm.grade = []canned{{text: `{"relevant_indices": [0]}`}}

	result, err := h.graph.Run(context.Background(), "s2", "tin tức AI hôm nay")
	require.NoError(t, err)

	assert.Equal(t, []string{"tóm tắt tin AI mới"}, result.FinalResults)
	require.NotNil(t, result.Routing)
	assert.Equal(t, BranchWeb, result.Routing.Route)

	require.Len(t, h.store.upserted, 1)
	items := h.store.upserted[0]
	require.Len(t, items, 2)
	assert.Equal(t, store.DocumentID("https://example.com/ai"), items[0].ID)
	assert.Equal(t, "tóm tắt một", items[0].Content)
	assert.Equal(t, "AI News", items[0].Metadata["title"])
	assert.Equal(t, "https://example.com/ai", items[0].Metadata["source"])
	assert.NotContains(t, items[0].Metadata, "authors")

	assert.Equal(t, []Step{
		StepRewrite, StepRetrieve, StepGrade, StepRoute, StepWebSearch,
		StepSummarize, StepIngest, StepRetrieve, StepGrade, StepFinal,
	}, h.recorder.steps)

	// The empty first retrieval must not consume a grader call.
	assert.Equal(t, 1, h.llm.gradeCalls)
}

func TestRunArxivBranch(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.llm.rewrite = []canned{{text: "quantum error correction"}}
	h.store.searches = [][]store.Document{
		nil,
		{{ID: "doc-q", Content: "tóm tắt sửa lỗi lượng tử"}},
	}
	h.llm.route = []canned{{text: "```json\n{\"route\": \"arxiv_search\", \"arxiv_field\": \"author\"}\n```"}}
	h.arxiv.papers = []arxiv.Paper{{
		Title:    "Quantum Error Correction",
		Authors:  "A. Researcher, B. Scientist",
		Abstract: "We study stabilizer codes.",
		Link:     "https://arxiv.org/abs/1234.5678",
	}}
	h.extractor.pdfs["https://arxiv.org/pdf/1234.5678"] = "full paper text"
	h.llm.summary = []canned{{text: "tóm tắt bài báo"}}
	h.llm.grade = []canned{{text: `{"relevant_indices": [0]}`}}

	result, err := h.graph.Run(context.Background(), "s3", "sửa lỗi lượng tử")
	require.NoError(t, err)

	require.NotNil(t, result.Routing)
	assert.Equal(t, BranchArxiv, result.Routing.Route)
	assert.Equal(t, arxiv.FieldAuthor, result.Routing.ArxivField)
	assert.Equal(t, arxiv.FieldAuthor, h.arxiv.lastField)

	// Academic sources are read from the derived PDF location.
	assert.Equal(t, []string{"https://arxiv.org/pdf/1234.5678"}, h.extractor.pdfCalls)

	require.Len(t, h.store.upserted, 1)
	items := h.store.upserted[0]
	require.Len(t, items, 1)
	assert.Equal(t, "A. Researcher, B. Scientist", items[0].Metadata["authors"])
}

func TestRunBudgetExceeded(t *testing.T) {
	h := newHarness(Config{MaxSteps: 9})
	h.llm.rewrite = []canned{{text: "rewritten"}}
	// Retrieval never hits and the web never yields anything usable.
	h.store.searches = [][]store.Document{nil}
	h.llm.route = []canned{{text: `{"route": "web_search", "arxiv_field": null}`}}
	h.web.hits = nil

	result, err := h.graph.Run(context.Background(), "s4", "impossible query")
	require.ErrorIs(t, err, ErrBudgetExceeded)
	assert.Nil(t, result, "budget exhaustion yields no partial answer")
}

func TestRunGraderFailOpen(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.llm.rewrite = []canned{{text: "rewritten"}}
	h.store.searches = [][]store.Document{
		{{ID: "doc-x", Content: "some content"}},
	}
	// First grading pass fails; the session must fall back to external
	// search instead of dying.
	h.llm.grade = []canned{
		{err: errors.New("model overloaded")},
		{text: `{"relevant_indices": [0]}`},
	}
	h.llm.route = []canned{{text: `{"route": "web_search", "arxiv_field": null}`}}
	h.web.hits = []web.Result{{Title: "Hit", URL: "https://example.com/x"}}
	h.extractor.pages["https://example.com/x"] = "text"
	h.llm.summary = []canned{{text: "tóm tắt"}}

	result, err := h.graph.Run(context.Background(), "s5", "query")
	require.NoError(t, err)
	assert.Equal(t, []string{"some content"}, result.FinalResults)
	assert.Equal(t, 2, h.llm.gradeCalls)
}

func TestRunRewriteFailureAborts(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.llm.rewrite = []canned{{err: errors.New("quota exceeded")}}

	_, err := h.graph.Run(context.Background(), "s6", "query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rewrite_query")
}

func TestRunEmptyQuery(t *testing.T) {
	h := newHarness(DefaultConfig())

	_, err := h.graph.Run(context.Background(), "s7", "   ")
	require.Error(t, err)
	assert.Empty(t, h.recorder.steps)
}

func TestRunContextCancelled(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.llm.rewrite = []canned{{text: "rewritten"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.graph.Run(ctx, "s8", "query")
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunSummarizerSkipsFailedItems(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.llm.rewrite = []canned{{text: "rewritten"}}
	h.store.searches = [][]store.Document{
		nil,
		{{ID: "doc-s", Content: "đoạn văn còn lại"}},
	}
	h.llm.route = []canned{{text: `{"route": "web_search", "arxiv_field": null}`}}
	h.web.hits = []web.Result{
		{Title: "Broken", URL: "https://example.com/broken"}, // no fixture
		{Title: "Fine", URL: "https://example.com/fine"},
	}
	h.extractor.pages["https://example.com/fine"] = "readable text"
	h.llm.summary = []canned{{text: "tóm tắt duy nhất"}}
	h.llm.grade = []canned{{text: `{"relevant_indices": [0]}`}}

	result, err := h.graph.Run(context.Background(), "s9", "query")
	require.NoError(t, err)
	assert.Equal(t, []string{"đoạn văn còn lại"}, result.FinalResults)

	require.Len(t, h.store.upserted, 1)
	items := h.store.upserted[0]
	require.Len(t, items, 1, "the unreadable source is dropped, not fatal")
	assert.Equal(t, "Fine", items[0].Metadata["title"])
}
