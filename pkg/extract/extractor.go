package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	gocache "github.com/patrickmn/go-cache"
)

// Extractor turns a source URL into plain text: paragraph text for HTML
// pages, page-limited plain text for PDFs. Extracted text is cached per URL
// so the retrieve-search-ingest loop never refetches a source it already
// processed.
type Extractor struct {
	client       *http.Client
	cache        *gocache.Cache
	pdfPageLimit int
}

func NewExtractor(pdfPageLimit int) *Extractor {
	if pdfPageLimit <= 0 {
		pdfPageLimit = 7
	}
	return &Extractor{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache:        gocache.New(15*time.Minute, 30*time.Minute),
		pdfPageLimit: pdfPageLimit,
	}
}

// PageText fetches a web page and joins the text of its <p> elements.
func (e *Extractor) PageText(ctx context.Context, pageURL string) (string, error) {
	if cached, found := e.cache.Get("page:" + pageURL); found {
		return cached.(string), nil
	}

	body, err := e.fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", fmt.Errorf("parse page %s: %w", pageURL, err)
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	text := strings.Join(paragraphs, "\n")
	if text == "" {
		return "", fmt.Errorf("no paragraph text found at %s", pageURL)
	}

	e.cache.SetDefault("page:"+pageURL, text)
	return text, nil
}

// PDFText downloads a PDF and extracts plain text from at most the first
// pdfPageLimit pages.
func (e *Extractor) PDFText(ctx context.Context, pdfURL string) (string, error) {
	if cached, found := e.cache.Get("pdf:" + pdfURL); found {
		return cached.(string), nil
	}

	body, err := e.fetch(ctx, pdfURL)
	if err != nil {
		return "", err
	}
	defer body.Close()

	// The pdf reader needs random access, so spill to a temp file first
	tmp, err := os.CreateTemp("", "deepsearch-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, body); err != nil {
		return "", fmt.Errorf("download pdf %s: %w", pdfURL, err)
	}

	f, reader, err := pdf.Open(tmp.Name())
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", pdfURL, err)
	}
	defer f.Close()

	pages := reader.NumPage()
	if pages > e.pdfPageLimit {
		pages = e.pdfPageLimit
	}

	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue // a single broken page should not sink the document
		}
		sb.WriteString(text)
		sb.WriteString(" ")
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no text extracted from %s", pdfURL)
	}

	e.cache.SetDefault("pdf:"+pdfURL, text)
	return text, nil
}

func (e *Extractor) fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}
	return resp.Body, nil
}
