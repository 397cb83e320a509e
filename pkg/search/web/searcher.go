package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const defaultEndpoint = "https://html.duckduckgo.com/html/"

// Result is a single raw web hit.
type Result struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Searcher scrapes the DuckDuckGo HTML results page. One bounded request per
// call; a transport failure is fatal to that call.
type Searcher struct {
	Endpoint string
	Limit    int
	Client   *http.Client
}

func NewSearcher(limit int) *Searcher {
	if limit <= 0 {
		limit = 5
	}
	return &Searcher{
		Endpoint: defaultEndpoint,
		Limit:    limit,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *Searcher) Search(ctx context.Context, query string) ([]Result, error) {
	endpoint := fmt.Sprintf("%s?q=%s", s.Endpoint, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	// The HTML endpoint rejects requests without a browser-like agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("web search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("web search error: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	results := make([]Result, 0, s.Limit)
	doc.Find("a.result__a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		title := strings.TrimSpace(sel.Text())
		target := resolveRedirect(href)
		if title == "" || target == "" {
			return true
		}
		results = append(results, Result{Title: title, URL: target})
		return len(results) < s.Limit
	})

	return results, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links to the real
// target URL. Non-redirect links pass through unchanged.
func resolveRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if uddg := u.Query().Get("uddg"); uddg != "" {
		return uddg
	}
	return href
}
