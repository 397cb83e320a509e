package arxiv

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultBaseURL = "https://arxiv.org/search/"
	pageSize       = 25
	hardMaxResults = 50
)

// Valid search field selectors accepted by the arXiv listing page.
const (
	FieldAll      = "all"
	FieldTitle    = "title"
	FieldAuthor   = "author"
	FieldAbstract = "abstract"
)

// Paper is a single listing entry from the arXiv search page.
type Paper struct {
	Title    string `json:"title"`
	Authors  string `json:"authors"`
	Abstract string `json:"abstract"`
	Link     string `json:"link"`
}

// PDFURL derives the direct PDF location from the canonical abstract link.
func (p Paper) PDFURL() string {
	return DerivePDFURL(p.Link)
}

// DerivePDFURL maps an /abs/ paper link to its /pdf/ counterpart.
func DerivePDFURL(link string) string {
	return strings.Replace(link, "/abs/", "/pdf/", 1)
}

var authorsPrefix = regexp.MustCompile(`^Authors:\s*`)

// Searcher paginates the arXiv HTML search listing, accumulating entries
// until min(maxResults, 50) results or an empty page.
type Searcher struct {
	BaseURL string
	Client  *http.Client
}

func NewSearcher() *Searcher {
	return &Searcher{
		BaseURL: defaultBaseURL,
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// NormalizeField maps unknown or empty field selectors to the "all" sentinel.
func NormalizeField(field string) string {
	switch field {
	case FieldTitle, FieldAuthor, FieldAbstract, FieldAll:
		return field
	default:
		return FieldAll
	}
}

func (s *Searcher) Search(ctx context.Context, query, field string, maxResults int) ([]Paper, error) {
	if maxResults <= 0 {
		maxResults = pageSize
	}
	if maxResults > hardMaxResults {
		maxResults = hardMaxResults
	}
	field = NormalizeField(field)

	var results []Paper
	start := 0

	for len(results) < maxResults {
		page, err := s.fetchPage(ctx, query, field, start)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break // listing exhausted
		}

		for _, paper := range page {
			if len(results) >= maxResults {
				break
			}
			results = append(results, paper)
		}

		start += pageSize
	}

	return results, nil
}

func (s *Searcher) fetchPage(ctx context.Context, query, field string, start int) ([]Paper, error) {
	params := url.Values{}
	params.Set("searchtype", field)
	params.Set("query", query)
	params.Set("abstracts", "show")
	params.Set("order", "-announced_date_first")
	params.Set("size", strconv.Itoa(pageSize))
	params.Set("start", strconv.Itoa(start))

	req, err := http.NewRequestWithContext(ctx, "GET", s.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arxiv request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv error: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse listing page: %w", err)
	}

	var papers []Paper
	doc.Find("li.arxiv-result").Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find("p.title").Text())
		authors := authorsPrefix.ReplaceAllString(
			strings.TrimSpace(sel.Find("p.authors").Text()), "")
		abstract := strings.TrimSpace(
			strings.ReplaceAll(sel.Find("span.abstract-full").Text(), "△ Less", ""))

		link, _ := sel.Find("p.list-title a").First().Attr("href")

		papers = append(papers, Paper{
			Title:    title,
			Authors:  authors,
			Abstract: abstract,
			Link:     link,
		})
	})

	return papers, nil
}
