package arxiv

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listingEntry(n int) string {
	return fmt.Sprintf(`<li class="arxiv-result">
  <p class="list-title"><a href="https://arxiv.org/abs/2401.%05d">arXiv:2401.%05d</a></p>
  <p class="title">Paper Number %d</p>
  <p class="authors">Authors: Author %d, Coauthor %d</p>
  <p class="abstract"><span class="abstract-full">We present result %d. △ Less</span></p>
</li>`, n, n, n, n, n, n)
}

// listingServer serves a paginated fixture: `total` entries split into pages
// of 25, then empty pages.
func listingServer(t *testing.T, total int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))

		var sb strings.Builder
		sb.WriteString("<html><body><ol>")
		for i := start; i < start+25 && i < total; i++ {
			sb.WriteString(listingEntry(i))
		}
		sb.WriteString("</ol></body></html>")
		fmt.Fprint(w, sb.String())
	}))
}

func TestSearchPaginates(t *testing.T) {
	srv := listingServer(t, 60)
	defer srv.Close()

	s := NewSearcher()
	s.BaseURL = srv.URL
	s.Client = srv.Client()

	papers, err := s.Search(context.Background(), "quantum", FieldAll, 30)
	require.NoError(t, err)
	require.Len(t, papers, 30, "two pages accumulated, then truncated to maxResults")

	first := papers[0]
	assert.Equal(t, "Paper Number 0", first.Title)
	assert.Equal(t, "Author 0, Coauthor 0", first.Authors, "the Authors: prefix is stripped")
	assert.Equal(t, "We present result 0.", first.Abstract, "the expander suffix is stripped")
	assert.Equal(t, "https://arxiv.org/abs/2401.00000", first.Link)

	// Pagination actually advanced into the second page.
	assert.Equal(t, "Paper Number 29", papers[29].Title)
}

func TestSearchStopsOnEmptyPage(t *testing.T) {
	srv := listingServer(t, 8)
	defer srv.Close()

	s := NewSearcher()
	s.BaseURL = srv.URL
	s.Client = srv.Client()

	papers, err := s.Search(context.Background(), "obscure topic", FieldTitle, 50)
	require.NoError(t, err)
	assert.Len(t, papers, 8, "an exhausted listing ends the search early")
}

func TestSearchClampsMaxResults(t *testing.T) {
	srv := listingServer(t, 200)
	defer srv.Close()

	s := NewSearcher()
	s.BaseURL = srv.URL
	s.Client = srv.Client()

	papers, err := s.Search(context.Background(), "popular topic", FieldAll, 500)
	require.NoError(t, err)
	assert.Len(t, papers, 50, "requests beyond the hard cap are clamped")
}

func TestSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewSearcher()
	s.BaseURL = srv.URL
	s.Client = srv.Client()

	_, err := s.Search(context.Background(), "query", FieldAll, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestNormalizeField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"all", FieldAll},
		{"title", FieldTitle},
		{"author", FieldAuthor},
		{"abstract", FieldAbstract},
		{"", FieldAll},
		{"null", FieldAll},
		{"citations", FieldAll},
	}

	for _, tt := range tests {
		if got := NormalizeField(tt.in); got != tt.want {
			t.Errorf("NormalizeField(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDerivePDFURL(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{
			name: "abs link",
			link: "https://arxiv.org/abs/2401.12345",
			want: "https://arxiv.org/pdf/2401.12345",
		},
		{
			name: "non-abs link unchanged",
			link: "https://example.com/paper.pdf",
			want: "https://example.com/paper.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DerivePDFURL(tt.link))
			assert.Equal(t, tt.want, Paper{Link: tt.link}.PDFURL())
		})
	}
}
