package server_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/sitesearch/internal/search"
	"github.com/kamusis/sitesearch/internal/search/index"
	"github.com/kamusis/sitesearch/internal/server"
	"github.com/kamusis/sitesearch/internal/widget"
)

const page = `<!DOCTYPE html><html><body>
<form id="search_form"><input id="extended-search-field-small" name="q"></form>
<section aria-live="polite"><p id="search-query"></p><div id="results"></div></section>
</body></html>`

const indexJSON = `[
  {"url": "/launch/", "title": "Product Launch Plan"},
  {"url": "/notes/", "title": "Notes", "content": "the launch slipped"}
]`

func newTestServer(t *testing.T, withIndex bool) *httptest.Server {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "search.html"), []byte(page), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "about.html"), []byte("<p>about</p>"), 0o644))
	if withIndex {
		require.NoError(t, os.WriteFile(filepath.Join(root, "search-index.json"), []byte(indexJSON), 0o644))
	}

	engine := search.NewEngine(&index.File{Path: filepath.Join(root, "search-index.json")})
	srv := server.New(server.Config{Root: root, Page: "search.html", Selectors: widget.DefaultSelectors}, engine, nil)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func TestSearchPage_RendersResults(t *testing.T) {
	ts := newTestServer(t, true)

	resp, body := get(t, ts.URL+"/search.html?q=launch")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "Results for “launch”", doc.Find("#search-query").Text())
	articles := doc.Find("#results article")
	require.Equal(t, 2, articles.Length())
	assert.Equal(t, "/launch/", articles.First().Find("p.result-url").Text())
	v, _ := doc.Find("#extended-search-field-small").Attr("value")
	assert.Equal(t, "launch", v)
	busy, _ := doc.Find("section").Attr("aria-busy")
	assert.Equal(t, "false", busy)
}

func TestSearchPage_EmptyQueryPrompts(t *testing.T) {
	ts := newTestServer(t, true)

	_, body := get(t, ts.URL+"/search.html")
	assert.Contains(t, body, widget.PromptText)
	assert.NotContains(t, body, "<article")
}

func TestSearchPage_MissingIndexIsUnavailable(t *testing.T) {
	ts := newTestServer(t, false)

	resp, body := get(t, ts.URL+"/search.html?q=launch")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Search is unavailable right now.")
}

func TestIndexServedWithoutCaching(t *testing.T) {
	ts := newTestServer(t, true)

	resp, body := get(t, ts.URL+index.DefaultPath)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	assert.JSONEq(t, indexJSON, body)
}

func TestStaticAndOperationalRoutes(t *testing.T) {
	ts := newTestServer(t, true)

	resp, body := get(t, ts.URL+"/about.html")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "about")

	resp, body = get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)

	resp, body = get(t, ts.URL+"/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "sitesearch_http_requests_total")
}
