package search

import "context"

// Page is one entry of the site search index. Fields absent from the index
// decode as empty strings.
type Page struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
}

// ScoredPage is a Page matched against a query.
type ScoredPage struct {
	Page
	Score int
}

// Query is the trimmed raw query plus its lowercase terms, in input order.
type Query struct {
	Raw   string
	Terms []string
}

// Empty reports whether the query has no terms.
func (q Query) Empty() bool {
	return len(q.Terms) == 0
}

// Weights are the per-field points a term earns when present in that field.
type Weights struct {
	Title       int `yaml:"title"`
	Description int `yaml:"description"`
	Content     int `yaml:"content"`
}

// DefaultWeights scores a title hit 5, a description hit 2 and a content hit 1.
var DefaultWeights = Weights{Title: 5, Description: 2, Content: 1}

// Source retrieves the full page index.
type Source interface {
	Pages(ctx context.Context) ([]Page, error)
}
