package search

import (
	"context"
	"errors"
)

// Engine retrieves the index from Source and ranks it against a query.
type Engine struct {
	Source  Source
	Weights Weights
	// Limit caps the ranked results; 0 means MaxResults, negative means no cap.
	Limit int
}

// NewEngine returns an Engine using DefaultWeights and MaxResults.
func NewEngine(src Source) *Engine {
	return &Engine{Source: src, Weights: DefaultWeights, Limit: MaxResults}
}

// Search retrieves the index once and returns the ranked matches for q.
// An empty query returns no matches without touching the source.
// Any retrieval failure is returned as an *Error matching ErrUnavailable.
func (e *Engine) Search(ctx context.Context, q Query) ([]ScoredPage, error) {
	if q.Empty() {
		return nil, nil
	}
	if e.Source == nil {
		return nil, &Error{Op: "load index", Err: errors.New("no index source configured")}
	}

	pages, err := e.Source.Pages(ctx)
	if err != nil {
		return nil, &Error{Op: "load index", Err: err}
	}

	limit := e.Limit
	if limit == 0 {
		limit = MaxResults
	}
	w := e.Weights
	if w == (Weights{}) {
		w = DefaultWeights
	}
	return Rank(pages, q.Terms, w, limit), nil
}
