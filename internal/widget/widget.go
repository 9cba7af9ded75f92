package widget

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/kamusis/sitesearch/internal/search"
)

// Messages shown in place of results.
const (
	PromptText      = "Type a term above and press Enter."
	NoResultsHTML   = `<p>No results. Try fewer or different terms.</p>`
	UnavailableHTML = `<p>Search is unavailable right now.</p>`
)

// State is how a Run ended.
type State int

const (
	// StateSkipped means the page lacks the status line or results container.
	StateSkipped State = iota
	StatePrompt
	StateResults
	StateNoResults
	StateUnavailable
)

func (s State) String() string {
	switch s {
	case StatePrompt:
		return "prompt"
	case StateResults:
		return "results"
	case StateNoResults:
		return "no_results"
	case StateUnavailable:
		return "unavailable"
	default:
		return "skipped"
	}
}

// Outcome reports what a Run rendered. Err holds the cause of an
// unavailable search; it is never shown on the page.
type Outcome struct {
	State   State
	Query   search.Query
	Results []search.ScoredPage
	Err     error
}

// Widget runs one search against its bound page elements.
// A Widget is not safe for concurrent use.
type Widget struct {
	el     Elements
	engine *search.Engine
	radius int
	logger *zap.Logger
	query  search.Query
}

// Option configures a Widget.
type Option func(*Widget)

// WithLogger sets the logger used for retrieval failures.
func WithLogger(l *zap.Logger) Option {
	return func(w *Widget) {
		w.logger = l
	}
}

// WithSnippetRadius sets the snippet radius in characters.
func WithSnippetRadius(n int) Option {
	return func(w *Widget) {
		w.radius = n
	}
}

// New creates a Widget bound to el.
func New(el Elements, engine *search.Engine, opts ...Option) *Widget {
	w := &Widget{
		el:     el,
		engine: engine,
		radius: search.SnippetRadius,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Initialize reads the q parameter from pageURL, trims it, and echoes it into
// the query input when the page has one. An unparsable URL or a missing
// parameter yields "".
func (w *Widget) Initialize(pageURL string) string {
	raw := ""
	if u, err := url.Parse(pageURL); err == nil {
		raw = u.Query().Get("q")
	}
	w.SetQuery(raw)
	return w.query.Raw
}

// SetQuery sets the query directly and echoes it into the query input.
func (w *Widget) SetQuery(raw string) {
	w.query = search.ParseQuery(raw)
	if present(w.el.Input) {
		w.el.Input.SetAttr("value", w.query.Raw)
	}
}

// Query returns the current query.
func (w *Widget) Query() search.Query {
	return w.query
}

// Run performs the search and rewrites the status line and results container.
// The live region is marked busy while the index is retrieved and is always
// cleared before Run returns.
func (w *Widget) Run(ctx context.Context) Outcome {
	if !present(w.el.QueryDisplay) || !present(w.el.Results) {
		return Outcome{State: StateSkipped, Query: w.query}
	}

	q := w.query
	if q.Empty() {
		w.el.QueryDisplay.SetText(PromptText)
		w.el.Results.SetHtml("")
		return Outcome{State: StatePrompt, Query: q}
	}

	w.el.QueryDisplay.SetText("Results for “" + q.Raw + "”")
	w.setBusy(true)
	defer w.setBusy(false)

	out := Outcome{Query: q}
	results, err := w.search(ctx, q)
	if err != nil {
		w.logger.Debug("search unavailable", zap.String("query", q.Raw), zap.Error(err))
		w.el.Results.SetHtml(UnavailableHTML)
		out.State = StateUnavailable
		out.Err = err
		return out
	}
	if len(results) == 0 {
		w.el.Results.SetHtml(NoResultsHTML)
		out.State = StateNoResults
		return out
	}

	markup, err := renderResults(results, q.Terms, w.radius)
	if err != nil {
		w.logger.Debug("cannot render results", zap.Error(err))
		w.el.Results.SetHtml(UnavailableHTML)
		out.State = StateUnavailable
		out.Err = err
		return out
	}
	w.el.Results.SetHtml(markup)
	out.State = StateResults
	out.Results = results
	return out
}

// search runs the engine, turning panics from the source into an
// unavailable result so the busy state is still cleared by Run.
func (w *Widget) search(ctx context.Context, q search.Query) (results []search.ScoredPage, err error) {
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = &search.Error{Op: "search", Err: errors.New("panic during search")}
			w.logger.Error("search panicked", zap.Any("panic", r))
		}
	}()
	if w.engine == nil {
		return nil, &search.Error{Op: "search", Err: errors.New("no search engine configured")}
	}
	return w.engine.Search(ctx, q)
}

func (w *Widget) setBusy(busy bool) {
	if !present(w.el.LiveRegion) {
		return
	}
	v := "false"
	if busy {
		v = "true"
	}
	w.el.LiveRegion.SetAttr("aria-busy", v)
}

// CanSubmit reports whether a search form holding value may be submitted.
// Whitespace-only values are blocked.
func CanSubmit(value string) bool {
	return strings.TrimSpace(value) != ""
}

// GuardForm makes the page's search form refuse blank submissions in the
// browser by marking the query input required with a non-blank pattern.
// It reports whether a form was found.
func (w *Widget) GuardForm() bool {
	if !present(w.el.Form) {
		return false
	}
	input := w.el.Input
	if !present(input) || input.Closest("form").Length() == 0 {
		input = w.el.Form.Find(`input[name="q"]`).First()
	}
	if !present(input) {
		return true
	}
	input.SetAttr("required", "")
	input.SetAttr("pattern", `.*\S.*`)
	return true
}
