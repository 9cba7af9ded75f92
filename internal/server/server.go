// Package server serves a static site whose search page is rendered by the
// search widget on every request.
package server

import (
	"bytes"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kamusis/sitesearch/internal/logger"
	"github.com/kamusis/sitesearch/internal/metrics"
	"github.com/kamusis/sitesearch/internal/search"
	"github.com/kamusis/sitesearch/internal/search/index"
	"github.com/kamusis/sitesearch/internal/widget"
)

// Config controls what the server serves.
type Config struct {
	// Root is the static site directory.
	Root string
	// Page is the search page path relative to Root, e.g. "search.html".
	Page          string
	Selectors     widget.Selectors
	SnippetRadius int
}

// Server renders the search page through the widget.
type Server struct {
	cfg    Config
	engine *search.Engine
	logger *zap.Logger
}

// New creates a Server.
func New(cfg Config, engine *search.Engine, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Selectors == (widget.Selectors{}) {
		cfg.Selectors = widget.DefaultSelectors
	}
	if cfg.Page == "" {
		cfg.Page = "search.html"
	}
	cfg.Page = strings.TrimPrefix(path.Clean("/"+cfg.Page), "/")
	return &Server{cfg: cfg, engine: engine, logger: logger}
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware())
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/"+s.cfg.Page, s.handleSearchPage)
	r.Get(index.DefaultPath, s.handleIndex)
	r.Handle("/*", http.FileServer(http.Dir(s.cfg.Root)))
	return r
}

func (s *Server) handleSearchPage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	b, err := os.ReadFile(filepath.Join(s.cfg.Root, filepath.FromSlash(s.cfg.Page)))
	if err != nil {
		log.Error("cannot read search page", zap.Error(err))
		http.Error(w, "search page not found", http.StatusInternalServerError)
		return
	}
	doc, err := widget.ParsePage(bytes.NewReader(b))
	if err != nil {
		log.Error("cannot parse search page", zap.Error(err))
		http.Error(w, "invalid search page", http.StatusInternalServerError)
		return
	}

	wg := widget.New(widget.Bind(doc, s.cfg.Selectors), s.engine,
		widget.WithLogger(log),
		widget.WithSnippetRadius(s.cfg.SnippetRadius),
	)
	wg.Initialize(r.URL.String())
	wg.GuardForm()
	out := wg.Run(r.Context())

	metrics.SearchesTotal.WithLabelValues(out.State.String()).Inc()
	if out.State == widget.StateResults || out.State == widget.StateNoResults {
		metrics.ResultsReturned.Observe(float64(len(out.Results)))
	}
	log.Info("search",
		zap.String("query", out.Query.Raw),
		zap.String("outcome", out.State.String()),
		zap.Int("results", len(out.Results)),
	)

	html, err := widget.RenderPage(doc)
	if err != nil {
		log.Error("cannot render search page", zap.Error(err))
		http.Error(w, "cannot render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(html))
}

// requestLogger carries a per-request logger in the request context.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := s.logger.With(zap.String("request_id", middleware.GetReqID(r.Context())))
		next.ServeHTTP(w, r.WithContext(logger.ContextWithLogger(r.Context(), l)))
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	http.ServeFile(w, r, filepath.Join(s.cfg.Root, filepath.FromSlash(strings.TrimPrefix(index.DefaultPath, "/"))))
}
