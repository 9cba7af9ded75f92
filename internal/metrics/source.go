package metrics

import (
	"context"
	"time"

	"github.com/kamusis/sitesearch/internal/search"
)

type instrumentedSource struct {
	next search.Source
}

// InstrumentSource records index retrieval duration for src.
func InstrumentSource(src search.Source) search.Source {
	return &instrumentedSource{next: src}
}

func (s *instrumentedSource) Pages(ctx context.Context) ([]search.Page, error) {
	start := time.Now()
	pages, err := s.next.Pages(ctx)
	IndexLoadDuration.Observe(time.Since(start).Seconds())
	return pages, err
}
