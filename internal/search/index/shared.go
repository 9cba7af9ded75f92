package index

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/kamusis/sitesearch/internal/search"
)

// Shared coalesces concurrent Pages calls onto one retrieval from Source.
// Nothing is cached: a call that starts after a retrieval finishes triggers
// a new one.
type Shared struct {
	Source search.Source
	group  singleflight.Group
}

var _ search.Source = (*Shared)(nil)

// NewShared wraps src.
func NewShared(src search.Source) *Shared {
	return &Shared{Source: src}
}

// Pages implements search.Source. Callers must not modify the returned slice.
func (s *Shared) Pages(ctx context.Context) ([]search.Page, error) {
	ch := s.group.DoChan("pages", func() (any, error) {
		return s.Source.Pages(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.([]search.Page), nil
	}
}
