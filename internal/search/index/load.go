package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kamusis/sitesearch/internal/search"
)

// Decode reads a JSON array of pages. Any array length is accepted and
// missing fields decode as empty strings.
func Decode(r io.Reader) ([]search.Page, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read index: %w", err)
	}
	return decodeBytes(b)
}

func decodeBytes(b []byte) ([]search.Page, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}
	var pages []search.Page
	if err := json.Unmarshal(trimmed, &pages); err != nil {
		return nil, fmt.Errorf("invalid index JSON: %w", err)
	}
	if pages == nil {
		pages = []search.Page{}
	}
	return pages, nil
}

// LoadFile reads an index from a local file.
func LoadFile(path string) ([]search.Page, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read index %s: %w", path, err)
	}
	pages, err := decodeBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pages, nil
}

// File is a search.Source reading an index file on every call.
type File struct {
	Path string
}

var _ search.Source = (*File)(nil)

// Pages implements search.Source.
func (f *File) Pages(ctx context.Context) ([]search.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(f.Path)
}
