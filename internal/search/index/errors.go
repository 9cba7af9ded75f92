package index

import (
	"errors"
	"fmt"
)

// ErrNotArray indicates the index document is not a JSON array.
var ErrNotArray = errors.New("index is not a JSON array")

// StatusError reports a non-2xx response from the index endpoint.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}
