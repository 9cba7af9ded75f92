package search

import (
	"errors"
	"fmt"
)

// ErrUnavailable reports that the index could not be retrieved or decoded.
// Every retrieval failure collapses into this kind.
var ErrUnavailable = errors.New("search is unavailable")

// Error carries the underlying cause of a failed search. It matches
// ErrUnavailable with errors.Is and unwraps to the cause.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrUnavailable
}
