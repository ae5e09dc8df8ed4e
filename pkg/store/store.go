package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// UpdateFunc receives the current value at a path (nil when absent) and
// returns the value to write. Returning commit=false aborts the transaction
// and leaves the path untouched.
type UpdateFunc func(current json.RawMessage) (value interface{}, commit bool)

// Store is a path-addressed JSON document store. Paths are slash-separated,
// e.g. "attachedQuestionSets/Week1/abc123". A value written at a path is a
// single JSON document; Children lists the direct child segments under a
// path prefix.
type Store interface {
	// Get reads the document at path into dest. Returns false when absent.
	Get(ctx context.Context, path string, dest interface{}) (bool, error)

	// Set writes value at path, replacing any existing document.
	Set(ctx context.Context, path string, value interface{}) error

	// Remove deletes the document at path and any documents below it.
	Remove(ctx context.Context, path string) error

	// Children returns the documents stored directly under path, keyed by
	// child segment. A missing path yields an empty map, not an error.
	Children(ctx context.Context, path string) (map[string]json.RawMessage, error)

	// ChildSegments returns the distinct first path segments below path,
	// whether they name documents or deeper subtrees.
	ChildSegments(ctx context.Context, path string) ([]string, error)

	// Transaction runs a compare-and-set against a single path. The update
	// function sees the current value and decides what to write; the write
	// only lands if the value did not change underneath. Returns whether
	// the transaction committed.
	Transaction(ctx context.Context, path string, update UpdateFunc) (bool, error)

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error

	Close() error
}

// ErrTooMuchContention is returned when a transaction keeps losing the
// compare-and-set race and the retry budget runs out.
var ErrTooMuchContention = errors.New("store: transaction retry budget exhausted")

func wrapPathErr(op, path string, err error) error {
	return fmt.Errorf("store: %s %q: %w", op, path, err)
}
