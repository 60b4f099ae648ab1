package domain

import (
	"context"
	"errors"
)

var (
	ErrHistoryUnavailable = errors.New("navigation history unavailable")
	ErrKeyNotFound        = errors.New("key not found")
)

// HistoryState is the payload attached to a history entry.
type HistoryState struct {
	View   View          `json:"view"`
	Report *ReportResult `json:"report,omitempty"`
}

// NavigationEntry is one position of the session history stack. State may be
// nil for entries created by a manual URL edit or before payloads existed.
type NavigationEntry struct {
	Path  string
	State *HistoryState
}

// PopEvent is emitted when the user moves through history (back/forward).
type PopEvent struct {
	Path  string
	State *HistoryState
}

type NavigationStore interface {
	// Push appends an entry after the current one, discarding any forward entries.
	Push(entry NavigationEntry) error

	// Replace overwrites the current entry without changing the stack depth.
	Replace(entry NavigationEntry) error

	// Current returns the entry at the cursor.
	Current() (NavigationEntry, error)

	// Subscribe registers a listener for back/forward moves.
	// The returned func removes it; calling it twice is safe.
	Subscribe(listener func(PopEvent)) (unsubscribe func())
}

// KeyValueStore is the durable local storage used to recover the last report.
type KeyValueStore interface {
	// Get returns ErrKeyNotFound when the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
