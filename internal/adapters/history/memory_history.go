package history

import (
	"sync"

	"github.com/screenaware/screenaware/internal/core/domain"
)

var _ domain.NavigationStore = (*MemoryHistory)(nil)

// MemoryHistory is an in-process session history: a stack of entries with a
// cursor, mirroring how a browser tab behaves.
type MemoryHistory struct {
	mu        sync.Mutex
	entries   []domain.NavigationEntry
	cursor    int
	listeners map[int]func(domain.PopEvent)
	nextID    int
}

// NewMemoryHistory starts with a single payload-less entry at initialPath,
// as if the user had typed the URL.
func NewMemoryHistory(initialPath string) *MemoryHistory {
	if initialPath == "" {
		initialPath = "/"
	}
	return &MemoryHistory{
		entries:   []domain.NavigationEntry{{Path: initialPath}},
		listeners: make(map[int]func(domain.PopEvent)),
	}
}

func (h *MemoryHistory) Push(entry domain.NavigationEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries[:h.cursor+1], cloneEntry(entry))
	h.cursor = len(h.entries) - 1
	return nil
}

func (h *MemoryHistory) Replace(entry domain.NavigationEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries[h.cursor] = cloneEntry(entry)
	return nil
}

func (h *MemoryHistory) Current() (domain.NavigationEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return cloneEntry(h.entries[h.cursor]), nil
}

func (h *MemoryHistory) Subscribe(listener func(domain.PopEvent)) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = listener
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners, id)
			h.mu.Unlock()
		})
	}
}

// Depth is the number of entries on the stack, forward entries included.
func (h *MemoryHistory) Depth() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Index is the cursor position.
func (h *MemoryHistory) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}

// Back moves one entry back. It reports false when already at the oldest entry.
func (h *MemoryHistory) Back() bool {
	return h.Go(-1)
}

func (h *MemoryHistory) Forward() bool {
	return h.Go(1)
}

// Go moves the cursor by delta and notifies subscribers. Moves past either end are ignored.
func (h *MemoryHistory) Go(delta int) bool {
	h.mu.Lock()
	target := h.cursor + delta
	if delta == 0 || target < 0 || target >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.cursor = target
	entry := cloneEntry(h.entries[target])
	listeners := make([]func(domain.PopEvent), 0, len(h.listeners))
	for _, fn := range h.listeners {
		listeners = append(listeners, fn)
	}
	h.mu.Unlock()

	event := domain.PopEvent{Path: entry.Path, State: entry.State}
	for _, fn := range listeners {
		fn(event)
	}
	return true
}

// Visit simulates the user editing the address bar: a new payload-less entry is pushed
// without notifying subscribers, exactly like a fresh page load would.
func (h *MemoryHistory) Visit(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries[:h.cursor+1], domain.NavigationEntry{Path: path})
	h.cursor = len(h.entries) - 1
}

func cloneEntry(e domain.NavigationEntry) domain.NavigationEntry {
	if e.State == nil {
		return e
	}
	state := *e.State
	e.State = &state
	return e
}
