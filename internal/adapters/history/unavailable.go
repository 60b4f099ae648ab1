package history

import "github.com/screenaware/screenaware/internal/core/domain"

var _ domain.NavigationStore = Unavailable{}

// Unavailable is the navigation store of an environment without session
// history, e.g. a headless run. Every mutation fails.
type Unavailable struct {
	// Path is what Current reports as the location.
	Path string
}

func (u Unavailable) Push(domain.NavigationEntry) error {
	return domain.ErrHistoryUnavailable
}

func (u Unavailable) Replace(domain.NavigationEntry) error {
	return domain.ErrHistoryUnavailable
}

func (u Unavailable) Current() (domain.NavigationEntry, error) {
	if u.Path == "" {
		return domain.NavigationEntry{}, domain.ErrHistoryUnavailable
	}
	return domain.NavigationEntry{Path: u.Path}, nil
}

func (u Unavailable) Subscribe(func(domain.PopEvent)) func() {
	return func() {}
}
