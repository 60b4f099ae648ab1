package services

import (
	"sync"
	"time"

	"github.com/screenaware/screenaware/internal/core/domain"
)

// Session is the signed-in identity as the client sees it.
type Session struct {
	Token string
	User  *domain.User
	// ProviderName is the display name reported by a federated provider, if any.
	ProviderName string
}

// SessionState holds the current session and notifies subscribers on every
// sign-in and sign-out.
type SessionState struct {
	mu          sync.Mutex
	current     *Session
	subscribers map[int]func(*Session)
	nextID      int
}

func NewSessionState() *SessionState {
	return &SessionState{subscribers: make(map[int]func(*Session))}
}

func (s *SessionState) Current() (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.current != nil
}

func (s *SessionState) SignIn(session *Session) {
	s.set(session)
}

func (s *SessionState) SignOut() {
	s.set(nil)
}

// Subscribe calls fn immediately with the current session, then on every change.
func (s *SessionState) Subscribe(fn func(*Session)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	current := s.current
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// DisplayName is the name used in the dashboard greeting.
func (s *SessionState) DisplayName() string {
	session, ok := s.Current()
	if !ok || session.User == nil {
		return domain.DefaultUserName
	}
	return session.User.DisplayName(session.ProviderName)
}

func (s *SessionState) set(session *Session) {
	s.mu.Lock()
	s.current = session
	subscribers := make([]func(*Session), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(session)
	}
}

// Greeting picks the salutation for the local hour of day.
func Greeting(at time.Time) string {
	switch hour := at.Hour(); {
	case hour < 12:
		return "Good Morning"
	case hour < 18:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}
