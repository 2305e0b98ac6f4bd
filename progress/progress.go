package progress

import (
	"sync"
	"time"
)

// Event is one progress update for a long-running session (bulk apply,
// traffic sync).
type Event struct {
	SessionID string    `json:"session_id"`
	Stage     string    `json:"stage"`
	StoreID   string    `json:"store_id,omitempty"`
	Message   string    `json:"message,omitempty"`
	Done      bool      `json:"done"`
	Timestamp time.Time `json:"timestamp"`
}

// Store records and fans out progress events per session. Its lifetime is
// owned by the caller that creates it, not by the process.
type Store interface {
	Record(sessionID string, ev Event)
	Subscribe(sessionID string) <-chan Event
	End(sessionID string)
}

const subscriberBuffer = 64

// MemoryStore is an in-memory Store with bounded per-subscriber channels.
// A slow subscriber drops events instead of blocking the producer.
type MemoryStore struct {
	mu   sync.Mutex
	subs map[string][]chan Event
}

// NewMemoryStore initializes an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		subs: make(map[string][]chan Event),
	}
}

// Record stamps and delivers an event to every subscriber of the session.
func (s *MemoryStore) Record(sessionID string, ev Event) {
	ev.SessionID = sessionID
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs[sessionID] {
		select {
		case ch <- ev:
		default: // subscriber is behind; drop rather than block
		}
	}
}

// Subscribe returns a channel of events for the session. The channel is
// closed by End.
func (s *MemoryStore) Subscribe(sessionID string) <-chan Event {
	ch := make(chan Event, subscriberBuffer)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[sessionID] = append(s.subs[sessionID], ch)
	return ch
}

// End closes every subscriber channel and forgets the session.
func (s *MemoryStore) End(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs[sessionID] {
		close(ch)
	}
	delete(s.subs, sessionID)
}
