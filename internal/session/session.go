package session

import (
	"context"
	"sync"
	"time"

	"github.com/angelmondragon/laundrypro-storefront/internal/cart"
	"github.com/angelmondragon/laundrypro-storefront/internal/orders"
	"github.com/google/uuid"
)

// Session owns one visitor's Cart and Orders stores.
type Session struct {
	ID        string
	Cart      *cart.Store
	Orders    *orders.Store
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// Manager is the in-memory session registry.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	idleTTL  time.Duration
	now      func() time.Time
}

// NewManager builds a registry whose sessions expire after idleTTL without use.
// A non-positive idleTTL disables expiry.
func NewManager(idleTTL time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Start provisions a session with empty stores.
func (m *Manager) Start() *Session {
	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		Cart:      cart.NewStore(),
		Orders:    orders.NewStore(),
		CreatedAt: now,
		lastSeen:  now,
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the live session for id. Expired sessions are treated as absent.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if m.expired(s, m.now()) {
		m.End(id)
		return nil, false
	}
	return s, true
}

// Touch records activity on s.
func (m *Manager) Touch(s *Session) {
	s.touch(m.now())
}

// End tears the session down; its stores are discarded.
func (m *Manager) End(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Sweep evicts idle sessions and returns how many were removed.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			removed := m.Sweep(t)
			if onSweep != nil && removed > 0 {
				onSweep(removed)
			}
		}
	}
}

func (m *Manager) expired(s *Session, now time.Time) bool {
	return m.idleTTL > 0 && now.Sub(s.LastSeen()) > m.idleTTL
}
