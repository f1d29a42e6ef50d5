package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryStore is a process-local Store for development and tests. Values are
// copied on the way in and out so callers never share a *Session.
type MemoryStore struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]memoryItem
	now   func() time.Time
}

type memoryItem struct {
	data    []byte
	expires time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store expiring sessions after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, items: map[string]memoryItem{}, now: time.Now}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	item, ok := m.items[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if m.now().After(item.expires) {
		m.mu.Lock()
		if cur, ok := m.items[id]; ok && m.now().After(cur.expires) {
			delete(m.items, id)
		}
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	var s Session
	if err := json.Unmarshal(item.data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	s.UpdatedAt = m.now().UTC()
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	now := m.now()
	m.mu.Lock()
	m.sweepLocked(now)
	m.items[s.ID] = memoryItem{data: data, expires: now.Add(m.ttl)}
	m.mu.Unlock()
	return nil
}

// sweepLocked drops expired sessions. Callers hold m.mu.
func (m *MemoryStore) sweepLocked(now time.Time) {
	for id, item := range m.items {
		if now.After(item.expires) {
			delete(m.items, id)
		}
	}
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.items, id)
	m.mu.Unlock()
	return nil
}
