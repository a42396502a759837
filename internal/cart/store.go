package cart

import (
	"sync"
	"time"
)

// Store persists per-session line items. Implementations must make Upsert's
// merge-increment atomic per (session, productID, size) key; a double-click
// add-to-cart losing one of the two increments is a correctness bug.
type Store interface {
	Upsert(sessionID string, item LineItem) LineItem
	SetQuantity(sessionID, productID, size string, quantity int) (LineItem, bool)
	Remove(sessionID, productID, size string)
	List(sessionID string) []LineItem
	Clear(sessionID string)
}

// MemoryStore keeps carts in process memory. Sessions are isolated behind
// their own lock so concurrent requests from different sessions never
// contend on each other's state.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionCart
}

type sessionCart struct {
	mu    sync.Mutex
	items []LineItem
}

// NewMemoryStore builds an empty in-process cart store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*sessionCart)}
}

func (s *MemoryStore) session(sessionID string, create bool) *sessionCart {
	s.mu.RLock()
	sc := s.sessions[sessionID]
	s.mu.RUnlock()
	if sc != nil || !create {
		return sc
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sc = s.sessions[sessionID]; sc == nil {
		sc = &sessionCart{}
		s.sessions[sessionID] = sc
	}
	return sc
}

// Upsert merges by (productID, size): an existing line has its quantity
// incremented and keeps its original snapshot price, otherwise the item is
// appended. The merged line item is returned.
func (s *MemoryStore) Upsert(sessionID string, item LineItem) LineItem {
	sc := s.session(sessionID, true)
	sc.mu.Lock()
	defer sc.mu.Unlock()

	for i := range sc.items {
		if sc.items[i].ProductID == item.ProductID && sc.items[i].Size == item.Size {
			sc.items[i].Quantity += item.Quantity
			return sc.items[i]
		}
	}

	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}
	sc.items = append(sc.items, item)
	return item
}

// SetQuantity sets the line's quantity to exactly the given value. A
// quantity <= 0 removes the line. The second return value reports whether a
// line remains afterwards.
func (s *MemoryStore) SetQuantity(sessionID, productID, size string, quantity int) (LineItem, bool) {
	sc := s.session(sessionID, false)
	if sc == nil {
		return LineItem{}, false
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()

	for i := range sc.items {
		if sc.items[i].ProductID == productID && sc.items[i].Size == size {
			if quantity <= 0 {
				sc.items = append(sc.items[:i], sc.items[i+1:]...)
				return LineItem{}, false
			}
			sc.items[i].Quantity = quantity
			return sc.items[i], true
		}
	}
	return LineItem{}, false
}

// Remove is an idempotent delete.
func (s *MemoryStore) Remove(sessionID, productID, size string) {
	s.SetQuantity(sessionID, productID, size, 0)
}

// List returns a copy of the session's items in insertion order.
func (s *MemoryStore) List(sessionID string) []LineItem {
	sc := s.session(sessionID, false)
	if sc == nil {
		return nil
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()

	items := make([]LineItem, len(sc.items))
	copy(items, sc.items)
	return items
}

// Clear drops the whole cart for the session.
func (s *MemoryStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
