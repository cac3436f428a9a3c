package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryStore is an ItemStore kept in process memory. IDs come from a counter starting at 1.
type MemoryStore struct {
	mu     sync.RWMutex
	items  map[int64]Item
	nextID int64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:  make(map[int64]Item),
		nextID: 1,
	}
}

// ListAll returns a snapshot of all items ordered by ID.
func (s *MemoryStore) ListAll(_ context.Context) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	slices.SortFunc(items, func(a, b Item) int { return cmp.Compare(a.ID, b.ID) })
	return items, nil
}

// FindByID retrieves an item by its ID. The bool is false if no item has that ID.
func (s *MemoryStore) FindByID(_ context.Context, id int64) (Item, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	return item, ok, nil
}

// Insert stores a new item under the next free ID.
func (s *MemoryStore) Insert(_ context.Context, name string, quantity int32) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := Item{ID: s.nextID, Name: name, Quantity: quantity}
	s.items[item.ID] = item
	s.nextID++
	return item, nil
}

// Update overwrites name and quantity of an existing item. The bool is false if no item has that ID.
func (s *MemoryStore) Update(_ context.Context, id int64, name string, quantity int32) (Item, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return Item{}, false, nil
	}
	item := Item{ID: id, Name: name, Quantity: quantity}
	s.items[id] = item
	return item, true, nil
}

// Exists reports whether an item with the given ID is stored.
func (s *MemoryStore) Exists(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.items[id]
	return ok, nil
}

// Delete removes an item by its ID. Deleting an absent ID is a no-op.
func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)
	return nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}
