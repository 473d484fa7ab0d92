package cart

import "sync"

// Listener receives the cart contents after every mutation.
type Listener func(items []Item)

// Store holds the ordered cart lines for one session. Operations never fail;
// unknown item ids are ignored.
type Store struct {
	mu        sync.Mutex
	items     []Item
	listeners map[int]Listener
	nextID    int
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{listeners: make(map[int]Listener)}
}

// AddItem merges into an existing line with the same ItemID, keeping its position,
// or appends a new line. A zero or negative quantity on the incoming item counts as 1.
func (s *Store) AddItem(item Item) {
	qty := item.Quantity
	if qty <= 0 {
		qty = 1
	}

	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].ItemID == item.ItemID {
			s.items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = qty
		s.items = append(s.items, item)
	}
	s.mu.Unlock()

	s.notify()
}

// RemoveItem deletes the line for itemID if present.
func (s *Store) RemoveItem(itemID string) {
	s.mu.Lock()
	idx := s.indexOf(itemID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.mu.Unlock()

	s.notify()
}

// UpdateQuantity sets the line quantity verbatim. Callers apply any clamping.
func (s *Store) UpdateQuantity(itemID string, quantity int) {
	s.mu.Lock()
	idx := s.indexOf(itemID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.items[idx].Quantity = quantity
	s.mu.Unlock()

	s.notify()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.notify()
}

// RemovePlaced takes the placed lines out of the cart. Quantity added to a
// line after the snapshot stays in the cart, as do lines that were not placed.
func (s *Store) RemovePlaced(placed []Item) {
	s.mu.Lock()
	for _, p := range placed {
		idx := s.indexOf(p.ItemID)
		if idx < 0 {
			continue
		}
		remaining := s.items[idx].Quantity - p.Quantity
		if remaining > 0 {
			s.items[idx].Quantity = remaining
			continue
		}
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	}
	s.mu.Unlock()

	s.notify()
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Count is the sum of all line quantities.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// Subscribe registers fn to run after each mutation. The returned func removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) indexOf(itemID string) int {
	for i := range s.items {
		if s.items[i].ItemID == itemID {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// notify runs listeners outside the lock so they may read the store.
func (s *Store) notify() {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}
