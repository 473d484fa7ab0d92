package orders

import (
	"sync"

	"github.com/angelmondragon/laundrypro-storefront/pkg/enums"
)

// Listener receives the order list after every mutation.
type Listener func(orders []Order)

// Store is the session's ordered list of orders, newest placement first.
// It does not sort and does not enforce status transitions.
type Store struct {
	mu        sync.Mutex
	orders    []Order
	listeners map[int]Listener
	nextID    int
}

func NewStore() *Store {
	return &Store{listeners: make(map[int]Listener)}
}

// AddOrder prepends order.
func (s *Store) AddOrder(order Order) {
	s.mu.Lock()
	s.orders = append([]Order{order.clone()}, s.orders...)
	s.mu.Unlock()

	s.notify()
}

// UpdateOrderStatus replaces the status of every order with orderID.
// Unknown ids are ignored.
func (s *Store) UpdateOrderStatus(orderID string, status enums.OrderStatus) {
	s.mu.Lock()
	found := false
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = status
			found = true
		}
	}
	s.mu.Unlock()

	if found {
		s.notify()
	}
}

// SetOrders replaces the whole list, keeping the given order.
func (s *Store) SetOrders(list []Order) {
	next := make([]Order, len(list))
	for i, o := range list {
		next[i] = o.clone()
	}

	s.mu.Lock()
	s.orders = next
	s.mu.Unlock()

	s.notify()
}

func (s *Store) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Find returns the first order with orderID.
func (s *Store) Find(orderID string) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == orderID {
			return o.clone(), true
		}
	}
	return Order{}, false
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

func (s *Store) snapshotLocked() []Order {
	out := make([]Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = o.clone()
	}
	return out
}

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
