package order

import (
	"errors"
	"sync"
)

var (
	ErrNotFound   = errors.New("order not found")
	ErrIDConflict = errors.New("order id already assigned")
)

type Repository interface {
	List() ([]Order, error)
	GetByID(id string) (Order, error)
	LastID() (string, error)
	Create(o Order) (Order, error)
	Update(id string, o Order) (Order, error)
	Delete(id string) error
}

// InMemoryRepository mirrors the postgres contract for tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	r := &InMemoryRepository{orders: make([]Order, 0, len(seed))}
	r.orders = append(r.orders, seed...)
	return r
}

func (r *InMemoryRepository) List() ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) LastID() (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	last := ""
	for _, o := range r.orders {
		if longerOrLater(o.ID, last) {
			last = o.ID
		}
	}
	return last, nil
}

func (r *InMemoryRepository) Create(o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.orders {
		if existing.ID == o.ID {
			return Order{}, ErrIDConflict
		}
	}
	r.orders = append(r.orders, o)
	return o, nil
}

func (r *InMemoryRepository) Update(id string, o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.orders {
		if existing.ID == id {
			o.ID = id
			r.orders[i] = o
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, o := range r.orders {
		if o.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func longerOrLater(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a > b
}
