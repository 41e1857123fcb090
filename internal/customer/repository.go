package customer

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrNotFound    = errors.New("customer not found")
	ErrEmailExists = errors.New("email already exists")
	ErrIDConflict  = errors.New("customer id already assigned")
)

type Repository interface {
	List() ([]Customer, error)
	GetByID(id string) (Customer, error)
	GetByEmail(email string) (Customer, error)
	// LastID returns the highest assigned business ID, or "" when the
	// collection is empty.
	LastID() (string, error)
	Create(c Customer) (Customer, error)
	Update(id string, c Customer) (Customer, error)
	// Delete removes the record and returns it so callers can clean up the
	// stored profile image.
	Delete(id string) (Customer, error)
}

// InMemoryRepository mirrors the postgres repository's contract, including
// both uniqueness rules. Used by tests.
type InMemoryRepository struct {
	mu        sync.RWMutex
	customers []Customer
}

func NewInMemoryRepository(seed []Customer) *InMemoryRepository {
	r := &InMemoryRepository{customers: make([]Customer, 0, len(seed))}
	r.customers = append(r.customers, seed...)
	return r
}

func (r *InMemoryRepository) List() ([]Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Customer, len(r.customers))
	copy(out, r.customers)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id string) (Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return Customer{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.customers {
		if strings.EqualFold(c.Email, email) {
			return c, nil
		}
	}
	return Customer{}, ErrNotFound
}

func (r *InMemoryRepository) LastID() (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	last := ""
	for _, c := range r.customers {
		if longerOrLater(c.ID, last) {
			last = c.ID
		}
	}
	return last, nil
}

func (r *InMemoryRepository) Create(c Customer) (Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.customers {
		if existing.ID == c.ID {
			return Customer{}, ErrIDConflict
		}
		if strings.EqualFold(existing.Email, c.Email) {
			return Customer{}, ErrEmailExists
		}
	}
	r.customers = append(r.customers, c)
	return c, nil
}

func (r *InMemoryRepository) Update(id string, c Customer) (Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.customers {
		if existing.ID != id {
			continue
		}
		for j, other := range r.customers {
			if j != i && strings.EqualFold(other.Email, c.Email) {
				return Customer{}, ErrEmailExists
			}
		}
		c.ID = id
		r.customers[i] = c
		return c, nil
	}
	return Customer{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id string) (Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.customers {
		if c.ID == id {
			r.customers = append(r.customers[:i], r.customers[i+1:]...)
			return c, nil
		}
	}
	return Customer{}, ErrNotFound
}

// longerOrLater orders fixed-width sequence IDs, letting counters that
// outgrew the pad width still sort last.
func longerOrLater(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a > b
}
