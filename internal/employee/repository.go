package employee

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrNotFound    = errors.New("employee not found")
	ErrEmailExists = errors.New("email already exists")
	ErrIDConflict  = errors.New("employee id already assigned")
)

type Repository interface {
	List() ([]Employee, error)
	GetByID(id string) (Employee, error)
	LastID() (string, error)
	Create(e Employee) (Employee, error)
	Update(id string, e Employee) (Employee, error)
	Delete(id string) error
}

// InMemoryRepository mirrors the postgres contract for tests.
type InMemoryRepository struct {
	mu        sync.RWMutex
	employees []Employee
}

func NewInMemoryRepository(seed []Employee) *InMemoryRepository {
	r := &InMemoryRepository{employees: make([]Employee, 0, len(seed))}
	r.employees = append(r.employees, seed...)
	return r
}

func (r *InMemoryRepository) List() ([]Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Employee, len(r.employees))
	copy(out, r.employees)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id string) (Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return Employee{}, ErrNotFound
}

func (r *InMemoryRepository) LastID() (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	last := ""
	for _, e := range r.employees {
		if longerOrLater(e.ID, last) {
			last = e.ID
		}
	}
	return last, nil
}

func (r *InMemoryRepository) Create(e Employee) (Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.employees {
		if existing.ID == e.ID {
			return Employee{}, ErrIDConflict
		}
		if strings.EqualFold(existing.Email, e.Email) {
			return Employee{}, ErrEmailExists
		}
	}
	r.employees = append(r.employees, e)
	return e, nil
}

func (r *InMemoryRepository) Update(id string, e Employee) (Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.employees {
		if existing.ID != id {
			continue
		}
		for j, other := range r.employees {
			if j != i && strings.EqualFold(other.Email, e.Email) {
				return Employee{}, ErrEmailExists
			}
		}
		e.ID = id
		r.employees[i] = e
		return e, nil
	}
	return Employee{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.employees {
		if e.ID == id {
			r.employees = append(r.employees[:i], r.employees[i+1:]...)
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
