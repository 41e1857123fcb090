package employee

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shoplane/shop-backend/internal/credential"
)

const idRetries = 3

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Employee, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id string) (Employee, error) {
	return s.repo.GetByID(id)
}

// Create hashes the password, allocates the next EmpID and persists the
// record.
func (s *Service) Create(e Employee) (Employee, error) {
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))

	digest, err := credential.HashPassword(e.Password)
	if err != nil {
		return Employee{}, err
	}
	e.Password = digest

	now := time.Now().UTC().Format(time.RFC3339)
	e.CreatedAt, e.UpdatedAt = now, now

	var lastErr error
	for attempt := 0; attempt < idRetries; attempt++ {
		last, err := s.repo.LastID()
		if err != nil {
			return Employee{}, err
		}
		if last == "" {
			e.ID = IDPolicy.First()
		} else {
			e.ID, err = IDPolicy.Next(last)
			if err != nil {
				return Employee{}, err
			}
		}

		created, err := s.repo.Create(e)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, ErrIDConflict) {
			return Employee{}, err
		}
		lastErr = err
	}
	return Employee{}, fmt.Errorf("allocating employee id: %w", lastErr)
}

func (s *Service) Update(id string, upd Update) (Employee, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return Employee{}, err
	}

	if upd.Name != nil {
		existing.Name = *upd.Name
	}
	if upd.Email != nil {
		existing.Email = strings.ToLower(strings.TrimSpace(*upd.Email))
	}
	if upd.Phone != nil {
		existing.Phone = *upd.Phone
	}
	if upd.Address != nil {
		existing.Address = *upd.Address
	}
	if upd.Age != nil {
		existing.Age = *upd.Age
	}
	if upd.Gender != nil {
		existing.Gender = *upd.Gender
	}
	if upd.Profile != nil {
		existing.Profile = *upd.Profile
	}
	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	return s.repo.Update(id, existing)
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}
