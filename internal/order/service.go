package order

import (
	"errors"
	"fmt"
	"time"
)

const idRetries = 3

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Order, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id string) (Order, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(o Order) (Order, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	o.CreatedAt, o.UpdatedAt = now, now

	var lastErr error
	for attempt := 0; attempt < idRetries; attempt++ {
		id, err := s.nextID()
		if err != nil {
			return Order{}, err
		}
		o.ID = id

		created, err := s.repo.Create(o)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, ErrIDConflict) {
			return Order{}, err
		}
		lastErr = err
	}
	return Order{}, fmt.Errorf("allocating order id: %w", lastErr)
}

func (s *Service) nextID() (string, error) {
	last, err := s.repo.LastID()
	if err != nil {
		return "", err
	}
	if last == "" {
		return IDPolicy.First(), nil
	}
	return IDPolicy.Next(last)
}

func (s *Service) Update(id string, upd Update) (Order, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}

	if upd.Name != nil {
		existing.Name = *upd.Name
	}
	if upd.Price != nil {
		existing.Price = *upd.Price
	}
	if upd.Quantity != nil {
		existing.Quantity = *upd.Quantity
	}
	if upd.Category != nil {
		existing.Category = *upd.Category
	}
	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	return s.repo.Update(id, existing)
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}
