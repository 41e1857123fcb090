package product

import (
	"errors"
	"fmt"
	"time"

	"github.com/shoplane/shop-backend/internal/sequence"
)

// IDScheme selects how new PIDs are minted.
type IDScheme int

const (
	// SequentialIDs continues the Product001, Product002, ... series.
	SequentialIDs IDScheme = iota
	// RandomIDs mints PRD-NNNNNN identifiers and relies on the unique
	// index plus retry to weed out collisions.
	RandomIDs
)

const idRetries = 3

type Service struct {
	repo   Repository
	scheme IDScheme
}

func NewService(repo Repository, scheme IDScheme) *Service {
	return &Service{repo: repo, scheme: scheme}
}

func (s *Service) List() ([]Product, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id string) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Product) (Product, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	p.CreatedAt, p.UpdatedAt = now, now

	var lastErr error
	for attempt := 0; attempt < idRetries; attempt++ {
		id, err := s.nextID()
		if err != nil {
			return Product{}, err
		}
		p.ID = id

		created, err := s.repo.Create(p)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, ErrIDConflict) {
			return Product{}, err
		}
		lastErr = err
	}
	return Product{}, fmt.Errorf("allocating product id: %w", lastErr)
}

func (s *Service) nextID() (string, error) {
	if s.scheme == RandomIDs {
		return sequence.Random(RandomIDPrefix, RandomIDDigits), nil
	}
	last, err := s.repo.LastID()
	if err != nil {
		return "", err
	}
	if last == "" {
		return IDPolicy.First(), nil
	}
	return IDPolicy.Next(last)
}

func (s *Service) Update(id string, upd Update) (Product, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return Product{}, err
	}

	if upd.Name != nil {
		existing.Name = *upd.Name
	}
	if upd.Description != nil {
		existing.Description = *upd.Description
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
	if upd.Image != nil {
		existing.Image = *upd.Image
	}
	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	return s.repo.Update(id, existing)
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}
