package customer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shoplane/shop-backend/internal/credential"
	"github.com/shoplane/shop-backend/internal/upload"
)

// ErrInvalidCredentials covers both unknown accounts and wrong passwords so
// callers cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid email or password")

// idRetries bounds the retry loop around the read-then-insert identifier
// allocation. Allocation is not transactional; a concurrent registration can
// claim the same ID, which surfaces as a unique violation and earns another
// attempt with a fresh read.
const idRetries = 3

type Service struct {
	repo  Repository
	creds *credential.Manager
}

func NewService(repo Repository, creds *credential.Manager) *Service {
	return &Service{repo: repo, creds: creds}
}

func (s *Service) List() ([]Customer, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id string) (Customer, error) {
	return s.repo.GetByID(id)
}

// Register hashes the password, allocates the business ID and persists the
// record. It returns the created customer and a bearer token carrying its ID.
func (s *Service) Register(c Customer) (Customer, string, error) {
	c.Email = normalizeEmail(c.Email)
	if _, err := s.repo.GetByEmail(c.Email); err == nil {
		return Customer{}, "", ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return Customer{}, "", err
	}

	digest, err := credential.HashPassword(c.Password)
	if err != nil {
		return Customer{}, "", err
	}
	c.Password = digest

	if c.Profile == "" {
		c.Profile = upload.DefaultProfileImage
	}
	now := time.Now().UTC().Format(time.RFC3339)
	c.CreatedAt, c.UpdatedAt = now, now

	created, err := s.createWithFreshID(c)
	if err != nil {
		return Customer{}, "", err
	}

	token, err := s.creds.IssueToken(created.ID)
	if err != nil {
		return Customer{}, "", err
	}
	return created, token, nil
}

// Authenticate verifies the password for the account behind email and issues
// a token. Any failure reports ErrInvalidCredentials.
func (s *Service) Authenticate(email, password string) (Customer, string, error) {
	c, err := s.repo.GetByEmail(normalizeEmail(email))
	if err != nil {
		return Customer{}, "", ErrInvalidCredentials
	}
	if !credential.VerifyPassword(password, c.Password) {
		return Customer{}, "", ErrInvalidCredentials
	}

	token, err := s.creds.IssueToken(c.ID)
	if err != nil {
		return Customer{}, "", err
	}
	return c, token, nil
}

// Update applies the provided fields on top of the stored record. The
// business ID never changes. It returns the updated customer together with
// the profile reference it replaced, so the caller can delete the old image.
func (s *Service) Update(id string, upd Update) (Customer, string, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return Customer{}, "", err
	}
	previousProfile := existing.Profile

	if upd.Name != nil {
		existing.Name = *upd.Name
	}
	if upd.Email != nil {
		existing.Email = normalizeEmail(*upd.Email)
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

	updated, err := s.repo.Update(id, existing)
	if err != nil {
		return Customer{}, "", err
	}
	return updated, previousProfile, nil
}

func (s *Service) Delete(id string) (Customer, error) {
	return s.repo.Delete(id)
}

func (s *Service) createWithFreshID(c Customer) (Customer, error) {
	var lastErr error
	for attempt := 0; attempt < idRetries; attempt++ {
		last, err := s.repo.LastID()
		if err != nil {
			return Customer{}, err
		}
		if last == "" {
			c.ID = IDPolicy.First()
		} else {
			c.ID, err = IDPolicy.Next(last)
			if err != nil {
				return Customer{}, err
			}
		}

		created, err := s.repo.Create(c)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, ErrIDConflict) {
			return Customer{}, err
		}
		lastErr = err
	}
	return Customer{}, fmt.Errorf("allocating customer id: %w", lastErr)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
