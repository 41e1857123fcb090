package product

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/shoplane/shop-backend/internal/sequence"
)

func sampleProduct() Product {
	return Product{
		Name:        "Ceramic Mug",
		Description: "350ml stoneware mug",
		Price:       decimal.RequireFromString("19.99"),
		Quantity:    40,
		Category:    "Kitchen",
		Image:       "/uploads/products/mug.png",
	}
}

// collidingRepo rejects the first n creates with an ID conflict.
type collidingRepo struct {
	*InMemoryRepository
	conflicts int
}

func (r *collidingRepo) Create(p Product) (Product, error) {
	if r.conflicts > 0 {
		r.conflicts--
		return Product{}, ErrIDConflict
	}
	return r.InMemoryRepository.Create(p)
}

func TestCreateRetriesRandomCollisions(t *testing.T) {
	repo := &collidingRepo{InMemoryRepository: NewInMemoryRepository(nil), conflicts: 2}
	svc := NewService(repo, RandomIDs)

	created, err := svc.Create(sampleProduct())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("no ID assigned")
	}
}

func TestCreateGivesUpAfterBoundedRetries(t *testing.T) {
	repo := &collidingRepo{InMemoryRepository: NewInMemoryRepository(nil), conflicts: 10}
	svc := NewService(repo, RandomIDs)

	if _, err := svc.Create(sampleProduct()); !errors.Is(err, ErrIDConflict) {
		t.Fatalf("err = %v, want wrapped ErrIDConflict", err)
	}
}

func TestSequentialCreateFailsOnForeignID(t *testing.T) {
	// a PRD- record in a sequentially-allocated collection is corrupted
	// sequence state, not something to silently skip
	repo := NewInMemoryRepository([]Product{{ID: "PRD-123456"}})
	svc := NewService(repo, SequentialIDs)

	if _, err := svc.Create(sampleProduct()); !errors.Is(err, sequence.ErrMalformedSequence) {
		t.Fatalf("err = %v, want ErrMalformedSequence", err)
	}
}

func TestUpdatePartialFields(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil), SequentialIDs)
	created, err := svc.Create(sampleProduct())
	if err != nil {
		t.Fatal(err)
	}

	newPrice := decimal.RequireFromString("24.50")
	updated, err := svc.Update(created.ID, Update{Price: &newPrice})
	if err != nil {
		t.Fatal(err)
	}
	if !updated.Price.Equal(newPrice) {
		t.Errorf("price = %s", updated.Price)
	}
	if updated.Name != created.Name {
		t.Errorf("untouched field changed: %q", updated.Name)
	}
}
