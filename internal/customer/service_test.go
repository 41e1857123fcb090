package customer

import (
	"errors"
	"testing"

	"github.com/shoplane/shop-backend/internal/credential"
	"github.com/shoplane/shop-backend/internal/sequence"
)

func testCreds(t *testing.T) *credential.Manager {
	t.Helper()
	creds, err := credential.NewManager(testSecret)
	if err != nil {
		t.Fatal(err)
	}
	return creds
}

func sampleCustomer(email string) Customer {
	return Customer{
		Name:     "Nimal Perera",
		Email:    email,
		Password: "supersecret",
		Phone:    "0771234567",
		Address:  "12 Galle Road, Colombo",
		Age:      25,
		Gender:   "Male",
	}
}

// racingRepo simulates another writer claiming the allocated ID between the
// read and the insert.
type racingRepo struct {
	*InMemoryRepository
	conflicts int
}

func (r *racingRepo) Create(c Customer) (Customer, error) {
	if r.conflicts > 0 {
		r.conflicts--
		// claim the ID the caller just computed
		taken := c
		taken.Email = "squatter-" + c.ID + "@example.com"
		if _, err := r.InMemoryRepository.Create(taken); err != nil {
			return Customer{}, err
		}
		return Customer{}, ErrIDConflict
	}
	return r.InMemoryRepository.Create(c)
}

func TestRegisterRetriesOnIDConflict(t *testing.T) {
	repo := &racingRepo{InMemoryRepository: NewInMemoryRepository(nil), conflicts: 2}
	svc := NewService(repo, testCreds(t))

	created, _, err := svc.Register(sampleCustomer("nimal@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	// two IDs were squatted, the third attempt lands
	if created.ID != "Cus0003M" {
		t.Errorf("ID = %q, want Cus0003M", created.ID)
	}
}

func TestRegisterGivesUpAfterBoundedRetries(t *testing.T) {
	repo := &racingRepo{InMemoryRepository: NewInMemoryRepository(nil), conflicts: 10}
	svc := NewService(repo, testCreds(t))

	if _, _, err := svc.Register(sampleCustomer("nimal@example.com")); !errors.Is(err, ErrIDConflict) {
		t.Fatalf("err = %v, want wrapped ErrIDConflict", err)
	}
}

func TestRegisterFailsOnMalformedSequenceState(t *testing.T) {
	// a record with a foreign-format ID corrupts the sequence state; the
	// allocator must refuse rather than mint a bogus identifier
	repo := NewInMemoryRepository([]Customer{{ID: "LEGACY-77", Email: "old@example.com"}})
	svc := NewService(repo, testCreds(t))

	_, _, err := svc.Register(sampleCustomer("nimal@example.com"))
	if !errors.Is(err, sequence.ErrMalformedSequence) {
		t.Fatalf("err = %v, want ErrMalformedSequence", err)
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	svc := NewService(repo, testCreds(t))

	created, _, err := svc.Register(sampleCustomer("nimal@example.com"))
	if err != nil {
		t.Fatal(err)
	}

	stored, err := repo.GetByID(created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Password == "supersecret" {
		t.Fatal("plaintext password persisted")
	}
	if !credential.VerifyPassword("supersecret", stored.Password) {
		t.Fatal("stored digest does not verify")
	}
}

func TestUpdateReportsPreviousProfile(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	svc := NewService(repo, testCreds(t))

	created, _, err := svc.Register(sampleCustomer("nimal@example.com"))
	if err != nil {
		t.Fatal(err)
	}

	newProfile := "/uploads/profiles/abc.png"
	updated, previous, err := svc.Update(created.ID, Update{Profile: &newProfile})
	if err != nil {
		t.Fatal(err)
	}
	if previous != created.Profile {
		t.Errorf("previous = %q, want %q", previous, created.Profile)
	}
	if updated.Profile != newProfile {
		t.Errorf("profile = %q, want %q", updated.Profile, newProfile)
	}
	if updated.ID != created.ID {
		t.Errorf("ID changed on update: %q", updated.ID)
	}
}
