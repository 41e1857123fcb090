package customer

import (
	"database/sql"

	"github.com/shoplane/shop-backend/internal/pgerr"
)

// Unique index names created by the schema setup in cmd/app.
const (
	idConstraint    = "customers_cus_id_key"
	emailConstraint = "customers_cus_email_key"
)

const customerColumns = `cus_id, cus_name, cus_email, cus_password, cus_phone, cus_address, cus_age, cus_gender, cus_profile, created_at, updated_at`

const (
	listQuery       = `SELECT ` + customerColumns + ` FROM customers ORDER BY cus_id`
	getByIDQuery    = `SELECT ` + customerColumns + ` FROM customers WHERE cus_id = $1`
	getByEmailQuery = `SELECT ` + customerColumns + ` FROM customers WHERE lower(cus_email) = lower($1)`
	lastIDQuery     = `SELECT cus_id FROM customers ORDER BY length(cus_id) DESC, cus_id DESC LIMIT 1`
	insertQuery     = `
		INSERT INTO customers (cus_id, cus_name, cus_email, cus_password, cus_phone, cus_address, cus_age, cus_gender, cus_profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	updateQuery = `
		UPDATE customers
		SET cus_name = $2, cus_email = $3, cus_phone = $4, cus_address = $5, cus_age = $6, cus_gender = $7, cus_profile = $8, updated_at = $9
		WHERE cus_id = $1`
	deleteQuery = `DELETE FROM customers WHERE cus_id = $1`
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Password, &c.Phone, &c.Address, &c.Age, &c.Gender, &c.Profile, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *PostgresRepository) List() ([]Customer, error) {
	rows, err := r.db.Query(listQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(getByIDQuery, id))
	if err == sql.ErrNoRows {
		return Customer{}, ErrNotFound
	}
	return c, err
}

func (r *PostgresRepository) GetByEmail(email string) (Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(getByEmailQuery, email))
	if err == sql.ErrNoRows {
		return Customer{}, ErrNotFound
	}
	return c, err
}

func (r *PostgresRepository) LastID() (string, error) {
	var id string
	err := r.db.QueryRow(lastIDQuery).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return id, err
}

func (r *PostgresRepository) Create(c Customer) (Customer, error) {
	_, err := r.db.Exec(insertQuery,
		c.ID, c.Name, c.Email, c.Password, c.Phone, c.Address, c.Age, c.Gender, c.Profile, c.CreatedAt, c.UpdatedAt)
	switch {
	case pgerr.IsUniqueViolation(err, emailConstraint):
		return Customer{}, ErrEmailExists
	case pgerr.IsUniqueViolation(err, idConstraint):
		return Customer{}, ErrIDConflict
	case err != nil:
		return Customer{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Update(id string, c Customer) (Customer, error) {
	result, err := r.db.Exec(updateQuery,
		id, c.Name, c.Email, c.Phone, c.Address, c.Age, c.Gender, c.Profile, c.UpdatedAt)
	if pgerr.IsUniqueViolation(err, emailConstraint) {
		return Customer{}, ErrEmailExists
	}
	if err != nil {
		return Customer{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Customer{}, err
	}
	if affected == 0 {
		return Customer{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id string) (Customer, error) {
	c, err := r.GetByID(id)
	if err != nil {
		return Customer{}, err
	}
	if _, err := r.db.Exec(deleteQuery, id); err != nil {
		return Customer{}, err
	}
	return c, nil
}
