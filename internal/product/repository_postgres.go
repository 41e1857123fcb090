package product

import (
	"database/sql"

	"github.com/shoplane/shop-backend/internal/pgerr"
)

const idConstraint = "products_p_id_key"

const productColumns = `p_id, p_name, p_description, p_price, p_quantity, p_category, p_image, created_at, updated_at`

const (
	listQuery    = `SELECT ` + productColumns + ` FROM products ORDER BY p_id`
	getByIDQuery = `SELECT ` + productColumns + ` FROM products WHERE p_id = $1`
	lastIDQuery  = `SELECT p_id FROM products ORDER BY length(p_id) DESC, p_id DESC LIMIT 1`
	insertQuery  = `
		INSERT INTO products (p_id, p_name, p_description, p_price, p_quantity, p_category, p_image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	updateQuery = `
		UPDATE products
		SET p_name = $2, p_description = $3, p_price = $4, p_quantity = $5, p_category = $6, p_image = $7, updated_at = $8
		WHERE p_id = $1`
	deleteQuery = `DELETE FROM products WHERE p_id = $1`
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

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.Category, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PostgresRepository) List() ([]Product, error) {
	rows, err := r.db.Query(listQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getByIDQuery, id))
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) LastID() (string, error) {
	var id string
	err := r.db.QueryRow(lastIDQuery).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return id, err
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	_, err := r.db.Exec(insertQuery,
		p.ID, p.Name, p.Description, p.Price, p.Quantity, p.Category, p.Image, p.CreatedAt, p.UpdatedAt)
	if pgerr.IsUniqueViolation(err, idConstraint) {
		return Product{}, ErrIDConflict
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id string, p Product) (Product, error) {
	result, err := r.db.Exec(updateQuery,
		id, p.Name, p.Description, p.Price, p.Quantity, p.Category, p.Image, p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Product{}, err
	}
	if affected == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id string) error {
	result, err := r.db.Exec(deleteQuery, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
