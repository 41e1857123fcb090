package order

import (
	"database/sql"

	"github.com/shoplane/shop-backend/internal/pgerr"
)

const idConstraint = "orders_o_id_key"

const orderColumns = `o_id, o_name, o_price, o_quantity, o_category, created_at, updated_at`

const (
	listQuery    = `SELECT ` + orderColumns + ` FROM orders ORDER BY o_id`
	getByIDQuery = `SELECT ` + orderColumns + ` FROM orders WHERE o_id = $1`
	lastIDQuery  = `SELECT o_id FROM orders ORDER BY length(o_id) DESC, o_id DESC LIMIT 1`
	insertQuery  = `
		INSERT INTO orders (o_id, o_name, o_price, o_quantity, o_category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	updateQuery = `
		UPDATE orders
		SET o_name = $2, o_price = $3, o_quantity = $4, o_category = $5, updated_at = $6
		WHERE o_id = $1`
	deleteQuery = `DELETE FROM orders WHERE o_id = $1`
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

func scanOrder(row rowScanner) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.Name, &o.Price, &o.Quantity, &o.Category, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func (r *PostgresRepository) List() ([]Order, error) {
	rows, err := r.db.Query(listQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (Order, error) {
	o, err := scanOrder(r.db.QueryRow(getByIDQuery, id))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return o, err
}

func (r *PostgresRepository) LastID() (string, error) {
	var id string
	err := r.db.QueryRow(lastIDQuery).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return id, err
}

func (r *PostgresRepository) Create(o Order) (Order, error) {
	_, err := r.db.Exec(insertQuery,
		o.ID, o.Name, o.Price, o.Quantity, o.Category, o.CreatedAt, o.UpdatedAt)
	if pgerr.IsUniqueViolation(err, idConstraint) {
		return Order{}, ErrIDConflict
	}
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *PostgresRepository) Update(id string, o Order) (Order, error) {
	result, err := r.db.Exec(updateQuery,
		id, o.Name, o.Price, o.Quantity, o.Category, o.UpdatedAt)
	if err != nil {
		return Order{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Order{}, err
	}
	if affected == 0 {
		return Order{}, ErrNotFound
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
