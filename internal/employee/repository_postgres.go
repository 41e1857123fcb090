package employee

import (
	"database/sql"

	"github.com/shoplane/shop-backend/internal/pgerr"
)

const (
	idConstraint    = "employees_emp_id_key"
	emailConstraint = "employees_emp_email_key"
)

const employeeColumns = `emp_id, emp_name, emp_email, emp_password, emp_phone, emp_address, emp_age, emp_gender, emp_profile, created_at, updated_at`

const (
	listQuery    = `SELECT ` + employeeColumns + ` FROM employees ORDER BY emp_id`
	getByIDQuery = `SELECT ` + employeeColumns + ` FROM employees WHERE emp_id = $1`
	lastIDQuery  = `SELECT emp_id FROM employees ORDER BY length(emp_id) DESC, emp_id DESC LIMIT 1`
	insertQuery  = `
		INSERT INTO employees (emp_id, emp_name, emp_email, emp_password, emp_phone, emp_address, emp_age, emp_gender, emp_profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	updateQuery = `
		UPDATE employees
		SET emp_name = $2, emp_email = $3, emp_phone = $4, emp_address = $5, emp_age = $6, emp_gender = $7, emp_profile = $8, updated_at = $9
		WHERE emp_id = $1`
	deleteQuery = `DELETE FROM employees WHERE emp_id = $1`
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

func scanEmployee(row rowScanner) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Password, &e.Phone, &e.Address, &e.Age, &e.Gender, &e.Profile, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *PostgresRepository) List() ([]Employee, error) {
	rows, err := r.db.Query(listQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (Employee, error) {
	e, err := scanEmployee(r.db.QueryRow(getByIDQuery, id))
	if err == sql.ErrNoRows {
		return Employee{}, ErrNotFound
	}
	return e, err
}

func (r *PostgresRepository) LastID() (string, error) {
	var id string
	err := r.db.QueryRow(lastIDQuery).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return id, err
}

func (r *PostgresRepository) Create(e Employee) (Employee, error) {
	_, err := r.db.Exec(insertQuery,
		e.ID, e.Name, e.Email, e.Password, e.Phone, e.Address, e.Age, e.Gender, e.Profile, e.CreatedAt, e.UpdatedAt)
	switch {
	case pgerr.IsUniqueViolation(err, emailConstraint):
		return Employee{}, ErrEmailExists
	case pgerr.IsUniqueViolation(err, idConstraint):
		return Employee{}, ErrIDConflict
	case err != nil:
		return Employee{}, err
	}
	return e, nil
}

func (r *PostgresRepository) Update(id string, e Employee) (Employee, error) {
	result, err := r.db.Exec(updateQuery,
		id, e.Name, e.Email, e.Phone, e.Address, e.Age, e.Gender, e.Profile, e.UpdatedAt)
	if pgerr.IsUniqueViolation(err, emailConstraint) {
		return Employee{}, ErrEmailExists
	}
	if err != nil {
		return Employee{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Employee{}, err
	}
	if affected == 0 {
		return Employee{}, ErrNotFound
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
