package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/avolkov/StaffKeeper/internal/models"
)

// employeeColumns maps document field names to their table columns.
// Anything outside this map is rejected by Update.
var employeeColumns = map[string]string{
	"name":        "name",
	"email":       "email",
	"position":    "position",
	"department":  "department",
	"salary":      "salary",
	"hireDate":    "hire_date",
	"address":     "address",
	"dob":         "dob",
	"skill":       "skill",
	"nationality": "nationality",
}

const employeeSelect = `
	SELECT id, name, email, position, department, salary, hire_date,
	       address, dob, skill, nationality FROM employees`

// PostgresEmployeeRepository implements employee document persistence
// against a PostgreSQL database.
type PostgresEmployeeRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresEmployeeRepository creates a new PostgresEmployeeRepository
// using the provided *sql.DB. db must be a valid connection to a
// PostgreSQL instance.
func NewPostgresEmployeeRepository(db *sql.DB) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{DB: db}
}

// Insert stores a new employee record and returns the generated id.
func (r *PostgresEmployeeRepository) Insert(ctx context.Context, e models.Employee) (string, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO employees (id, name, email, position, department, salary, hire_date,
		                       address, dob, skill, nationality)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, id, e.Name, e.Email, e.Position, e.Department, e.Salary, e.HireDate,
		e.Address, e.DOB, e.Skill, e.Nationality)
	if err != nil {
		return "", fmt.Errorf("insert employee: %w", err)
	}
	return id, nil
}

// List fetches every employee record ordered ascending by name.
func (r *PostgresEmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	rows, err := r.DB.QueryContext(ctx, employeeSelect+` ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

// GetByID retrieves a single employee by id. Returns nil without error
// when the id does not resolve.
func (r *PostgresEmployeeRepository) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	var e models.Employee
	err := r.DB.QueryRowContext(ctx, employeeSelect+` WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.Email, &e.Position, &e.Department, &e.Salary, &e.HireDate,
			&e.Address, &e.DOB, &e.Skill, &e.Nationality)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// Update applies only the supplied fields to the record. Unknown field
// names are rejected. Returns the number of rows affected so callers can
// distinguish a missing id.
func (r *PostgresEmployeeRepository) Update(ctx context.Context, id string, fields models.Partial) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}

	// Deterministic column order keeps queries stable for tests.
	names := make([]string, 0, len(fields))
	for name := range fields {
		if _, ok := employeeColumns[name]; !ok {
			return 0, fmt.Errorf("update employee: unknown field %q", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	set := ""
	args := make([]any, 0, len(names)+1)
	for i, name := range names {
		if i > 0 {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", employeeColumns[name], i+1)
		args = append(args, fields[name])
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE employees SET %s WHERE id = $%d`, set, len(args))
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update employee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update employee: %w", err)
	}
	return affected, nil
}

// Delete removes an employee record. Deleting an absent id is not an error.
func (r *PostgresEmployeeRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

// FindByEmail fetches all records whose email matches exactly.
func (r *PostgresEmployeeRepository) FindByEmail(ctx context.Context, email string) ([]models.Employee, error) {
	rows, err := r.DB.QueryContext(ctx, employeeSelect+` WHERE email = $1`, email)
	if err != nil {
		return nil, fmt.Errorf("find employees by email: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

func scanEmployees(rows *sql.Rows) ([]models.Employee, error) {
	var employees []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Position, &e.Department, &e.Salary,
			&e.HireDate, &e.Address, &e.DOB, &e.Skill, &e.Nationality); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return employees, nil
}
