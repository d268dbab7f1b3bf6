package org

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements EmployeeStore, DepartmentStore and AccountStore
// against the shared connection pool.
type PostgresStore struct {
	DB *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{DB: db}
}

const employeeColumns = `
    e.id, e.last_name, e.first_name, COALESCE(e.patronymic, ''),
    e.department_id,
    COALESCE(e.position, ''), e.rank,
    e.date_hired, e.date_of_birth, e.created_at, e.updated_at,
    d.id, d.name, d.specialization, d.employees_count`

func scanEmployee(row pgx.Row) (*Employee, error) {
	var emp Employee
	var deptID *int64
	var deptName, deptSpec *string
	var deptCount *int
	err := row.Scan(
		&emp.ID, &emp.LastName, &emp.FirstName, &emp.Patronymic,
		&emp.DepartmentID,
		&emp.Position, &emp.Rank,
		&emp.DateHired, &emp.DateOfBirth, &emp.CreatedAt, &emp.UpdatedAt,
		&deptID, &deptName, &deptSpec, &deptCount,
	)
	if err != nil {
		return nil, err
	}
	if deptID != nil {
		emp.Department = &Department{
			ID:             *deptID,
			Name:           *deptName,
			Specialization: *deptSpec,
			EmployeesCount: *deptCount,
		}
	}
	return &emp, nil
}

func (s *PostgresStore) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees e
    LEFT JOIN departments d ON e.department_id = d.id
    WHERE e.id = $1
  `, id)
	emp, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	return emp, err
}

func (s *PostgresStore) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees e
    LEFT JOIN departments d ON e.department_id = d.id
    ORDER BY e.last_name, e.first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *emp)
	}
	return employees, rows.Err()
}

func (s *PostgresStore) CreateEmployee(ctx context.Context, e *Employee) error {
	return s.DB.QueryRow(ctx, `
    INSERT INTO employees (last_name, first_name, patronymic, department_id, position, rank, date_hired, date_of_birth)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING id, created_at, updated_at
  `, e.LastName, e.FirstName, e.Patronymic, e.DepartmentID, e.Position, e.Rank, e.DateHired, e.DateOfBirth).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (s *PostgresStore) UpdateEmployee(ctx context.Context, e *Employee) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET last_name = $2, first_name = $3, patronymic = $4, department_id = $5,
        position = $6, rank = $7, date_hired = $8, date_of_birth = $9,
        updated_at = now()
    WHERE id = $1
  `, e.ID, e.LastName, e.FirstName, e.Patronymic, e.DepartmentID, e.Position, e.Rank, e.DateHired, e.DateOfBirth)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteEmployee(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *PostgresStore) CountByDepartment(ctx context.Context, departmentID int64) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE department_id = $1", departmentID).Scan(&count)
	return count, err
}

func (s *PostgresStore) GetDepartment(ctx context.Context, id int64) (*Department, error) {
	var dept Department
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, specialization, employees_count
    FROM departments WHERE id = $1
  `, id).Scan(&dept.ID, &dept.Name, &dept.Specialization, &dept.EmployeesCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDepartmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (s *PostgresStore) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, specialization, employees_count
    FROM departments ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := make([]Department, 0)
	for rows.Next() {
		var dept Department
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.Specialization, &dept.EmployeesCount); err != nil {
			return nil, err
		}
		departments = append(departments, dept)
	}
	return departments, rows.Err()
}

func (s *PostgresStore) CreateDepartment(ctx context.Context, d *Department) error {
	return s.DB.QueryRow(ctx, `
    INSERT INTO departments (name, specialization) VALUES ($1, $2) RETURNING id
  `, d.Name, d.Specialization).Scan(&d.ID)
}

func (s *PostgresStore) UpdateDepartment(ctx context.Context, d *Department) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE departments SET name = $2, specialization = $3 WHERE id = $1
  `, d.ID, d.Name, d.Specialization)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteDepartment(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

func (s *PostgresStore) SetEmployeesCount(ctx context.Context, id int64, count int) error {
	_, err := s.DB.Exec(ctx, "UPDATE departments SET employees_count = $2 WHERE id = $1", id, count)
	return err
}

func (s *PostgresStore) GetAccountByEmployee(ctx context.Context, employeeID int64) (*Account, error) {
	var acc Account
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, name, login, credential
    FROM accounts WHERE employee_id = $1
  `, employeeID).Scan(&acc.ID, &acc.EmployeeID, &acc.Name, &acc.Login, &acc.Credential)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *PostgresStore) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, name, login, credential
    FROM accounts ORDER BY login
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]Account, 0)
	for rows.Next() {
		var acc Account
		if err := rows.Scan(&acc.ID, &acc.EmployeeID, &acc.Name, &acc.Login, &acc.Credential); err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

func (s *PostgresStore) CreateAccount(ctx context.Context, a *Account) error {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO accounts (employee_id, name, login, credential)
    VALUES ($1, $2, $3, $4)
    RETURNING id
  `, a.EmployeeID, a.Name, a.Login, a.Credential).Scan(&a.ID)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "accounts_employee_id_key" {
			return ErrAccountExists
		}
		return ErrLoginTaken
	}
	return err
}

func (s *PostgresStore) LoginExists(ctx context.Context, login string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM accounts WHERE login = $1", login).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
