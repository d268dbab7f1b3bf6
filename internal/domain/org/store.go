package org

import "context"

// EmployeeStore is the persistence surface the lifecycle service needs.
// Lookups return employees with their department preloaded when assigned.
type EmployeeStore interface {
	GetEmployee(ctx context.Context, id int64) (*Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	CreateEmployee(ctx context.Context, e *Employee) error
	UpdateEmployee(ctx context.Context, e *Employee) error
	DeleteEmployee(ctx context.Context, id int64) error
	CountByDepartment(ctx context.Context, departmentID int64) (int, error)
}

type DepartmentStore interface {
	GetDepartment(ctx context.Context, id int64) (*Department, error)
	ListDepartments(ctx context.Context) ([]Department, error)
	CreateDepartment(ctx context.Context, d *Department) error
	UpdateDepartment(ctx context.Context, d *Department) error
	DeleteDepartment(ctx context.Context, id int64) error
	SetEmployeesCount(ctx context.Context, id int64, count int) error
}

type AccountStore interface {
	GetAccountByEmployee(ctx context.Context, employeeID int64) (*Account, error)
	ListAccounts(ctx context.Context) ([]Account, error)

	// CreateAccount fails with ErrAccountExists if the employee already has
	// an account and with ErrLoginTaken on a login conflict; it never
	// replaces existing rows.
	CreateAccount(ctx context.Context, a *Account) error
	LoginExists(ctx context.Context, login string) (bool, error)
}
