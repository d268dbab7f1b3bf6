package org

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
)

// Service owns the employee lifecycle: validation-adjacent defaulting,
// account provisioning on creation, and explicit aggregate refreshes after
// every mutation that can change department membership.
type Service struct {
	employees   EmployeeStore
	departments DepartmentStore
	accounts    AccountStore
	aggregate   *AggregateMaintainer
}

func NewService(employees EmployeeStore, departments DepartmentStore, accounts AccountStore) *Service {
	return &Service{
		employees:   employees,
		departments: departments,
		accounts:    accounts,
		aggregate:   NewAggregateMaintainer(employees, departments),
	}
}

func (s *Service) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	return s.employees.GetEmployee(ctx, id)
}

func (s *Service) ListEmployees(ctx context.Context) ([]Employee, error) {
	return s.employees.ListEmployees(ctx)
}

// CreateEmployee persists a new employee, provisions their account and
// refreshes the destination department's member count.
func (s *Service) CreateEmployee(ctx context.Context, emp Employee) (*Employee, error) {
	fillEmployeeDefaults(&emp)
	if err := s.checkDepartmentRef(ctx, emp.DepartmentID); err != nil {
		return nil, err
	}

	if err := s.employees.CreateEmployee(ctx, &emp); err != nil {
		return nil, err
	}

	if _, err := s.ProvisionAccount(ctx, emp); err != nil {
		return nil, fmt.Errorf("provision account for employee %d: %w", emp.ID, err)
	}

	if err := s.aggregate.Refresh(ctx, emp.DepartmentID); err != nil {
		return nil, err
	}

	slog.Info("employee created", "employee_id", emp.ID)
	return s.employees.GetEmployee(ctx, emp.ID)
}

// UpdateEmployee applies a profile edit. Both the previous and the new
// department are refreshed; refreshing only the destination would leave the
// old department's count stale after a reassignment.
func (s *Service) UpdateEmployee(ctx context.Context, id int64, emp Employee) (*Employee, error) {
	previous, err := s.employees.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	fillEmployeeDefaults(&emp)
	if err := s.checkDepartmentRef(ctx, emp.DepartmentID); err != nil {
		return nil, err
	}

	emp.ID = id
	if err := s.employees.UpdateEmployee(ctx, &emp); err != nil {
		return nil, err
	}

	if err := s.aggregate.Refresh(ctx, previous.DepartmentID, emp.DepartmentID); err != nil {
		return nil, err
	}

	return s.employees.GetEmployee(ctx, id)
}

func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	previous, err := s.employees.GetEmployee(ctx, id)
	if err != nil {
		return err
	}

	if err := s.employees.DeleteEmployee(ctx, id); err != nil {
		return err
	}

	if err := s.aggregate.Refresh(ctx, previous.DepartmentID); err != nil {
		return err
	}

	slog.Info("employee deleted", "employee_id", id)
	return nil
}

// ProvisionAccount creates the 1:1 derived identity for an employee. It is
// idempotent: an existing account is returned untouched, never regenerated.
func (s *Service) ProvisionAccount(ctx context.Context, emp Employee) (*Account, error) {
	existing, err := s.accounts.GetAccountByEmployee(ctx, emp.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}

	acc := Account{EmployeeID: emp.ID}
	if err := FillAccountDefaults(&acc, emp); err != nil {
		return nil, err
	}

	login, err := s.resolveLogin(ctx, acc.Login)
	if err != nil {
		return nil, err
	}
	acc.Login = login

	if err := s.accounts.CreateAccount(ctx, &acc); err != nil {
		if errors.Is(err, ErrAccountExists) {
			// Lost a race with a concurrent provisioning of the same
			// employee; the winner's account is the account.
			return s.accounts.GetAccountByEmployee(ctx, emp.ID)
		}
		return nil, err
	}
	return &acc, nil
}

// resolveLogin applies the collision policy: the derived base login is used
// as-is when free, otherwise the smallest numeric suffix starting at 2 is
// appended (petrovpi, petrovpi2, petrovpi3, ...).
func (s *Service) resolveLogin(ctx context.Context, base string) (string, error) {
	candidate := base
	for suffix := 2; ; suffix++ {
		taken, err := s.accounts.LoginExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + strconv.Itoa(suffix)
	}
}

func (s *Service) GetAccountByEmployee(ctx context.Context, employeeID int64) (*Account, error) {
	return s.accounts.GetAccountByEmployee(ctx, employeeID)
}

func (s *Service) ListAccounts(ctx context.Context) ([]Account, error) {
	return s.accounts.ListAccounts(ctx)
}

func (s *Service) GetDepartment(ctx context.Context, id int64) (*Department, error) {
	return s.departments.GetDepartment(ctx, id)
}

func (s *Service) ListDepartments(ctx context.Context) ([]Department, error) {
	return s.departments.ListDepartments(ctx)
}

func (s *Service) CreateDepartment(ctx context.Context, dept Department) (*Department, error) {
	dept.EmployeesCount = 0
	if err := s.departments.CreateDepartment(ctx, &dept); err != nil {
		return nil, err
	}
	return &dept, nil
}

func (s *Service) UpdateDepartment(ctx context.Context, id int64, dept Department) (*Department, error) {
	dept.ID = id
	if err := s.departments.UpdateDepartment(ctx, &dept); err != nil {
		return nil, err
	}
	return s.departments.GetDepartment(ctx, id)
}

// DeleteDepartment removes a department together with its employees and
// their accounts (the schema cascades).
func (s *Service) DeleteDepartment(ctx context.Context, id int64) error {
	return s.departments.DeleteDepartment(ctx, id)
}

// fillEmployeeDefaults is the explicit fill-defaults step at creation:
// fields self-populate only when blank, so caller-supplied values survive.
func fillEmployeeDefaults(emp *Employee) {
	if emp.Rank == "" {
		emp.Rank = DefaultRank
	}
}

func (s *Service) checkDepartmentRef(ctx context.Context, departmentID *int64) error {
	if departmentID == nil {
		return nil
	}
	_, err := s.departments.GetDepartment(ctx, *departmentID)
	return err
}
