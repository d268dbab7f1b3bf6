package org

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-process implementation of the three store interfaces.
// Domain and handler tests run against it; it mirrors the relational
// store's behavior including cascade deletes and uniqueness rules.
type MemoryStore struct {
	mu          sync.RWMutex
	employees   map[int64]Employee
	departments map[int64]Department
	accounts    map[int64]Account
	nextID      int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		employees:   make(map[int64]Employee),
		departments: make(map[int64]Department),
		accounts:    make(map[int64]Account),
	}
}

func (s *MemoryStore) nextSerial() int64 {
	s.nextID++
	return s.nextID
}

func (s *MemoryStore) GetEmployee(_ context.Context, id int64) (*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	emp, ok := s.employees[id]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	s.attachDepartment(&emp)
	return &emp, nil
}

func (s *MemoryStore) ListEmployees(_ context.Context) ([]Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	employees := make([]Employee, 0, len(s.employees))
	for _, emp := range s.employees {
		s.attachDepartment(&emp)
		employees = append(employees, emp)
	}
	sort.Slice(employees, func(i, j int) bool {
		if employees[i].LastName == employees[j].LastName {
			return employees[i].FirstName < employees[j].FirstName
		}
		return employees[i].LastName < employees[j].LastName
	})
	return employees, nil
}

func (s *MemoryStore) CreateEmployee(_ context.Context, e *Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextSerial()
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	stored := *e
	stored.Department = nil
	s.employees[e.ID] = stored
	return nil
}

func (s *MemoryStore) UpdateEmployee(_ context.Context, e *Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.employees[e.ID]
	if !ok {
		return ErrEmployeeNotFound
	}
	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = time.Now().UTC()
	stored := *e
	stored.Department = nil
	s.employees[e.ID] = stored
	return nil
}

func (s *MemoryStore) DeleteEmployee(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[id]; !ok {
		return ErrEmployeeNotFound
	}
	delete(s.employees, id)
	for accID, acc := range s.accounts {
		if acc.EmployeeID == id {
			delete(s.accounts, accID)
		}
	}
	return nil
}

func (s *MemoryStore) CountByDepartment(_ context.Context, departmentID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, emp := range s.employees {
		if emp.DepartmentID != nil && *emp.DepartmentID == departmentID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) attachDepartment(emp *Employee) {
	if emp.DepartmentID == nil {
		return
	}
	if dept, ok := s.departments[*emp.DepartmentID]; ok {
		emp.Department = &dept
	}
}

func (s *MemoryStore) GetDepartment(_ context.Context, id int64) (*Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dept, ok := s.departments[id]
	if !ok {
		return nil, ErrDepartmentNotFound
	}
	return &dept, nil
}

func (s *MemoryStore) ListDepartments(_ context.Context) ([]Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	departments := make([]Department, 0, len(s.departments))
	for _, dept := range s.departments {
		departments = append(departments, dept)
	}
	sort.Slice(departments, func(i, j int) bool { return departments[i].Name < departments[j].Name })
	return departments, nil
}

func (s *MemoryStore) CreateDepartment(_ context.Context, d *Department) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.nextSerial()
	s.departments[d.ID] = *d
	return nil
}

func (s *MemoryStore) UpdateDepartment(_ context.Context, d *Department) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.departments[d.ID]
	if !ok {
		return ErrDepartmentNotFound
	}
	d.EmployeesCount = existing.EmployeesCount
	s.departments[d.ID] = *d
	return nil
}

func (s *MemoryStore) DeleteDepartment(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.departments[id]; !ok {
		return ErrDepartmentNotFound
	}
	delete(s.departments, id)
	// Cascade, matching the relational schema.
	for empID, emp := range s.employees {
		if emp.DepartmentID != nil && *emp.DepartmentID == id {
			delete(s.employees, empID)
			for accID, acc := range s.accounts {
				if acc.EmployeeID == empID {
					delete(s.accounts, accID)
				}
			}
		}
	}
	return nil
}

func (s *MemoryStore) SetEmployeesCount(_ context.Context, id int64, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	dept, ok := s.departments[id]
	if !ok {
		return ErrDepartmentNotFound
	}
	dept.EmployeesCount = count
	s.departments[id] = dept
	return nil
}

func (s *MemoryStore) GetAccountByEmployee(_ context.Context, employeeID int64) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acc := range s.accounts {
		if acc.EmployeeID == employeeID {
			found := acc
			return &found, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (s *MemoryStore) ListAccounts(_ context.Context) ([]Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := make([]Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		accounts = append(accounts, acc)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Login < accounts[j].Login })
	return accounts, nil
}

func (s *MemoryStore) CreateAccount(_ context.Context, a *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.EmployeeID == a.EmployeeID {
			return ErrAccountExists
		}
		if acc.Login == a.Login {
			return ErrLoginTaken
		}
	}
	a.ID = s.nextSerial()
	s.accounts[a.ID] = *a
	return nil
}

func (s *MemoryStore) LoginExists(_ context.Context, login string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acc := range s.accounts {
		if acc.Login == login {
			return true, nil
		}
	}
	return false, nil
}
