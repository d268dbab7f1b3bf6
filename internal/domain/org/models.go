package org

import (
	"strings"
	"time"
)

// DefaultRank is assigned at creation when the caller leaves rank blank.
const DefaultRank = "Рядовой"

type Employee struct {
	ID           int64
	LastName     string
	FirstName    string
	Patronymic   string
	DepartmentID *int64
	Department   *Department
	Position     string
	Rank         string
	DateHired    time.Time
	DateOfBirth  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins surname, given name and patronymic, skipping blanks.
func (e Employee) FullName() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{e.LastName, e.FirstName, e.Patronymic} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

type Department struct {
	ID             int64
	Name           string
	Specialization string

	// EmployeesCount is derived: recomputed after every membership change,
	// never accepted from callers.
	EmployeesCount int
}

// Account is the derived identity for an employee, 1:1 and write-once.
type Account struct {
	ID         int64
	EmployeeID int64
	Name       string
	Login      string
	Credential string
}
