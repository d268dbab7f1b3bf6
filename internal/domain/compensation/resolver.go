package compensation

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"staffhub/internal/domain/org"
)

// Resolver combines locally-held employee facts with the accounting
// service's salary computation. Tenure is computed here, once, and handed
// to the accounting service as whole years: the two services agree on the
// meaning of "years", not on hire-date storage. That coupling is
// deliberate and documented, not hidden.
type Resolver struct {
	employees org.EmployeeStore
	client    Client

	// now is a hook for tests; nil means time.Now.
	now func() time.Time
}

func NewResolver(employees org.EmployeeStore, client Client) *Resolver {
	return &Resolver{employees: employees, client: client}
}

// Resolve assembles the combined compensation view for an employee.
//
// Failure modes, in order: org.ErrEmployeeNotFound when the employee does
// not exist locally; *AuthorityUnreachableError when the remote call fails
// at transport level; *AuthorityError when the accounting service answers
// with a non-2xx status or an unparseable body. A remote failure is never
// papered over with local-only data.
func (r *Resolver) Resolve(ctx context.Context, employeeID int64) (*Combined, error) {
	emp, err := r.employees.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	tenure := org.Tenure(emp.DateHired, r.today())
	years := tenure.WholeYears()
	if years < 0 {
		return nil, ErrInvalidYears
	}

	payload, err := r.client.GetSalary(ctx, employeeID, years)
	if err != nil {
		return nil, err
	}

	var salary SalaryPayload
	if err := json.Unmarshal(payload, &salary); err != nil {
		slog.Warn("accounting payload did not parse", "employee_id", employeeID, "err", err)
		return nil, &AuthorityError{StatusCode: http.StatusOK, Body: string(payload)}
	}

	summary := EmployeeSummary{
		ID:        emp.ID,
		FIO:       emp.FullName(),
		Position:  emp.Position,
		DateHired: emp.DateHired.Format("2006-01-02"),
	}
	if emp.Department != nil {
		summary.Department = emp.Department.Name
	}

	return &Combined{Employee: summary, Salary: payload}, nil
}

func (r *Resolver) today() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}
