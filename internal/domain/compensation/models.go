package compensation

import "encoding/json"

// SalaryPayload is the accounting service's salary computation. The field
// set and types are a compatibility contract between the two services and
// must not drift.
type SalaryPayload struct {
	EmployeeID     int64           `json:"employee_id"`
	BaseSalary     float64         `json:"base_salary"`
	Years          int             `json:"years"`
	ComputedSalary float64         `json:"computed_salary"`
	Breakdown      SalaryBreakdown `json:"breakdown"`
	Source         string          `json:"source"`
}

type SalaryBreakdown struct {
	BaseSalary       float64 `json:"base_salary"`
	Years            int     `json:"years"`
	IncrementPerYear float64 `json:"increment_per_year"`
	YearsIncrement   float64 `json:"years_increment"`
}

// EmployeeSummary is the local half of the combined response.
type EmployeeSummary struct {
	ID         int64  `json:"id"`
	FIO        string `json:"fio"`
	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`
	DateHired  string `json:"date_hired"`
}

// Combined merges the local employee facts with the accounting service's
// payload. Salary carries the remote body verbatim so additions on the
// accounting side pass through untouched.
type Combined struct {
	Employee EmployeeSummary `json:"employee"`
	Salary   json.RawMessage `json:"salary"`
}
