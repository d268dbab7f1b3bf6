package org

import (
	"context"
	"fmt"
	"log/slog"
)

// AggregateMaintainer keeps departments.employees_count in step with actual
// membership. Counts are always recomputed from the employee table rather
// than incremented, so a missed event can never leave permanent drift.
type AggregateMaintainer struct {
	employees   EmployeeStore
	departments DepartmentStore
}

func NewAggregateMaintainer(employees EmployeeStore, departments DepartmentStore) *AggregateMaintainer {
	return &AggregateMaintainer{employees: employees, departments: departments}
}

// Refresh recounts and persists membership for every given department.
// Callers must pass every department whose membership may have changed: on
// a reassignment that is both the old and the new one. Nil entries
// (unassigned employees) are skipped, duplicates counted once.
func (m *AggregateMaintainer) Refresh(ctx context.Context, departmentIDs ...*int64) error {
	seen := make(map[int64]bool, len(departmentIDs))
	for _, deptID := range departmentIDs {
		if deptID == nil || seen[*deptID] {
			continue
		}
		seen[*deptID] = true

		count, err := m.employees.CountByDepartment(ctx, *deptID)
		if err != nil {
			return fmt.Errorf("count department %d: %w", *deptID, err)
		}
		if err := m.departments.SetEmployeesCount(ctx, *deptID, count); err != nil {
			return fmt.Errorf("persist count for department %d: %w", *deptID, err)
		}
		slog.Debug("department count refreshed", "department_id", *deptID, "count", count)
	}
	return nil
}
