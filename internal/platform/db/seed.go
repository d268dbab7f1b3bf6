package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo departments and employees into an empty database so the
// API has something to serve out of the box. Running it twice is a no-op.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	var employees int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&employees); err != nil {
		return err
	}
	if employees > 0 {
		return nil
	}

	departments := []struct {
		name           string
		specialization string
	}{
		{"Отдел разработки", "Разработка программного обеспечения"},
		{"Отдел кадров", "Подбор и учет персонала"},
	}

	deptIDs := make([]int64, 0, len(departments))
	for _, dept := range departments {
		var id int64
		err := pool.QueryRow(ctx,
			"INSERT INTO departments (name, specialization) VALUES ($1, $2) RETURNING id",
			dept.name, dept.specialization).Scan(&id)
		if err != nil {
			return err
		}
		deptIDs = append(deptIDs, id)
	}

	seedEmployees := []struct {
		lastName   string
		firstName  string
		patronymic string
		position   string
		dateHired  string
		dept       int64
	}{
		{"Иванов", "Иван", "Иванович", "Инженер-программист", "2021-03-15", deptIDs[0]},
		{"Петрова", "Мария", "Сергеевна", "Специалист по кадрам", "2019-07-01", deptIDs[1]},
	}
	// Demo accounts carry fixed credentials; real ones come from the
	// provisioner on employee creation.
	accounts := []struct {
		name       string
		login      string
		credential string
	}{
		{"ИванИИ", "ivanii", "Demo123456"},
		{"МарияПС", "mariyaps", "Demo654321"},
	}
	for i, emp := range seedEmployees {
		var employeeID int64
		err := pool.QueryRow(ctx, `
      INSERT INTO employees (last_name, first_name, patronymic, position, date_hired, department_id)
      VALUES ($1, $2, $3, $4, $5::date, $6)
      RETURNING id
    `, emp.lastName, emp.firstName, emp.patronymic, emp.position, emp.dateHired, emp.dept).Scan(&employeeID)
		if err != nil {
			return err
		}

		acc := accounts[i]
		_, err = pool.Exec(ctx, `
      INSERT INTO accounts (employee_id, name, login, credential)
      VALUES ($1, $2, $3, $4)
      ON CONFLICT (employee_id) DO NOTHING
    `, employeeID, acc.name, acc.login, acc.credential)
		if err != nil {
			return err
		}
	}

	for _, id := range deptIDs {
		_, err := pool.Exec(ctx, `
      UPDATE departments SET employees_count =
        (SELECT COUNT(1) FROM employees WHERE department_id = $1)
      WHERE id = $1
    `, id)
		if err != nil {
			return err
		}
	}

	return nil
}
