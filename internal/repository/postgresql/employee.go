package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wathiq-erp/attendance-engine/internal/domain/employee"
	"github.com/wathiq-erp/attendance-engine/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// ListActiveWithBiometricCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActiveWithBiometricCode(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, user_id, employee_code, biometric_code, full_name, email,
			attendance_type_id, basic_salary, employment_status, created_at, updated_at
		FROM employees
		WHERE employment_status = $1 AND biometric_code IS NOT NULL AND deleted_at IS NULL
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query, employee.EmploymentStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.UserID, &emp.EmployeeCode, &emp.BiometricCode, &emp.FullName,
			&emp.Email, &emp.AttendanceTypeID, &emp.BasicSalary, &emp.EmploymentStatus,
			&emp.CreatedAt, &emp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// GetByEmployeeCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmployeeCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, user_id, employee_code, biometric_code, full_name, email,
			attendance_type_id, basic_salary, employment_status, created_at, updated_at
		FROM employees
		WHERE employee_code = $1 AND deleted_at IS NULL
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, code).Scan(
		&emp.ID, &emp.UserID, &emp.EmployeeCode, &emp.BiometricCode, &emp.FullName,
		&emp.Email, &emp.AttendanceTypeID, &emp.BasicSalary, &emp.EmploymentStatus,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code %s: %w", code, err)
	}

	return emp, nil
}
