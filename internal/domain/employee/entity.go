package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	UserID           *string
	EmployeeCode     string
	BiometricCode    *string
	FullName         string
	Email            *string
	AttendanceTypeID *string
	BasicSalary      *decimal.Decimal
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// HasPayableSalary reports whether a monetary deduction can be based on
// this employee's salary.
func (e Employee) HasPayableSalary() bool {
	return e.BasicSalary != nil && e.BasicSalary.IsPositive()
}
