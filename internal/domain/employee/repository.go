package employee

import "context"

// EmployeeRepository defines read access to the employee directory.
// Employees are managed by the HR module; the engine only reads them.
type EmployeeRepository interface {
	// ListActiveWithBiometricCode retrieves active employees that have a
	// biometric code assigned, ordered by employee code.
	ListActiveWithBiometricCode(ctx context.Context) ([]Employee, error)

	// GetByEmployeeCode retrieves a single employee by employee code.
	GetByEmployeeCode(ctx context.Context, code string) (Employee, error)
}
