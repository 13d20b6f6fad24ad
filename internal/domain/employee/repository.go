package employee

import "context"

type EmployeeRepository interface {
	GetByCode(ctx context.Context, employeeCode string) (Employee, error)
	ListActiveCodes(ctx context.Context) ([]string, error)
}
