package shift

import (
	"context"
	"time"
)

// Resolver determines the shift timing in effect for an employee.
type Resolver interface {
	Resolve(ctx context.Context, employeeCode string, date time.Time) (Shift, error)
	// ResolveRange resolves every date in [from, to], keyed by YYYY-MM-DD.
	ResolveRange(ctx context.Context, employeeCode string, from, to time.Time) (map[string]Shift, error)
}

type ShiftService interface {
	Resolver

	ResolveShift(ctx context.Context, req ResolveShiftRequest) (ShiftResponse, error)
	ListShifts(ctx context.Context) ([]ShiftResponse, error)

	CreateAssignment(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error)
	ListAssignments(ctx context.Context, req ListAssignmentsRequest) ([]AssignmentResponse, error)
	DeleteAssignment(ctx context.Context, id string) error
}
