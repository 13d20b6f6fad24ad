package shift

import (
	"context"
	"time"
)

type ShiftRepository interface {
	// GetByName returns the validated shift; bad stored timings surface as
	// ErrInvalidShiftTime / ErrInvalidShiftConfig.
	GetByName(ctx context.Context, name string) (Shift, error)
	GetFirst(ctx context.Context) (Shift, error)
	List(ctx context.Context) ([]Shift, error)
}

type AssignmentRepository interface {
	Create(ctx context.Context, assignment Assignment) (Assignment, error)
	GetByID(ctx context.Context, id string) (Assignment, error)
	Delete(ctx context.Context, id string) error
	// ListByEmployeeInRange returns assignments overlapping [from, to].
	ListByEmployeeInRange(ctx context.Context, employeeCode string, from, to time.Time) ([]Assignment, error)
}
