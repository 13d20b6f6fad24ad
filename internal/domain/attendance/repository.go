package attendance

import (
	"context"
	"time"
)

// PunchLogRepository reads device logs ingested by an external pipeline.
type PunchLogRepository interface {
	// ListByEmployeeAndDate returns the logs of one day ordered by timestamp.
	ListByEmployeeAndDate(ctx context.Context, employeeCode string, date time.Time) ([]PunchLog, error)
	// ListByEmployeeInRange returns logs with from <= date <= to ordered by timestamp.
	ListByEmployeeInRange(ctx context.Context, employeeCode string, from, to time.Time) ([]PunchLog, error)
}

type HolidayRepository interface {
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
	ListInRange(ctx context.Context, from, to time.Time) ([]Holiday, error)
}

type RegularizationRepository interface {
	Upsert(ctx context.Context, r Regularization) (Regularization, error)
	GetByEmployeeAndDate(ctx context.Context, employeeCode string, date time.Time) (Regularization, error)
	ListByEmployeeInRange(ctx context.Context, employeeCode string, from, to time.Time) ([]Regularization, error)
	Delete(ctx context.Context, employeeCode string, date time.Time) error
}

// OvertimeRepository is the per employee per month overtime toggle.
type OvertimeRepository interface {
	IsEnabled(ctx context.Context, employeeCode string, month string) (bool, error)
	Set(ctx context.Context, employeeCode string, month string, enabled bool, updatedBy string) error
}
