package attendance

import (
	"context"
	"time"
)

// AttendanceService derives day and month attendance from raw punch logs.
type AttendanceService interface {
	// GetDailyRecord classifies a single day.
	GetDailyRecord(ctx context.Context, employeeCode string, date time.Time) (DailyRecord, error)

	// GetMonthlyAttendance aggregates a salary cycle. A failure on a single day
	// degrades that day to absent; shift configuration errors abort.
	GetMonthlyAttendance(ctx context.Context, employeeCode string, month string) (MonthlyAttendance, error)

	GetDaily(ctx context.Context, req DailyRecordRequest) (DailyRecordResponse, error)
	GetMonthly(ctx context.Context, req MonthlyAttendanceRequest) (MonthlyAttendanceResponse, error)
}

// RegularizationService manages admin overrides of day statuses.
type RegularizationService interface {
	// SubmitRegularizations upserts a batch keyed by (employee, date).
	SubmitRegularizations(ctx context.Context, req SubmitRegularizationsRequest) ([]RegularizationResponse, error)
	ListRegularizations(ctx context.Context, req ListRegularizationsRequest) ([]RegularizationResponse, error)
	DeleteRegularization(ctx context.Context, employeeCode string, date string) error
}
