package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/payroll"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/utils"
)

// PayrollJobs keeps draft salaries of the open cycle current as punches
// arrive. Finalized salaries are reported by the batch as conflicts and left
// untouched.
type PayrollJobs struct {
	payrollService payroll.PayrollService
	interval       time.Duration
	now            func() time.Time
	logger         *slog.Logger
}

func NewPayrollJobs(payrollService payroll.PayrollService, interval time.Duration, logger *slog.Logger) *PayrollJobs {
	return &PayrollJobs{
		payrollService: payrollService,
		interval:       interval,
		now:            time.Now,
		logger:         logger,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("refresh_draft_salaries", j.interval, j.RefreshDraftSalaries)
}

// RefreshDraftSalaries recalculates every active employee for the salary month
// containing today.
func (j *PayrollJobs) RefreshDraftSalaries(ctx context.Context) error {
	month := utils.SalaryMonthOf(j.now())

	result, err := j.payrollService.CalculateBatch(ctx, payroll.CalculateBatchRequest{Month: month})
	if err != nil {
		return err
	}

	j.logger.Info("draft salaries refreshed",
		slog.String("month", month),
		slog.Int("succeeded", len(result.Succeeded)),
		slog.Int("failed", len(result.Failed)),
	)
	return nil
}
