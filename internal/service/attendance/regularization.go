package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/attendance"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/employee"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/database"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/jwt"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/utils"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/validator"
	"github.com/google/uuid"
)

type RegularizationServiceImpl struct {
	tx                 database.Transactor
	regularizationRepo attendance.RegularizationRepository
	employeeRepo       employee.EmployeeRepository
	logger             *slog.Logger
}

func NewRegularizationService(
	tx database.Transactor,
	regularizationRepo attendance.RegularizationRepository,
	employeeRepo employee.EmployeeRepository,
	logger *slog.Logger,
) attendance.RegularizationService {
	return &RegularizationServiceImpl{
		tx:                 tx,
		regularizationRepo: regularizationRepo,
		employeeRepo:       employeeRepo,
		logger:             logger,
	}
}

// SubmitRegularizations implements attendance.RegularizationService.
func (r *RegularizationServiceImpl) SubmitRegularizations(ctx context.Context, req attendance.SubmitRegularizationsRequest) ([]attendance.RegularizationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, end, err := utils.SalaryCycle(req.Month)
	if err != nil {
		return nil, err
	}

	var errs validator.ValidationErrors
	dates := make([]time.Time, len(req.Entries))
	for i, e := range req.Entries {
		dates[i], _ = time.Parse(utils.DateLayout, e.Date)
		if dates[i].Before(start) || dates[i].After(end) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("entries[%d].date", i),
				Message: attendance.ErrDateOutOfCycle.Error(),
			})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if _, err := r.employeeRepo.GetByCode(ctx, req.EmployeeCode); err != nil {
		return nil, err
	}

	approver := jwt.ActorFromContext(ctx)
	saved := make([]attendance.Regularization, 0, len(req.Entries))

	err = r.tx.WithinTx(ctx, func(txCtx context.Context) error {
		for i, e := range req.Entries {
			id, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("failed to generate regularization id: %w", err)
			}

			reg, err := r.regularizationRepo.Upsert(txCtx, attendance.Regularization{
				ID:                id.String(),
				EmployeeCode:      req.EmployeeCode,
				Date:              dates[i],
				OriginalStatus:    attendance.DayStatus(e.OriginalStatus),
				RegularizedStatus: attendance.DayStatus(e.RegularizedStatus),
				Reason:            e.Reason,
				ApprovedBy:        &approver,
			})
			if err != nil {
				return fmt.Errorf("failed to upsert regularization for %s: %w", e.Date, err)
			}
			saved = append(saved, reg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("regularizations submitted",
		slog.String("employee_code", req.EmployeeCode),
		slog.String("month", req.Month),
		slog.Int("count", len(saved)),
		slog.String("approved_by", approver),
	)

	out := make([]attendance.RegularizationResponse, 0, len(saved))
	for _, reg := range saved {
		out = append(out, mapRegularizationToResponse(reg))
	}
	return out, nil
}

// ListRegularizations implements attendance.RegularizationService.
func (r *RegularizationServiceImpl) ListRegularizations(ctx context.Context, req attendance.ListRegularizationsRequest) ([]attendance.RegularizationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, end, err := utils.SalaryCycle(req.Month)
	if err != nil {
		return nil, err
	}

	regs, err := r.regularizationRepo.ListByEmployeeInRange(ctx, req.EmployeeCode, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list regularizations: %w", err)
	}

	out := make([]attendance.RegularizationResponse, 0, len(regs))
	for _, reg := range regs {
		out = append(out, mapRegularizationToResponse(reg))
	}
	return out, nil
}

// DeleteRegularization implements attendance.RegularizationService.
func (r *RegularizationServiceImpl) DeleteRegularization(ctx context.Context, employeeCode string, date string) error {
	var errs validator.ValidationErrors
	if !validator.IsValidEmployeeCode(employeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is invalid"})
	}
	day, ok := validator.IsValidDate(date)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if len(errs) > 0 {
		return errs
	}

	if err := r.regularizationRepo.Delete(ctx, employeeCode, day); err != nil {
		return err
	}

	r.logger.Info("regularization removed",
		slog.String("employee_code", employeeCode),
		slog.String("date", date),
		slog.String("by", jwt.ActorFromContext(ctx)),
	)
	return nil
}

func mapRegularizationToResponse(reg attendance.Regularization) attendance.RegularizationResponse {
	return attendance.RegularizationResponse{
		ID:                reg.ID,
		EmployeeCode:      reg.EmployeeCode,
		Date:              utils.DateKey(reg.Date),
		OriginalStatus:    string(reg.OriginalStatus),
		RegularizedStatus: string(reg.RegularizedStatus),
		Reason:            reg.Reason,
		ApprovedBy:        reg.ApprovedBy,
		UpdatedAt:         reg.UpdatedAt.Format(time.RFC3339),
	}
}
