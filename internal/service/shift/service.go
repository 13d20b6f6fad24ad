package shift

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/employee"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/shift"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/cache"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/utils"
	"github.com/google/uuid"
)

type shiftServiceImpl struct {
	shiftRepo        shift.ShiftRepository
	assignmentRepo   shift.AssignmentRepository
	employeeRepo     employee.EmployeeRepository
	cache            cache.Cache
	defaultShiftName string
	logger           *slog.Logger
}

func NewShiftService(
	shiftRepo shift.ShiftRepository,
	assignmentRepo shift.AssignmentRepository,
	employeeRepo employee.EmployeeRepository,
	shiftCache cache.Cache,
	defaultShiftName string,
	logger *slog.Logger,
) shift.ShiftService {
	if shiftCache == nil {
		shiftCache = cache.NoopCache{}
	}
	return &shiftServiceImpl{
		shiftRepo:        shiftRepo,
		assignmentRepo:   assignmentRepo,
		employeeRepo:     employeeRepo,
		cache:            shiftCache,
		defaultShiftName: defaultShiftName,
		logger:           logger,
	}
}

// ========== RESOLUTION ==========

// Resolve implements shift.Resolver.
func (s *shiftServiceImpl) Resolve(ctx context.Context, employeeCode string, date time.Time) (shift.Shift, error) {
	sh, _, err := s.resolve(ctx, employeeCode, utils.DateOnly(date))
	return sh, err
}

// ResolveRange implements shift.Resolver.
func (s *shiftServiceImpl) ResolveRange(ctx context.Context, employeeCode string, from, to time.Time) (map[string]shift.Shift, error) {
	from, to = utils.DateOnly(from), utils.DateOnly(to)

	emp, err := s.employeeRepo.GetByCode(ctx, employeeCode)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.ListByEmployeeInRange(ctx, employeeCode, from, to)
	if err != nil {
		return nil, err
	}

	memo := make(map[string]shift.Shift)
	result := make(map[string]shift.Shift, utils.DaysInclusive(from, to))
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		sh, _, err := s.resolveFor(ctx, emp, assignments, d, memo)
		if err != nil {
			return nil, fmt.Errorf("resolve shift for %s on %s: %w", employeeCode, utils.DateKey(d), err)
		}
		result[utils.DateKey(d)] = sh
	}
	return result, nil
}

func (s *shiftServiceImpl) resolve(ctx context.Context, employeeCode string, date time.Time) (shift.Shift, string, error) {
	emp, err := s.employeeRepo.GetByCode(ctx, employeeCode)
	if err != nil {
		return shift.Shift{}, "", err
	}

	assignments, err := s.assignmentRepo.ListByEmployeeInRange(ctx, employeeCode, date, date)
	if err != nil {
		return shift.Shift{}, "", err
	}

	return s.resolveFor(ctx, emp, assignments, date, make(map[string]shift.Shift))
}

// resolveFor picks the covering assignment created last, then the employee's
// default shift, then the system default.
func (s *shiftServiceImpl) resolveFor(
	ctx context.Context,
	emp employee.Employee,
	assignments []shift.Assignment,
	date time.Time,
	memo map[string]shift.Shift,
) (shift.Shift, string, error) {
	if a, ok := shift.SelectAssignment(assignments, date); ok {
		sh, err := s.shiftByName(ctx, a.ShiftName, memo)
		if err != nil {
			return shift.Shift{}, "", fmt.Errorf("assignment %s: %w", a.ID, err)
		}
		return sh, shift.SourceAssignment, nil
	}

	if emp.DefaultShift != nil && strings.TrimSpace(*emp.DefaultShift) != "" {
		sh, err := s.shiftByName(ctx, *emp.DefaultShift, memo)
		if err == nil {
			return sh, shift.SourceEmployee, nil
		}
		if !errors.Is(err, shift.ErrShiftNotFound) {
			return shift.Shift{}, "", err
		}
		s.logger.Warn("employee default shift does not exist, using system default",
			slog.String("employee_code", emp.EmployeeCode),
			slog.String("shift", *emp.DefaultShift),
		)
	}

	sh, err := s.systemDefault(ctx, memo)
	if err != nil {
		return shift.Shift{}, "", err
	}
	return sh, shift.SourceSystemDefault, nil
}

func (s *shiftServiceImpl) systemDefault(ctx context.Context, memo map[string]shift.Shift) (shift.Shift, error) {
	if s.defaultShiftName != "" {
		sh, err := s.shiftByName(ctx, s.defaultShiftName, memo)
		if err == nil {
			return sh, nil
		}
		if !errors.Is(err, shift.ErrShiftNotFound) {
			return shift.Shift{}, err
		}
	}

	if sh, ok := memo[""]; ok {
		return sh, nil
	}
	sh, err := s.shiftRepo.GetFirst(ctx)
	if err != nil {
		return shift.Shift{}, err
	}
	memo[""] = sh
	return sh, nil
}

func (s *shiftServiceImpl) shiftByName(ctx context.Context, name string, memo map[string]shift.Shift) (shift.Shift, error) {
	if sh, ok := memo[name]; ok {
		return sh, nil
	}

	key := "shift:" + strings.ToLower(name)
	var cached shift.Shift
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("shift cache read failed", slog.String("key", key), slog.Any("error", err))
	}
	if found {
		memo[name] = cached
		return cached, nil
	}

	sh, err := s.shiftRepo.GetByName(ctx, name)
	if err != nil {
		return shift.Shift{}, err
	}
	if err := s.cache.Set(ctx, key, sh); err != nil {
		s.logger.Warn("shift cache write failed", slog.String("key", key), slog.Any("error", err))
	}
	memo[name] = sh
	return sh, nil
}

// ResolveShift implements shift.ShiftService.
func (s *shiftServiceImpl) ResolveShift(ctx context.Context, req shift.ResolveShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}
	date, _ := time.Parse(utils.DateLayout, req.Date)

	sh, source, err := s.resolve(ctx, req.EmployeeCode, date)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	resp := mapShiftToResponse(sh)
	resp.Source = source
	return resp, nil
}

// ListShifts implements shift.ShiftService.
func (s *shiftServiceImpl) ListShifts(ctx context.Context) ([]shift.ShiftResponse, error) {
	shifts, err := s.shiftRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, mapShiftToResponse(sh))
	}
	return responses, nil
}

// ========== ASSIGNMENTS ==========

// CreateAssignment implements shift.ShiftService.
func (s *shiftServiceImpl) CreateAssignment(ctx context.Context, req shift.CreateAssignmentRequest) (shift.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.AssignmentResponse{}, err
	}

	if _, err := s.employeeRepo.GetByCode(ctx, req.EmployeeCode); err != nil {
		return shift.AssignmentResponse{}, err
	}
	if _, err := s.shiftRepo.GetByName(ctx, req.ShiftName); err != nil {
		return shift.AssignmentResponse{}, err
	}

	from, _ := time.Parse(utils.DateLayout, req.FromDate)
	to, _ := time.Parse(utils.DateLayout, req.ToDate)

	id, err := uuid.NewV7()
	if err != nil {
		return shift.AssignmentResponse{}, fmt.Errorf("failed to generate assignment id: %w", err)
	}

	created, err := s.assignmentRepo.Create(ctx, shift.Assignment{
		ID:           id.String(),
		EmployeeCode: req.EmployeeCode,
		ShiftName:    req.ShiftName,
		FromDate:     from,
		ToDate:       to,
	})
	if err != nil {
		return shift.AssignmentResponse{}, err
	}

	return mapAssignmentToResponse(created), nil
}

// ListAssignments implements shift.ShiftService.
func (s *shiftServiceImpl) ListAssignments(ctx context.Context, req shift.ListAssignmentsRequest) ([]shift.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	from, _ := time.Parse(utils.DateLayout, req.FromDate)
	to, _ := time.Parse(utils.DateLayout, req.ToDate)

	assignments, err := s.assignmentRepo.ListByEmployeeInRange(ctx, req.EmployeeCode, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]shift.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, mapAssignmentToResponse(a))
	}
	return responses, nil
}

// DeleteAssignment implements shift.ShiftService.
func (s *shiftServiceImpl) DeleteAssignment(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return shift.ErrAssignmentNotFound
	}
	return s.assignmentRepo.Delete(ctx, id)
}

func mapShiftToResponse(sh shift.Shift) shift.ShiftResponse {
	slots := make([]shift.SlotResponse, 0, 2)
	for _, slot := range sh.Slots() {
		slots = append(slots, shift.SlotResponse{Start: slot.Start.String(), End: slot.End.String()})
	}
	return shift.ShiftResponse{
		Name:                 sh.Name,
		IsSplit:              sh.IsSplit(),
		Slots:                slots,
		WorkHours:            sh.WorkHours,
		LateThresholdMinutes: sh.LateThresholdMinutes,
	}
}

func mapAssignmentToResponse(a shift.Assignment) shift.AssignmentResponse {
	return shift.AssignmentResponse{
		ID:           a.ID,
		EmployeeCode: a.EmployeeCode,
		ShiftName:    a.ShiftName,
		FromDate:     utils.DateKey(a.FromDate),
		ToDate:       utils.DateKey(a.ToDate),
		CreatedAt:    a.CreatedAt,
	}
}
