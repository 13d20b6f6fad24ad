package payroll

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/employee"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/payroll"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/export"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/storage"
	"github.com/goccy/go-json"
)

const payslipURLExpiry = 15 * time.Minute

type PayslipServiceImpl struct {
	salaryRepo   payroll.SalaryRepository
	holdRepo     payroll.HoldRepository
	employeeRepo employee.EmployeeRepository
	files        storage.FileStorage
	companyName  string
	logger       *slog.Logger
}

func NewPayslipService(
	salaryRepo payroll.SalaryRepository,
	holdRepo payroll.HoldRepository,
	employeeRepo employee.EmployeeRepository,
	files storage.FileStorage,
	companyName string,
	logger *slog.Logger,
) payroll.PayslipService {
	return &PayslipServiceImpl{
		salaryRepo:   salaryRepo,
		holdRepo:     holdRepo,
		employeeRepo: employeeRepo,
		files:        files,
		companyName:  companyName,
		logger:       logger,
	}
}

// GetPayslip implements payroll.PayslipService. Only finalized salaries without
// an active hold are released. The rendered file is stored once and reused,
// since a finalized snapshot never changes.
func (s *PayslipServiceImpl) GetPayslip(ctx context.Context, employeeCode string, month string) (payroll.Payslip, error) {
	if errs := validateEmployeeMonth(employeeCode, month); errs != nil {
		return payroll.Payslip{}, errs
	}

	salary, err := s.salaryRepo.Get(ctx, employeeCode, month)
	if err != nil {
		return payroll.Payslip{}, err
	}
	if !salary.IsFinalized() {
		return payroll.Payslip{}, payroll.ErrSalaryNotFinalized
	}
	if salary.IsHeld {
		return payroll.Payslip{}, payroll.ErrSalaryHeld
	}
	if _, err := s.holdRepo.GetActive(ctx, employeeCode, month); err == nil {
		return payroll.Payslip{}, payroll.ErrSalaryHeld
	} else if !errors.Is(err, payroll.ErrHoldNotFound) {
		return payroll.Payslip{}, fmt.Errorf("failed to read hold: %w", err)
	}

	fileName := fmt.Sprintf("payslip_%s_%s.pdf", employeeCode, month)
	path := fmt.Sprintf("payslips/%s/%s", month, fileName)

	content, err := s.cached(ctx, path)
	if err != nil {
		return payroll.Payslip{}, err
	}

	if content == nil {
		emp, err := s.employeeRepo.GetByCode(ctx, employeeCode)
		if err != nil {
			return payroll.Payslip{}, err
		}

		content, err = s.render(salary, emp)
		if err != nil {
			return payroll.Payslip{}, err
		}

		if _, err := s.files.Upload(ctx, bytes.NewReader(content), path, "application/pdf"); err != nil {
			// the payslip is still served, it will be rendered again next time
			s.logger.Warn("failed to store payslip",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
		s.logger.Info("payslip generated",
			slog.String("employee_code", employeeCode),
			slog.String("month", month),
		)
	}

	url, err := s.files.GetURL(ctx, path, payslipURLExpiry)
	if err != nil {
		url = ""
	}

	return payroll.Payslip{FileName: fileName, URL: url, Content: content}, nil
}

func (s *PayslipServiceImpl) cached(ctx context.Context, path string) ([]byte, error) {
	exists, err := s.files.Exists(ctx, path)
	if err != nil || !exists {
		return nil, nil
	}

	rc, err := s.files.Download(ctx, path)
	if err != nil {
		return nil, nil
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored payslip: %w", err)
	}
	return content, nil
}

func (s *PayslipServiceImpl) render(salary payroll.MonthlySalary, emp employee.Employee) ([]byte, error) {
	var bd payroll.Breakdown
	if err := json.Unmarshal(salary.Breakdown, &bd); err != nil {
		return nil, fmt.Errorf("failed to decode breakdown: %w", err)
	}

	earnings := []export.PayslipLine{{Label: "Basic Salary", Amount: bd.Earnings.BaseSalary}}
	if bd.Earnings.OvertimeAmount.IsPositive() {
		earnings = append(earnings, export.PayslipLine{Label: "Overtime", Amount: bd.Earnings.OvertimeAmount})
	}
	if bd.Earnings.IncentiveAmount.IsPositive() {
		earnings = append(earnings, export.PayslipLine{Label: "Incentive", Amount: bd.Earnings.IncentiveAmount})
	}
	if bd.OtherAdditions.IsPositive() {
		earnings = append(earnings, export.PayslipLine{Label: "Other Additions", Amount: bd.OtherAdditions})
	}

	var deductions []export.PayslipLine
	ded := bd.Deductions
	for _, l := range []export.PayslipLine{
		{Label: "Absent Days", Amount: ded.Absent},
		{Label: "Half Days", Amount: ded.HalfDay},
		{Label: "Late (30 min)", Amount: ded.LateMajor},
		{Label: "Late (10 min)", Amount: ded.LateMinor},
		{Label: "Loss of Pay", Amount: ded.LossOfPay},
		{Label: "TDS", Amount: ded.TDS},
		{Label: "Professional Tax", Amount: ded.ProfessionalTax},
		{Label: "Other Deductions", Amount: ded.Adjustments},
	} {
		if l.Amount.IsPositive() {
			deductions = append(deductions, l)
		}
	}

	return export.PayslipPDF(export.PayslipData{
		CompanyName:   s.companyName,
		EmployeeCode:  emp.EmployeeCode,
		EmployeeName:  emp.FullName,
		Department:    deref(emp.Department),
		Month:         salary.Month,
		CycleStart:    bd.CycleStart,
		CycleEnd:      bd.CycleEnd,
		PaidDays:      salary.PaidDays,
		CycleDays:     salary.CycleDays,
		BankName:      deref(emp.BankName),
		BankAccount:   deref(emp.BankAccountNumber),
		Earnings:      earnings,
		Deductions:    deductions,
		GrossSalary:   salary.GrossSalary,
		TotalDeducted: salary.TotalDeductions,
		NetSalary:     salary.NetSalary,
		GeneratedAt:   time.Now().Format("02 Jan 2006 15:04"),
	})
}
