package export

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const registerSheet = "Salary Register"

// RegisterRow is one employee line of the monthly salary register.
type RegisterRow struct {
	EmployeeCode    string
	EmployeeName    string
	Department      string
	Status          string
	CycleDays       int
	PaidDays        float64
	AbsentDays      float64
	LeaveDays       float64
	LossOfPayDays   float64
	BaseSalary      decimal.Decimal
	OvertimeAmount  decimal.Decimal
	GrossSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalAdditions  decimal.Decimal
	NetSalary       decimal.Decimal
	IsHeld          bool
}

var registerHeaders = []string{
	"Employee Code", "Name", "Department", "Status", "Cycle Days", "Paid Days",
	"Absent Days", "Leave Days", "LOP Days", "Base Salary", "Overtime", "Gross Salary",
	"Deductions", "Additions", "Net Salary", "On Hold",
}

// SalaryRegister renders the register for month as an xlsx workbook.
func SalaryRegister(month string, rows []RegisterRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(registerSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	f.SetCellValue(registerSheet, "A1", fmt.Sprintf("Salary Register %s", month))
	f.MergeCell(registerSheet, "A1", "D1")

	lastCol, _ := excelize.ColumnNumberToName(len(registerHeaders))
	for i, h := range registerHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(registerSheet, cell, h)
	}
	f.SetCellStyle(registerSheet, "A3", lastCol+"3", headerStyle)

	total := decimal.Zero
	for i, r := range rows {
		values := []any{
			r.EmployeeCode, r.EmployeeName, r.Department, r.Status, r.CycleDays, r.PaidDays,
			r.AbsentDays, r.LeaveDays, r.LossOfPayDays, r.BaseSalary.InexactFloat64(),
			r.OvertimeAmount.InexactFloat64(), r.GrossSalary.InexactFloat64(),
			r.TotalDeductions.InexactFloat64(), r.TotalAdditions.InexactFloat64(),
			r.NetSalary.InexactFloat64(), yesNo(r.IsHeld),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+4)
		if err := f.SetSheetRow(registerSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row for %s: %w", r.EmployeeCode, err)
		}
		total = total.Add(r.NetSalary)
	}

	footer, _ := excelize.CoordinatesToCellName(len(registerHeaders)-2, len(rows)+5)
	f.SetSheetRow(registerSheet, footer, &[]any{"Total", total.InexactFloat64()})
	f.SetColWidth(registerSheet, "A", lastCol, 14)
	f.SetColWidth(registerSheet, "B", "B", 26)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
