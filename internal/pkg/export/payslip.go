package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// PayslipLine is a labelled amount on a payslip.
type PayslipLine struct {
	Label  string
	Amount decimal.Decimal
}

type PayslipData struct {
	CompanyName   string
	EmployeeCode  string
	EmployeeName  string
	Department    string
	Month         string
	CycleStart    string
	CycleEnd      string
	PaidDays      float64
	CycleDays     int
	BankName      string
	BankAccount   string
	Earnings      []PayslipLine
	Deductions    []PayslipLine
	GrossSalary   decimal.Decimal
	TotalDeducted decimal.Decimal
	NetSalary     decimal.Decimal
	GeneratedAt   string
}

// PayslipPDF renders a single-page A4 payslip.
func PayslipPDF(d PayslipData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %s", d.EmployeeCode, d.Month), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, d.CompanyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Payslip for %s (%s to %s)", d.Month, d.CycleStart, d.CycleEnd), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	info := [][2]string{
		{"Employee Code", d.EmployeeCode},
		{"Name", d.EmployeeName},
		{"Department", d.Department},
		{"Paid Days", fmt.Sprintf("%.1f / %d", d.PaidDays, d.CycleDays)},
		{"Bank", d.BankName},
		{"Account", maskAccount(d.BankAccount)},
	}
	for _, row := range info {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(45, 7, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(217, 225, 242)
	pdf.CellFormat(60, 8, "Earnings", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(60, 8, "Deductions", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	rows := len(d.Earnings)
	if len(d.Deductions) > rows {
		rows = len(d.Deductions)
	}
	for i := 0; i < rows; i++ {
		writeLine(pdf, d.Earnings, i, 0)
		writeLine(pdf, d.Deductions, i, 1)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(60, 8, "Gross Salary", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, d.GrossSalary.StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.CellFormat(60, 8, "Total Deductions", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, d.TotalDeducted.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, fmt.Sprintf("Net Salary: %s", d.NetSalary.StringFixed(2)), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated at %s. This is a system generated payslip.", d.GeneratedAt), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return buf.Bytes(), nil
}

func writeLine(pdf *gofpdf.Fpdf, lines []PayslipLine, i int, ln int) {
	if i < len(lines) {
		pdf.CellFormat(60, 7, lines[i].Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, lines[i].Amount.StringFixed(2), "1", ln, "R", false, 0, "")
		return
	}
	pdf.CellFormat(60, 7, "", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "", "1", ln, "R", false, 0, "")
}

func maskAccount(acc string) string {
	if len(acc) <= 4 {
		return acc
	}
	masked := make([]byte, len(acc))
	for i := range acc {
		if i < len(acc)-4 {
			masked[i] = 'X'
		} else {
			masked[i] = acc[i]
		}
	}
	return string(masked)
}
