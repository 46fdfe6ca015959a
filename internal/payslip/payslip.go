// Package payslip renders a caregiver's pay lines as a downloadable
// document.
package payslip

import (
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/eldercare-records/internal/model"
)

// Supported formats.
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// Output is a rendered document ready to be sent as an attachment.
type Output struct {
	Body        []byte
	ContentType string
	Filename    string
}

// row is one line of the payslip table.
type row struct {
	desc   string
	price  string
	amount string
	total  string
}

// rows returns the table body shared by every format.
func rows(p model.Payroll) []row {
	line := func(desc string, l model.PayLine) row {
		return row{desc, money(l.Price), fmt.Sprint(l.Amount), money(l.Total)}
	}
	return []row{
		line("Salary", p.Salary),
		line("Saturday Pay", p.Saturday),
		line("Allowance", p.Allowance),
		{desc: "Total Bank", total: money(p.TotalBank)},
	}
}

var header = row{"Description", "Price", "Amount", "Total"}

func money(v float64) string { return fmt.Sprintf("%.2f", v) }

func reportDate(t time.Time) string { return t.Format("02/01/2006") }

func title(c model.Caregiver, issuedAt time.Time) string {
	return fmt.Sprintf("%s (ID: %d) - %s", c.Name, c.CustomID, reportDate(issuedAt))
}

func transferLine(c model.Caregiver) string {
	return fmt.Sprintf("Transfer to: Bank %s, Account %s, Branch %s", c.BankName, c.BankAccount, c.BranchNumber)
}

// Filename returns caregiver_{custom_id}_report.{format}.
func Filename(c model.Caregiver, format string) string {
	return fmt.Sprintf("caregiver_%d_report.%s", c.CustomID, format)
}

// ParseFormat accepts "pdf" or "xlsx", case-insensitively.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case FormatPDF, FormatXLSX:
		return f, nil
	}
	return "", model.Invalid(fmt.Errorf("unsupported payslip format %q", s))
}

// Render produces the payslip of c in format, stamped with issuedAt.
func Render(format string, c model.Caregiver, issuedAt time.Time) (Output, error) {
	format, err := ParseFormat(format)
	if err != nil {
		return Output{}, err
	}
	var (
		body []byte
		ct   string
	)
	switch format {
	case FormatPDF:
		body, err = renderPDF(c, issuedAt)
		ct = "application/pdf"
	case FormatXLSX:
		body, err = renderXLSX(c, issuedAt)
		ct = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		return Output{}, fmt.Errorf("render %s payslip: %w", format, err)
	}
	return Output{Body: body, ContentType: ct, Filename: Filename(c, format)}, nil
}
