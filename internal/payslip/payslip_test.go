package payslip

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/eldercare-records/internal/model"
)

func sample(t *testing.T) model.Caregiver {
	t.Helper()
	p, err := model.NewPayroll(model.PayInput{
		SalaryPrice: 100, SalaryAmount: 2,
		SaturdayPrice: 50, SaturdayAmount: 4,
		AllowancePrice: 30, AllowanceAmount: 3,
	})
	require.NoError(t, err)
	return model.Caregiver{
		ID: 11, CustomID: 101, Name: "John Doe",
		BankName: "Bank A", BankAccount: "12345", BranchNumber: "001",
		Pay: p,
	}
}

var issued = time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

func TestRender_PDF(t *testing.T) {
	c := sample(t)
	out, err := Render("pdf", c, issued)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out.Body, []byte("%PDF-")))
	assert.Equal(t, "application/pdf", out.ContentType)
	assert.Equal(t, "caregiver_101_report.pdf", out.Filename)

	again, err := Render("PDF", c, issued)
	require.NoError(t, err)
	assert.Equal(t, out.Body, again.Body)
}

func TestRender_PDFChangesWithPay(t *testing.T) {
	c := sample(t)
	a, err := Render(FormatPDF, c, issued)
	require.NoError(t, err)

	c.Pay, err = model.NewPayroll(model.PayInput{SalaryPrice: 1, SalaryAmount: 1})
	require.NoError(t, err)
	b, err := Render(FormatPDF, c, issued)
	require.NoError(t, err)
	assert.NotEqual(t, a.Body, b.Body)
}

func TestRender_XLSX(t *testing.T) {
	out, err := Render("xlsx", sample(t), issued)
	require.NoError(t, err)
	assert.Equal(t, "caregiver_101_report.xlsx", out.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(out.Body))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Payslip"}, f.GetSheetList())
	cell := func(ref string) string {
		v, err := f.GetCellValue(sheetName, ref)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "John Doe (ID: 101) - 05/03/2024", cell("A1"))
	assert.Equal(t, "Description", cell("A3"))
	assert.Equal(t, "Salary", cell("A4"))
	assert.Equal(t, "100.00", cell("B4"))
	assert.Equal(t, "2", cell("C4"))
	assert.Equal(t, "200.00", cell("D4"))
	assert.Equal(t, "Saturday Pay", cell("A5"))
	assert.Equal(t, "Allowance", cell("A6"))
	assert.Equal(t, "90.00", cell("D6"))
	assert.Equal(t, "Total Bank", cell("A7"))
	assert.Equal(t, "490.00", cell("D7"))
	assert.Equal(t, "Report Date: 05/03/2024", cell("A9"))
	assert.Equal(t, "Transfer to: Bank Bank A, Account 12345, Branch 001", cell("A10"))
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := Render("docx", sample(t), issued)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestRows_ZeroPayroll(t *testing.T) {
	rs := rows(model.Payroll{})
	require.Len(t, rs, 4)
	assert.Equal(t, row{"Salary", "0.00", "0", "0.00"}, rs[0])
	assert.Equal(t, "0.00", rs[3].total)
}
