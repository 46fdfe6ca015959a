package dto

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/eldercare-records/internal/model"
)

func ptr[T any](v T) *T { return &v }

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	require.Error(t, err)
	errs, ok := err.(validation.Errors)
	require.True(t, ok, "expected validation.Errors, got %T", err)
	return errs
}

func TestCaregiverCreate_Validate(t *testing.T) {
	ok := CaregiverCreate{CustomID: 1, Name: "John Doe", BankName: "Bank A", BankAccount: "12345", BranchNumber: "001"}
	assert.NoError(t, ok.Validate())

	bad := CaregiverCreate{Name: "  "}
	bad.Normalize()
	errs := fieldErrors(t, bad.Validate())
	for _, f := range []string{"custom_id", "name", "bank_name", "bank_account", "branch_number"} {
		assert.Contains(t, errs, f)
	}
}

func TestSalaryUpdate_Validate(t *testing.T) {
	full := SalaryUpdate{
		SalaryPrice: ptr(100.0), SalaryAmount: ptr(2),
		SaturdayPrice: ptr(50.0), SaturdayAmount: ptr(4),
		AllowancePrice: ptr(30.0), AllowanceAmount: ptr(3),
	}
	require.NoError(t, full.Validate())
	assert.Equal(t, model.PayInput{
		SalaryPrice: 100, SalaryAmount: 2,
		SaturdayPrice: 50, SaturdayAmount: 4,
		AllowancePrice: 30, AllowanceAmount: 3,
	}, full.Input())

	zeros := SalaryUpdate{
		SalaryPrice: ptr(0.0), SalaryAmount: ptr(0),
		SaturdayPrice: ptr(0.0), SaturdayAmount: ptr(0),
		AllowancePrice: ptr(0.0), AllowanceAmount: ptr(0),
	}
	assert.NoError(t, zeros.Validate())

	partial := SalaryUpdate{SalaryPrice: ptr(10.0)}
	errs := fieldErrors(t, partial.Validate())
	assert.Contains(t, errs, "saturday_price")
	assert.NotContains(t, errs, "salary_price")

	negative := full
	negative.AllowanceAmount = ptr(-1)
	errs = fieldErrors(t, negative.Validate())
	assert.Contains(t, errs, "allowance_amount")
}

func TestTaskCreate_DefaultsAndValidatesStatus(t *testing.T) {
	r := TaskCreate{Description: " walk "}
	r.Normalize()
	assert.Equal(t, "walk", r.Description)
	assert.Equal(t, "pending", r.Status)
	assert.NoError(t, r.Validate())

	r.Status = "done"
	errs := fieldErrors(t, r.Validate())
	assert.Contains(t, errs, "status")

	assert.NoError(t, TaskStatusUpdate{Status: "in progress"}.Validate())
	assert.Error(t, TaskStatusUpdate{Status: "IN PROGRESS"}.Validate())
}

func TestRegisterRequest_Validate(t *testing.T) {
	r := RegisterRequest{Email: "  Alice@Example.com ", Password: "secret123", FullName: "Alice"}
	r.Normalize()
	assert.Equal(t, "alice@example.com", r.Email)
	assert.NoError(t, r.Validate())

	errs := fieldErrors(t, RegisterRequest{Email: "nope", Password: "short"}.Validate())
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestFromElderly_NeverNilSlices(t *testing.T) {
	e := FromElderly(model.Elderly{ID: 3, CustomID: 1, Name: "Alice"}, nil, nil, nil)
	assert.NotNil(t, e.Tasks)
	assert.NotNil(t, e.Medications)
	assert.NotNil(t, e.CaregiverIDs)

	c := FromCaregiver(model.Caregiver{ID: 1}, nil)
	assert.NotNil(t, c.ElderlyIDs)
}
