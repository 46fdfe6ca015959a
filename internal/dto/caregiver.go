package dto

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/iliyamo/eldercare-records/internal/model"
)

// PayLine is the wire form of one {price, amount, total} triple.
type PayLine struct {
	Price  float64 `json:"price"`
	Amount int     `json:"amount"`
	Total  float64 `json:"total"`
}

// Caregiver is the response representation of a caregiver, including
// the ids of the elderly records it is assigned to.
type Caregiver struct {
	ID           uint64   `json:"id"`
	CustomID     int64    `json:"custom_id"`
	Name         string   `json:"name"`
	BankName     string   `json:"bank_name"`
	BankAccount  string   `json:"bank_account"`
	BranchNumber string   `json:"branch_number"`
	Salary       PayLine  `json:"salary"`
	Saturday     PayLine  `json:"saturday"`
	Allowance    PayLine  `json:"allowance"`
	TotalBank    float64  `json:"total_bank"`
	ElderlyIDs   []uint64 `json:"elderly_ids"`
}

// CaregiverCreate is the body of POST /caregivers.
type CaregiverCreate struct {
	CustomID     int64  `json:"custom_id"`
	Name         string `json:"name"`
	BankName     string `json:"bank_name"`
	BankAccount  string `json:"bank_account"`
	BranchNumber string `json:"branch_number"`
}

func (r *CaregiverCreate) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.BankName = strings.TrimSpace(r.BankName)
	r.BankAccount = strings.TrimSpace(r.BankAccount)
	r.BranchNumber = strings.TrimSpace(r.BranchNumber)
}

func (r CaregiverCreate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CustomID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.BankName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.BankAccount, validation.Required, validation.Length(1, 64)),
		validation.Field(&r.BranchNumber, validation.Required, validation.Length(1, 32)),
	)
}

// ToModel builds the persistence row for owner.
func (r CaregiverCreate) ToModel(owner model.OwnerID) model.Caregiver {
	return model.Caregiver{
		UserID:       owner,
		CustomID:     r.CustomID,
		Name:         r.Name,
		BankName:     r.BankName,
		BankAccount:  r.BankAccount,
		BranchNumber: r.BranchNumber,
	}
}

// SalaryUpdate is the body of PUT /caregivers/{id}/update-salary.  All
// six fields are required; pointers distinguish a missing field from 0.
type SalaryUpdate struct {
	SalaryPrice     *float64 `json:"salary_price"`
	SalaryAmount    *int     `json:"salary_amount"`
	SaturdayPrice   *float64 `json:"saturday_price"`
	SaturdayAmount  *int     `json:"saturday_amount"`
	AllowancePrice  *float64 `json:"allowance_price"`
	AllowanceAmount *int     `json:"allowance_amount"`
}

func (r SalaryUpdate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SalaryPrice, validation.NotNil, validation.Min(0.0)),
		validation.Field(&r.SalaryAmount, validation.NotNil, validation.Min(0)),
		validation.Field(&r.SaturdayPrice, validation.NotNil, validation.Min(0.0)),
		validation.Field(&r.SaturdayAmount, validation.NotNil, validation.Min(0)),
		validation.Field(&r.AllowancePrice, validation.NotNil, validation.Min(0.0)),
		validation.Field(&r.AllowanceAmount, validation.NotNil, validation.Min(0)),
	)
}

// Input converts a validated update into payroll input.
func (r SalaryUpdate) Input() model.PayInput {
	return model.PayInput{
		SalaryPrice:     deref(r.SalaryPrice),
		SalaryAmount:    deref(r.SalaryAmount),
		SaturdayPrice:   deref(r.SaturdayPrice),
		SaturdayAmount:  deref(r.SaturdayAmount),
		AllowancePrice:  deref(r.AllowancePrice),
		AllowanceAmount: deref(r.AllowanceAmount),
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// FromCaregiver maps a caregivers row plus its assigned elderly ids.
func FromCaregiver(c model.Caregiver, elderlyIDs []uint64) Caregiver {
	ids := make([]uint64, 0, len(elderlyIDs))
	ids = append(ids, elderlyIDs...)
	return Caregiver{
		ID:           c.ID,
		CustomID:     c.CustomID,
		Name:         c.Name,
		BankName:     c.BankName,
		BankAccount:  c.BankAccount,
		BranchNumber: c.BranchNumber,
		Salary:       fromLine(c.Pay.Salary),
		Saturday:     fromLine(c.Pay.Saturday),
		Allowance:    fromLine(c.Pay.Allowance),
		TotalBank:    c.Pay.TotalBank,
		ElderlyIDs:   ids,
	}
}

func fromLine(l model.PayLine) PayLine {
	return PayLine{Price: l.Price, Amount: l.Amount, Total: l.Total}
}
