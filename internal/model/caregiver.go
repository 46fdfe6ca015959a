package model

import "time"

// Caregiver represents a row in the `caregivers` table.  CustomID is
// supplied by the owning user and is unique only within that user's
// records.  The pay columns are always written together through
// Payroll so that every total matches its inputs.
//
// Fields:
//
//	ID           – primary key identifier.
//	UserID       – owning user.
//	CustomID     – caller-supplied identifier, unique per owner.
//	Name         – display name.
//	BankName     – bank used for salary transfers.
//	BankAccount  – account number.
//	BranchNumber – bank branch.
//	Pay          – salary, Saturday pay, allowance and the bank total.
type Caregiver struct {
	ID           uint64    // caregivers.id
	UserID       OwnerID   // caregivers.user_id
	CustomID     int64     // caregivers.custom_id
	Name         string    // caregivers.name
	BankName     string    // caregivers.bank_name
	BankAccount  string    // caregivers.bank_account
	BranchNumber string    // caregivers.branch_number
	Pay          Payroll   // caregivers.salary_* / saturday_* / allowance_* / total_bank
	CreatedAt    time.Time // caregivers.created_at
	UpdatedAt    time.Time // caregivers.updated_at
}
