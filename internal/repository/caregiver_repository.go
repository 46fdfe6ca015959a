package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/eldercare-records/internal/model"
)

const caregiverColumns = `id, user_id, custom_id, name, bank_name, bank_account, branch_number,
	salary_price, salary_amount, salary_total,
	saturday_price, saturday_amount, saturday_total,
	allowance_price, allowance_amount, allowance_total,
	total_bank, created_at, updated_at`

var caregivers = ownedTable[model.Caregiver]{
	name:     "caregivers",
	columns:  caregiverColumns,
	scan:     scanCaregiver,
	notFound: model.ErrCaregiverNotFound,
}

func scanCaregiver(s scanner) (model.Caregiver, error) {
	var c model.Caregiver
	p := &c.Pay
	err := s.Scan(&c.ID, &c.UserID, &c.CustomID, &c.Name, &c.BankName, &c.BankAccount, &c.BranchNumber,
		&p.Salary.Price, &p.Salary.Amount, &p.Salary.Total,
		&p.Saturday.Price, &p.Saturday.Amount, &p.Saturday.Total,
		&p.Allowance.Price, &p.Allowance.Amount, &p.Allowance.Total,
		&p.TotalBank, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// CaregiverRepo encapsulates all database queries related to caregivers.
type CaregiverRepo struct {
	db *sql.DB
}

func NewCaregiverRepo(db *sql.DB) *CaregiverRepo { return &CaregiverRepo{db: db} }

// Create inserts c under owner.  A custom id already used by owner is
// rejected with model.ErrCaregiverExists.  On success c is replaced by
// the stored row.
func (r *CaregiverRepo) Create(ctx context.Context, owner model.OwnerID, c *model.Caregiver) error {
	taken, err := caregivers.exists(ctx, r.db, owner, eq("custom_id", c.CustomID))
	if err != nil {
		return err
	}
	if taken {
		return model.ErrCaregiverExists
	}

	// the unique key on (user_id, custom_id) catches a racing insert
	id, err := insert(ctx, r.db, model.ErrCaregiverExists,
		`INSERT INTO caregivers (user_id, custom_id, name, bank_name, bank_account, branch_number)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uint64(owner), c.CustomID, c.Name, c.BankName, c.BankAccount, c.BranchNumber)
	if err != nil {
		return err
	}

	stored, err := caregivers.get(ctx, r.db, owner, id)
	if err != nil {
		return err
	}
	*c = stored
	return nil
}

// Get returns the caregiver id if it belongs to owner.
func (r *CaregiverRepo) Get(ctx context.Context, owner model.OwnerID, id uint64) (model.Caregiver, error) {
	return caregivers.get(ctx, r.db, owner, id)
}

// List returns owner's caregivers ordered by id.
func (r *CaregiverRepo) List(ctx context.Context, owner model.OwnerID) ([]model.Caregiver, error) {
	return caregivers.list(ctx, r.db, owner)
}

// UpdatePay overwrites every pay column and the bank total in a single
// statement.
func (r *CaregiverRepo) UpdatePay(ctx context.Context, owner model.OwnerID, id uint64, p model.Payroll) error {
	const q = `UPDATE caregivers SET
		salary_price = ?, salary_amount = ?, salary_total = ?,
		saturday_price = ?, saturday_amount = ?, saturday_total = ?,
		allowance_price = ?, allowance_amount = ?, allowance_total = ?,
		total_bank = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		p.Salary.Price, p.Salary.Amount, p.Salary.Total,
		p.Saturday.Price, p.Saturday.Amount, p.Saturday.Total,
		p.Allowance.Price, p.Allowance.Amount, p.Allowance.Total,
		p.TotalBank, id, uint64(owner))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// MySQL reports 0 for an unchanged row, so confirm the gate
		if _, err := caregivers.get(ctx, r.db, owner, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the caregiver and its assignments in one transaction.
// The removed assignments are returned so callers can invalidate the
// elderly side of each relationship.
func (r *CaregiverRepo) Delete(ctx context.Context, owner model.OwnerID, id uint64) ([]model.Assignment, error) {
	var removed []model.Assignment
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := caregivers.get(ctx, tx, owner, id); err != nil {
			return err
		}
		links, err := assignments.list(ctx, tx, owner, eq("caregiver_id", id))
		if err != nil {
			return err
		}
		if _, err := assignments.removeWhere(ctx, tx, owner, eq("caregiver_id", id)); err != nil {
			return err
		}
		if err := caregivers.remove(ctx, tx, owner, id); err != nil {
			return err
		}
		removed = links
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
