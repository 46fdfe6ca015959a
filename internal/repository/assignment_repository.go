package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/eldercare-records/internal/model"
)

var assignments = ownedTable[model.Assignment]{
	name:     "caregiver_assignments",
	columns:  "id, user_id, caregiver_id, elderly_id, created_at",
	scan:     scanAssignment,
	notFound: model.ErrAssignmentNotFound,
}

func scanAssignment(s scanner) (model.Assignment, error) {
	var a model.Assignment
	err := s.Scan(&a.ID, &a.UserID, &a.CaregiverID, &a.ElderlyID, &a.CreatedAt)
	return a, err
}

// AssignmentRepo links caregivers to elderly records of the same owner.
type AssignmentRepo struct {
	db *sql.DB
}

func NewAssignmentRepo(db *sql.DB) *AssignmentRepo { return &AssignmentRepo{db: db} }

// Create verifies that both sides belong to owner and that the pair is
// not linked yet, then inserts, all in one transaction.  The unique key
// on (user_id, caregiver_id, elderly_id) rejects a concurrent duplicate.
func (r *AssignmentRepo) Create(ctx context.Context, owner model.OwnerID, a *model.Assignment) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := caregivers.get(ctx, tx, owner, a.CaregiverID); err != nil {
			return err
		}
		if _, err := elderly.get(ctx, tx, owner, a.ElderlyID); err != nil {
			return err
		}
		dup, err := assignments.exists(ctx, tx, owner, eq("caregiver_id", a.CaregiverID), eq("elderly_id", a.ElderlyID))
		if err != nil {
			return err
		}
		if dup {
			return model.ErrAssignmentExists
		}
		id, err := insert(ctx, tx, model.ErrAssignmentExists,
			"INSERT INTO caregiver_assignments (user_id, caregiver_id, elderly_id) VALUES (?, ?, ?)",
			uint64(owner), a.CaregiverID, a.ElderlyID)
		if err != nil {
			return err
		}
		stored, err := assignments.get(ctx, tx, owner, id)
		if err != nil {
			return err
		}
		*a = stored
		return nil
	})
}

func (r *AssignmentRepo) Get(ctx context.Context, owner model.OwnerID, id uint64) (model.Assignment, error) {
	return assignments.get(ctx, r.db, owner, id)
}

func (r *AssignmentRepo) List(ctx context.Context, owner model.OwnerID) ([]model.Assignment, error) {
	return assignments.list(ctx, r.db, owner)
}

func (r *AssignmentRepo) ListByCaregiver(ctx context.Context, owner model.OwnerID, caregiverID uint64) ([]model.Assignment, error) {
	return assignments.list(ctx, r.db, owner, eq("caregiver_id", caregiverID))
}

func (r *AssignmentRepo) ListByElderly(ctx context.Context, owner model.OwnerID, elderlyID uint64) ([]model.Assignment, error) {
	return assignments.list(ctx, r.db, owner, eq("elderly_id", elderlyID))
}

// Delete removes one assignment and returns it.
func (r *AssignmentRepo) Delete(ctx context.Context, owner model.OwnerID, id uint64) (model.Assignment, error) {
	var removed model.Assignment
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		a, err := assignments.get(ctx, tx, owner, id)
		if err != nil {
			return err
		}
		if err := assignments.remove(ctx, tx, owner, id); err != nil {
			return err
		}
		removed = a
		return nil
	})
	return removed, err
}
