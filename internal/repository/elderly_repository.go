package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/eldercare-records/internal/model"
)

var elderly = ownedTable[model.Elderly]{
	name:     "elderly",
	columns:  "id, user_id, custom_id, name, created_at, updated_at",
	scan:     scanElderly,
	notFound: model.ErrElderlyNotFound,
}

func scanElderly(s scanner) (model.Elderly, error) {
	var e model.Elderly
	err := s.Scan(&e.ID, &e.UserID, &e.CustomID, &e.Name, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// ElderlyRepo encapsulates queries on elderly records.
type ElderlyRepo struct {
	db *sql.DB
}

func NewElderlyRepo(db *sql.DB) *ElderlyRepo { return &ElderlyRepo{db: db} }

// Create inserts e under owner, rejecting a custom id owner already uses.
func (r *ElderlyRepo) Create(ctx context.Context, owner model.OwnerID, e *model.Elderly) error {
	taken, err := elderly.exists(ctx, r.db, owner, eq("custom_id", e.CustomID))
	if err != nil {
		return err
	}
	if taken {
		return model.ErrElderlyExists
	}
	id, err := insert(ctx, r.db, model.ErrElderlyExists,
		"INSERT INTO elderly (user_id, custom_id, name) VALUES (?, ?, ?)",
		uint64(owner), e.CustomID, e.Name)
	if err != nil {
		return err
	}
	stored, err := elderly.get(ctx, r.db, owner, id)
	if err != nil {
		return err
	}
	*e = stored
	return nil
}

func (r *ElderlyRepo) Get(ctx context.Context, owner model.OwnerID, id uint64) (model.Elderly, error) {
	return elderly.get(ctx, r.db, owner, id)
}

func (r *ElderlyRepo) List(ctx context.Context, owner model.OwnerID) ([]model.Elderly, error) {
	return elderly.list(ctx, r.db, owner)
}

// Delete removes the elderly record with its tasks, medications and
// assignments in one transaction and returns the removed assignments.
func (r *ElderlyRepo) Delete(ctx context.Context, owner model.OwnerID, id uint64) ([]model.Assignment, error) {
	var removed []model.Assignment
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := elderly.get(ctx, tx, owner, id); err != nil {
			return err
		}
		links, err := assignments.list(ctx, tx, owner, eq("elderly_id", id))
		if err != nil {
			return err
		}
		if _, err := tasks.removeWhere(ctx, tx, owner, eq("elderly_id", id)); err != nil {
			return err
		}
		if _, err := medications.removeWhere(ctx, tx, owner, eq("elderly_id", id)); err != nil {
			return err
		}
		if _, err := assignments.removeWhere(ctx, tx, owner, eq("elderly_id", id)); err != nil {
			return err
		}
		if err := elderly.remove(ctx, tx, owner, id); err != nil {
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
