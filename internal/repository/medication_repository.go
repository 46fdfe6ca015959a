package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/eldercare-records/internal/model"
)

var medications = ownedTable[model.Medication]{
	name:     "medications",
	columns:  "id, user_id, elderly_id, name, dosage, frequency, created_at",
	scan:     scanMedication,
	notFound: model.ErrMedicationNotFound,
}

func scanMedication(s scanner) (model.Medication, error) {
	var m model.Medication
	err := s.Scan(&m.ID, &m.UserID, &m.ElderlyID, &m.Name, &m.Dosage, &m.Frequency, &m.CreatedAt)
	return m, err
}

// MedicationRepo handles medications nested under an elderly record.
type MedicationRepo struct {
	db *sql.DB
}

func NewMedicationRepo(db *sql.DB) *MedicationRepo { return &MedicationRepo{db: db} }

func (r *MedicationRepo) Create(ctx context.Context, owner model.OwnerID, m *model.Medication) error {
	if _, err := elderly.get(ctx, r.db, owner, m.ElderlyID); err != nil {
		return err
	}
	id, err := insert(ctx, r.db, model.ErrConflict,
		"INSERT INTO medications (user_id, elderly_id, name, dosage, frequency) VALUES (?, ?, ?, ?, ?)",
		uint64(owner), m.ElderlyID, m.Name, m.Dosage, m.Frequency)
	if err != nil {
		return err
	}
	stored, err := medications.get(ctx, r.db, owner, id)
	if err != nil {
		return err
	}
	*m = stored
	return nil
}

// ListByElderly returns medications in insertion order.
func (r *MedicationRepo) ListByElderly(ctx context.Context, owner model.OwnerID, elderlyID uint64) ([]model.Medication, error) {
	if _, err := elderly.get(ctx, r.db, owner, elderlyID); err != nil {
		return nil, err
	}
	return medications.list(ctx, r.db, owner, eq("elderly_id", elderlyID))
}

func (r *MedicationRepo) ListByOwner(ctx context.Context, owner model.OwnerID) ([]model.Medication, error) {
	return medications.list(ctx, r.db, owner)
}

func (r *MedicationRepo) Delete(ctx context.Context, owner model.OwnerID, elderlyID, medicationID uint64) error {
	if _, err := elderly.get(ctx, r.db, owner, elderlyID); err != nil {
		return err
	}
	return medications.remove(ctx, r.db, owner, medicationID, eq("elderly_id", elderlyID))
}
