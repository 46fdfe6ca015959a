package model

import "time"

// Elderly represents a row in the `elderly` table: a client receiving
// care.  Tasks and medications hang off an elderly record and are
// removed together with it.
//
// Fields:
//
//	ID       – primary key identifier.
//	UserID   – owning user.
//	CustomID – caller-supplied identifier, unique per owner.
//	Name     – display name.
type Elderly struct {
	ID        uint64    // elderly.id
	UserID    OwnerID   // elderly.user_id
	CustomID  int64     // elderly.custom_id
	Name      string    // elderly.name
	CreatedAt time.Time // elderly.created_at
	UpdatedAt time.Time // elderly.updated_at
}

// Medication represents a row in the `medications` table.
type Medication struct {
	ID        uint64    // medications.id
	UserID    OwnerID   // medications.user_id
	ElderlyID uint64    // medications.elderly_id
	Name      string    // medications.name
	Dosage    string    // medications.dosage
	Frequency string    // medications.frequency
	CreatedAt time.Time // medications.created_at
}

// Assignment represents a row in the `caregiver_assignments` table.
// The (UserID, CaregiverID, ElderlyID) triple is unique.
type Assignment struct {
	ID          uint64    // caregiver_assignments.id
	UserID      OwnerID   // caregiver_assignments.user_id
	CaregiverID uint64    // caregiver_assignments.caregiver_id
	ElderlyID   uint64    // caregiver_assignments.elderly_id
	CreatedAt   time.Time // caregiver_assignments.created_at
}
