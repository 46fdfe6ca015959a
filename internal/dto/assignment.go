package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/iliyamo/eldercare-records/internal/model"
)

// Assignment is the response representation of a caregiver assignment.
type Assignment struct {
	ID          uint64 `json:"id"`
	CaregiverID uint64 `json:"caregiver_id"`
	ElderlyID   uint64 `json:"elderly_id"`
}

// AssignmentCreate is the body of POST /caregiver-assignments.
type AssignmentCreate struct {
	CaregiverID uint64 `json:"caregiver_id"`
	ElderlyID   uint64 `json:"elderly_id"`
}

func (r AssignmentCreate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CaregiverID, validation.Required),
		validation.Field(&r.ElderlyID, validation.Required),
	)
}

func FromAssignment(a model.Assignment) Assignment {
	return Assignment{ID: a.ID, CaregiverID: a.CaregiverID, ElderlyID: a.ElderlyID}
}

// FromAssignments maps rows, never returning a nil slice.
func FromAssignments(rows []model.Assignment) []Assignment {
	out := make([]Assignment, 0, len(rows))
	for _, a := range rows {
		out = append(out, FromAssignment(a))
	}
	return out
}
