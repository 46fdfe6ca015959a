package dto

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/iliyamo/eldercare-records/internal/model"
)

// Elderly is the response representation of an elderly record.  Tasks
// and medications are in insertion order.
type Elderly struct {
	ID           uint64       `json:"id"`
	CustomID     int64        `json:"custom_id"`
	Name         string       `json:"name"`
	Tasks        []Task       `json:"tasks"`
	Medications  []Medication `json:"medications"`
	CaregiverIDs []uint64     `json:"caregiver_ids"`
}

// ElderlyCreate is the body of POST /elderly.
type ElderlyCreate struct {
	CustomID int64  `json:"custom_id"`
	Name     string `json:"name"`
}

func (r *ElderlyCreate) Normalize() { r.Name = strings.TrimSpace(r.Name) }

func (r ElderlyCreate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CustomID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

func (r ElderlyCreate) ToModel(owner model.OwnerID) model.Elderly {
	return model.Elderly{UserID: owner, CustomID: r.CustomID, Name: r.Name}
}

// Task is the response representation of a task.
type Task struct {
	ID          uint64 `json:"id"`
	ElderlyID   uint64 `json:"elderly_id"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// TaskCreate is the body of POST /elderly/{id}/tasks.  An empty status
// means pending.
type TaskCreate struct {
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (r *TaskCreate) Normalize() {
	r.Description = strings.TrimSpace(r.Description)
	if r.Status == "" {
		r.Status = string(model.TaskPending)
	}
}

func (r TaskCreate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Description, validation.Required, validation.Length(1, 1000)),
		validation.Field(&r.Status, validation.Required, validation.In(statusValues()...)),
	)
}

// TaskStatusUpdate is the body of PUT /elderly/{id}/tasks/{task_id}/status.
type TaskStatusUpdate struct {
	Status string `json:"status"`
}

func (r TaskStatusUpdate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.In(statusValues()...)),
	)
}

func statusValues() []interface{} {
	out := make([]interface{}, 0, 3)
	for _, s := range model.TaskStatuses() {
		out = append(out, string(s))
	}
	return out
}

// Medication is the response representation of a medication.
type Medication struct {
	ID        uint64 `json:"id"`
	ElderlyID uint64 `json:"elderly_id"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
}

// MedicationCreate is the body of POST /elderly/{id}/medications.
type MedicationCreate struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
}

func (r *MedicationCreate) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Dosage = strings.TrimSpace(r.Dosage)
	r.Frequency = strings.TrimSpace(r.Frequency)
}

func (r MedicationCreate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Dosage, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Frequency, validation.Required, validation.Length(1, 255)),
	)
}

// FromElderly assembles an elderly record with its children.
func FromElderly(e model.Elderly, tasks []model.Task, meds []model.Medication, caregiverIDs []uint64) Elderly {
	out := Elderly{
		ID:           e.ID,
		CustomID:     e.CustomID,
		Name:         e.Name,
		Tasks:        make([]Task, 0, len(tasks)),
		Medications:  make([]Medication, 0, len(meds)),
		CaregiverIDs: make([]uint64, 0, len(caregiverIDs)),
	}
	for _, t := range tasks {
		out.Tasks = append(out.Tasks, FromTask(t))
	}
	for _, m := range meds {
		out.Medications = append(out.Medications, FromMedication(m))
	}
	out.CaregiverIDs = append(out.CaregiverIDs, caregiverIDs...)
	return out
}

func FromTask(t model.Task) Task {
	return Task{ID: t.ID, ElderlyID: t.ElderlyID, Description: t.Description, Status: string(t.Status)}
}

func FromMedication(m model.Medication) Medication {
	return Medication{ID: m.ID, ElderlyID: m.ElderlyID, Name: m.Name, Dosage: m.Dosage, Frequency: m.Frequency}
}
