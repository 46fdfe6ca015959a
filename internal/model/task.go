package model

import (
	"fmt"
	"strings"
	"time"
)

// TaskStatus is the closed set of states a task can be in.  Any state
// may move to any other; only the value itself is constrained.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in progress"
	TaskCompleted  TaskStatus = "completed"
)

// TaskStatuses lists every valid status in display order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskPending, TaskInProgress, TaskCompleted}
}

// ParseTaskStatus returns the status named by s.  Matching is exact;
// anything outside the closed set fails with ErrInvalidInput.
func ParseTaskStatus(s string) (TaskStatus, error) {
	for _, st := range TaskStatuses() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", Invalid(fmt.Errorf("status must be one of: %s", statusList()))
}

func statusList() string {
	names := make([]string, 0, 3)
	for _, st := range TaskStatuses() {
		names = append(names, string(st))
	}
	return strings.Join(names, ", ")
}

// Task represents a row in the `tasks` table.
type Task struct {
	ID          uint64     // tasks.id
	UserID      OwnerID    // tasks.user_id
	ElderlyID   uint64     // tasks.elderly_id
	Description string     // tasks.description
	Status      TaskStatus // tasks.status
	CreatedAt   time.Time  // tasks.created_at
	UpdatedAt   time.Time  // tasks.updated_at
}
