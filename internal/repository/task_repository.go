package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/eldercare-records/internal/model"
)

var tasks = ownedTable[model.Task]{
	name:     "tasks",
	columns:  "id, user_id, elderly_id, description, status, created_at, updated_at",
	scan:     scanTask,
	notFound: model.ErrTaskNotFound,
}

func scanTask(s scanner) (model.Task, error) {
	var t model.Task
	err := s.Scan(&t.ID, &t.UserID, &t.ElderlyID, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// TaskRepo handles tasks nested under an elderly record.  Every method
// first resolves the parent under the owner, then matches the task
// against both the owner and the parent id.
type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo { return &TaskRepo{db: db} }

func (r *TaskRepo) parent(ctx context.Context, owner model.OwnerID, elderlyID uint64) error {
	_, err := elderly.get(ctx, r.db, owner, elderlyID)
	return err
}

// Create stores t under the elderly record t.ElderlyID.
func (r *TaskRepo) Create(ctx context.Context, owner model.OwnerID, t *model.Task) error {
	if err := r.parent(ctx, owner, t.ElderlyID); err != nil {
		return err
	}
	id, err := insert(ctx, r.db, model.ErrConflict,
		"INSERT INTO tasks (user_id, elderly_id, description, status) VALUES (?, ?, ?, ?)",
		uint64(owner), t.ElderlyID, t.Description, string(t.Status))
	if err != nil {
		return err
	}
	stored, err := tasks.get(ctx, r.db, owner, id)
	if err != nil {
		return err
	}
	*t = stored
	return nil
}

func (r *TaskRepo) Get(ctx context.Context, owner model.OwnerID, elderlyID, taskID uint64) (model.Task, error) {
	if err := r.parent(ctx, owner, elderlyID); err != nil {
		return model.Task{}, err
	}
	return tasks.get(ctx, r.db, owner, taskID, eq("elderly_id", elderlyID))
}

// ListByElderly returns the tasks of one elderly record in insertion order.
func (r *TaskRepo) ListByElderly(ctx context.Context, owner model.OwnerID, elderlyID uint64) ([]model.Task, error) {
	if err := r.parent(ctx, owner, elderlyID); err != nil {
		return nil, err
	}
	return tasks.list(ctx, r.db, owner, eq("elderly_id", elderlyID))
}

// ListByOwner returns every task owner has, across elderly records.
func (r *TaskRepo) ListByOwner(ctx context.Context, owner model.OwnerID) ([]model.Task, error) {
	return tasks.list(ctx, r.db, owner)
}

// SetStatus changes the status of one task.
func (r *TaskRepo) SetStatus(ctx context.Context, owner model.OwnerID, elderlyID, taskID uint64, st model.TaskStatus) error {
	if _, err := r.Get(ctx, owner, elderlyID, taskID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND elderly_id = ? AND user_id = ?",
		string(st), taskID, elderlyID, uint64(owner))
	return err
}

func (r *TaskRepo) Delete(ctx context.Context, owner model.OwnerID, elderlyID, taskID uint64) error {
	if err := r.parent(ctx, owner, elderlyID); err != nil {
		return err
	}
	return tasks.remove(ctx, r.db, owner, taskID, eq("elderly_id", elderlyID))
}
