package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/iliyamo/eldercare-records/internal/cache"
	"github.com/iliyamo/eldercare-records/internal/dto"
	"github.com/iliyamo/eldercare-records/internal/model"
	"github.com/iliyamo/eldercare-records/internal/repository"
)

// ElderlyService manages elderly records and the tasks and medications
// nested under them.  The cached elderly detail embeds both, so any
// child write drops it.
type ElderlyService struct {
	repo  *repository.ElderlyRepo
	tasks *repository.TaskRepo
	meds  *repository.MedicationRepo
	links *repository.AssignmentRepo
	views views
	log   *zap.Logger
}

func NewElderlyService(repo *repository.ElderlyRepo, tasks *repository.TaskRepo, meds *repository.MedicationRepo, links *repository.AssignmentRepo, c *cache.Cache, log *zap.Logger) *ElderlyService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ElderlyService{repo: repo, tasks: tasks, meds: meds, links: links, views: newViews(c), log: log}
}

func (s *ElderlyService) Add(ctx context.Context, owner model.OwnerID, req dto.ElderlyCreate) (dto.Elderly, error) {
	req.Normalize()
	if err := validate(req); err != nil {
		return dto.Elderly{}, err
	}
	e := req.ToModel(owner)
	if err := s.repo.Create(ctx, owner, &e); err != nil {
		return dto.Elderly{}, err
	}
	s.views.elderly.Forget(ctx, owner, e.ID)
	return dto.FromElderly(e, nil, nil, nil), nil
}

func (s *ElderlyService) List(ctx context.Context, owner model.OwnerID) ([]dto.Elderly, error) {
	return s.views.elderly.All(ctx, owner, func(ctx context.Context) ([]dto.Elderly, error) {
		rows, err := s.repo.List(ctx, owner)
		if err != nil {
			return nil, err
		}
		tasks, err := s.tasks.ListByOwner(ctx, owner)
		if err != nil {
			return nil, err
		}
		meds, err := s.meds.ListByOwner(ctx, owner)
		if err != nil {
			return nil, err
		}
		links, err := s.links.List(ctx, owner)
		if err != nil {
			return nil, err
		}

		tasksBy := make(map[uint64][]model.Task)
		for _, t := range tasks {
			tasksBy[t.ElderlyID] = append(tasksBy[t.ElderlyID], t)
		}
		medsBy := make(map[uint64][]model.Medication)
		for _, m := range meds {
			medsBy[m.ElderlyID] = append(medsBy[m.ElderlyID], m)
		}
		linksBy := groupLinks(links, elderlyOf, caregiverOf)

		out := make([]dto.Elderly, 0, len(rows))
		for _, e := range rows {
			out = append(out, dto.FromElderly(e, tasksBy[e.ID], medsBy[e.ID], linksBy[e.ID]))
		}
		return out, nil
	})
}

func (s *ElderlyService) Get(ctx context.Context, owner model.OwnerID, id uint64) (dto.Elderly, error) {
	return s.views.elderly.One(ctx, owner, id, func(ctx context.Context) (dto.Elderly, error) {
		e, err := s.repo.Get(ctx, owner, id)
		if err != nil {
			return dto.Elderly{}, err
		}
		tasks, err := s.tasks.ListByElderly(ctx, owner, id)
		if err != nil {
			return dto.Elderly{}, err
		}
		meds, err := s.meds.ListByElderly(ctx, owner, id)
		if err != nil {
			return dto.Elderly{}, err
		}
		links, err := s.links.ListByElderly(ctx, owner, id)
		if err != nil {
			return dto.Elderly{}, err
		}
		return dto.FromElderly(e, tasks, meds, groupLinks(links, elderlyOf, caregiverOf)[id]), nil
	})
}

// Delete removes the record with its tasks, medications and assignments.
func (s *ElderlyService) Delete(ctx context.Context, owner model.OwnerID, id uint64) error {
	removed, err := s.repo.Delete(ctx, owner, id)
	if err != nil {
		return err
	}
	s.views.elderly.Forget(ctx, owner, id)
	s.views.forgetLinks(ctx, owner, removed...)
	return nil
}

// Invalidate drops cached elderly entries for owner.
func (s *ElderlyService) Invalidate(ctx context.Context, owner model.OwnerID, ids ...uint64) {
	s.views.elderly.Forget(ctx, owner, ids...)
}

// Tasks.

func (s *ElderlyService) AddTask(ctx context.Context, owner model.OwnerID, elderlyID uint64, req dto.TaskCreate) (dto.Task, error) {
	req.Normalize()
	if err := validate(req); err != nil {
		return dto.Task{}, err
	}
	st, err := model.ParseTaskStatus(req.Status)
	if err != nil {
		return dto.Task{}, err
	}
	t := model.Task{ElderlyID: elderlyID, Description: req.Description, Status: st}
	if err := s.tasks.Create(ctx, owner, &t); err != nil {
		return dto.Task{}, err
	}
	s.views.elderly.Forget(ctx, owner, elderlyID)
	return dto.FromTask(t), nil
}

// ListTasks serves the tasks from the cached elderly detail.
func (s *ElderlyService) ListTasks(ctx context.Context, owner model.OwnerID, elderlyID uint64) ([]dto.Task, error) {
	e, err := s.Get(ctx, owner, elderlyID)
	if err != nil {
		return nil, err
	}
	return e.Tasks, nil
}

// UpdateTaskStatus sets the status of one task.  The status is checked
// before anything is read, so an invalid value never touches the store.
func (s *ElderlyService) UpdateTaskStatus(ctx context.Context, owner model.OwnerID, elderlyID, taskID uint64, req dto.TaskStatusUpdate) (dto.Task, error) {
	if err := validate(req); err != nil {
		return dto.Task{}, err
	}
	st, err := model.ParseTaskStatus(req.Status)
	if err != nil {
		return dto.Task{}, err
	}
	if err := s.tasks.SetStatus(ctx, owner, elderlyID, taskID, st); err != nil {
		return dto.Task{}, err
	}
	s.views.elderly.Forget(ctx, owner, elderlyID)
	t, err := s.tasks.Get(ctx, owner, elderlyID, taskID)
	if err != nil {
		return dto.Task{}, err
	}
	return dto.FromTask(t), nil
}

func (s *ElderlyService) DeleteTask(ctx context.Context, owner model.OwnerID, elderlyID, taskID uint64) error {
	if err := s.tasks.Delete(ctx, owner, elderlyID, taskID); err != nil {
		return err
	}
	s.views.elderly.Forget(ctx, owner, elderlyID)
	return nil
}

// Medications.

func (s *ElderlyService) AddMedication(ctx context.Context, owner model.OwnerID, elderlyID uint64, req dto.MedicationCreate) (dto.Medication, error) {
	req.Normalize()
	if err := validate(req); err != nil {
		return dto.Medication{}, err
	}
	m := model.Medication{ElderlyID: elderlyID, Name: req.Name, Dosage: req.Dosage, Frequency: req.Frequency}
	if err := s.meds.Create(ctx, owner, &m); err != nil {
		return dto.Medication{}, err
	}
	s.views.elderly.Forget(ctx, owner, elderlyID)
	return dto.FromMedication(m), nil
}

// ListMedications returns medications in insertion order from the
// cached elderly detail.
func (s *ElderlyService) ListMedications(ctx context.Context, owner model.OwnerID, elderlyID uint64) ([]dto.Medication, error) {
	e, err := s.Get(ctx, owner, elderlyID)
	if err != nil {
		return nil, err
	}
	return e.Medications, nil
}

func (s *ElderlyService) DeleteMedication(ctx context.Context, owner model.OwnerID, elderlyID, medicationID uint64) error {
	if err := s.meds.Delete(ctx, owner, elderlyID, medicationID); err != nil {
		return err
	}
	s.views.elderly.Forget(ctx, owner, elderlyID)
	return nil
}
