package service

import (
	"context"

	"github.com/iliyamo/eldercare-records/internal/cache"
	"github.com/iliyamo/eldercare-records/internal/dto"
	"github.com/iliyamo/eldercare-records/internal/model"
	"github.com/iliyamo/eldercare-records/internal/repository"
)

// AssignmentService links caregivers and elderly records.
type AssignmentService struct {
	repo  *repository.AssignmentRepo
	views views
}

func NewAssignmentService(repo *repository.AssignmentRepo, c *cache.Cache) *AssignmentService {
	return &AssignmentService{repo: repo, views: newViews(c)}
}

// Create links req.CaregiverID to req.ElderlyID.  Both must belong to
// owner and the pair must not be linked yet.
func (s *AssignmentService) Create(ctx context.Context, owner model.OwnerID, req dto.AssignmentCreate) (dto.Assignment, error) {
	if err := validate(req); err != nil {
		return dto.Assignment{}, err
	}
	a := model.Assignment{CaregiverID: req.CaregiverID, ElderlyID: req.ElderlyID}
	if err := s.repo.Create(ctx, owner, &a); err != nil {
		return dto.Assignment{}, err
	}
	s.views.forgetLinks(ctx, owner, a)
	return dto.FromAssignment(a), nil
}

func (s *AssignmentService) List(ctx context.Context, owner model.OwnerID) ([]dto.Assignment, error) {
	return s.views.assignments.All(ctx, owner, func(ctx context.Context) ([]dto.Assignment, error) {
		rows, err := s.repo.List(ctx, owner)
		if err != nil {
			return nil, err
		}
		return dto.FromAssignments(rows), nil
	})
}

func (s *AssignmentService) Get(ctx context.Context, owner model.OwnerID, id uint64) (dto.Assignment, error) {
	return s.views.assignments.One(ctx, owner, id, func(ctx context.Context) (dto.Assignment, error) {
		a, err := s.repo.Get(ctx, owner, id)
		if err != nil {
			return dto.Assignment{}, err
		}
		return dto.FromAssignment(a), nil
	})
}

func (s *AssignmentService) Delete(ctx context.Context, owner model.OwnerID, id uint64) error {
	a, err := s.repo.Delete(ctx, owner, id)
	if err != nil {
		return err
	}
	s.views.forgetLinks(ctx, owner, a)
	return nil
}
