package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/eldercare-records/internal/cache"
	"github.com/iliyamo/eldercare-records/internal/dto"
	"github.com/iliyamo/eldercare-records/internal/model"
	"github.com/iliyamo/eldercare-records/internal/payslip"
	"github.com/iliyamo/eldercare-records/internal/queue"
	"github.com/iliyamo/eldercare-records/internal/repository"
)

// CaregiverService manages caregivers, their pay and payslips.
type CaregiverService struct {
	repo   *repository.CaregiverRepo
	links  *repository.AssignmentRepo
	views  views
	events *queue.Publisher
	log    *zap.Logger
	now    func() time.Time
}

// NewCaregiverService wires the service.  events may be nil.
func NewCaregiverService(repo *repository.CaregiverRepo, links *repository.AssignmentRepo, c *cache.Cache, events *queue.Publisher, log *zap.Logger) *CaregiverService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CaregiverService{
		repo:   repo,
		links:  links,
		views:  newViews(c),
		events: events,
		log:    log,
		now:    time.Now,
	}
}

func (s *CaregiverService) Add(ctx context.Context, owner model.OwnerID, req dto.CaregiverCreate) (dto.Caregiver, error) {
	req.Normalize()
	if err := validate(req); err != nil {
		return dto.Caregiver{}, err
	}
	c := req.ToModel(owner)
	if err := s.repo.Create(ctx, owner, &c); err != nil {
		return dto.Caregiver{}, err
	}
	s.views.caregivers.Forget(ctx, owner, c.ID)
	return dto.FromCaregiver(c, nil), nil
}

func (s *CaregiverService) List(ctx context.Context, owner model.OwnerID) ([]dto.Caregiver, error) {
	return s.views.caregivers.All(ctx, owner, func(ctx context.Context) ([]dto.Caregiver, error) {
		rows, err := s.repo.List(ctx, owner)
		if err != nil {
			return nil, err
		}
		links, err := s.links.List(ctx, owner)
		if err != nil {
			return nil, err
		}
		byCaregiver := groupLinks(links, caregiverOf, elderlyOf)
		out := make([]dto.Caregiver, 0, len(rows))
		for _, c := range rows {
			out = append(out, dto.FromCaregiver(c, byCaregiver[c.ID]))
		}
		return out, nil
	})
}

func (s *CaregiverService) Get(ctx context.Context, owner model.OwnerID, id uint64) (dto.Caregiver, error) {
	return s.views.caregivers.One(ctx, owner, id, func(ctx context.Context) (dto.Caregiver, error) {
		return s.load(ctx, owner, id)
	})
}

// load reads a caregiver and its assignments from the store.
func (s *CaregiverService) load(ctx context.Context, owner model.OwnerID, id uint64) (dto.Caregiver, error) {
	c, err := s.repo.Get(ctx, owner, id)
	if err != nil {
		return dto.Caregiver{}, err
	}
	links, err := s.links.ListByCaregiver(ctx, owner, id)
	if err != nil {
		return dto.Caregiver{}, err
	}
	return dto.FromCaregiver(c, groupLinks(links, caregiverOf, elderlyOf)[id]), nil
}

// UpdateSalary replaces all three pay lines and the bank total at once
// and returns the stored result.
func (s *CaregiverService) UpdateSalary(ctx context.Context, owner model.OwnerID, id uint64, req dto.SalaryUpdate) (dto.Caregiver, error) {
	if err := validate(req); err != nil {
		return dto.Caregiver{}, err
	}
	pay, err := model.NewPayroll(req.Input())
	if err != nil {
		return dto.Caregiver{}, err
	}
	if err := s.repo.UpdatePay(ctx, owner, id, pay); err != nil {
		return dto.Caregiver{}, err
	}
	s.views.caregivers.Forget(ctx, owner, id)
	return s.load(ctx, owner, id)
}

// Delete removes the caregiver and its assignments.
func (s *CaregiverService) Delete(ctx context.Context, owner model.OwnerID, id uint64) error {
	removed, err := s.repo.Delete(ctx, owner, id)
	if err != nil {
		return err
	}
	s.views.caregivers.Forget(ctx, owner, id)
	s.views.forgetLinks(ctx, owner, removed...)
	return nil
}

// Payslip renders the caregiver's current pay, read straight from the
// store, and announces it on the event queue.
func (s *CaregiverService) Payslip(ctx context.Context, owner model.OwnerID, id uint64, format string) (payslip.Output, error) {
	format, err := payslip.ParseFormat(format)
	if err != nil {
		return payslip.Output{}, err
	}
	c, err := s.repo.Get(ctx, owner, id)
	if err != nil {
		return payslip.Output{}, err
	}
	issuedAt := s.now().UTC()
	out, err := payslip.Render(format, c, issuedAt)
	if err != nil {
		return payslip.Output{}, err
	}

	ev := queue.PayslipIssuedEvent{
		UserID:      uint64(owner),
		CaregiverID: c.ID,
		CustomID:    c.CustomID,
		Name:        c.Name,
		TotalBank:   c.Pay.TotalBank,
		Format:      format,
		IssuedAt:    issuedAt,
	}
	if err := s.events.PublishPayslipIssued(ctx, ev); err != nil {
		s.log.Warn("payslip event not published", zap.Uint64("caregiver_id", c.ID), zap.Error(err))
	}
	return out, nil
}

// Invalidate drops cached caregiver entries for owner.
func (s *CaregiverService) Invalidate(ctx context.Context, owner model.OwnerID, ids ...uint64) {
	s.views.caregivers.Forget(ctx, owner, ids...)
}
