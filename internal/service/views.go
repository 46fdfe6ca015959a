// Package service composes the repositories with the look-aside cache.
// Reads go through cache.Collection; every write drops the entries its
// change can affect before returning.
package service

import (
	"context"

	"github.com/iliyamo/eldercare-records/internal/cache"
	"github.com/iliyamo/eldercare-records/internal/dto"
	"github.com/iliyamo/eldercare-records/internal/model"
)

// Cache kinds, used as the entity segment of every key.
const (
	kindCaregiver  = "caregiver"
	kindElderly    = "elderly"
	kindAssignment = "assignment"
)

// views holds the cached read models.  Caregiver and elderly payloads
// embed their assignment ids, so relationship writes touch both.
type views struct {
	caregivers  cache.Collection[dto.Caregiver]
	elderly     cache.Collection[dto.Elderly]
	assignments cache.Collection[dto.Assignment]
}

func newViews(c *cache.Cache) views {
	return views{
		caregivers:  cache.NewCollection[dto.Caregiver](c, kindCaregiver),
		elderly:     cache.NewCollection[dto.Elderly](c, kindElderly),
		assignments: cache.NewCollection[dto.Assignment](c, kindAssignment),
	}
}

// forgetLinks drops both sides of every link along with the links
// themselves.
func (v views) forgetLinks(ctx context.Context, owner model.OwnerID, links ...model.Assignment) {
	if len(links) == 0 {
		return
	}
	cg := make([]uint64, 0, len(links))
	el := make([]uint64, 0, len(links))
	ids := make([]uint64, 0, len(links))
	for _, a := range links {
		cg = append(cg, a.CaregiverID)
		el = append(el, a.ElderlyID)
		ids = append(ids, a.ID)
	}
	v.caregivers.Forget(ctx, owner, cg...)
	v.elderly.Forget(ctx, owner, el...)
	v.assignments.Forget(ctx, owner, ids...)
}

// groupLinks indexes assignment rows by one of their sides.
func groupLinks(links []model.Assignment, key, val func(model.Assignment) uint64) map[uint64][]uint64 {
	out := make(map[uint64][]uint64)
	for _, a := range links {
		out[key(a)] = append(out[key(a)], val(a))
	}
	return out
}

func caregiverOf(a model.Assignment) uint64 { return a.CaregiverID }
func elderlyOf(a model.Assignment) uint64   { return a.ElderlyID }

// validate runs a request's Validate and reports failures as invalid input.
func validate(v interface{ Validate() error }) error {
	return model.Invalid(v.Validate())
}
