package cache

import (
	"context"
	"strconv"

	"github.com/iliyamo/eldercare-records/internal/model"
)

// Collection addresses one kind of cached entity: a detail entry per
// id and one list entry per owner.
type Collection[T any] struct {
	c    *Cache
	kind string
}

func NewCollection[T any](c *Cache, kind string) Collection[T] {
	return Collection[T]{c: c, kind: kind}
}

func (col Collection[T]) ItemKey(owner model.OwnerID, id uint64) string {
	return col.c.Key(owner, col.kind, strconv.FormatUint(id, 10))
}

func (col Collection[T]) ListKey(owner model.OwnerID) string {
	return col.c.Key(owner, col.kind, "list")
}

// One returns the detail entry for id, loading it on a miss.
func (col Collection[T]) One(ctx context.Context, owner model.OwnerID, id uint64, load func(context.Context) (T, error)) (T, error) {
	return Fetch(ctx, col.c, col.ItemKey(owner, id), load)
}

// All returns the owner's list entry, loading it on a miss.
func (col Collection[T]) All(ctx context.Context, owner model.OwnerID, load func(context.Context) ([]T, error)) ([]T, error) {
	return Fetch(ctx, col.c, col.ListKey(owner), load)
}

// Forget drops the detail entries for ids together with the list entry.
func (col Collection[T]) Forget(ctx context.Context, owner model.OwnerID, ids ...uint64) {
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, col.ItemKey(owner, id))
	}
	keys = append(keys, col.ListKey(owner))
	col.c.del(ctx, keys...)
}
