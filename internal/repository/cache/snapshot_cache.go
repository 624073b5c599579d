// Package cache keeps a short-lived snapshot of the whole exercise
// collection so repeated random draws do not rescan the store.
package cache

import (
	"context"

	"workout-generator-be/internal/entity"
)

const snapshotKey = "exercises:snapshot"

// SnapshotCache stores the full exercise listing. Get reports ok=false on a
// miss; implementations must return slices the caller may permute freely.
type SnapshotCache interface {
	Get(ctx context.Context) ([]*entity.Exercise, bool)
	Set(ctx context.Context, exercises []*entity.Exercise)
	Invalidate(ctx context.Context)
}

// NoopCache never holds anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context) ([]*entity.Exercise, bool) { return nil, false }
func (NoopCache) Set(context.Context, []*entity.Exercise)         {}
func (NoopCache) Invalidate(context.Context)                      {}

// cloneAll copies records so callers cannot mutate cached entries.
func cloneAll(exercises []*entity.Exercise) []*entity.Exercise {
	out := make([]*entity.Exercise, len(exercises))
	for i, e := range exercises {
		c := *e
		out[i] = &c
	}
	return out
}
