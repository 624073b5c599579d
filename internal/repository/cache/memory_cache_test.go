package cache

import (
	"context"
	"testing"
	"time"

	"workout-generator-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx)
	assert.False(t, ok)

	c.Set(ctx, []*entity.Exercise{{Name: "Squat"}, {Name: "Crunch"}})

	got, ok := c.Get(ctx)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "Squat", got[0].Name)

	c.Invalidate(ctx)
	_, ok = c.Get(ctx)
	assert.False(t, ok)
}

func TestMemoryCacheIsolatesCallers(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()
	source := []*entity.Exercise{{Name: "Squat"}, {Name: "Crunch"}}
	c.Set(ctx, source)

	source[0].Name = "changed after set"
	first, _ := c.Get(ctx)
	first[0], first[1] = first[1], first[0]
	first[0].Name = "changed after get"

	second, ok := c.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "Squat", second[0].Name)
	assert.Equal(t, "Crunch", second[1].Name)
}

func TestMemoryCacheExpires(t *testing.T) {
	c := NewMemoryCache(20 * time.Millisecond)
	ctx := context.Background()
	c.Set(ctx, []*entity.Exercise{{Name: "Squat"}})

	assert.Eventually(t, func() bool {
		_, ok := c.Get(ctx)
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestNoopCache(t *testing.T) {
	var c SnapshotCache = NoopCache{}
	c.Set(context.Background(), []*entity.Exercise{{Name: "Squat"}})

	_, ok := c.Get(context.Background())
	assert.False(t, ok)
}
