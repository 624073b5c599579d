package memory

import (
	"context"
	"testing"
	"time"

	"workout-generator-be/internal/entity"
	"workout-generator-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, repo *ExerciseRepository, names ...string) []*entity.Exercise {
	t.Helper()
	out := make([]*entity.Exercise, 0, len(names))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range names {
		e := &entity.Exercise{
			Name:      name,
			Easy:      i + 1,
			Medium:    (i + 1) * 2,
			Hard:      (i + 1) * 3,
			Random:    float64(i * 100),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(context.Background(), e))
		out = append(out, e)
	}
	return out
}

func newRepo() *ExerciseRepository {
	return NewExerciseRepository(NewExerciseStore()).(*ExerciseRepository)
}

func TestExerciseRepositoryCreateAssignsID(t *testing.T) {
	repo := newRepo()
	e := &entity.Exercise{Name: "Squat"}

	require.NoError(t, repo.Create(context.Background(), e))

	assert.NotEqual(t, uuid.Nil, e.Id)
	assert.ErrorIs(t, repo.Create(context.Background(), e), ErrDuplicateID)
}

func TestExerciseRepositoryListKeepsInsertionOrder(t *testing.T) {
	repo := newRepo()
	seed(t, repo, "Press up", "Squat", "Sit up")

	all, err := repo.List(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(all))
	for _, e := range all {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Press up", "Squat", "Sit up"}, names)
}

func TestExerciseRepositoryReturnsCopies(t *testing.T) {
	repo := newRepo()
	seed(t, repo, "Squat")

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	all[0].Name = "mutated"

	again, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Squat", again[0].Name)
}

func TestExerciseRepositorySpecifications(t *testing.T) {
	repo := newRepo()
	seeded := seed(t, repo, "Press up", "Squat", "Sit up", "Crunch")
	ctx := context.Background()

	t.Run("by name", func(t *testing.T) {
		got, err := repo.FindOne(ctx, specification.ByName{Name: "Sit up"})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, seeded[2].Id, got.Id)
	})

	t.Run("by name is case sensitive", func(t *testing.T) {
		got, err := repo.FindOne(ctx, specification.ByName{Name: "sit up"})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("generic filter", func(t *testing.T) {
		got, err := repo.FindAll(ctx, specification.Filter("easy", 2))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Squat", got[0].Name)
	})

	t.Run("random window ordered and limited", func(t *testing.T) {
		got, err := repo.FindAll(ctx,
			specification.RandomAtLeast{Value: 100},
			specification.OrderBy{Field: "random", Desc: true},
			specification.Pagination{Limit: 2},
		)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Crunch", got[0].Name)
		assert.Equal(t, "Sit up", got[1].Name)
	})

	t.Run("count below", func(t *testing.T) {
		count, err := repo.Count(ctx, specification.RandomBelow{Value: 150})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestExerciseRepositoryUpdate(t *testing.T) {
	repo := newRepo()
	seeded := seed(t, repo, "Squat")

	seeded[0].Hard = 0
	require.NoError(t, repo.Update(context.Background(), seeded[0]))

	got, err := repo.FindOne(context.Background(), specification.ByID{ID: seeded[0].Id})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Hard)
}

func TestUnitOfWorkRollback(t *testing.T) {
	store := NewExerciseStore()
	uow := NewRepositoryFactory(store).NewUnitOfWork(context.Background())
	ctx := context.Background()

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.ExerciseRepository().Create(ctx, &entity.Exercise{Name: "Crunch"}))
	require.NoError(t, uow.Rollback())

	count, err := uow.ExerciseRepository().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.Error(t, uow.Commit())
}

func TestExerciseRepositoryHonoursCancelledContext(t *testing.T) {
	repo := newRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
