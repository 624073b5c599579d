package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"workout-generator-be/internal/entity"
	"workout-generator-be/internal/model"
	"workout-generator-be/internal/repository/specification"
	"workout-generator-be/internal/repository/unitofwork"
	"workout-generator-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestGormExerciseRepository(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn, logger.Warn)
	require.NoError(t, err, "Failed to connect to DB")
	require.NoError(t, database.Migrate(gormDB, &model.Exercise{}))

	prefix := "it-" + uuid.NewString()[:8] + "-"
	t.Cleanup(func() {
		gormDB.Where("name LIKE ?", prefix+"%").Delete(&model.Exercise{})
	})

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	repo := uowFactory.NewUnitOfWork(ctx).ExerciseRepository()

	base := time.Now().UTC().Truncate(time.Millisecond)
	tags := []float64{100, 500, 900}
	for i, tag := range tags {
		require.NoError(t, repo.Create(ctx, &entity.Exercise{
			Id:        uuid.New(),
			Name:      prefix + string(rune('a'+i)),
			Easy:      i,
			Medium:    i * 2,
			Hard:      i * 3,
			Random:    tag,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	t.Run("Find by name", func(t *testing.T) {
		got, err := repo.FindOne(ctx, specification.ByName{Name: prefix + "b"})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 500.0, got.Random)

		missing, err := repo.FindOne(ctx, specification.ByName{Name: prefix + "zzz"})
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Tag window", func(t *testing.T) {
		got, err := repo.FindAll(ctx,
			specification.RandomAtLeast{Value: 400},
			specification.RandomBelow{Value: 1000},
			specification.OrderBy{Field: "random"},
			specification.Pagination{Limit: 5},
		)
		require.NoError(t, err)

		var ours []string
		for _, e := range got {
			if len(e.Name) > len(prefix) && e.Name[:len(prefix)] == prefix {
				ours = append(ours, e.Name)
			}
		}
		assert.Equal(t, []string{prefix + "b", prefix + "c"}, ours)
	})

	t.Run("Update persists zero values", func(t *testing.T) {
		got, err := repo.FindOne(ctx, specification.ByName{Name: prefix + "c"})
		require.NoError(t, err)
		require.NotNil(t, got)

		got.Hard = 0
		now := time.Now()
		got.UpdatedAt = &now
		require.NoError(t, repo.Update(ctx, got))

		again, err := repo.FindOne(ctx, specification.ByID{ID: got.Id})
		require.NoError(t, err)
		assert.Equal(t, 0, again.Hard)
		assert.NotNil(t, again.UpdatedAt)
	})

	t.Run("Transaction rollback", func(t *testing.T) {
		uow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.ExerciseRepository().Create(ctx, &entity.Exercise{
			Id:        uuid.New(),
			Name:      prefix + "rolled-back",
			CreatedAt: time.Now(),
		}))
		require.NoError(t, uow.Rollback())

		got, err := repo.FindOne(ctx, specification.ByName{Name: prefix + "rolled-back"})
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
