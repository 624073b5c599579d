package contract

import (
	"context"

	"workout-generator-be/internal/entity"
	"workout-generator-be/internal/repository/specification"
)

type ExerciseRepository interface {
	Create(ctx context.Context, exercise *entity.Exercise) error
	Update(ctx context.Context, exercise *entity.Exercise) error
	// List returns every exercise in creation order.
	List(ctx context.Context) ([]*entity.Exercise, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Exercise, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Exercise, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
