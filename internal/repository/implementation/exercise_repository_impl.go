package implementation

import (
	"context"
	"errors"

	"workout-generator-be/internal/entity"
	"workout-generator-be/internal/mapper"
	"workout-generator-be/internal/model"
	"workout-generator-be/internal/repository/contract"
	"workout-generator-be/internal/repository/scope"
	"workout-generator-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ExerciseRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ExerciseMapper
}

func NewExerciseRepository(db *gorm.DB) contract.ExerciseRepository {
	return &ExerciseRepositoryImpl{
		db:     db,
		mapper: mapper.NewExerciseMapper(),
	}
}

func (r *ExerciseRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ExerciseRepositoryImpl) Create(ctx context.Context, exercise *entity.Exercise) error {
	m := r.mapper.ToModel(exercise)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*exercise = *r.mapper.ToEntity(m)
	return nil
}

func (r *ExerciseRepositoryImpl) Update(ctx context.Context, exercise *entity.Exercise) error {
	m := r.mapper.ToModel(exercise)
	// Save writes zero values too, so a patch that sets a tier to 0 sticks.
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*exercise = *r.mapper.ToEntity(m)
	return nil
}

func (r *ExerciseRepositoryImpl) List(ctx context.Context) ([]*entity.Exercise, error) {
	var models []*model.Exercise
	if err := r.db.WithContext(ctx).Scopes(scope.OrderByCreatedAsc).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ExerciseRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Exercise, error) {
	var m model.Exercise
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ExerciseRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Exercise, error) {
	var models []*model.Exercise
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ExerciseRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Exercise{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
