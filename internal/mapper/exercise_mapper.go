package mapper

import (
	"workout-generator-be/internal/dto"
	"workout-generator-be/internal/entity"
	"workout-generator-be/internal/model"
)

type ExerciseMapper struct{}

func NewExerciseMapper() *ExerciseMapper {
	return &ExerciseMapper{}
}

func (m *ExerciseMapper) ToEntity(e *model.Exercise) *entity.Exercise {
	if e == nil {
		return nil
	}

	return &entity.Exercise{
		Id:        e.Id,
		Name:      e.Name,
		Easy:      e.Easy,
		Medium:    e.Medium,
		Hard:      e.Hard,
		Random:    e.Random,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *ExerciseMapper) ToModel(e *entity.Exercise) *model.Exercise {
	if e == nil {
		return nil
	}

	return &model.Exercise{
		Id:        e.Id,
		Name:      e.Name,
		Easy:      e.Easy,
		Medium:    e.Medium,
		Hard:      e.Hard,
		Random:    e.Random,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *ExerciseMapper) ToEntities(exercises []*model.Exercise) []*entity.Exercise {
	entities := make([]*entity.Exercise, len(exercises))
	for i, e := range exercises {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *ExerciseMapper) ToResponse(e *entity.Exercise) *dto.ExerciseResponse {
	if e == nil {
		return nil
	}
	return &dto.ExerciseResponse{
		Id:        e.Id,
		Name:      e.Name,
		Easy:      e.Easy,
		Medium:    e.Medium,
		Hard:      e.Hard,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *ExerciseMapper) ToResponses(exercises []*entity.Exercise) []*dto.ExerciseResponse {
	result := make([]*dto.ExerciseResponse, 0, len(exercises))
	for _, e := range exercises {
		result = append(result, m.ToResponse(e))
	}
	return result
}
