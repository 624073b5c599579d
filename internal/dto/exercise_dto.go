package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateExerciseRequest struct {
	Name   string `json:"name" form:"Name" validate:"required,max=255"`
	Easy   int    `json:"easy" form:"Easy" validate:"gte=0"`
	Medium int    `json:"medium" form:"Medium" validate:"gte=0"`
	Hard   int    `json:"hard" form:"Hard" validate:"gte=0"`
}

type CreateExerciseResponse struct {
	Id uuid.UUID `json:"id"`
}

// UpdateExerciseRequest is a partial update; omitted fields keep their value.
type UpdateExerciseRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=255"`
	Easy   *int    `json:"easy" validate:"omitempty,gte=0"`
	Medium *int    `json:"medium" validate:"omitempty,gte=0"`
	Hard   *int    `json:"hard" validate:"omitempty,gte=0"`
}

type ExerciseResponse struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Easy      int        `json:"easy"`
	Medium    int        `json:"medium"`
	Hard      int        `json:"hard"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type RandomExercisesResponse struct {
	Requested int                 `json:"requested"`
	Available int                 `json:"available"`
	Ordered   bool                `json:"ordered"` // true when every exercise was returned in stored order
	Exercises []*ExerciseResponse `json:"exercises"`
}

// ExerciseForm mirrors the HTML form, where every field arrives as text.
type ExerciseForm struct {
	Name   string `form:"Name"`
	Easy   string `form:"Easy"`
	Medium string `form:"Medium"`
	Hard   string `form:"Hard"`
}

type ExerciseEventMessage struct {
	Type       string    `json:"type"`
	ExerciseId uuid.UUID `json:"exercise_id"`
	Name       string    `json:"name"`
	Origin     string    `json:"origin"`
	OccurredAt time.Time `json:"occurred_at"`
}
