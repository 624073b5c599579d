package entity

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty tiers an exercise carries a target for.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type Exercise struct {
	Id     uuid.UUID
	Name   string
	Easy   int
	Medium int
	Hard   int
	// Random is a tag in [0, MaxSeed) assigned at insert time and used by the
	// tag-based sampling strategy.
	Random    float64
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Target returns the repetition count for the given difficulty tier.
// Unknown tiers report ok=false.
func (e *Exercise) Target(difficulty string) (int, bool) {
	switch difficulty {
	case DifficultyEasy:
		return e.Easy, true
	case DifficultyMedium:
		return e.Medium, true
	case DifficultyHard:
		return e.Hard, true
	}
	return 0, false
}

// ExercisePatch carries the optional fields of a partial update.
type ExercisePatch struct {
	Name   *string
	Easy   *int
	Medium *int
	Hard   *int
}

// IsEmpty reports whether the patch changes nothing.
func (p ExercisePatch) IsEmpty() bool {
	return p.Name == nil && p.Easy == nil && p.Medium == nil && p.Hard == nil
}

// Apply copies every provided field onto e.
func (p ExercisePatch) Apply(e *Exercise) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Easy != nil {
		e.Easy = *p.Easy
	}
	if p.Medium != nil {
		e.Medium = *p.Medium
	}
	if p.Hard != nil {
		e.Hard = *p.Hard
	}
}
