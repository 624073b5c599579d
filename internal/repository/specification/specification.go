package specification

import (
	"workout-generator-be/internal/entity"

	"gorm.io/gorm"
)

// Specification defines the interface for query specifications
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// Matcher is implemented by specifications that filter records, so stores
// without SQL can evaluate them too.
type Matcher interface {
	Matches(e *entity.Exercise) bool
}

// Arranger is implemented by specifications that order or window a result
// set rather than filter it.
type Arranger interface {
	Arrange(exercises []*entity.Exercise) []*entity.Exercise
}
