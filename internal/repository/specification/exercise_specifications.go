package specification

import (
	"workout-generator-be/internal/entity"

	"gorm.io/gorm"
)

// ByName matches the exact, case-sensitive exercise name.
type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

func (s ByName) Matches(e *entity.Exercise) bool {
	return e.Name == s.Name
}

// RandomAtLeast keeps exercises whose random tag is >= Value.
type RandomAtLeast struct {
	Value float64
}

func (s RandomAtLeast) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("random >= ?", s.Value)
}

func (s RandomAtLeast) Matches(e *entity.Exercise) bool {
	return e.Random >= s.Value
}

// RandomBelow keeps exercises whose random tag is < Value.
type RandomBelow struct {
	Value float64
}

func (s RandomBelow) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("random < ?", s.Value)
}

func (s RandomBelow) Matches(e *entity.Exercise) bool {
	return e.Random < s.Value
}
