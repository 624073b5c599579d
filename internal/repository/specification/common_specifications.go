package specification

import (
	"fmt"
	"sort"
	"strings"

	"workout-generator-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByID filters by ID
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

func (s ByID) Matches(e *entity.Exercise) bool {
	return e.Id == s.ID
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

func (s OrderBy) Arrange(exercises []*entity.Exercise) []*entity.Exercise {
	less := func(a, b *entity.Exercise) bool {
		switch s.Field {
		case "name":
			return a.Name < b.Name
		case "random":
			return a.Random < b.Random
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(exercises, func(i, j int) bool {
		if s.Desc {
			return less(exercises[j], exercises[i])
		}
		return less(exercises[i], exercises[j])
	})
	return exercises
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}

func (s Pagination) Arrange(exercises []*entity.Exercise) []*entity.Exercise {
	if s.Offset >= len(exercises) {
		return exercises[:0]
	}
	exercises = exercises[s.Offset:]
	if s.Limit >= 0 && s.Limit < len(exercises) {
		exercises = exercises[:s.Limit]
	}
	return exercises
}

// FilterBy Generic Filter
type FilterBy struct {
	Field string
	Value interface{}
}

func (s FilterBy) Apply(db *gorm.DB) *gorm.DB {
	query := fmt.Sprintf("%s = ?", s.Field)
	return db.Where(query, s.Value)
}

func (s FilterBy) Matches(e *entity.Exercise) bool {
	var actual interface{}
	switch strings.ToLower(s.Field) {
	case "id":
		actual = e.Id
	case "name":
		actual = e.Name
	case "easy":
		actual = e.Easy
	case "medium":
		actual = e.Medium
	case "hard":
		actual = e.Hard
	case "random":
		actual = e.Random
	default:
		return false
	}
	return fmt.Sprint(actual) == fmt.Sprint(s.Value)
}

func Filter(field string, value interface{}) Specification {
	return FilterBy{Field: field, Value: value}
}
