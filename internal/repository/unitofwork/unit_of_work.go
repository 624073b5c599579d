package unitofwork

import (
	"context"

	"workout-generator-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ExerciseRepository() contract.ExerciseRepository
}
