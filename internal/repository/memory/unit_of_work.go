package memory

import (
	"context"
	"fmt"

	"workout-generator-be/internal/repository/contract"
	"workout-generator-be/internal/repository/unitofwork"
)

type repositoryFactory struct {
	store *ExerciseStore
}

// NewRepositoryFactory returns a unit of work factory over store.
func NewRepositoryFactory(store *ExerciseStore) unitofwork.RepositoryFactory {
	return &repositoryFactory{store: store}
}

func (f *repositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

// unitOfWork emulates a transaction by snapshotting the store on Begin and
// restoring it on Rollback. Writes are visible to other readers immediately,
// and a rollback also discards writes other units of work made since Begin.
type unitOfWork struct {
	store  *ExerciseStore
	backup *storeSnapshot
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.backup != nil {
		return fmt.Errorf("transaction already started")
	}
	snap := u.store.snapshot()
	u.backup = &snap
	return nil
}

func (u *unitOfWork) Commit() error {
	if u.backup == nil {
		return fmt.Errorf("no transaction to commit")
	}
	u.backup = nil
	return nil
}

func (u *unitOfWork) Rollback() error {
	if u.backup == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	u.store.restore(*u.backup)
	u.backup = nil
	return nil
}

func (u *unitOfWork) ExerciseRepository() contract.ExerciseRepository {
	return NewExerciseRepository(u.store)
}
