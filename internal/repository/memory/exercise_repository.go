package memory

import (
	"context"
	"errors"
	"sync"

	"workout-generator-be/internal/entity"
	"workout-generator-be/internal/repository/contract"
	"workout-generator-be/internal/repository/specification"

	"github.com/google/uuid"
)

var ErrDuplicateID = errors.New("exercise id already exists")

// ExerciseStore keeps exercises in process memory. It backs the "memory"
// store driver and the service tests.
type ExerciseStore struct {
	mu        sync.RWMutex
	exercises map[uuid.UUID]entity.Exercise
	// seq records insertion order.
	seq []uuid.UUID
}

func NewExerciseStore() *ExerciseStore {
	return &ExerciseStore{
		exercises: make(map[uuid.UUID]entity.Exercise),
	}
}

type storeSnapshot struct {
	exercises map[uuid.UUID]entity.Exercise
	seq       []uuid.UUID
}

func (s *ExerciseStore) snapshot() storeSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exercises := make(map[uuid.UUID]entity.Exercise, len(s.exercises))
	for id, e := range s.exercises {
		exercises[id] = e
	}
	return storeSnapshot{
		exercises: exercises,
		seq:       append([]uuid.UUID(nil), s.seq...),
	}
}

func (s *ExerciseStore) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exercises = snap.exercises
	s.seq = snap.seq
}

type ExerciseRepository struct {
	store *ExerciseStore
}

func NewExerciseRepository(store *ExerciseStore) contract.ExerciseRepository {
	return &ExerciseRepository{store: store}
}

func (r *ExerciseRepository) Create(ctx context.Context, exercise *entity.Exercise) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if exercise.Id == uuid.Nil {
		exercise.Id = uuid.New()
	}
	if _, exists := r.store.exercises[exercise.Id]; exists {
		return ErrDuplicateID
	}
	r.store.exercises[exercise.Id] = *exercise
	r.store.seq = append(r.store.seq, exercise.Id)
	return nil
}

func (r *ExerciseRepository) Update(ctx context.Context, exercise *entity.Exercise) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.exercises[exercise.Id]; !exists {
		r.store.seq = append(r.store.seq, exercise.Id)
	}
	r.store.exercises[exercise.Id] = *exercise
	return nil
}

func (r *ExerciseRepository) List(ctx context.Context) ([]*entity.Exercise, error) {
	return r.FindAll(ctx)
}

func (r *ExerciseRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Exercise, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *ExerciseRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	result := make([]*entity.Exercise, 0, len(r.store.seq))
	for _, id := range r.store.seq {
		e := r.store.exercises[id]
		if matchesAll(&e, specs) {
			result = append(result, &e)
		}
	}
	r.store.mu.RUnlock()

	// Arrangers apply in the order given, like chained ORDER BY / LIMIT.
	for _, spec := range specs {
		if a, ok := spec.(specification.Arranger); ok {
			result = a.Arrange(result)
		}
	}
	return result, nil
}

func (r *ExerciseRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

func matchesAll(e *entity.Exercise, specs []specification.Specification) bool {
	for _, spec := range specs {
		if m, ok := spec.(specification.Matcher); ok && !m.Matches(e) {
			return false
		}
	}
	return true
}
