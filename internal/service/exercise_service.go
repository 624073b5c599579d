package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"workout-generator-be/internal/dto"
	"workout-generator-be/internal/entity"
	"workout-generator-be/internal/mapper"
	"workout-generator-be/internal/pkg/logger"
	"workout-generator-be/internal/pkg/metrics"
	"workout-generator-be/internal/repository/cache"
	"workout-generator-be/internal/repository/contract"
	"workout-generator-be/internal/repository/specification"
	"workout-generator-be/internal/repository/unitofwork"
	"workout-generator-be/pkg/events"
	"workout-generator-be/pkg/sampler"

	"github.com/google/uuid"
)

var (
	ErrExerciseNotFound = errors.New("no matching exercise found")
	ErrNoExercises      = errors.New("no exercises available")
	ErrNameRequired     = errors.New("exercise name is required")
	ErrInvalidFilter    = errors.New("invalid exercise filter")
)

type IExerciseService interface {
	Create(ctx context.Context, req *dto.CreateExerciseRequest) (*dto.CreateExerciseResponse, error)
	GetAll(ctx context.Context) ([]*dto.ExerciseResponse, error)
	FindByName(ctx context.Context, name string) (*dto.ExerciseResponse, error)
	FindBy(ctx context.Context, field, value string) ([]*dto.ExerciseResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateExerciseRequest) (*dto.ExerciseResponse, error)
	UpdateByName(ctx context.Context, name string, req *dto.UpdateExerciseRequest) (*dto.ExerciseResponse, error)
	GetRandom(ctx context.Context) (*dto.ExerciseResponse, error)
	GetRandomMany(ctx context.Context, quantity int) (*dto.RandomExercisesResponse, error)
	GetRandomByTag(ctx context.Context, quantity int) (*dto.RandomExercisesResponse, error)
}

type exerciseService struct {
	uowFactory    unitofwork.RepositoryFactory
	snapshotCache cache.SnapshotCache
	publisher     IPublisherService
	source        sampler.Source
	maxSeed       float64
	mapper        *mapper.ExerciseMapper
	metrics       *metrics.Metrics
	logger        logger.ILogger
}

func NewExerciseService(
	uowFactory unitofwork.RepositoryFactory,
	snapshotCache cache.SnapshotCache,
	publisher IPublisherService,
	source sampler.Source,
	maxSeed float64,
	m *metrics.Metrics,
	log logger.ILogger,
) IExerciseService {
	return &exerciseService{
		uowFactory:    uowFactory,
		snapshotCache: snapshotCache,
		publisher:     publisher,
		source:        source,
		maxSeed:       maxSeed,
		mapper:        mapper.NewExerciseMapper(),
		metrics:       m,
		logger:        log,
	}
}

func (s *exerciseService) Create(ctx context.Context, req *dto.CreateExerciseRequest) (*dto.CreateExerciseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer uow.Rollback()

	exercise := entity.Exercise{
		Id:        uuid.New(),
		Name:      req.Name,
		Easy:      req.Easy,
		Medium:    req.Medium,
		Hard:      req.Hard,
		Random:    sampler.Float64(s.source) * s.maxSeed,
		CreatedAt: time.Now(),
	}

	if err := uow.ExerciseRepository().Create(ctx, &exercise); err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("commit exercise: %w", err)
	}

	s.metrics.ExercisesCreated.Inc()
	s.logger.Info("EXERCISE", fmt.Sprintf("Exercise with ID: %s added.", exercise.Id), map[string]interface{}{"name": exercise.Name})
	s.changed(ctx, events.ExerciseCreated, &exercise)

	return &dto.CreateExerciseResponse{
		Id: exercise.Id,
	}, nil
}

func (s *exerciseService) GetAll(ctx context.Context) ([]*dto.ExerciseResponse, error) {
	exercises, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToResponses(exercises), nil
}

func (s *exerciseService) FindByName(ctx context.Context, name string) (*dto.ExerciseResponse, error) {
	exercise, err := s.findByName(ctx, s.uowFactory.NewUnitOfWork(ctx).ExerciseRepository(), name)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToResponse(exercise), nil
}

// FindBy returns every exercise whose field equals value, in creation order.
// Only name and the three difficulty targets can be filtered on.
func (s *exerciseService) FindBy(ctx context.Context, field, value string) ([]*dto.ExerciseResponse, error) {
	var typed interface{}
	switch field {
	case "name":
		typed = value
	case "easy", "medium", "hard":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidFilter, field)
		}
		typed = n
	default:
		return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidFilter, field)
	}

	exercises, err := s.uowFactory.NewUnitOfWork(ctx).ExerciseRepository().FindAll(ctx,
		specification.Filter(field, typed),
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, fmt.Errorf("filter exercises by %s: %w", field, err)
	}
	return s.mapper.ToResponses(exercises), nil
}

func (s *exerciseService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateExerciseRequest) (*dto.ExerciseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer uow.Rollback()

	exercise, err := uow.ExerciseRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, fmt.Errorf("find exercise %s: %w", id, err)
	}
	if exercise == nil {
		return nil, ErrExerciseNotFound
	}

	return s.applyPatch(ctx, uow, exercise, req)
}

func (s *exerciseService) UpdateByName(ctx context.Context, name string, req *dto.UpdateExerciseRequest) (*dto.ExerciseResponse, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer uow.Rollback()

	exercise, err := s.findByName(ctx, uow.ExerciseRepository(), name)
	if err != nil {
		return nil, err
	}
	return s.applyPatch(ctx, uow, exercise, req)
}

func (s *exerciseService) GetRandom(ctx context.Context) (*dto.ExerciseResponse, error) {
	res, err := s.GetRandomMany(ctx, 1)
	if err != nil {
		return nil, err
	}
	return res.Exercises[0], nil
}

// GetRandomMany branches three ways: nothing stored, every record requested
// (returned in stored order), or a strict subset drawn by the sampler.
func (s *exerciseService) GetRandomMany(ctx context.Context, quantity int) (*dto.RandomExercisesResponse, error) {
	if quantity < 0 {
		return nil, sampler.ErrInvalidPickCount
	}
	s.metrics.PickCount.Observe(float64(quantity))

	exercises, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	numDocuments := len(exercises)

	switch {
	case numDocuments == 0:
		s.metrics.SampleRequests.WithLabelValues(metrics.StrategyShuffle, metrics.OutcomeNone).Inc()
		return nil, ErrNoExercises

	case quantity >= numDocuments:
		s.metrics.SampleRequests.WithLabelValues(metrics.StrategyShuffle, metrics.OutcomeAll).Inc()
		s.logger.Debug("SAMPLER", "Sending ordered list", map[string]interface{}{"available": numDocuments, "requested": quantity})
		return s.randomResponse(quantity, numDocuments, true, exercises), nil
	}

	picks, err := sampler.Sample(s.source, exercises, quantity)
	if err != nil {
		return nil, err
	}
	s.metrics.SampleRequests.WithLabelValues(metrics.StrategyShuffle, metrics.OutcomeSubset).Inc()
	return s.randomResponse(quantity, numDocuments, false, picks), nil
}

// GetRandomByTag picks a random point on the tag circle and returns the next
// quantity exercises by tag, wrapping around at maxSeed. It only reads the
// rows it returns, at the cost of neighbouring tags tending to come out
// together.
func (s *exerciseService) GetRandomByTag(ctx context.Context, quantity int) (*dto.RandomExercisesResponse, error) {
	if quantity < 0 {
		return nil, sampler.ErrInvalidPickCount
	}
	s.metrics.PickCount.Observe(float64(quantity))

	repo := s.uowFactory.NewUnitOfWork(ctx).ExerciseRepository()
	total, err := repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count exercises: %w", err)
	}
	numDocuments := int(total)

	switch {
	case numDocuments == 0:
		s.metrics.SampleRequests.WithLabelValues(metrics.StrategyTag, metrics.OutcomeNone).Inc()
		return nil, ErrNoExercises

	case quantity >= numDocuments:
		all, err := s.snapshot(ctx)
		if err != nil {
			return nil, err
		}
		s.metrics.SampleRequests.WithLabelValues(metrics.StrategyTag, metrics.OutcomeAll).Inc()
		return s.randomResponse(quantity, len(all), true, all), nil
	}

	pivot := sampler.Float64(s.source) * s.maxSeed
	byTag := specification.OrderBy{Field: "random"}

	picks, err := repo.FindAll(ctx,
		specification.RandomAtLeast{Value: pivot},
		byTag,
		specification.Pagination{Limit: quantity},
	)
	if err != nil {
		return nil, fmt.Errorf("find exercises by tag: %w", err)
	}

	if missing := quantity - len(picks); missing > 0 {
		wrapped, err := repo.FindAll(ctx,
			specification.RandomBelow{Value: pivot},
			byTag,
			specification.Pagination{Limit: missing},
		)
		if err != nil {
			return nil, fmt.Errorf("find exercises by tag: %w", err)
		}
		picks = append(picks, wrapped...)
	}

	s.metrics.SampleRequests.WithLabelValues(metrics.StrategyTag, metrics.OutcomeSubset).Inc()
	return s.randomResponse(quantity, numDocuments, false, picks), nil
}

func (s *exerciseService) randomResponse(requested, available int, ordered bool, exercises []*entity.Exercise) *dto.RandomExercisesResponse {
	return &dto.RandomExercisesResponse{
		Requested: requested,
		Available: available,
		Ordered:   ordered,
		Exercises: s.mapper.ToResponses(exercises),
	}
}

// snapshot returns the whole collection in stored order. The slice belongs
// to the caller, who may permute it.
func (s *exerciseService) snapshot(ctx context.Context) ([]*entity.Exercise, error) {
	if exercises, ok := s.snapshotCache.Get(ctx); ok {
		s.metrics.CacheHits.Inc()
		return exercises, nil
	}
	s.metrics.CacheMisses.Inc()

	exercises, err := s.uowFactory.NewUnitOfWork(ctx).ExerciseRepository().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	s.snapshotCache.Set(ctx, exercises)
	return exercises, nil
}

func (s *exerciseService) findByName(ctx context.Context, repo contract.ExerciseRepository, name string) (*entity.Exercise, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	exercise, err := repo.FindOne(ctx,
		specification.ByName{Name: name},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, fmt.Errorf("find exercise %q: %w", name, err)
	}
	if exercise == nil {
		return nil, ErrExerciseNotFound
	}
	return exercise, nil
}

// applyPatch writes the patch inside the caller's open transaction and
// commits it. An empty patch leaves the record as it is.
func (s *exerciseService) applyPatch(ctx context.Context, uow unitofwork.UnitOfWork, exercise *entity.Exercise, req *dto.UpdateExerciseRequest) (*dto.ExerciseResponse, error) {
	patch := entity.ExercisePatch{
		Name:   req.Name,
		Easy:   req.Easy,
		Medium: req.Medium,
		Hard:   req.Hard,
	}
	if patch.IsEmpty() {
		return s.mapper.ToResponse(exercise), nil
	}

	patch.Apply(exercise)
	now := time.Now()
	exercise.UpdatedAt = &now

	if err := uow.ExerciseRepository().Update(ctx, exercise); err != nil {
		return nil, fmt.Errorf("update exercise %s: %w", exercise.Id, err)
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("commit exercise %s: %w", exercise.Id, err)
	}

	s.metrics.ExercisesUpdated.Inc()
	s.logger.Info("EXERCISE", "Exercise updated", map[string]interface{}{"id": exercise.Id.String(), "name": exercise.Name})
	s.changed(ctx, events.ExerciseUpdated, exercise)

	return s.mapper.ToResponse(exercise), nil
}

// changed drops the cached snapshot right away, so this instance reads its
// own writes, and then announces the change.
func (s *exerciseService) changed(ctx context.Context, eventType string, exercise *entity.Exercise) {
	s.snapshotCache.Invalidate(ctx)

	event := events.NewExerciseEvent(eventType, exercise.Id, exercise.Name, s.publisher.Origin())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("EVENTS", "Failed to publish exercise event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
