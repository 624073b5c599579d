package bootstrap

import (
	"context"
	"fmt"
	"os"

	"workout-generator-be/internal/config"
	"workout-generator-be/internal/controller"
	"workout-generator-be/internal/pkg/logger"
	"workout-generator-be/internal/pkg/metrics"
	"workout-generator-be/internal/pkg/serverutils"
	"workout-generator-be/internal/repository/cache"
	"workout-generator-be/internal/repository/memory"
	"workout-generator-be/internal/repository/unitofwork"
	"workout-generator-be/internal/service"
	"workout-generator-be/internal/websocket"
	"workout-generator-be/pkg/sampler"

	pktNats "workout-generator-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ExerciseController controller.IExerciseController
	ViewController     controller.IViewController

	ExerciseService service.IExerciseService

	// Background Services (started by Start)
	ConsumerService service.IConsumerService
	EventBridge     service.IEventBridgeService

	WebSocketHub *websocket.Hub
	Registry     *prometheus.Registry
	Logger       logger.ILogger

	closers []func()
}

// NewContainer wires every component. db may be nil when the memory store
// driver is configured.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.ILogger) (*Container, error) {
	c := &Container{Logger: log}

	// 1. Store
	uowFactory, err := newRepositoryFactory(db, cfg.Database)
	if err != nil {
		return nil, err
	}

	// 2. Metrics
	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m, err := metrics.New(c.Registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	// 3. Snapshot cache
	snapshotCache := c.newSnapshotCache(cfg.Cache, log)

	// 4. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	origin := instanceName(cfg.App)

	// NATS carries events between instances; without it each instance
	// relies on its own bus and the cache TTL.
	var remote service.RemotePublisher
	if cfg.Messaging.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.Messaging.NatsURL)
		if err != nil {
			log.Warn("BOOT", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		} else {
			remote = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	publisherService := service.NewPublisherService(cfg.Messaging.LocalTopic, pubSub, remote, origin, log)

	if remote != nil {
		natsSub, err := pktNats.NewSubscriber(cfg.Messaging.NatsURL)
		if err != nil {
			log.Warn("BOOT", "Failed to connect to NATS Subscriber", map[string]interface{}{"error": err.Error()})
		} else {
			c.EventBridge = service.NewEventBridgeService(natsSub, publisherService, log)
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	// 5. WebSocket Hub
	c.WebSocketHub = websocket.NewHub(log)

	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Messaging.LocalTopic,
		snapshotCache,
		c.WebSocketHub,
		m,
		log,
	)

	// 6. Services
	c.ExerciseService = service.NewExerciseService(
		uowFactory,
		snapshotCache,
		publisherService,
		newSource(cfg.Sampling),
		cfg.Sampling.MaxSeed,
		m,
		log,
	)

	// 7. Controllers
	c.ExerciseController = controller.NewExerciseController(c.ExerciseService, serverutils.NewJwtMiddleware(cfg.Auth.JwtSecret))
	c.ViewController = controller.NewViewController(c.ExerciseService, log)

	log.Info("BOOT", "Container ready", map[string]interface{}{
		"store":  cfg.Database.Driver,
		"cache":  cfg.Cache.Driver,
		"nats":   remote != nil,
		"origin": origin,
	})
	return c, nil
}

// Start launches the background workers. They stop when ctx is cancelled.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	if err := c.ConsumerService.Consume(ctx); err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}

	if c.EventBridge != nil {
		if err := c.EventBridge.Start(ctx); err != nil {
			c.Logger.Warn("BOOT", "Failed to start event bridge", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func newRepositoryFactory(db *gorm.DB, cfg config.DatabaseConfig) (unitofwork.RepositoryFactory, error) {
	if cfg.Driver == config.StoreDriverMemory {
		return memory.NewRepositoryFactory(memory.NewExerciseStore()), nil
	}
	if db == nil {
		return nil, fmt.Errorf("store driver %q needs a database connection", cfg.Driver)
	}
	return unitofwork.NewRepositoryFactory(db), nil
}

func (c *Container) newSnapshotCache(cfg config.CacheConfig, log logger.ILogger) cache.SnapshotCache {
	switch cfg.Driver {
	case config.CacheDriverNone:
		return cache.NoopCache{}

	case config.CacheDriverRedis:
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Warn("BOOT", "Failed to parse Redis URL. Using direct Addr", map[string]interface{}{"error": err.Error()})
			opt = &redis.Options{
				Addr: cfg.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn("BOOT", "Failed to connect to Redis, using in-process cache", map[string]interface{}{"error": err.Error()})
			rdb.Close()
			return cache.NewMemoryCache(cfg.TTL)
		}
		c.closers = append(c.closers, func() { rdb.Close() })
		return cache.NewRedisCache(rdb, cfg.TTL, log)
	}

	return cache.NewMemoryCache(cfg.TTL)
}

func newSource(cfg config.SamplingConfig) sampler.Source {
	if cfg.Seed == 0 {
		return sampler.NewTimeSeededSource()
	}
	return sampler.NewSource(cfg.Seed)
}

func instanceName(cfg config.AppConfig) string {
	if cfg.InstanceName != "" {
		return cfg.InstanceName
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return uuid.NewString()
}
