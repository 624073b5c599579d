package main

import (
	"fmt"
	"io"

	"workout-generator-be/internal/config"
	"workout-generator-be/internal/model"
	"workout-generator-be/internal/pkg/logger"
	"workout-generator-be/internal/pkg/metrics"
	"workout-generator-be/internal/repository/cache"
	"workout-generator-be/internal/repository/memory"
	"workout-generator-be/internal/repository/unitofwork"
	"workout-generator-be/internal/service"
	"workout-generator-be/pkg/database"
	"workout-generator-be/pkg/sampler"

	pktNats "workout-generator-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type cli struct {
	out io.Writer
	cfg *config.Config

	// memStore backs the memory driver for the lifetime of the process.
	memStore *memory.ExerciseStore
}

func newCLI(out io.Writer, cfg *config.Config) *cli {
	return &cli{
		out:      out,
		cfg:      cfg,
		memStore: memory.NewExerciseStore(),
	}
}

// workspace is everything a single command needs.
type workspace struct {
	db      *gorm.DB
	service service.IExerciseService
	closers []func()
}

func (w *workspace) Close() {
	for i := len(w.closers) - 1; i >= 0; i-- {
		w.closers[i]()
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "exercisectl",
		Short:        "Manage exercises and generate workouts",
		SilenceUsage: true,
	}
	root.SetOut(c.out)
	root.SetErr(c.out)

	root.AddCommand(
		c.migrateCmd(),
		c.seedCmd(),
		c.sampleCmd(),
		c.listCmd(),
	)
	return root
}

// open connects to the configured store. The sampling source is seeded with
// seed, or from the clock when seed is 0.
func (c *cli) open(seed uint64) (*workspace, error) {
	ws := &workspace{}
	log := logger.NewIsolatedLogger(c.cfg.App.LogFilePath)

	var uowFactory unitofwork.RepositoryFactory
	if c.cfg.Database.Driver == config.StoreDriverMemory {
		uowFactory = memory.NewRepositoryFactory(c.memStore)
	} else {
		db, err := database.NewGormDBFromDSN(c.cfg.Database.Connection, database.ParseLogLevel(c.cfg.Database.LogLevel))
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		ws.db = db
		uowFactory = unitofwork.NewRepositoryFactory(db)
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	ws.closers = append(ws.closers, func() { pubSub.Close() })

	// Running servers learn about seeded exercises through NATS.
	var remote service.RemotePublisher
	if c.cfg.Messaging.NatsURL != "" {
		if natsPub, err := pktNats.NewPublisher(c.cfg.Messaging.NatsURL); err == nil {
			remote = natsPub
			ws.closers = append(ws.closers, natsPub.Close)
		} else {
			log.Warn("BOOT", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		}
	}

	src := sampler.NewTimeSeededSource()
	if seed != 0 {
		src = sampler.NewSource(seed)
	}

	ws.service = service.NewExerciseService(
		uowFactory,
		cache.NoopCache{},
		service.NewPublisherService(c.cfg.Messaging.LocalTopic, pubSub, remote, "exercisectl", log),
		src,
		c.cfg.Sampling.MaxSeed,
		metrics.NewUnregistered(),
		log,
	)
	ws.closers = append(ws.closers, func() { log.Sync() })
	return ws, nil
}

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the exercises table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.open(c.cfg.Sampling.Seed)
			if err != nil {
				return err
			}
			defer ws.Close()

			if ws.db == nil {
				info.Fprintln(c.out, "Memory store needs no migration")
				return nil
			}
			if err := database.Migrate(ws.db, &model.Exercise{}); err != nil {
				return err
			}
			success.Fprintln(c.out, "Exercises table is up to date")
			return nil
		},
	}
}
