package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"workout-generator-be/internal/bootstrap"
	"workout-generator-be/internal/config"
	"workout-generator-be/internal/model"
	"workout-generator-be/internal/pkg/logger"
	"workout-generator-be/internal/server"
	"workout-generator-be/internal/tracer"
	"workout-generator-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Telemetry)
	defer shutdownTracer(context.Background())

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	defer sysLogger.Sync()

	// 3. Initialize Database
	var gormDB *gorm.DB
	if cfg.Database.Driver == config.StoreDriverPostgres {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.ParseLogLevel(cfg.Database.LogLevel))
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		if cfg.Database.AutoMigrate {
			if err := database.Migrate(db, &model.Exercise{}); err != nil {
				log.Panicf("Unable to migrate: %v", err)
			}
		}
		gormDB = db
	}

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg, sysLogger)
	if err != nil {
		log.Panicf("Unable to build container: %v", err)
	}
	defer container.Close()

	// 5. Start Background Services
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := container.Start(ctx); err != nil {
		log.Panicf("Unable to start background services: %v", err)
	}

	// 6. Run Server
	srv := server.New(cfg, container)
	go func() {
		<-ctx.Done()
		sysLogger.Info("BOOT", "Shutting down", nil)
		if err := srv.Shutdown(); err != nil {
			sysLogger.Error("BOOT", "Shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	if err := srv.Run(); err != nil {
		sysLogger.Error("BOOT", "Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
