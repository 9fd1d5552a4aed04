package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yourusername/mediagrab/internal/app"
	"github.com/yourusername/mediagrab/internal/domain"
	"github.com/yourusername/mediagrab/internal/infrastructure"
	"github.com/yourusername/mediagrab/pkg/logger"
)

// environment bundles the wired application services for a CLI run.
type environment struct {
	Config     *domain.Config
	Logger     *zap.Logger
	Registry   *domain.Registry
	Dispatcher *app.Dispatcher
	History    domain.HistoryRepository
}

func newEnvironment(configPath string) (*environment, error) {
	config, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	registry := infrastructure.DefaultRegistry()
	engine := infrastructure.NewYTDLPEngine(
		&config.Engine,
		config.Download.OutputDir,
		config.Download.LogsDir,
		log,
	)

	var history domain.HistoryRepository
	if config.History.Enabled {
		repo, err := infrastructure.NewSQLiteHistoryRepository(config.History.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open history database: %w", err)
		}
		history = repo
	}

	var notifier *infrastructure.NotificationService
	if config.Notification.Enabled {
		notifier = infrastructure.NewNotificationService(&config.Notification, log)
	}

	dispatcher := app.NewDispatcher(
		registry,
		engine,
		history,
		notifier,
		config.GlobalEngineOptions(),
		log,
	)

	return &environment{
		Config:     config,
		Logger:     log,
		Registry:   registry,
		Dispatcher: dispatcher,
		History:    history,
	}, nil
}

func (e *environment) Close() {
	if e.History != nil {
		if err := e.History.Close(); err != nil {
			e.Logger.Warn("failed to close history database", zap.Error(err))
		}
	}
	_ = e.Logger.Sync()
}
