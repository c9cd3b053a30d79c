package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/justsurfingit/Job-Application-Tracker/internal/config"
	"github.com/justsurfingit/Job-Application-Tracker/internal/database"
	"github.com/justsurfingit/Job-Application-Tracker/internal/handlers"
	"github.com/justsurfingit/Job-Application-Tracker/internal/logger"
	"github.com/justsurfingit/Job-Application-Tracker/internal/metrics"
	"github.com/justsurfingit/Job-Application-Tracker/internal/services"
)

type application struct {
	Config  *config.Config
	Logger  *zap.Logger
	DB      *gorm.DB
	Metrics *metrics.Metrics
	Handler *handlers.ApplicationHandler
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.NewLogger(cfg.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	log.Info("configuration loaded", zap.Stringer("config", cfg))

	db, err := database.Connect(cfg.DB, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("close database", zap.Error(err))
		}
	}()

	m := metrics.New()
	app := &application{
		Config:  cfg,
		Logger:  log,
		DB:      db,
		Metrics: m,
		Handler: handlers.NewApplicationHandler(services.NewApplicationService(db), m, log),
	}

	return app.serve()
}
