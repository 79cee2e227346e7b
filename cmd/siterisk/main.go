package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/siterisk/internal/cache"
	"github.com/alexanderramin/siterisk/internal/cli"
	"github.com/alexanderramin/siterisk/internal/config"
	"github.com/alexanderramin/siterisk/internal/db"
	"github.com/alexanderramin/siterisk/internal/predictor"
	"github.com/alexanderramin/siterisk/internal/repository"
	"github.com/alexanderramin/siterisk/internal/service"
	"github.com/alexanderramin/siterisk/internal/weather"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	taskRepo := repository.NewSQLiteTaskRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// The CLI still works without a model; tasks can be scored with --score.
	model, err := predictor.Load(ctx, cfg.Predictor)
	if err != nil {
		logger.Warn("risk model not loaded", "error", err)
	}
	scorer := predictor.New(model, cfg.Predictor, predictor.NewLogObserver(logger), logger)

	curves := cache.Open(ctx, cfg.RedisURL, cfg.CacheTTL, logger)
	if closer, ok := curves.(io.Closer); ok {
		defer closer.Close()
	}

	obs := service.NewLogUseCaseObserver(logger)

	// Wire services
	app := &cli.App{
		Tasks: service.NewTaskService(taskRepo, scorer, logger,
			service.WithEnvironment(weather.NewClient(cfg.Weather)),
			service.WithLocation(cfg.Location),
			service.WithRescoreOnEdit(cfg.RescoreOnEdit),
			service.WithObserver(obs),
		),
		Risk:     service.NewRiskService(taskRepo, curves, cfg.Location, logger, obs),
		Reset:    service.NewResetService(uow, cfg.Location, obs),
		Location: cfg.Location,
	}

	// Detect interactive terminal for prompts and spinners.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("interrupted")
		}
		return err
	}
	return nil
}
