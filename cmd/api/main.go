package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"osint-pivot/internal/browser"
	"osint-pivot/internal/config"
	"osint-pivot/internal/events"
	"osint-pivot/internal/handler"
	"osint-pivot/internal/logger"
	"osint-pivot/internal/metrics"
	"osint-pivot/internal/repository"
	"osint-pivot/internal/service"
	"osint-pivot/internal/templates"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	port := flag.String("port", "", "HTTP server port (overrides config)")
	dbPath := flag.String("db", "", "path to SQLite database (overrides config)")
	dryRun := flag.Bool("dry-run", false, "log tab URLs instead of launching the browser")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Store.SQLitePath = *dbPath
	}
	if *dryRun {
		cfg.Browser.DryRun = true
	}

	appLogger, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Fatal("Daemon exited with error", logger.Error(err))
	}
}

func run(cfg *config.Config, appLogger logger.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	repo, err := openRepository(cfg.Store)
	if err != nil {
		return err
	}
	defer repo.Close()

	metricsInstance := metrics.NewMetrics()

	broker := events.NewBroker(appLogger)
	broker.Start(ctx)
	defer broker.Stop()

	launcher := browser.NewLauncher(browser.Config{
		Command:        cfg.Browser.Command,
		Args:           cfg.Browser.Args,
		DryRun:         cfg.Browser.DryRun,
		OpensPerSecond: cfg.Browser.OpensPerSecond,
		Burst:          cfg.Browser.Burst,
	}, appLogger)
	scheduler := service.NewScheduler()

	jobService := service.NewJobService(launcher, broker, scheduler, metricsInstance, appLogger, service.JobConfig{
		PageBudget: cfg.OTX.PageBudget,
		BudgetStep: cfg.OTX.BudgetStep,
		PageDelay:  cfg.OTX.PageDelay,
	})
	defer jobService.Close()

	settingsService := service.NewSettingsService(repo, broker, appLogger, cfg.Dispatch.DefaultKeywords)
	if err := settingsService.Load(ctx); err != nil {
		// keep serving on defaults; a later write may still succeed
		appLogger.Error("Failed to load settings, using defaults", logger.Error(err))
	}

	rateLimiter := service.NewRateLimiter(cfg.Dispatch.RatePerMinute, cfg.Dispatch.Burst)
	dispatchService := service.NewDispatchService(
		templates.NewEngine(cfg.Templates.VirusTotalAPIKey),
		settingsService,
		jobService,
		launcher,
		scheduler,
		rateLimiter,
		metricsInstance,
		appLogger,
		service.DispatchConfig{
			Stagger:         cfg.Dispatch.Stagger,
			FallbackKeyword: cfg.Dispatch.FallbackKeyword,
		},
	)

	workerService := service.NewWorkerService(jobService, appLogger, 0)
	go func() {
		if err := workerService.ProcessPages(ctx); err != nil && !errors.Is(err, context.Canceled) {
			appLogger.Error("Page worker stopped", logger.Error(err))
		}
	}()

	router := handler.NewRouter(
		handler.NewMessageHandler(jobService, settingsService, dispatchService, appLogger),
		handler.NewStreamHandler(broker, jobService, settingsService, appLogger),
		handler.NewPageHandler(workerService, metricsInstance, appLogger),
		metricsInstance,
	)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		appLogger.Info("Daemon listening",
			logger.String("addr", server.Addr),
			logger.String("store", cfg.Store.Driver),
			logger.Bool("dry_run", cfg.Browser.DryRun),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	appLogger.Info("Daemon stopped")
	return nil
}

func openRepository(cfg config.StoreConfig) (repository.SettingsRepository, error) {
	switch cfg.Driver {
	case config.DriverRedis:
		repo, err := repository.NewRedisRepository(repository.RedisConfig{
			Address:   cfg.Redis.Address,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis repository: %w", err)
		}
		return repo, nil
	default:
		repo, err := repository.NewSQLiteRepository(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite repository: %w", err)
		}
		return repo, nil
	}
}
