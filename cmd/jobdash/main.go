package main

import (
	"errors"
	"net/http"
	"os"
	"time"

	"jobdash/internal/cli"
	"jobdash/internal/core"
	apphttp "jobdash/internal/http"
	applog "jobdash/internal/log"
	"jobdash/internal/records/memory"
	"jobdash/internal/services"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	colors, err := core.LoadColorTable(cfg.ColorTableFile)
	if err != nil {
		logger.Error("Failed to load color table", applog.FieldError, err, "path", cfg.ColorTableFile)
		os.Exit(1)
	}

	store, err := memory.NewFromFiles(cfg.SeedDir)
	if err != nil {
		logger.WithComponent(applog.ComponentRecords).Error("Failed to seed records", applog.FieldError, err, "dir", cfg.SeedDir)
		os.Exit(1)
	}

	loc := cfg.Location()
	dash := services.NewDashboardService(store, store,
		core.NewAggregator(colors),
		core.NewRangeFormatter(loc),
		services.WithLogger(logger))

	srv := apphttp.NewServer(":"+cfg.Port, dash,
		apphttp.WithColors(colors),
		apphttp.WithRequestTimeout(cfg.RequestTimeout),
		apphttp.WithLogger(logger))

	done := cli.GracefulShutdown(logger, 30*time.Second, srv.Shutdown)

	logger.Info("Starting jobdash server",
		applog.FieldOperation, applog.OpStartup,
		"port", cfg.Port,
		"seed_dir", cfg.SeedDir,
		applog.FieldTimezone, loc.String())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-done
	logger.Info("Server stopped gracefully")
}
