package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BALASANKARP/Edurecap/internal/app"
	"github.com/BALASANKARP/Edurecap/internal/cli"
	"github.com/BALASANKARP/Edurecap/internal/config"
	"github.com/BALASANKARP/Edurecap/internal/logger"
	"github.com/BALASANKARP/Edurecap/internal/output"
)

const defaultConfigPath = "config.yaml"

func main() {
	if err := run(); err != nil {
		if !cli.Reported(err) {
			formatter := output.NewFormatter(os.Stderr)
			formatter.Error(output.Describe(err))
		}
		os.Exit(1)
	}
}

func run() error {
	path := os.Getenv("EDURECAP_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.NewWithConfig(logger.Config{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
	})
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := &cli.Dependencies{
		Config: cfg,
		Logger: log,
		In:     os.Stdin,
		Out:    os.Stdout,
		NewApp: func(ctx context.Context, opts app.Options) (*app.App, error) {
			return app.New(ctx, cfg, log, opts)
		},
	}

	defer deps.Close()

	return cli.NewRootCmd(deps).ExecuteContext(ctx)
}
