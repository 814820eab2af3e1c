package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/explorer/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	configPath := "config.toml"
	if p := os.Getenv("EXPLORER_CONFIG"); p != "" {
		configPath = p
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "path", configPath, "error", err)
		}
	}
	shared.LoadEnv(config, ".env")
	shared.SetLogLevel(logger, shared.ParseLogLevel(config.Logging.Level))

	runner, err := Wire(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatalf("failed to initialize: %v", err)
	}
	defer runner.Close()

	app := &cli.Command{
		Name:     "explorer",
		Usage:    "Browse the movie catalog and your music library",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrUnauthorized), errors.Is(err, shared.ErrNotAuthenticated):
			logger.Fatal("not signed in", "error", err)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}
