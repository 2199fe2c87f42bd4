package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/desertthunder/subx/internal/services"
	"github.com/desertthunder/subx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var youtubeService services.Service
	httpClient := &http.Client{Timeout: 30 * time.Second}
	if svc, err := services.NewYouTubeService(config.Credentials.YouTube, httpClient); err == nil {
		youtubeService = svc
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		YouTube: youtubeService,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "subx",
		Usage:    "Copy YouTube subscriptions from one account to another",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
