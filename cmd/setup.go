package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/subx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the configuration file from the embedded template.
//
// An existing file is left untouched; tokens and subscription data are never
// written to it, only OAuth client credentials and the listener address.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("config file already exists", "path", configPath)
		r.writePlain("Config file already exists at %s\n", configPath)
		return nil
	}

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	r.logger.Info("config file created", "path", configPath)

	r.writePlain("✓ Config file created at %s\n", configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Create an OAuth client in the Google Cloud console with the YouTube Data API enabled\n")
	r.writePlain("2. Fill in credentials.youtube.client_id and client_secret in %s\n", configPath)
	r.writePlain("3. Run 'subx auth test' to verify the credentials\n")

	return nil
}
