// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// migrateCommand handles the two-account migration session
func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Copy subscriptions between accounts",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run the source → destination subscription migration",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip confirmation prompts",
					},
				},
				Action: r.MigrateRun,
			},
		},
	}
}

// subscriptionsCommand handles single-account subscription operations
func subscriptionsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "subscriptions",
		Aliases: []string{"subs"},
		Usage:   "Subscription operations for a single account",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the signed-in account's subscriptions",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of subscriptions to show",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Save API response locally",
					},
				},
				Action: r.SubscriptionsList,
			},
			{
				Name:  "export",
				Usage: "Export the signed-in account's subscriptions to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (json, csv, markdown, txt)",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
					&cli.IntFlag{
						Name:  "rate",
						Usage: "Page fetches per second",
						Value: 5,
					},
				},
				Action: r.SubscriptionsExport,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:   "test",
				Usage:  "Run the OAuth flow and verify the signed-in channel",
				Action: r.AuthTest,
			},
		},
	}
}

// setupCommand creates the configuration file
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// tuiCommand returns the top-level TUI command for the interactive migration.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for the migration session",
		Action:  r.TUI,
	}
}
