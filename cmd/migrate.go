package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/subx/internal/server"
	"github.com/desertthunder/subx/internal/shared"
	"github.com/desertthunder/subx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// MigrateRun runs the full source → destination subscription migration.
func (r *Runner) MigrateRun(ctx context.Context, cmd *cli.Command) error {
	if r.youtube == nil {
		return fmt.Errorf("%w: YouTube service not initialized, run 'subx setup' first", shared.ErrServiceUnavailable)
	}

	r.logger.Info("starting migration session")
	r.writePlain("Starting subscription migration...\n\n")

	// Create progress channel and goroutine to handle updates
	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.AuthorizeSource, tasks.AuthorizeDestination:
				if update.Step == 0 {
					r.writePlain("\n🔑 %s\n", update.Message)
					if url, ok := update.Data.(string); ok && url != "" {
						r.writePlain("   %s\n", url)
					}
				} else {
					r.writePlain("%s\n", update.Message)
				}
			case tasks.FetchSubscriptions:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.ReplicateSubscriptions:
				if update.Step == 0 {
					r.writePlain("\n📝 %s\n", update.Message)
				} else {
					r.writePlain("   %s\n", update.Message)
				}
			}
		}
	}()

	confirm := r.confirm
	if cmd.Bool("yes") {
		confirm = func(string) bool { return true }
	}

	orc := tasks.NewOrchestrator(tasks.OrchestratorOpts{
		Service:  r.youtube,
		Logger:   r.logger,
		Confirm:  confirm,
		Progress: progressCh,
	})

	// The listener must be up before the first prompt so an accepted redirect
	// always has somewhere to land.
	httpServer, serverErrors := r.startCallbackServer(orc, r.logger)
	time.Sleep(100 * time.Millisecond)
	select {
	case err := <-serverErrors:
		close(progressCh)
		return fmt.Errorf("callback listener failed: %w", err)
	default:
	}

	outcome, err := orc.Run(ctx)

	// Stop the listener before closing the progress channel; an in-flight
	// redirect may still report progress until shutdown completes.
	r.shutdownCallbackServer(httpServer, r.logger)
	close(progressCh)

	if err != nil {
		return err
	}

	switch outcome.Status {
	case tasks.OutcomeDeclined:
		r.writePlainln("Migration canceled.")
		return nil
	case tasks.OutcomeEmptySource:
		return fmt.Errorf("%w: the source account returned an empty list", shared.ErrNoSubscriptions)
	}

	result := outcome.Replication

	// Output summary
	r.writePlain("\n")
	r.writePlainHeader("Migration Complete")
	r.writePlain("Subscriptions found: %d\n", len(outcome.Collected))
	r.writePlain("Subscribed: %d\n", result.Succeeded)

	if result.Failed > 0 {
		r.writePlain("\nFailed to subscribe to %d channels:\n", result.Failed)
		for _, item := range result.Items {
			if item.Err != nil {
				r.writePlain("  - %s (%s)\n", item.Subscription.Title, item.Subscription.Channel.ChannelID)
			}
		}
	}

	return nil
}

// startCallbackServer starts the local listener that receives OAuth redirects
// for a migration session. The caller shuts it down once the session settles.
func (r *Runner) startCallbackServer(orc *tasks.Orchestrator, logger *log.Logger) (*http.Server, <-chan error) {
	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(logger))
	router.Handler(server.NewCallbackHandler(orc, logger))
	router.Handler(&server.RootHandler{})

	httpServer := &http.Server{
		Addr:    r.config.Server.Addr(),
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting callback listener", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	return httpServer, serverErrors
}

func (r *Runner) shutdownCallbackServer(httpServer *http.Server, logger *log.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("error shutting down server", "error", err)
	}
}
