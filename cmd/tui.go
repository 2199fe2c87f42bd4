package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/subx/internal/shared"
	"github.com/desertthunder/subx/internal/tasks"
	"github.com/desertthunder/subx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for the migration session.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.youtube == nil {
		return fmt.Errorf("%w: YouTube service not initialized, run 'subx setup' first", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, logFile, err := shared.NewFileLogger(filepath.Join(os.TempDir(), "subx-tui.log"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer logFile.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	progressCh := make(chan tasks.ProgressUpdate, 50)
	confirmCh := make(chan ui.ConfirmRequest)
	doneCh := make(chan ui.SessionResult, 1)

	orc := tasks.NewOrchestrator(tasks.OrchestratorOpts{
		Service:  r.youtube,
		Logger:   fileLogger,
		Confirm:  ui.Confirmer(confirmCh),
		Progress: progressCh,
	})

	httpServer, serverErrors := r.startCallbackServer(orc, fileLogger)
	time.Sleep(100 * time.Millisecond)
	select {
	case err := <-serverErrors:
		return fmt.Errorf("callback listener failed: %w", err)
	default:
	}
	defer r.shutdownCallbackServer(httpServer, fileLogger)

	// The session result goes to the TUI for rendering and is kept here for
	// the exit classification after the program ends.
	var (
		mu      sync.Mutex
		settled *ui.SessionResult
	)
	go func() {
		outcome, runErr := orc.Run(ctx)
		res := ui.SessionResult{Outcome: outcome, Err: runErr}
		mu.Lock()
		settled = &res
		mu.Unlock()
		doneCh <- res
	}()

	model := ui.NewModel(ctx, confirmCh, progressCh, doneCh)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	cancel()

	mu.Lock()
	res := settled
	mu.Unlock()

	if res == nil {
		// The user quit before the session settled, treated as a decline.
		return nil
	}
	if res.Err != nil {
		if errors.Is(res.Err, context.Canceled) {
			return nil
		}
		return res.Err
	}
	if res.Outcome != nil && res.Outcome.Status == tasks.OutcomeEmptySource {
		return fmt.Errorf("%w: the source account returned an empty list", shared.ErrNoSubscriptions)
	}

	return nil
}
