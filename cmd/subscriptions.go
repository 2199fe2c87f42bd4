package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/subx/internal/shared"
	"github.com/desertthunder/subx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// SubscriptionsList lists the signed-in account's subscriptions with an optional limit.
//
// Runs a single OAuth flow first; the listing needs exactly one authorized account.
func (r *Runner) SubscriptionsList(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	save := cmd.Bool("save")

	if r.youtube == nil {
		return fmt.Errorf("%w: YouTube service not initialized, run 'subx setup' first", shared.ErrServiceUnavailable)
	}

	token, err := r.doOAuth(ctx, "authorization")
	if err != nil {
		return err
	}

	r.logger.Infof("listing subscriptions with limit %v", limit)

	subs, err := r.youtube.ListSubscriptions(ctx, token, nil)
	if err != nil {
		if len(subs) == 0 {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		r.logger.Warn("enumeration incomplete, showing partial list", "collected", len(subs), "error", err)
	}

	if limit > 0 && limit < len(subs) {
		subs = subs[:limit]
	}

	if save {
		saveFile := "subscriptions.json"
		data, err := shared.MarshalJSON(subs, true)
		if err != nil {
			return fmt.Errorf("failed to marshal subscriptions: %w", err)
		}
		if err := os.WriteFile(saveFile, data, 0644); err != nil {
			r.logger.Warn("failed to save subscriptions", "error", err)
		} else {
			r.logger.Info("subscriptions saved", "file", saveFile)
		}
	}

	if useJSON {
		return r.writeJSON(subs, pretty)
	}

	r.writePlain("Found %d subscriptions:\n\n", len(subs))
	for i, sub := range subs {
		r.writePlain("%d. %s\n", i+1, sub.Title)
		r.writePlain("   Channel: %s\n", sub.Channel.ChannelID)
		r.writePlain("\n")
	}

	return nil
}

// SubscriptionsExport exports the signed-in account's subscriptions to a file.
func (r *Runner) SubscriptionsExport(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	output := cmd.String("output")
	pageRate := cmd.Int("rate")

	if r.youtube == nil {
		return fmt.Errorf("%w: YouTube service not initialized, run 'subx setup' first", shared.ErrServiceUnavailable)
	}

	token, err := r.doOAuth(ctx, "authorization")
	if err != nil {
		return err
	}

	r.logger.Infof("exporting subscriptions as %v", format)

	progressCh := make(chan tasks.ProgressUpdate, 10)
	go func() {
		for update := range progressCh {
			r.writePlain("📥 %s\n", update.Message)
		}
	}()

	result, err := tasks.Export(ctx, r.youtube, r.logger, progressCh, token, tasks.ExportOpts{
		Format:   format,
		Output:   output,
		PageRate: float64(pageRate),
	})
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("✓ Subscriptions exported to %s\n", result.Path)
	r.writePlain("  Count: %d\n", result.Count)
	if result.Partial {
		r.writePlainln("⚠ Enumeration was interrupted, the export is partial.")
	}

	return nil
}
