package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/subx/internal/formatter"
	"github.com/desertthunder/subx/internal/services"
	"github.com/desertthunder/subx/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// ExportOpts contains configuration for subscription exports.
type ExportOpts struct {
	Format   string  // Export format: json, csv, markdown, txt
	Output   string  // Output file path (default: subscriptions_{epoch}.{ext})
	PageRate float64 // Page fetches per second (default: 5)
}

// ExportResult describes a completed subscription export.
type ExportResult struct {
	Path    string // File written
	Count   int    // Subscriptions exported
	Partial bool   // True when enumeration failed part way through
}

// Export enumerates the authenticated account's subscriptions with polite
// page pacing and writes them to a single file in the requested format.
//
// A page failure mid-enumeration degrades to a partial export rather than an
// error; only a failure before any page lands is returned as one.
func Export(ctx context.Context, svc services.Service, logger *log.Logger, progress chan<- ProgressUpdate, token *oauth2.Token, opts ExportOpts) (*ExportResult, error) {
	if svc == nil {
		return nil, fmt.Errorf("%w: subscription service not initialized", shared.ErrServiceUnavailable)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	if opts.Format == "" {
		opts.Format = "json"
	}
	if opts.PageRate <= 0 {
		opts.PageRate = 5.0
	}

	sendProgress(progress, exportingUpdate())

	limiter := rate.NewLimiter(rate.Limit(opts.PageRate), 1)
	subs, listErr := svc.ListSubscriptions(ctx, token, &services.ListOptions{Limiter: limiter})
	if listErr != nil {
		if len(subs) == 0 {
			return nil, listErr
		}
		logger.Error("enumeration incomplete, exporting partial list", "collected", len(subs), "error", listErr)
	}

	path, err := formatter.WriteExport(subs, opts.Format, opts.Output)
	if err != nil {
		return nil, err
	}

	logger.Info("subscriptions exported", "count", len(subs), "path", path)
	sendProgress(progress, exportCompletedUpdate(path, len(subs)))

	return &ExportResult{
		Path:    path,
		Count:   len(subs),
		Partial: listErr != nil,
	}, nil
}
