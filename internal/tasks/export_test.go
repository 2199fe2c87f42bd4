package tasks

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/subx/internal/services"
	"github.com/desertthunder/subx/internal/shared"
	th "github.com/desertthunder/subx/internal/testing"
	"golang.org/x/oauth2"
)

func TestExport(t *testing.T) {
	ctx := context.Background()
	token := &oauth2.Token{AccessToken: "export_token"}
	subs := []services.Subscription{
		{ID: "sub1", Title: "Channel One", Channel: services.ChannelRef{Kind: "youtube#channel", ChannelID: "UC1"}},
		{ID: "sub2", Title: "Channel Two", Channel: services.ChannelRef{Kind: "youtube#channel", ChannelID: "UC2"}},
	}

	t.Run("Writes JSON By Default", func(t *testing.T) {
		svc := &mockService{listResult: subs}
		progress := make(chan ProgressUpdate, 8)
		path := filepath.Join(t.TempDir(), "subs.json")

		result, err := Export(ctx, svc, testLogger(), progress, token, ExportOpts{Output: path})
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		if result.Count != 2 {
			t.Errorf("Expected 2 exported subscriptions, got %d", result.Count)
		}
		if result.Partial {
			t.Error("Expected a complete export")
		}
		if result.Path != path {
			t.Errorf("Expected path %s, got %s", path, result.Path)
		}

		content := th.MustReadFile(t, path)
		if !strings.Contains(content, `"UC1"`) || !strings.Contains(content, `"Channel Two"`) {
			t.Errorf("Export file missing subscription data: %s", content)
		}

		close(progress)
		completed := false
		for update := range progress {
			if update.Phase == ExportSubscriptions && strings.Contains(update.Message, "Exported 2 subscriptions") {
				completed = true
			}
		}
		if !completed {
			t.Error("Expected a completion progress update")
		}
	})

	t.Run("Paces Page Fetches", func(t *testing.T) {
		svc := &mockService{listResult: subs}
		path := filepath.Join(t.TempDir(), "subs.csv")

		if _, err := Export(ctx, svc, testLogger(), nil, token, ExportOpts{Format: "csv", Output: path}); err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		if svc.listOpts == nil || svc.listOpts.Limiter == nil {
			t.Error("Expected enumeration to carry a rate limiter")
		}
	})

	t.Run("Partial Enumeration Still Exports", func(t *testing.T) {
		svc := &mockService{listResult: subs[:1], listErr: errors.New("page 2 failed")}
		path := filepath.Join(t.TempDir(), "subs.txt")

		result, err := Export(ctx, svc, testLogger(), nil, token, ExportOpts{Format: "txt", Output: path})
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		if !result.Partial {
			t.Error("Expected a partial export")
		}
		if result.Count != 1 {
			t.Errorf("Expected 1 exported subscription, got %d", result.Count)
		}
		th.AssertFileExists(t, path)
	})

	t.Run("Nothing Collected", func(t *testing.T) {
		svc := &mockService{listErr: errors.New("unauthorized")}

		if _, err := Export(ctx, svc, testLogger(), nil, token, ExportOpts{}); err == nil {
			t.Error("Expected error when enumeration yields nothing")
		}
	})

	t.Run("Unsupported Format", func(t *testing.T) {
		svc := &mockService{listResult: subs}

		_, err := Export(ctx, svc, testLogger(), nil, token, ExportOpts{Format: "yaml"})
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("Expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("Nil Service", func(t *testing.T) {
		_, err := Export(ctx, nil, testLogger(), nil, token, ExportOpts{})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("Expected ErrServiceUnavailable, got %v", err)
		}
	})
}
