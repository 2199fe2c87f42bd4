package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/subx/internal/services"
	"golang.org/x/oauth2"
)

func TestReplicate(t *testing.T) {
	ctx := context.Background()
	token := &oauth2.Token{AccessToken: "dest_token"}

	makeSubs := func(n int) []services.Subscription {
		subs := make([]services.Subscription, n)
		for i := range subs {
			subs[i] = services.Subscription{
				ID:    "sub" + string(rune('a'+i)),
				Title: "Channel " + string(rune('A'+i)),
				Channel: services.ChannelRef{
					Kind:      "youtube#channel",
					ChannelID: "UC" + string(rune('a'+i)),
				},
			}
		}
		return subs
	}

	t.Run("All Succeed", func(t *testing.T) {
		subs := makeSubs(3)
		svc := &mockService{}
		orc := NewOrchestrator(OrchestratorOpts{Service: svc, Logger: testLogger()})

		result := orc.Replicate(ctx, token, subs)

		if result.Succeeded != 3 || result.Failed != 0 {
			t.Errorf("Expected 3 successes, got %d/%d", result.Succeeded, result.Failed)
		}
		if len(result.Items) != 3 {
			t.Fatalf("Expected 3 items, got %d", len(result.Items))
		}
		for i, item := range result.Items {
			if item.Subscription.ID != subs[i].ID {
				t.Errorf("Item %d out of position: got %s", i, item.Subscription.ID)
			}
			if item.Err != nil {
				t.Errorf("Item %d unexpectedly failed: %v", i, item.Err)
			}
		}
	})

	t.Run("Failures Never Abort The Others", func(t *testing.T) {
		subs := makeSubs(5)
		svc := &mockService{
			subscribeErrs: map[string]error{
				"UCb": errors.New("forbidden"),
				"UCc": errors.New("forbidden"),
				"UCe": errors.New("quota exceeded"),
			},
		}
		progress := make(chan ProgressUpdate, 16)
		orc := NewOrchestrator(OrchestratorOpts{Service: svc, Logger: testLogger(), Progress: progress})

		result := orc.Replicate(ctx, token, subs)

		if result.Succeeded != 2 || result.Failed != 3 {
			t.Errorf("Expected 2 successes and 3 failures, got %d/%d", result.Succeeded, result.Failed)
		}
		if got := len(svc.channels()); got != 5 {
			t.Errorf("Expected all 5 subscribe attempts, got %d", got)
		}

		// Results stay indexed by input position regardless of completion order.
		if result.Items[1].Err == nil || result.Items[2].Err == nil || result.Items[4].Err == nil {
			t.Error("Expected failures recorded at positions 1, 2 and 4")
		}
		if result.Items[0].Err != nil || result.Items[3].Err != nil {
			t.Error("Expected successes recorded at positions 0 and 3")
		}

		close(progress)
		perItem, completions := 0, 0
		for update := range progress {
			if update.Phase != ReplicateSubscriptions {
				continue
			}
			if strings.HasPrefix(update.Message, "[") {
				perItem++
				if update.Total != 5 {
					t.Errorf("Per-item notice with wrong total: %+v", update)
				}
			}
			if strings.HasPrefix(update.Message, "Replication complete") {
				completions++
			}
		}
		if perItem != 5 {
			t.Errorf("Expected 5 per-item notices, got %d", perItem)
		}
		if completions != 1 {
			t.Errorf("Expected exactly one completion notice, got %d", completions)
		}
	})

	t.Run("Per Item Notices Name The Channel", func(t *testing.T) {
		subs := makeSubs(1)
		progress := make(chan ProgressUpdate, 8)
		orc := NewOrchestrator(OrchestratorOpts{Service: &mockService{}, Logger: testLogger(), Progress: progress})

		orc.Replicate(ctx, token, subs)
		close(progress)

		found := false
		for update := range progress {
			if strings.Contains(update.Message, "Channel A") {
				found = true
			}
		}
		if !found {
			t.Error("Expected a per-item notice naming the channel title")
		}
	})

	t.Run("Empty List", func(t *testing.T) {
		svc := &mockService{}
		orc := NewOrchestrator(OrchestratorOpts{Service: svc, Logger: testLogger()})

		result := orc.Replicate(ctx, token, nil)

		if len(result.Items) != 0 || result.Succeeded != 0 || result.Failed != 0 {
			t.Errorf("Expected empty result, got %+v", result)
		}
	})
}
