package tasks

import (
	"fmt"

	"github.com/desertthunder/subx/internal/services"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	AuthorizeSource Phase = iota
	AuthorizeDestination
	FetchSubscriptions
	ReplicateSubscriptions
	ExportSubscriptions
)

func (p Phase) String() string {
	switch p {
	case AuthorizeSource:
		return "authorize_source"
	case AuthorizeDestination:
		return "authorize_destination"
	case FetchSubscriptions:
		return "fetch_subscriptions"
	case ReplicateSubscriptions:
		return "replicate_subscriptions"
	case ExportSubscriptions:
		return "export_subscriptions"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

func authProgressPhase(p SessionPhase) Phase {
	if p == AwaitingDestination {
		return AuthorizeDestination
	}
	return AuthorizeSource
}

func accountLabel(p SessionPhase) string {
	if p == AwaitingDestination {
		return "destination"
	}
	return "source"
}

func awaitAuthUpdate(p SessionPhase, url string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   authProgressPhase(p),
		Step:    0,
		Total:   1,
		Message: fmt.Sprintf("Authorize the %s account in your browser...", accountLabel(p)),
		Data:    url,
	}
}

func authRetryUpdate(p SessionPhase) ProgressUpdate {
	return ProgressUpdate{
		Phase:   authProgressPhase(p),
		Step:    0,
		Total:   1,
		Message: "Token exchange failed, waiting for another attempt...",
	}
}

func authorizedUpdate(p SessionPhase) ProgressUpdate {
	return ProgressUpdate{
		Phase:   authProgressPhase(p),
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("✓ %s account authorized", accountLabel(p)),
	}
}

func fetchSubscriptionsUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSubscriptions,
		Step:    0,
		Total:   1,
		Message: "Fetching subscriptions from the source account...",
	}
}

func collectedUpdate(subs []services.Subscription) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSubscriptions,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d subscriptions", len(subs)),
		Data:    subs,
	}
}

func replicateStartUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReplicateSubscriptions,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Subscribing to %d channels...", total),
	}
}

func subscribeResultUpdate(step, total int, title string, err error) ProgressUpdate {
	if err != nil {
		return ProgressUpdate{
			Phase:   ReplicateSubscriptions,
			Step:    step,
			Total:   total,
			Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, title, err),
		}
	}
	return ProgressUpdate{
		Phase:   ReplicateSubscriptions,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, title),
	}
}

func replicateDoneUpdate(result *ReplicationResult) ProgressUpdate {
	total := len(result.Items)
	return ProgressUpdate{
		Phase:   ReplicateSubscriptions,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Replication complete: %d subscribed, %d failed", result.Succeeded, result.Failed),
		Data:    result,
	}
}

func exportingUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportSubscriptions,
		Step:    0,
		Total:   1,
		Message: "Fetching subscriptions for export...",
	}
}

func exportCompletedUpdate(path string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportSubscriptions,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("✓ Exported %d subscriptions to %s", count, path),
	}
}
