package tasks

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/desertthunder/subx/internal/services"
	"golang.org/x/oauth2"
)

// ReplicationItem records the outcome of one subscribe attempt.
type ReplicationItem struct {
	Subscription services.Subscription // Subscription copied from the source account
	Err          error                 // nil on success
}

// ReplicationResult aggregates one replication pass. Items is indexed by
// input position, so ordering matches the collected subscription list even
// though requests complete in any order.
type ReplicationResult struct {
	Items     []ReplicationItem
	Succeeded int
	Failed    int
}

// Replicate subscribes the destination account to every collected channel,
// one goroutine per item with no throttling and no early abort. It returns
// only after every request has settled; per-item failures land in the result
// and never interrupt the other items.
func (o *Orchestrator) Replicate(ctx context.Context, token *oauth2.Token, subs []services.Subscription) *ReplicationResult {
	total := len(subs)
	result := &ReplicationResult{Items: make([]ReplicationItem, total)}

	o.logger.Info("replicating subscriptions", "count", total)
	o.sendProgress(replicateStartUpdate(total))

	var wg sync.WaitGroup
	var settled atomic.Int64

	for i, sub := range subs {
		wg.Add(1)
		go func(i int, sub services.Subscription) {
			defer wg.Done()

			err := o.svc.Subscribe(ctx, token, sub.Channel)
			result.Items[i] = ReplicationItem{Subscription: sub, Err: err}

			n := int(settled.Add(1))
			if err != nil {
				o.logger.Error("subscribe failed", "channel", sub.Title, "error", err)
			} else {
				o.logger.Info("subscribed", "channel", sub.Title)
			}
			o.sendProgress(subscribeResultUpdate(n, total, sub.Title, err))
		}(i, sub)
	}

	wg.Wait()

	for _, item := range result.Items {
		if item.Err != nil {
			result.Failed++
		} else {
			result.Succeeded++
		}
	}

	o.logger.Info("replication complete", "succeeded", result.Succeeded, "failed", result.Failed)
	o.sendProgress(replicateDoneUpdate(result))
	return result
}
