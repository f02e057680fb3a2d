package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tradepost/backend/internal/queue/task"
	"github.com/tradepost/backend/internal/worker"

	"github.com/hibiken/asynq"
)

type listingDecisionProcessor struct {
	workers *worker.Workers
}

func NewListingDecisionProcessor(workers *worker.Workers) *listingDecisionProcessor {
	return &listingDecisionProcessor{
		workers: workers,
	}
}

func (p *listingDecisionProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.ListingDecision
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process listing decision task json unmarshal failed: %w", err)
	}

	if err = p.workers.ListingNotifier.NotifyDecision(ctx, data.Contact, data.ListingTitle, data.Approved, data.Reason); err != nil {
		return fmt.Errorf("notify listing decision failed: %w", err)
	}

	return nil
}
