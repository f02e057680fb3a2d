package worker

import (
	"context"
	"fmt"

	"github.com/tradepost/backend/pkg/notify"
)

type listingNotifier struct {
	sender notify.Sender
}

func newListingNotifier(sender notify.Sender) *listingNotifier {
	return &listingNotifier{
		sender: sender,
	}
}

func (w *listingNotifier) NotifyDecision(ctx context.Context, contact, listingTitle string, approved bool, reason string) error {
	if approved {
		if err := w.sender.SendApproval(ctx, contact, listingTitle); err != nil {
			return fmt.Errorf("send approval failed: %w", err)
		}
		return nil
	}

	if err := w.sender.SendRejection(ctx, contact, listingTitle, reason); err != nil {
		return fmt.Errorf("send rejection failed: %w", err)
	}

	return nil
}
