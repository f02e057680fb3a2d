package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	ListingDecisionTaskName  = "listingDecisionTask"
	ListingDecisionQueueName = "notifyQueue"
)

type ListingDecision struct {
	Contact      string `json:"contact"`
	ListingTitle string `json:"listing_title"`
	Approved     bool   `json:"approved"`
	Reason       string `json:"reason,omitempty"`
}

func NewListingDecisionTask(contact, listingTitle string, approved bool, reason string) (*asynq.Task, error) {
	data := ListingDecision{
		Contact:      contact,
		ListingTitle: listingTitle,
		Approved:     approved,
		Reason:       reason,
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		ListingDecisionTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(ListingDecisionQueueName),
	), nil
}
