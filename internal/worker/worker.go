package worker

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/tradepost/backend/internal/config"
	"github.com/tradepost/backend/internal/service"
	"github.com/tradepost/backend/pkg/notify"
)

type Workers struct {
	ListingNotifier ListingNotifier
	Reverifier      Reverifier
}

type Deps struct {
	Redis    redis.UniversalClient
	Services *service.Services
	Sender   notify.Sender
	Config   *config.Config
}

type ListingNotifier interface {
	NotifyDecision(ctx context.Context, contact, listingTitle string, approved bool, reason string) error
}

type Reverifier interface {
	Run(ctx context.Context)
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		ListingNotifier: newListingNotifier(deps.Sender),
		Reverifier:      newReverifySweeper(deps.Redis, deps.Services.Verification, deps.Config.Sweep),
	}
}
