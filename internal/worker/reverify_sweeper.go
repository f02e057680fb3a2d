package worker

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tradepost/backend/internal/config"
	"github.com/tradepost/backend/internal/service"
	"github.com/tradepost/backend/pkg/logger"

	"go.uber.org/zap"
)

const reverifyLeaseKey = "trust:reverify:lease"

// reverifySweeper periodically re-derives cached verification levels for
// users that have not been checked within the configured window. A redis
// lease keeps multiple instances from sweeping at once; the per-user
// compare-and-swap in the service keeps the sweep idempotent either way.
type reverifySweeper struct {
	redis        redis.UniversalClient
	verification service.Verification
	cfg          config.SweepConfig
}

func newReverifySweeper(redisClient redis.UniversalClient, verification service.Verification, cfg config.SweepConfig) *reverifySweeper {
	return &reverifySweeper{
		redis:        redisClient,
		verification: verification,
		cfg:          cfg,
	}
}

func (w *reverifySweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *reverifySweeper) sweep(ctx context.Context) {
	ok, err := w.redis.SetNX(ctx, reverifyLeaseKey, 1, w.cfg.Interval/2).Result()
	if err != nil {
		logger.Error("acquire reverify lease failed", zap.Error(err))
		return
	}
	if !ok {
		return
	}

	refreshed, err := w.verification.ReverifyStale(ctx, w.cfg.StaleAfter, w.cfg.BatchSize)
	if err != nil {
		logger.Error("reverify sweep failed", zap.Error(err))
		return
	}

	if refreshed > 0 {
		logger.Info("reverify sweep done", zap.Int("refreshed", refreshed))
	}
}
