package rest

import (
	"context"
	"log"
	"time"

	"github.com/odezzy/wall_api/internal/metrics"
)

const (
	pendingBadgeInterval = 30 * time.Second
	sweepInterval        = 10 * time.Minute
	backgroundJobTimeout = 5 * time.Second
)

// StartBackgroundJobs launches the pending-count broadcaster and the
// lifecycle sweeper. Both stop when ctx is cancelled.
func (api *API) StartBackgroundJobs(ctx context.Context) {
	go api.runPendingBadgeLoop(ctx)
	go api.runLifecycleSweeper(ctx)
}

func (api *API) runPendingBadgeLoop(ctx context.Context) {
	ticker := time.NewTicker(pendingBadgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			api.refreshPendingBadge()
		}
	}
}

// runLifecycleSweeper periodically flips the stored lifecycle status of
// posters whose display date has passed. Visibility never waits for the
// sweep; the stored status is only an indexable hint, so a missed tick
// costs nothing.
func (api *API) runLifecycleSweeper(ctx context.Context) {
	api.sweepExpired(ctx)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			api.sweepExpired(ctx)
		}
	}
}

func (api *API) sweepExpired(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, backgroundJobTimeout)
	defer cancel()

	swept, err := api.SweepExpiredRepo(sweepCtx)
	if err != nil {
		log.Println("lifecycle sweep failed:", err)
		return
	}
	if swept > 0 {
		metrics.SweptExpiredTotal.Add(float64(swept))
		log.Printf("lifecycle sweep marked %d poster(s) expired", swept)
	}
}
