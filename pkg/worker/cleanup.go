package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agenpets/scheduler-api/internal/repository"
)

// OutboxCleanupWorker prunes relayed events once they age past the retention window.
type OutboxCleanupWorker struct {
	repo      repository.OutboxRepository
	retention time.Duration
	interval  time.Duration
}

func NewOutboxCleanupWorker(repo repository.OutboxRepository, retention, interval time.Duration) *OutboxCleanupWorker {
	return &OutboxCleanupWorker{
		repo:      repo,
		retention: retention,
		interval:  interval,
	}
}

func (w *OutboxCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

func (w *OutboxCleanupWorker) RunOnce(ctx context.Context) {
	cutoff := time.Now().Add(-w.retention)
	n, err := w.repo.DeleteProcessedBefore(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("failed to prune outbox events")
		return
	}
	if n > 0 {
		log.Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("pruned outbox events")
	}
}
