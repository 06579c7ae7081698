package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agenpets/scheduler-api/internal/model"
	"github.com/agenpets/scheduler-api/internal/repository"
)

type outboxRepository struct {
	s *Store
}

func (r *outboxRepository) Claim(ctx context.Context, limit int, fn func(ctx context.Context, events []*model.OutboxEvent, tx repository.OutboxTx) error) error {
	r.s.outboxMu.Lock()
	defer r.s.outboxMu.Unlock()

	now := r.s.now()
	var due []*model.OutboxEvent

	r.s.mu.RLock()
	for _, e := range r.s.outbox {
		if len(due) >= limit {
			break
		}
		if e.Status != model.OutboxStatusPending && e.Status != model.OutboxStatusRetry {
			continue
		}
		if e.RetryAt != nil && e.RetryAt.After(now) {
			continue
		}
		c := *e
		due = append(due, &c)
	}
	r.s.mu.RUnlock()

	tx := &outboxTx{updates: make(map[uuid.UUID]statusUpdate)}
	if err := fn(ctx, due, tx); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.outbox {
		u, ok := tx.updates[e.ID]
		if !ok {
			continue
		}
		e.Status = u.status
		e.ErrorMessage = u.errorMessage
		e.RetryAt = u.retryAt
		e.UpdatedAt = now
		if u.status == model.OutboxStatusRetry {
			e.RetryCount++
		}
		if u.status == model.OutboxStatusProcessed {
			processed := now
			e.ProcessedAt = &processed
		}
	}
	return nil
}

func (r *outboxRepository) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	kept := r.s.outbox[:0]
	var deleted int64
	for _, e := range r.s.outbox {
		if e.Status == model.OutboxStatusProcessed && e.ProcessedAt != nil && e.ProcessedAt.Before(before) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	r.s.outbox = kept
	return deleted, nil
}

type statusUpdate struct {
	status       model.OutboxStatus
	errorMessage *string
	retryAt      *time.Time
}

type outboxTx struct {
	updates map[uuid.UUID]statusUpdate
}

func (t *outboxTx) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string, retryAt *time.Time) error {
	t.updates[id] = statusUpdate{status: status, errorMessage: errorMessage, retryAt: retryAt}
	return nil
}
