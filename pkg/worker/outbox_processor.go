package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/agenpets/scheduler-api/internal/model"
	"github.com/agenpets/scheduler-api/internal/repository"
	"github.com/agenpets/scheduler-api/pkg/messaging"
	"github.com/agenpets/scheduler-api/pkg/metrics"
)

type OutboxProcessorConfig struct {
	BatchSize    int
	PollInterval time.Duration
	// RetryAttempts is the number of publish attempts before an event is marked failed.
	RetryAttempts int
	// RetryDelay is the first backoff step; it doubles on every attempt.
	RetryDelay    time.Duration
	ChannelPrefix string
}

// OutboxProcessor relays committed booking events to the message broker.
type OutboxProcessor struct {
	repo    repository.OutboxRepository
	broker  messaging.Broker
	config  OutboxProcessorConfig
	logger  zerolog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewOutboxProcessor(
	repo repository.OutboxRepository,
	broker messaging.Broker,
	config OutboxProcessorConfig,
	m *metrics.Metrics,
) (*OutboxProcessor, error) {
	if config.BatchSize <= 0 {
		return nil, fmt.Errorf("BatchSize must be greater than 0")
	}
	if config.PollInterval <= 0 {
		return nil, fmt.Errorf("PollInterval must be greater than 0")
	}
	if config.RetryAttempts <= 0 {
		return nil, fmt.Errorf("RetryAttempts must be greater than 0")
	}
	if config.RetryDelay <= 0 {
		return nil, fmt.Errorf("RetryDelay must be greater than 0")
	}
	if config.ChannelPrefix == "" {
		config.ChannelPrefix = "bookings"
	}

	return &OutboxProcessor{
		repo:    repo,
		broker:  broker,
		config:  config,
		logger:  log.With().Str("component", "outbox_processor").Logger(),
		metrics: m,
		now:     time.Now,
	}, nil
}

func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	p.logger.Info().Msg("starting outbox processor")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("shutting down outbox processor")
			return
		case <-ticker.C:
			if _, err := p.ProcessBatch(ctx); err != nil {
				p.logger.Error().Err(err).Msg("failed to process events")
			}
		}
	}
}

// ProcessBatch relays one batch of due events and returns how many were published.
func (p *OutboxProcessor) ProcessBatch(ctx context.Context) (int, error) {
	published := 0
	err := p.repo.Claim(ctx, p.config.BatchSize, func(ctx context.Context, events []*model.OutboxEvent, tx repository.OutboxTx) error {
		p.metrics.ObserveOutboxBatch(len(events))

		for _, event := range events {
			started := p.now()
			pubErr := p.publish(ctx, event)
			if pubErr == nil {
				published++
				p.metrics.ObserveOutboxEvent(event.EventType, nil, false, time.Since(started))
				if err := tx.UpdateStatus(ctx, event.ID, model.OutboxStatusProcessed, nil, nil); err != nil {
					return err
				}
				continue
			}

			msg := pubErr.Error()
			attempt := event.RetryCount + 1
			if attempt >= p.config.RetryAttempts {
				p.logger.Error().Err(pubErr).
					Str("event_id", event.ID.String()).
					Str("event_type", event.EventType).
					Int("attempts", attempt).
					Msg("giving up on outbox event")
				p.metrics.ObserveOutboxEvent(event.EventType, pubErr, false, time.Since(started))
				if err := tx.UpdateStatus(ctx, event.ID, model.OutboxStatusFailed, &msg, nil); err != nil {
					return err
				}
				continue
			}

			retryAt := p.now().Add(p.backoff(event.RetryCount))
			p.logger.Warn().Err(pubErr).
				Str("event_id", event.ID.String()).
				Int("attempt", attempt).
				Time("retry_at", retryAt).
				Msg("failed to publish event, will retry")
			p.metrics.ObserveOutboxEvent(event.EventType, pubErr, true, time.Since(started))
			if err := tx.UpdateStatus(ctx, event.ID, model.OutboxStatusRetry, &msg, &retryAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return published, fmt.Errorf("failed to process outbox batch: %w", err)
	}
	return published, nil
}

func (p *OutboxProcessor) publish(ctx context.Context, event *model.OutboxEvent) error {
	body, err := json.Marshal(messaging.Message{
		ID:          event.ID.String(),
		Type:        event.EventType,
		TenantID:    event.TenantID,
		AggregateID: event.AggregateID.String(),
		Payload:     event.Payload,
	})
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	return p.broker.Publish(ctx, messaging.Channel(p.config.ChannelPrefix, event.TenantID), body)
}

func (p *OutboxProcessor) backoff(retries int) time.Duration {
	if retries > 10 {
		retries = 10
	}
	return p.config.RetryDelay << retries
}
