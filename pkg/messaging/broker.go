package messaging

import (
	"context"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Message is the envelope relayed for every outbox event.
type Message struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	TenantID string `json:"tenant_id"`
	// AggregateID is the booking the event refers to.
	AggregateID string      `json:"aggregate_id"`
	Payload     interface{} `json:"payload"`
}

// Channel returns the pub/sub channel for a tenant, e.g. "bookings.t-1".
func Channel(prefix, tenantID string) string {
	return prefix + "." + tenantID
}
