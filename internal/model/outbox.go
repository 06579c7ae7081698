package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusRetry     OutboxStatus = "retry"
	OutboxStatusProcessed OutboxStatus = "processed"
	OutboxStatusFailed    OutboxStatus = "failed"
)

const (
	EventBookingCreated    = "booking.created"
	EventBookingReassigned = "booking.reassigned"
	EventBookingCanceled   = "booking.canceled"
)

type OutboxEvent struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	TenantID     string          `db:"tenant_id" json:"tenant_id"`
	AggregateID  uuid.UUID       `db:"aggregate_id" json:"aggregate_id"`
	EventType    string          `db:"event_type" json:"event_type"`
	Payload      json.RawMessage `db:"payload" json:"payload"`
	Status       OutboxStatus    `db:"status" json:"status"`
	ErrorMessage *string         `db:"error_message" json:"error_message,omitempty"`
	RetryCount   int             `db:"retry_count" json:"retry_count"`
	RetryAt      *time.Time      `db:"retry_at" json:"retry_at,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	ProcessedAt  *time.Time      `db:"processed_at" json:"processed_at,omitempty"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// NewOutboxEvent marshals payload into a pending event for the aggregate.
func NewOutboxEvent(tenantID string, aggregateID uuid.UUID, eventType string, payload interface{}) (*OutboxEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &OutboxEvent{
		ID:          uuid.New(),
		TenantID:    tenantID,
		AggregateID: aggregateID,
		EventType:   eventType,
		Payload:     data,
		Status:      OutboxStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// BookingEvent is the payload published for booking lifecycle events.
type BookingEvent struct {
	BookingID     uuid.UUID     `json:"booking_id"`
	TenantID      string        `json:"tenant_id"`
	StaffID       uuid.UUID     `json:"staff_id"`
	StaffName     string        `json:"staff_name"`
	Service       ServiceType   `json:"service"`
	StartTime     time.Time     `json:"start"`
	EndTime       time.Time     `json:"end"`
	Status        BookingStatus `json:"status"`
	PayerID       string        `json:"payer_id"`
	PetID         string        `json:"pet_id"`
	PreviousStaff *uuid.UUID    `json:"previous_staff_id,omitempty"`
}

func NewBookingEvent(b *Booking) BookingEvent {
	return BookingEvent{
		BookingID: b.ID,
		TenantID:  b.TenantID,
		StaffID:   b.StaffID,
		StaffName: b.StaffName,
		Service:   b.Service,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    b.Status,
		PayerID:   b.PayerID,
		PetID:     b.PetID,
	}
}
