package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ServiceType string

const (
	ServiceBath  ServiceType = "bath"
	ServiceGroom ServiceType = "groom"
)

// ParseServiceType normalises the service name. "banho" and "tosa" are accepted
// for clients of the legacy app.
func ParseServiceType(s string) (ServiceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bath", "banho":
		return ServiceBath, nil
	case "groom", "tosa":
		return ServiceGroom, nil
	default:
		return "", fmt.Errorf("unknown service type %q", s)
	}
}

type BookingStatus string

const (
	BookingStatusPendingPayment BookingStatus = "pending_payment"
	BookingStatusConfirmed      BookingStatus = "confirmed"
	BookingStatusCompleted      BookingStatus = "completed"
	BookingStatusCanceled       BookingStatus = "canceled"
)

type PaymentMethod string

const (
	PaymentPix     PaymentMethod = "pix"
	PaymentCard    PaymentMethod = "card"
	PaymentCash    PaymentMethod = "cash"
	PaymentVoucher PaymentMethod = "voucher"
)

// InitialStatus is the status a new booking starts in. Deferred methods wait for the
// payment collaborator to confirm.
func (p PaymentMethod) InitialStatus() BookingStatus {
	switch p {
	case PaymentPix:
		return BookingStatusPendingPayment
	default:
		return BookingStatusConfirmed
	}
}

type Booking struct {
	Base
	TenantID      string        `db:"tenant_id" json:"tenant_id"`
	StaffID       uuid.UUID     `db:"staff_id" json:"staff_id"`
	StaffName     string        `db:"staff_name" json:"staff_name"`
	Service       ServiceType   `db:"service" json:"service"`
	StartTime     time.Time     `db:"start_time" json:"start_time"`
	EndTime       time.Time     `db:"end_time" json:"end_time"`
	Status        BookingStatus `db:"status" json:"status"`
	PayerID       string        `db:"payer_id" json:"payer_id"`
	PetID         string        `db:"pet_id" json:"pet_id"`
	PaymentMethod PaymentMethod `db:"payment_method" json:"payment_method"`
	Amount        float64       `db:"amount" json:"amount"`
	CancelReason  *string       `db:"cancel_reason" json:"cancel_reason,omitempty"`
	Checklist     *Checklist    `db:"checklist" json:"checklist,omitempty"`
	ChecklistDone bool          `db:"checklist_done" json:"checklist_done"`
}

// Active reports whether the booking still holds its staff member.
func (b *Booking) Active() bool {
	return b.Status != BookingStatusCanceled
}

// Checklist is the intake/outtake record filled by the professional.
type Checklist struct {
	Items           map[string]bool `json:"items"`
	Notes           string          `json:"notes,omitempty"`
	ResponsibleID   string          `json:"responsible_id"`
	ResponsibleName string          `json:"responsible_name"`
	RecordedAt      time.Time       `json:"recorded_at"`
}

func (c *Checklist) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported checklist type %T", src)
	}
	return json.Unmarshal(data, c)
}

func (c *Checklist) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

type CreateBookingRequest struct {
	TenantID      string        `json:"-" validate:"required"`
	Service       ServiceType   `json:"service" validate:"required,oneof=bath groom"`
	StartTime     time.Time     `json:"start" validate:"required"`
	PayerID       string        `json:"payer_id" validate:"required"`
	PetID         string        `json:"pet_id" validate:"required"`
	PaymentMethod PaymentMethod `json:"payment_method" validate:"required,oneof=pix card cash voucher"`
	Amount        float64       `json:"amount" validate:"gte=0"`
}

// BookingResult is the committed assignment returned to the caller.
type BookingResult struct {
	BookingID uuid.UUID     `json:"booking_id"`
	StaffID   uuid.UUID     `json:"staff_id"`
	StaffName string        `json:"staff_name"`
	StartTime time.Time     `json:"start"`
	EndTime   time.Time     `json:"end"`
	Status    BookingStatus `json:"status"`
	Strategy  string        `json:"strategy"`
}

// ChecklistRequest records the pet condition at drop-off. The responsible
// fields are overridden by the authenticated caller when one is known.
type ChecklistRequest struct {
	Items           map[string]bool `json:"items" validate:"required"`
	Notes           string          `json:"notes" validate:"max=2000"`
	ResponsibleID   string          `json:"responsible_id" validate:"required"`
	ResponsibleName string          `json:"responsible_name"`
}

// CancelRequest is the body of a cancellation.
type CancelRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}
