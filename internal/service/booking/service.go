package booking

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/agenpets/scheduler-api/internal/model"
	"github.com/agenpets/scheduler-api/internal/repository"
	"github.com/agenpets/scheduler-api/internal/scheduling"
	"github.com/agenpets/scheduler-api/pkg/errors"
	"github.com/agenpets/scheduler-api/pkg/metrics"
	"github.com/agenpets/scheduler-api/pkg/validator"
)

const dateLayout = "2006-01-02"

// lookaround widens conflict reads so that a booking overlapping the
// requested window is seen in full, including the part on another day.
const lookaround = 24 * time.Hour

// ConfigProvider resolves the scheduling configuration of a tenant.
type ConfigProvider interface {
	ServiceConfig(ctx context.Context, tenantID string) (*model.ServiceConfig, error)
}

type Service struct {
	staff    repository.StaffRepository
	bookings repository.BookingRepository
	configs  ConfigProvider
	validate validator.Validator
	metrics  *metrics.Metrics
}

func NewService(
	staff repository.StaffRepository,
	bookings repository.BookingRepository,
	configs ConfigProvider,
	m *metrics.Metrics,
) *Service {
	return &Service{
		staff:    staff,
		bookings: bookings,
		configs:  configs,
		validate: validator.Default(),
		metrics:  m,
	}
}

// GetAvailability computes the slot grid of one service for one local day.
// Input errors are reported; storage errors degrade to an empty grid.
func (s *Service) GetAvailability(ctx context.Context, tenantID, date, service string) (*model.Availability, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, errors.InvalidArgument("tenant_id is required", nil)
	}
	svc, err := model.ParseServiceType(service)
	if err != nil {
		return nil, errors.InvalidArgument("service must be bath or groom", err)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, errors.InvalidArgument("date must be formatted as YYYY-MM-DD", err)
	}

	result := &model.Availability{Date: date, Service: svc, Slots: []model.TimeSlot{}}

	slots, err := s.availableSlots(ctx, tenantID, date, svc)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).
			Str("tenant_id", tenantID).
			Str("date", date).
			Str("service", string(svc)).
			Msg("availability degraded to empty grid")
		s.metrics.ObserveAvailability(string(svc), "degraded")
		return result, nil
	}

	s.metrics.ObserveAvailability(string(svc), "ok")
	result.Slots = slots
	return result, nil
}

func (s *Service) availableSlots(ctx context.Context, tenantID, date string, svc model.ServiceType) ([]model.TimeSlot, error) {
	cfg, err := s.configs.ServiceConfig(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	day, err := time.ParseInLocation(dateLayout, date, cfg.Location())
	if err != nil {
		return nil, err
	}

	if _, _, err := cfg.BusinessHours(day); err != nil {
		return nil, err
	}

	staff, err := s.staff.ListActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	roster := scheduling.PartitionRoster(staff)

	var existing []*model.Booking
	if !roster.Empty() {
		dayStart, dayEnd := cfg.DayBounds(day)
		existing, err = s.bookings.ListOverlapping(ctx, tenantID, dayStart.Add(-lookaround), dayEnd.Add(lookaround))
		if err != nil {
			return nil, err
		}
	}

	grid := scheduling.NewGrid(day, svc, cfg, roster, existing)
	return grid.Collect(), nil
}

// CreateBooking allocates a professional for the request and persists the booking,
// together with any reallocation it needed, in one transaction.
func (s *Service) CreateBooking(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingResult, error) {
	if req == nil {
		return nil, errors.InvalidArgument("request is required", nil)
	}
	if svc, err := model.ParseServiceType(string(req.Service)); err == nil {
		req.Service = svc
	}
	req.PaymentMethod = model.PaymentMethod(strings.ToLower(strings.TrimSpace(string(req.PaymentMethod))))
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	logger := log.Ctx(ctx).With().
		Str("tenant_id", req.TenantID).
		Str("service", string(req.Service)).
		Time("start", req.StartTime).
		Logger()

	cfg, err := s.configs.ServiceConfig(ctx, req.TenantID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load service config")
		return nil, errors.StorageFailure(err)
	}
	duration := cfg.Duration(req.Service)
	if duration <= 0 {
		return nil, errors.InvalidArgument("service has no configured duration", nil)
	}

	staff, err := s.staff.ListActive(ctx, req.TenantID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load roster")
		return nil, errors.StorageFailure(err)
	}

	start := req.StartTime
	end := start.Add(duration)
	open, closing, err := cfg.BusinessHours(start)
	if err != nil {
		logger.Error().Err(err).Msg("invalid business hours")
		return nil, errors.StorageFailure(err)
	}
	if start.Before(open) || end.After(closing) {
		return nil, errors.InvalidArgument("booking must fit within business hours", nil)
	}
	booking := &model.Booking{
		Base:          model.Base{ID: uuid.New()},
		TenantID:      req.TenantID,
		Service:       req.Service,
		StartTime:     start,
		EndTime:       end,
		Status:        req.PaymentMethod.InitialStatus(),
		PayerID:       req.PayerID,
		PetID:         req.PetID,
		PaymentMethod: req.PaymentMethod,
		Amount:        req.Amount,
	}
	if req.PaymentMethod == model.PaymentVoucher {
		booking.Amount = 0
	}

	began := time.Now()
	var assignment scheduling.Assignment
	err = s.bookings.InTx(ctx, func(ctx context.Context, tx repository.BookingTx) error {
		for _, day := range localDays(start, end, cfg.Location()) {
			if err := tx.LockDay(ctx, req.TenantID, day); err != nil {
				return err
			}
		}

		existing, err := tx.ListOverlapping(ctx, req.TenantID, start.Add(-lookaround), end.Add(lookaround))
		if err != nil {
			return err
		}

		assignment, err = scheduling.NewAllocator(staff, existing).Allocate(req.Service, start, end)
		if err != nil {
			return err
		}

		if r := assignment.Reallocation; r != nil {
			if err := tx.Reassign(ctx, req.TenantID, r.Booking.ID, r.To); err != nil {
				return err
			}
			moved := *r.Booking
			previous := moved.StaffID
			moved.StaffID = r.To.ID
			moved.StaffName = r.To.Name
			payload := model.NewBookingEvent(&moved)
			payload.PreviousStaff = &previous
			if err := addEvent(ctx, tx, moved.TenantID, moved.ID, model.EventBookingReassigned, payload); err != nil {
				return err
			}
		}

		booking.StaffID = assignment.Staff.ID
		booking.StaffName = assignment.Staff.Name
		if err := tx.Create(ctx, booking); err != nil {
			return err
		}
		return addEvent(ctx, tx, booking.TenantID, booking.ID, model.EventBookingCreated, model.NewBookingEvent(booking))
	})
	elapsed := time.Since(began)

	if err != nil {
		if stderrors.Is(err, scheduling.ErrNoCapacity) {
			logger.Info().Msg("no professional available")
			s.metrics.ObserveBooking(string(req.Service), "slot_unavailable", "none", elapsed)
			return nil, errors.SlotUnavailable(err)
		}
		logger.Error().Err(err).Msg("failed to commit booking")
		s.metrics.ObserveBooking(string(req.Service), "storage_failure", "none", elapsed)
		return nil, errors.StorageFailure(err)
	}

	strategy := assignment.Strategy.String()
	s.metrics.ObserveBooking(string(req.Service), "created", strategy, elapsed)

	event := logger.Info().
		Str("booking_id", booking.ID.String()).
		Str("staff_id", booking.StaffID.String()).
		Str("strategy", strategy)
	if r := assignment.Reallocation; r != nil {
		event = event.Str("reassigned_booking_id", r.Booking.ID.String()).Str("reassigned_to", r.To.ID.String())
	}
	event.Msg("booking created")

	return &model.BookingResult{
		BookingID: booking.ID,
		StaffID:   booking.StaffID,
		StaffName: booking.StaffName,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		Status:    booking.Status,
		Strategy:  strategy,
	}, nil
}

func (s *Service) GetBooking(ctx context.Context, tenantID string, id uuid.UUID) (*model.Booking, error) {
	b, err := s.bookings.Get(ctx, tenantID, id)
	if err != nil {
		return nil, storageError("booking", err)
	}
	return b, nil
}

// ListBookings returns the agenda of one local day, canceled bookings included.
func (s *Service) ListBookings(ctx context.Context, tenantID, date string) ([]*model.Booking, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, errors.InvalidArgument("tenant_id is required", nil)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, errors.InvalidArgument("date must be formatted as YYYY-MM-DD", err)
	}

	cfg, err := s.configs.ServiceConfig(ctx, tenantID)
	if err != nil {
		return nil, errors.StorageFailure(err)
	}
	day, err := time.ParseInLocation(dateLayout, date, cfg.Location())
	if err != nil {
		return nil, errors.InvalidArgument("invalid date", err)
	}

	from, to := cfg.DayBounds(day)
	bookings, err := s.bookings.ListByDay(ctx, tenantID, from, to)
	if err != nil {
		return nil, errors.StorageFailure(err)
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}
	return bookings, nil
}

// CancelBooking frees the interval of a booking. Completed and already
// canceled bookings are rejected.
func (s *Service) CancelBooking(ctx context.Context, tenantID string, id uuid.UUID, req *model.CancelRequest) (*model.Booking, error) {
	if req == nil {
		req = &model.CancelRequest{}
	}
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	var canceled *model.Booking
	err := s.bookings.InTx(ctx, func(ctx context.Context, tx repository.BookingTx) error {
		b, err := tx.GetForUpdate(ctx, tenantID, id)
		if err != nil {
			return err
		}
		switch b.Status {
		case model.BookingStatusCanceled:
			return errors.InvalidArgument("booking is already canceled", nil)
		case model.BookingStatusCompleted:
			return errors.InvalidArgument("completed bookings cannot be canceled", nil)
		}

		var reason *string
		if r := strings.TrimSpace(req.Reason); r != "" {
			reason = &r
		}
		if err := tx.UpdateStatus(ctx, tenantID, id, model.BookingStatusCanceled, reason); err != nil {
			return err
		}
		b.Status = model.BookingStatusCanceled
		b.CancelReason = reason
		canceled = b
		return addEvent(ctx, tx, tenantID, id, model.EventBookingCanceled, model.NewBookingEvent(b))
	})
	if err != nil {
		return nil, storageError("booking", err)
	}

	log.Ctx(ctx).Info().
		Str("tenant_id", tenantID).
		Str("booking_id", id.String()).
		Msg("booking canceled")
	return canceled, nil
}

// SaveChecklist records the drop-off checklist of a booking.
func (s *Service) SaveChecklist(ctx context.Context, tenantID string, id uuid.UUID, req *model.ChecklistRequest) (*model.Booking, error) {
	if req == nil {
		return nil, errors.InvalidArgument("request is required", nil)
	}
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	checklist := &model.Checklist{
		Items:           req.Items,
		Notes:           req.Notes,
		ResponsibleID:   req.ResponsibleID,
		ResponsibleName: req.ResponsibleName,
		RecordedAt:      time.Now().UTC(),
	}

	var updated *model.Booking
	err := s.bookings.InTx(ctx, func(ctx context.Context, tx repository.BookingTx) error {
		b, err := tx.GetForUpdate(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if b.Status == model.BookingStatusCanceled {
			return errors.InvalidArgument("booking is canceled", nil)
		}
		if err := tx.SaveChecklist(ctx, tenantID, id, checklist); err != nil {
			return err
		}
		b.Checklist = checklist
		b.ChecklistDone = true
		updated = b
		return nil
	})
	if err != nil {
		return nil, storageError("booking", err)
	}
	return updated, nil
}

func addEvent(ctx context.Context, tx repository.BookingTx, tenantID string, aggregateID uuid.UUID, eventType string, payload interface{}) error {
	evt, err := model.NewOutboxEvent(tenantID, aggregateID, eventType, payload)
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", eventType, err)
	}
	return tx.AddOutboxEvent(ctx, evt)
}

// storageError keeps application errors and maps the rest onto not-found or
// storage failure.
func storageError(resource string, err error) error {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if stderrors.Is(err, repository.ErrNotFound) {
		return errors.NotFound(resource, err)
	}
	return errors.StorageFailure(err)
}

// localDays lists the tenant-local dates touched by [start, end).
func localDays(start, end time.Time, loc *time.Location) []string {
	var days []string
	last := end.Add(-time.Nanosecond).In(loc)
	y, m, d := start.In(loc).Date()
	for cur := time.Date(y, m, d, 0, 0, 0, 0, loc); !cur.After(last); cur = cur.AddDate(0, 0, 1) {
		days = append(days, cur.Format(dateLayout))
	}
	return days
}
