package booking

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agenpets/scheduler-api/internal/middleware"
	"github.com/agenpets/scheduler-api/internal/model"
	"github.com/agenpets/scheduler-api/pkg/errors"
	"github.com/agenpets/scheduler-api/pkg/httputil"
)

// Service is the booking use-case surface the handler needs.
type Service interface {
	GetAvailability(ctx context.Context, tenantID, date, service string) (*model.Availability, error)
	CreateBooking(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingResult, error)
	GetBooking(ctx context.Context, tenantID string, id uuid.UUID) (*model.Booking, error)
	ListBookings(ctx context.Context, tenantID, date string) ([]*model.Booking, error)
	CancelBooking(ctx context.Context, tenantID string, id uuid.UUID, req *model.CancelRequest) (*model.Booking, error)
	SaveChecklist(ctx context.Context, tenantID string, id uuid.UUID, req *model.ChecklistRequest) (*model.Booking, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/availability", h.GetAvailability)

	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.PUT("/:id/checklist", h.SaveChecklist)
	}
}

func (h *Handler) GetAvailability(c *gin.Context) {
	availability, err := h.service.GetAvailability(
		c.Request.Context(),
		middleware.TenantID(c),
		c.Query("date"),
		c.Query("service"),
	)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, availability)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.InvalidArgument("invalid request body", err))
		return
	}
	req.TenantID = middleware.TenantID(c)

	result, err := h.service.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithStatus(c, http.StatusCreated, result)
}

func (h *Handler) ListBookings(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context(), middleware.TenantID(c), c.Query("date"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, bookings)
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(c.Request.Context(), middleware.TenantID(c), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, booking)
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	// The body is optional.
	var req model.CancelRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.RespondWithError(c, errors.InvalidArgument("invalid request body", err))
			return
		}
	}

	booking, err := h.service.CancelBooking(c.Request.Context(), middleware.TenantID(c), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, booking)
}

func (h *Handler) SaveChecklist(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req model.ChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.InvalidArgument("invalid request body", err))
		return
	}
	if subjectID, name := middleware.Subject(c); subjectID != "" {
		req.ResponsibleID, req.ResponsibleName = subjectID, name
	}

	booking, err := h.service.SaveChecklist(c.Request.Context(), middleware.TenantID(c), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, booking)
}

func bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidArgument("invalid booking ID", err))
		return uuid.Nil, false
	}
	return id, true
}
