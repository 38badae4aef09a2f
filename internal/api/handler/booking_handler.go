package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pethero/pethero-api/internal/api/metrics"
	"github.com/pethero/pethero-api/internal/core/domain"
	"github.com/pethero/pethero-api/internal/core/ports"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type createBookingRequest struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"ownerId"    validate:"required"`
	GuardianID  string   `json:"guardianId" validate:"required"`
	PetID       string   `json:"petId"      validate:"required"`
	Start       string   `json:"start"      validate:"required"`
	End         string   `json:"end"        validate:"required"`
	Status      string   `json:"status"`
	DepositPaid *bool    `json:"depositPaid"`
	TotalPrice  *float64 `json:"totalPrice"`
	CreatedAt   string   `json:"createdAt"`
}

type updateBookingRequest struct {
	OwnerID     string   `json:"ownerId"`
	GuardianID  string   `json:"guardianId"`
	PetID       string   `json:"petId"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Status      string   `json:"status"`
	DepositPaid *bool    `json:"depositPaid"`
	TotalPrice  *float64 `json:"totalPrice"`
	CreatedAt   string   `json:"createdAt"`
}

// Create handles POST /bookings.
//
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking details"
// @Success      201   {object}  domain.Booking
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	booking, err := h.service.Create(c.Request().Context(), principal, ports.CreateBookingInput{
		ID:          req.ID,
		OwnerID:     req.OwnerID,
		GuardianID:  req.GuardianID,
		PetID:       req.PetID,
		Start:       req.Start,
		End:         req.End,
		Status:      req.Status,
		DepositPaid: req.DepositPaid,
		TotalPrice:  req.TotalPrice,
		CreatedAt:   req.CreatedAt,
	})
	if err != nil {
		return denied(err, "booking")
	}

	metrics.BookingsCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, booking)
}

// Get handles GET /bookings/:id.
//
// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  domain.Booking
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	booking, err := h.service.Get(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		return denied(err, "booking")
	}

	return c.JSON(http.StatusOK, booking)
}

// Update handles PUT /bookings/:id. Blank fields keep their stored value;
// ownerId and guardianId may only restate the stored parties.
//
// @Summary      Update a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Booking id"
// @Param        body  body      updateBookingRequest  true  "Fields to update"
// @Success      200   {object}  domain.Booking
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /bookings/{id} [put]
func (h *BookingHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	booking, err := h.service.Update(c.Request().Context(), principal, c.Param("id"), ports.UpdateBookingInput{
		OwnerID:     req.OwnerID,
		GuardianID:  req.GuardianID,
		PetID:       req.PetID,
		Start:       req.Start,
		End:         req.End,
		Status:      req.Status,
		DepositPaid: req.DepositPaid,
		TotalPrice:  req.TotalPrice,
		CreatedAt:   req.CreatedAt,
	})
	if err != nil {
		return denied(err, "booking")
	}

	return c.JSON(http.StatusOK, booking)
}

// List handles GET /bookings. Results are always scoped to the caller:
// an explicit ownerId/guardianId filter naming somebody else is rejected.
//
// @Summary      List the caller's bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        ownerId     query     string  false  "Owner filter (must match the caller)"
// @Param        guardianId  query     string  false  "Guardian filter (must match the caller)"
// @Param        status      query     string  false  "Status filter, repeatable, case-insensitive"
// @Success      200  {array}   domain.Booking
// @Failure      403  {object}  errorResponse
// @Router       /bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	statuses := c.QueryParams()["status"]
	statuses = append(statuses, c.QueryParams()["states[]"]...)

	bookings, err := h.service.List(c.Request().Context(), principal, ports.ListBookingsInput{
		OwnerID:    c.QueryParam("ownerId"),
		GuardianID: c.QueryParam("guardianId"),
		Statuses:   statuses,
	})
	if err != nil {
		return denied(err, "booking")
	}

	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return c.JSON(http.StatusOK, bookings)
}

// denied counts authorization denials before handing the error to the
// central error handler.
func denied(err error, resource string) error {
	if errors.Is(err, domain.ErrForbidden) {
		metrics.AuthzDenialsTotal.WithLabelValues(resource).Inc()
	}
	return err
}
