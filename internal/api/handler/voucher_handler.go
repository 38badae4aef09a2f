package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pethero/pethero-api/internal/api/metrics"
	"github.com/pethero/pethero-api/internal/core/domain"
	"github.com/pethero/pethero-api/internal/core/ports"
)

// VoucherHandler handles HTTP requests for payment vouchers. Vouchers carry
// no access rules of their own: every operation is authorized against the
// parent booking.
type VoucherHandler struct {
	service ports.VoucherService
}

func NewVoucherHandler(service ports.VoucherService) *VoucherHandler {
	return &VoucherHandler{service: service}
}

type createVoucherRequest struct {
	ID        string   `json:"id"`
	BookingID string   `json:"bookingId" validate:"required"`
	Amount    *float64 `json:"amount"    validate:"required"`
	DueDate   string   `json:"dueDate"   validate:"required"`
	Status    string   `json:"status"    validate:"required"`
	CreatedAt string   `json:"createdAt"`
}

type updateVoucherRequest struct {
	BookingID string   `json:"bookingId"`
	Amount    *float64 `json:"amount"`
	DueDate   string   `json:"dueDate"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"createdAt"`
}

// Create handles POST /paymentVouchers.
//
// @Summary      Create a payment voucher
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createVoucherRequest  true  "Voucher details"
// @Success      201   {object}  domain.PaymentVoucher
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /paymentVouchers [post]
func (h *VoucherHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createVoucherRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	voucher, err := h.service.Create(c.Request().Context(), principal, ports.CreateVoucherInput{
		ID:        req.ID,
		BookingID: req.BookingID,
		Amount:    req.Amount,
		DueDate:   req.DueDate,
		Status:    req.Status,
		CreatedAt: req.CreatedAt,
	})
	if err != nil {
		return denied(err, "voucher")
	}

	metrics.VouchersCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, voucher)
}

// Get handles GET /paymentVouchers/:id.
//
// @Summary      Get a payment voucher
// @Tags         vouchers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Voucher id"
// @Success      200  {object}  domain.PaymentVoucher
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /paymentVouchers/{id} [get]
func (h *VoucherHandler) Get(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	voucher, err := h.service.Get(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		return denied(err, "voucher")
	}

	return c.JSON(http.StatusOK, voucher)
}

// Update handles PUT /paymentVouchers/:id. Blank fields keep stored values.
//
// @Summary      Update a payment voucher
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Voucher id"
// @Param        body  body      updateVoucherRequest  true  "Fields to update"
// @Success      200   {object}  domain.PaymentVoucher
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /paymentVouchers/{id} [put]
func (h *VoucherHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateVoucherRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	voucher, err := h.service.Update(c.Request().Context(), principal, c.Param("id"), ports.UpdateVoucherInput{
		BookingID: req.BookingID,
		Amount:    req.Amount,
		DueDate:   req.DueDate,
		Status:    req.Status,
		CreatedAt: req.CreatedAt,
	})
	if err != nil {
		return denied(err, "voucher")
	}

	return c.JSON(http.StatusOK, voucher)
}

// List handles GET /paymentVouchers. A bookingId filter is mandatory; the
// parent booking decides visibility.
//
// @Summary      List vouchers for a booking
// @Tags         vouchers
// @Produce      json
// @Security     BearerAuth
// @Param        bookingId  query     string  true  "Parent booking id"
// @Success      200  {array}   domain.PaymentVoucher
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /paymentVouchers [get]
func (h *VoucherHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	vouchers, err := h.service.ListByBooking(c.Request().Context(), principal, c.QueryParam("bookingId"))
	if err != nil {
		return denied(err, "voucher")
	}

	if vouchers == nil {
		vouchers = []domain.PaymentVoucher{}
	}
	return c.JSON(http.StatusOK, vouchers)
}
