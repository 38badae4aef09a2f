package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pethero/pethero-api/internal/core/domain"
	"github.com/pethero/pethero-api/internal/core/ports"
)

// PaymentHandler records client-reported payments. Write-only: the entries
// are an audit log, never read back by the app.
type PaymentHandler struct {
	payments ports.PaymentRepository
}

func NewPaymentHandler(payments ports.PaymentRepository) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type createPaymentRequest struct {
	ID        string  `json:"id"`
	BookingID string  `json:"bookingId" validate:"required"`
	Amount    float64 `json:"amount"    validate:"required,gt=0"`
	Type      string  `json:"type"      validate:"required"`
	Status    string  `json:"status"    validate:"required"`
	CreatedAt string  `json:"createdAt"`
}

// Create handles POST /payments.
func (h *PaymentHandler) Create(c echo.Context) error {
	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	payment := domain.Payment{
		ID:        req.ID,
		BookingID: req.BookingID,
		Amount:    req.Amount,
		Type:      req.Type,
		Status:    req.Status,
		CreatedAt: req.CreatedAt,
	}
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if payment.CreatedAt == "" {
		payment.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}

	if err := h.payments.Create(c.Request().Context(), &payment); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, payment)
}
