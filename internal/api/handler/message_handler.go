package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pethero/pethero-api/internal/core/domain"
	"github.com/pethero/pethero-api/internal/core/ports"
)

// messageStatusSent is the default delivery status stamped on new messages.
const messageStatusSent = "SENT"

// MessageHandler serves user-to-user messages.
type MessageHandler struct {
	messages ports.MessageRepository
}

func NewMessageHandler(messages ports.MessageRepository) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type createMessageRequest struct {
	ID         string `json:"id"`
	FromUserID string `json:"fromUserId" validate:"required"`
	ToUserID   string `json:"toUserId"   validate:"required"`
	Body       string `json:"body"       validate:"required"`
	BookingID  string `json:"bookingId"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

// List handles GET /messages with optional fromUserId/toUserId filters,
// oldest first.
func (h *MessageHandler) List(c echo.Context) error {
	messages, err := h.messages.List(c.Request().Context(), c.QueryParam("fromUserId"), c.QueryParam("toUserId"))
	if err != nil {
		return err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return c.JSON(http.StatusOK, messages)
}

// Get handles GET /messages/:id.
func (h *MessageHandler) Get(c echo.Context) error {
	message, err := h.messages.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message)
}

// Create handles POST /messages.
func (h *MessageHandler) Create(c echo.Context) error {
	var req createMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message := domain.Message{
		ID:         req.ID,
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		Body:       req.Body,
		BookingID:  req.BookingID,
		Status:     req.Status,
		CreatedAt:  req.CreatedAt,
	}
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	if message.Status == "" {
		message.Status = messageStatusSent
	}
	if message.CreatedAt == "" {
		message.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}

	if err := h.messages.Create(c.Request().Context(), &message); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, message)
}
