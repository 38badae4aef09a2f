package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pethero/pethero-api/internal/core/domain"
	"github.com/pethero/pethero-api/internal/core/ports"
)

// AvailabilityHandler serves guardian availability slots.
type AvailabilityHandler struct {
	slots ports.AvailabilityRepository
}

func NewAvailabilityHandler(slots ports.AvailabilityRepository) *AvailabilityHandler {
	return &AvailabilityHandler{slots: slots}
}

type createSlotRequest struct {
	ID         string `json:"id"`
	GuardianID string `json:"guardianId" validate:"required"`
	Start      string `json:"start"      validate:"required"`
	End        string `json:"end"        validate:"required"`
	CreatedAt  string `json:"createdAt"`
}

type updateSlotRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// List handles GET /availability. The guardianId filter is mandatory; slots
// come back ordered by start.
func (h *AvailabilityHandler) List(c echo.Context) error {
	guardianID := c.QueryParam("guardianId")
	if guardianID == "" {
		return domain.ErrValidation
	}

	slots, err := h.slots.ListByGuardian(c.Request().Context(), guardianID)
	if err != nil {
		return err
	}
	if slots == nil {
		slots = []domain.AvailabilitySlot{}
	}
	return c.JSON(http.StatusOK, slots)
}

// ListExceptions handles GET /availability_exceptions. The mobile client
// polls this collection but nothing ever writes to it.
func (h *AvailabilityHandler) ListExceptions(c echo.Context) error {
	return c.JSON(http.StatusOK, []struct{}{})
}

// Create handles POST /availability.
func (h *AvailabilityHandler) Create(c echo.Context) error {
	var req createSlotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	slot := domain.AvailabilitySlot{
		ID:         req.ID,
		GuardianID: req.GuardianID,
		Start:      req.Start,
		End:        req.End,
		CreatedAt:  req.CreatedAt,
	}
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	if slot.CreatedAt == "" {
		slot.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}

	if err := h.slots.Create(c.Request().Context(), &slot); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, slot)
}

// Update handles PUT /availability/:id.
func (h *AvailabilityHandler) Update(c echo.Context) error {
	var req updateSlotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	slot, err := h.slots.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	if req.Start != "" {
		slot.Start = req.Start
	}
	if req.End != "" {
		slot.End = req.End
	}
	slot.UpdatedAt = time.Now().UTC().Format(time.RFC3339Nano)

	if err := h.slots.Update(c.Request().Context(), slot); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, slot)
}

// Delete handles DELETE /availability/:id.
func (h *AvailabilityHandler) Delete(c echo.Context) error {
	if err := h.slots.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
