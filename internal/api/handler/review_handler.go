package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pethero/pethero-api/internal/core/domain"
	"github.com/pethero/pethero-api/internal/core/ports"
)

// ReviewHandler serves guardian reviews.
type ReviewHandler struct {
	reviews ports.ReviewRepository
}

func NewReviewHandler(reviews ports.ReviewRepository) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type createReviewRequest struct {
	ID         string `json:"id"`
	BookingID  string `json:"bookingId"  validate:"required"`
	OwnerID    string `json:"ownerId"    validate:"required"`
	GuardianID string `json:"guardianId" validate:"required"`
	Rating     int    `json:"rating"     validate:"required,min=1,max=5"`
	Comment    string `json:"comment"`
	CreatedAt  string `json:"createdAt"`
}

type updateReviewRequest struct {
	Rating  int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment string `json:"comment"`
}

// List handles GET /reviews. The guardianId filter is mandatory; reviews come
// back newest first.
func (h *ReviewHandler) List(c echo.Context) error {
	guardianID := c.QueryParam("guardianId")
	if guardianID == "" {
		return domain.ErrValidation
	}

	reviews, err := h.reviews.ListByGuardian(c.Request().Context(), guardianID)
	if err != nil {
		return err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return c.JSON(http.StatusOK, reviews)
}

// Get handles GET /reviews/:id.
func (h *ReviewHandler) Get(c echo.Context) error {
	review, err := h.reviews.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

// Create handles POST /reviews.
func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	review := domain.Review{
		ID:         req.ID,
		BookingID:  req.BookingID,
		OwnerID:    req.OwnerID,
		GuardianID: req.GuardianID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		CreatedAt:  req.CreatedAt,
	}
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.CreatedAt == "" {
		review.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}

	if err := h.reviews.Create(c.Request().Context(), &review); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}

// Update handles PUT /reviews/:id.
func (h *ReviewHandler) Update(c echo.Context) error {
	var req updateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	review, err := h.reviews.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	if req.Rating != 0 {
		review.Rating = req.Rating
	}
	if req.Comment != "" {
		review.Comment = req.Comment
	}

	if err := h.reviews.Update(c.Request().Context(), review); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

// Delete handles DELETE /reviews/:id.
func (h *ReviewHandler) Delete(c echo.Context) error {
	if err := h.reviews.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
