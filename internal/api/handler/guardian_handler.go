package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pethero/pethero-api/internal/core/domain"
	"github.com/pethero/pethero-api/internal/core/ports"
)

// GuardianHandler serves the marketplace guardian catalog.
type GuardianHandler struct {
	guardians ports.GuardianRepository
}

func NewGuardianHandler(guardians ports.GuardianRepository) *GuardianHandler {
	return &GuardianHandler{guardians: guardians}
}

// List handles GET /guardians with an optional id filter.
func (h *GuardianHandler) List(c echo.Context) error {
	guardians, err := h.guardians.List(c.Request().Context(), c.QueryParam("id"))
	if err != nil {
		return err
	}
	if guardians == nil {
		guardians = []domain.Guardian{}
	}
	return c.JSON(http.StatusOK, guardians)
}

// Get handles GET /guardians/:id.
func (h *GuardianHandler) Get(c echo.Context) error {
	guardian, err := h.guardians.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, guardian)
}

// Create handles POST /guardians. Client-supplied ids are honored so catalog
// entries can share the guardian user's id.
func (h *GuardianHandler) Create(c echo.Context) error {
	var g domain.Guardian
	if err := c.Bind(&g); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}

	if err := h.guardians.Create(c.Request().Context(), &g); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, g)
}

// Update handles PUT /guardians/:id. Zero-valued fields keep stored values,
// except rating fields which may legitimately move to zero and are taken
// whenever present.
func (h *GuardianHandler) Update(c echo.Context) error {
	var req domain.Guardian
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	guardian, err := h.guardians.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	if req.Name != "" {
		guardian.Name = req.Name
	}
	if req.Bio != "" {
		guardian.Bio = req.Bio
	}
	if req.PricePerNight != 0 {
		guardian.PricePerNight = req.PricePerNight
	}
	if req.AcceptedTypes != nil {
		guardian.AcceptedTypes = req.AcceptedTypes
	}
	if req.AcceptedSizes != nil {
		guardian.AcceptedSizes = req.AcceptedSizes
	}
	if req.Photos != nil {
		guardian.Photos = req.Photos
	}
	if req.AvatarURL != "" {
		guardian.AvatarURL = req.AvatarURL
	}
	if req.RatingAvg != nil {
		guardian.RatingAvg = req.RatingAvg
	}
	if req.RatingCount != nil {
		guardian.RatingCount = req.RatingCount
	}
	if req.City != "" {
		guardian.City = req.City
	}

	if err := h.guardians.Update(c.Request().Context(), guardian); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, guardian)
}
