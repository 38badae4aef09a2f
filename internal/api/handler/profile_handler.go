package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pethero/pethero-api/internal/core/domain"
	"github.com/pethero/pethero-api/internal/core/ports"
)

// ProfileHandler serves user display profiles.
type ProfileHandler struct {
	profiles ports.ProfileRepository
	users    ports.UserRepository
}

func NewProfileHandler(profiles ports.ProfileRepository, users ports.UserRepository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, users: users}
}

type createProfileRequest struct {
	UserID      int64  `json:"userId"      validate:"required"`
	DisplayName string `json:"displayName" validate:"required"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatarUrl"`
}

type updateProfileRequest struct {
	DisplayName string `json:"displayName"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatarUrl"`
}

// List handles GET /profiles with an optional userId filter.
func (h *ProfileHandler) List(c echo.Context) error {
	var userID *int64
	if raw := c.QueryParam("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.ErrValidation
		}
		userID = &id
	}

	profiles, err := h.profiles.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	return c.JSON(http.StatusOK, profiles)
}

// Get handles GET /profiles/:id.
func (h *ProfileHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return domain.ErrNotFound
	}

	profile, err := h.profiles.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Create handles POST /profiles. The referenced user must exist; its
// profileId back-link is set to the new profile.
func (h *ProfileHandler) Create(c echo.Context) error {
	var req createProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.users.FindByID(c.Request().Context(), req.UserID); err != nil {
		return err
	}

	profile, err := h.profiles.Create(c.Request().Context(), &domain.Profile{
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		Location:    req.Location,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		return err
	}

	if err := h.users.SetProfileID(c.Request().Context(), req.UserID, profile.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, profile)
}

// Update handles PUT /profiles/:id. Blank fields keep their stored value.
func (h *ProfileHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return domain.ErrNotFound
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	profile, err := h.profiles.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	if req.DisplayName != "" {
		profile.DisplayName = req.DisplayName
	}
	if req.Phone != "" {
		profile.Phone = req.Phone
	}
	if req.Location != "" {
		profile.Location = req.Location
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.AvatarURL != "" {
		profile.AvatarURL = req.AvatarURL
	}

	if err := h.profiles.Update(c.Request().Context(), profile); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
