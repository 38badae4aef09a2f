package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pethero/pethero-api/internal/core/domain"
	"github.com/pethero/pethero-api/internal/core/ports"
)

// FavoriteHandler serves owner bookmarks of guardians.
type FavoriteHandler struct {
	favorites ports.FavoriteRepository
}

func NewFavoriteHandler(favorites ports.FavoriteRepository) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

type createFavoriteRequest struct {
	ID         string `json:"id"`
	OwnerID    string `json:"ownerId"    validate:"required"`
	GuardianID string `json:"guardianId" validate:"required"`
	CreatedAt  string `json:"createdAt"`
}

// List handles GET /favorites with optional ownerId/guardianId filters.
func (h *FavoriteHandler) List(c echo.Context) error {
	favorites, err := h.favorites.List(c.Request().Context(), c.QueryParam("ownerId"), c.QueryParam("guardianId"))
	if err != nil {
		return err
	}
	if favorites == nil {
		favorites = []domain.Favorite{}
	}
	return c.JSON(http.StatusOK, favorites)
}

// Create handles POST /favorites.
func (h *FavoriteHandler) Create(c echo.Context) error {
	var req createFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	favorite := domain.Favorite{
		ID:         req.ID,
		OwnerID:    req.OwnerID,
		GuardianID: req.GuardianID,
		CreatedAt:  req.CreatedAt,
	}
	if favorite.ID == "" {
		favorite.ID = uuid.NewString()
	}
	if favorite.CreatedAt == "" {
		favorite.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}

	if err := h.favorites.Create(c.Request().Context(), &favorite); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, favorite)
}

// Delete handles DELETE /favorites/:id.
func (h *FavoriteHandler) Delete(c echo.Context) error {
	if err := h.favorites.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
