package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pethero/pethero-api/internal/core/domain"
	"github.com/pethero/pethero-api/internal/core/ports"
)

// PetHandler handles HTTP requests for pet operations.
type PetHandler struct {
	service ports.PetService
}

func NewPetHandler(service ports.PetService) *PetHandler {
	return &PetHandler{service: service}
}

type createPetRequest struct {
	ID                 string `json:"id"`
	OwnerID            string `json:"ownerId"`
	Name               string `json:"name" validate:"required"`
	Type               string `json:"type" validate:"required"`
	Breed              string `json:"breed"`
	Size               string `json:"size" validate:"required"`
	PhotoURL           string `json:"photoUrl"`
	VaccineCalendarURL string `json:"vaccineCalendarUrl"`
	Notes              string `json:"notes"`
}

// Create handles POST /pets. Owner only; the pet always belongs to the caller.
//
// @Summary      Register a pet
// @Tags         pets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPetRequest  true  "Pet details"
// @Success      201   {object}  domain.Pet
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /pets [post]
func (h *PetHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createPetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pet, err := h.service.Create(c.Request().Context(), principal, ports.CreatePetInput{
		ID:                 req.ID,
		OwnerID:            req.OwnerID,
		Name:               req.Name,
		Type:               req.Type,
		Breed:              req.Breed,
		Size:               req.Size,
		PhotoURL:           req.PhotoURL,
		VaccineCalendarURL: req.VaccineCalendarURL,
		Notes:              req.Notes,
	})
	if err != nil {
		return denied(err, "pet")
	}

	return c.JSON(http.StatusCreated, pet)
}

// Get handles GET /pets/:id. Owners read their own pets; a guardian may read
// a pet referenced by any booking naming them.
//
// @Summary      Get a pet
// @Tags         pets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Pet id"
// @Success      200  {object}  domain.Pet
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /pets/{id} [get]
func (h *PetHandler) Get(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	pet, err := h.service.Get(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		return denied(err, "pet")
	}

	return c.JSON(http.StatusOK, pet)
}

// List handles GET /pets: the caller's own pets. Guardians get an empty list.
//
// @Summary      List the caller's pets
// @Tags         pets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Pet
// @Router       /pets [get]
func (h *PetHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	pets, err := h.service.List(c.Request().Context(), principal)
	if err != nil {
		return denied(err, "pet")
	}

	if pets == nil {
		pets = []domain.Pet{}
	}
	return c.JSON(http.StatusOK, pets)
}

// Delete handles DELETE /pets/:id. Owner only.
//
// @Summary      Delete a pet
// @Tags         pets
// @Security     BearerAuth
// @Param        id  path  string  true  "Pet id"
// @Success      204  "deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /pets/{id} [delete]
func (h *PetHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), principal, c.Param("id")); err != nil {
		return denied(err, "pet")
	}

	return c.NoContent(http.StatusNoContent)
}
