package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pethero/pethero-api/internal/api/metrics"
	"github.com/pethero/pethero-api/internal/core/domain"
	"github.com/pethero/pethero-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerProfileRequest struct {
	DisplayName string `json:"displayName"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatarUrl"`
}

type registerRequest struct {
	Email    string                  `json:"email"    validate:"required,email"`
	Password string                  `json:"password" validate:"required"`
	Role     string                  `json:"role"     validate:"required,oneof=owner guardian"`
	Profile  *registerProfileRequest `json:"profile"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authUserResponse struct {
	ID        int64           `json:"id"`
	Email     string          `json:"email"`
	Role      string          `json:"role"`
	ProfileID *int64          `json:"profileId,omitempty"`
	Profile   *domain.Profile `json:"profile,omitempty"`
}

type authResponse struct {
	Token string           `json:"token"`
	User  authUserResponse `json:"user"`
}

func toAuthResponse(r *ports.AuthResult) authResponse {
	return authResponse{
		Token: r.Token,
		User: authUserResponse{
			ID:        r.User.ID,
			Email:     r.User.Email,
			Role:      r.User.Role,
			ProfileID: r.User.ProfileID,
			Profile:   r.User.Profile,
		},
	}
}

// Register creates a new account and returns a fresh session token.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
	if req.Profile != nil {
		in.Profile = &ports.RegisterProfileInput{
			DisplayName: req.Profile.DisplayName,
			Phone:       req.Profile.Phone,
			Location:    req.Profile.Location,
			Bio:         req.Profile.Bio,
			AvatarURL:   req.Profile.AvatarURL,
		}
	}

	result, err := h.authService.Register(c.Request().Context(), in)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(result.User.Role).Inc()

	return c.JSON(http.StatusOK, toAuthResponse(result))
}

// Login authenticates a user and opens their single session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, toAuthResponse(result))
}

// Logout clears the caller's session flag. Safe to repeat.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), principal.UserID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrActiveSession):
		return "active_session"
	case errors.Is(err, domain.ErrTooManyLogins):
		return "throttled"
	default:
		return "error"
	}
}
