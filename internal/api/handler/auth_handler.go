package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fotostream/identity-api/internal/api/metrics"
	"github.com/fotostream/identity-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	logger      zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// Register creates a new user account and returns a long-lived session token.
//
// Any failure, duplicate email included, surfaces as a generic 500
// "registration failed" — the historical public contract of this endpoint.
// The real cause is logged server-side.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		h.logger.Error().Err(err).Str("email", req.Email).Msg("registration failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "registration failed"})
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, registerResponse{
		User: registeredUser{
			ID:    res.User.ID,
			Email: res.User.Email,
			Name:  res.User.Name,
		},
		Token:    res.Token,
		Scadenza: res.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Login verifies credentials and returns a bounded-lifetime session token.
//
// Every failure collapses into the same 401 "authentication failed" body, so
// the response never reveals whether the email or the password was wrong.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		h.logger.Warn().Err(err).Str("email", req.Email).Msg("login failed")
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "authentication failed"})
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		User: sessionUser{
			ID:    res.User.ID,
			Email: res.User.Email,
			Name:  res.User.Name,
			Role:  res.User.Role,
		},
		Token:    res.Token,
		Scadenza: res.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Me returns the caller's current identity, re-read from storage so role or
// name changes made after token issuance are visible.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, meResponse{User: *user})
}
