package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-system/internal/api/metrics"
	"github.com/devfolio/portfolio-system/internal/core/domain"
	"github.com/devfolio/portfolio-system/internal/core/ports"
)

const refreshCookieName = "refresh_token"

// CookieSettings controls how the refresh-token cookie is written.
type CookieSettings struct {
	Domain string
	Secure bool
	MaxAge time.Duration
}

type AuthHandler struct {
	service ports.AuthService
	cookies CookieSettings
	logger  zerolog.Logger
}

func NewAuthHandler(service ports.AuthService, cookies CookieSettings, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{service: service, cookies: cookies, logger: logger}
}

type authResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

// Register creates a new account and signs the user in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  envelope{data=authResponse}
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, pair, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", registerResult(err)).Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("register", "ok").Inc()

	h.setRefreshCookie(c, pair.RefreshToken)
	return c.JSON(http.StatusCreated, envelope{Data: authResponse{User: user, AccessToken: pair.AccessToken}})
}

// Login authenticates a user and returns the user plus an access token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  envelope{data=authResponse}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, pair, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrInvalidCredentials) {
			result = "invalid_credentials"
		}
		metrics.AuthAttemptsTotal.WithLabelValues("login", result).Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("login", "ok").Inc()

	h.setRefreshCookie(c, pair.RefreshToken)
	return c.JSON(http.StatusOK, envelope{Data: authResponse{User: user, AccessToken: pair.AccessToken}})
}

// Refresh rotates the refresh token from the HTTP-only cookie and returns a
// new access token.
//
// @Summary      Refresh the access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  envelope{data=refreshResponse}
// @Failure      401  {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		metrics.TokenRefreshTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh token")
	}

	pair, err := h.service.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("rejected").Inc()
		h.clearRefreshCookie(c)
		return err
	}
	metrics.TokenRefreshTotal.WithLabelValues("ok").Inc()

	h.setRefreshCookie(c, pair.RefreshToken)
	return c.JSON(http.StatusOK, envelope{Data: refreshResponse{AccessToken: pair.AccessToken}})
}

// Logout revokes the caller's refresh tokens and clears the cookie. The
// session is over from the client's perspective regardless of revocation
// outcome, so failures are logged rather than surfaced.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=messageResponse}
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Logout(c.Request().Context(), userID); err != nil {
		h.logger.Warn().Err(err).Str("user_id", userID).Msg("logout revocation failed")
	}

	h.clearRefreshCookie(c)
	return c.JSON(http.StatusOK, envelope{Data: messageResponse{Message: "logged out"}})
}

// GetProfile returns the authenticated user's profile.
//
// @Summary      Get own profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=domain.User}
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/profile [get]
func (h *AuthHandler) GetProfile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Data: user})
}

// UpdateProfile applies a partial profile update and returns the stored user.
//
// @Summary      Update own profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  envelope{data=domain.User}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), userID, ports.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Avatar:    req.Avatar,
		Bio:       req.Bio,
		Phone:     req.Phone,
		Location:  req.Location,
		Website:   req.Website,
		LinkedIn:  req.LinkedIn,
		GitHub:    req.GitHub,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Data: user})
}

// ChangePassword verifies the current password and replaces it.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  envelope{data=messageResponse}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/change-password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.ChangePassword(c.Request().Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	h.clearRefreshCookie(c)
	return c.JSON(http.StatusOK, envelope{Data: messageResponse{Message: "password changed"}})
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/api/v1/auth",
		Domain:   h.cookies.Domain,
		MaxAge:   int(h.cookies.MaxAge.Seconds()),
		Secure:   h.cookies.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/api/v1/auth",
		Domain:   h.cookies.Domain,
		MaxAge:   -1,
		Secure:   h.cookies.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func registerResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	default:
		return "error"
	}
}
