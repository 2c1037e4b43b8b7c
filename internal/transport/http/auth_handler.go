package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roamly/vacations-api/internal/domain"
	"github.com/roamly/vacations-api/internal/service"
	"github.com/roamly/vacations-api/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService) {
	handler := &AuthHandler{auth: auth}

	group := e.Group("/api/v1/auth")
	group.POST("/register", handler.register)
	group.POST("/login", handler.login)
	group.POST("/password-reset/request", handler.requestPasswordReset)
	group.POST("/password-reset/confirm", handler.confirmPasswordReset)

	protected := e.Group("/api/v1/auth", RequireAuth(auth))
	protected.POST("/logout", handler.logout)
	protected.POST("/refresh", handler.refresh)
	protected.POST("/change-password", handler.changePassword)
	protected.GET("/me", handler.me)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	result, err := h.auth.Register(c.Request().Context(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrEmailAlreadyUsed):
			return c.JSON(http.StatusConflict, util.Error("email already registered"))
		default:
			return internalError(c, err, "could not register")
		}
	}

	return c.JSON(http.StatusCreated, authTokenEnvelope(result))
}

func (h *AuthHandler) login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, util.Error("invalid email or password"))
		default:
			return internalError(c, err, "could not log in")
		}
	}

	return c.JSON(http.StatusOK, authTokenEnvelope(result))
}

func (h *AuthHandler) logout(c echo.Context) error {
	token, ok := CurrentToken(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	if err := h.auth.Logout(c.Request().Context(), token); err != nil {
		return internalError(c, err, "could not log out")
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}

func (h *AuthHandler) refresh(c echo.Context) error {
	token, ok := CurrentToken(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	result, err := h.auth.Refresh(c.Request().Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionExpired):
			return c.JSON(http.StatusUnauthorized, util.Error("session expired"))
		default:
			return internalError(c, err, "could not refresh session")
		}
	}
	return c.JSON(http.StatusOK, authTokenEnvelope(result))
}

func (h *AuthHandler) changePassword(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	err := h.auth.ChangePassword(c.Request().Context(), user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, util.Error("current password is incorrect"))
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, util.Error("user not found"))
		default:
			return internalError(c, err, "could not change password")
		}
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}

func (h *AuthHandler) requestPasswordReset(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.auth.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrResetUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, util.Error("password reset is not available"))
		}
		return internalError(c, err, "could not send reset code")
	}

	// Same answer whether or not the email exists.
	return c.JSON(http.StatusOK, util.Envelope{
		"message": "If the email is registered, a reset code has been sent",
	})
}

func (h *AuthHandler) confirmPasswordReset(c echo.Context) error {
	var req struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	err := h.auth.ConfirmPasswordReset(c.Request().Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResetCodeInvalid):
			return c.JSON(http.StatusUnauthorized, util.Error("reset code invalid or expired"))
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		default:
			return internalError(c, err, "could not reset password")
		}
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}

func (h *AuthHandler) me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"user": toUserResponse(user)})
}

func authTokenEnvelope(result *service.AuthResult) util.Envelope {
	return util.Envelope{
		"token":      result.Token,
		"expires_at": result.ExpiresAt.UTC().Format(time.RFC3339),
		"user":       toUserResponse(result.User),
	}
}

// UserResponse is the sanitized user representation; credentials never
// appear here.
type UserResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}
}
