package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roamly/vacations-api/internal/domain"
	"github.com/roamly/vacations-api/internal/service"
	"github.com/roamly/vacations-api/internal/util"
)

const (
	contextUserKey  = "auth.user"
	contextTokenKey = "auth.token"
)

func RequireAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if strings.TrimSpace(authHeader) == "" {
				return c.JSON(http.StatusUnauthorized, util.Error("missing authorization header"))
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.JSON(http.StatusUnauthorized, util.Error("invalid authorization header"))
			}
			token := strings.TrimSpace(parts[1])
			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
			}
			c.Set(contextUserKey, user)
			c.Set(contextTokenKey, token)
			return next(c)
		}
	}
}

// RequireAdmin assumes RequireAuth already ran on the route group. The
// role check itself happens again inside the services; this just keeps
// non-admins from reaching admin handlers at all.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(contextUserKey).(*domain.User)
			if !ok || user == nil {
				return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
			}
			if !user.Role.IsAdmin() {
				return c.JSON(http.StatusForbidden, util.Error("admin privileges required"))
			}
			return next(c)
		}
	}
}

// internalError is the catch-all for service failures: a store that is
// unreachable answers 503 so clients know the request itself was fine.
func internalError(c echo.Context, err error, msg string) error {
	if service.IsUnavailable(err) {
		return c.JSON(http.StatusServiceUnavailable, util.Error("service temporarily unavailable"))
	}
	return c.JSON(http.StatusInternalServerError, util.Error(msg))
}

func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(contextUserKey).(*domain.User)
	return user, ok
}

func CurrentToken(c echo.Context) (string, bool) {
	token, ok := c.Get(contextTokenKey).(string)
	return token, ok
}
