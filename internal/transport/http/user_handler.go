package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roamly/vacations-api/internal/service"
	"github.com/roamly/vacations-api/internal/util"
)

type UserHandler struct {
	auth *service.AuthService
}

func RegisterUsers(e *echo.Echo, auth *service.AuthService) {
	handler := &UserHandler{auth: auth}

	admin := e.Group("/api/v1/users", RequireAuth(auth), RequireAdmin())
	admin.GET("", handler.listUsers)
}

func (h *UserHandler) listUsers(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	limit, offset := parsePagination(c, 20, 0)
	result, err := h.auth.ListUsers(c.Request().Context(), user, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, util.Error("admin privileges required"))
		default:
			return internalError(c, err, "unable to load users")
		}
	}

	users := make([]UserResponse, 0, len(result.Items))
	for i := range result.Items {
		users = append(users, toUserResponse(&result.Items[i]))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"users": users,
		"pagination": util.Envelope{
			"limit":  result.Limit,
			"offset": result.Offset,
			"total":  result.Total,
			"count":  len(users),
		},
	})
}
