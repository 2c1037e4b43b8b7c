package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/roamly/vacations-api/internal/service"
	"github.com/roamly/vacations-api/internal/util"
)

type LikeHandler struct {
	likes *service.LikeService
}

func RegisterLikes(e *echo.Echo, auth *service.AuthService, likes *service.LikeService) {
	handler := &LikeHandler{likes: likes}

	protected := e.Group("/api/v1/vacations/:vacation_id/likes", RequireAuth(auth))
	protected.POST("", handler.likeVacation)
	protected.DELETE("", handler.unlikeVacation)

	admin := e.Group("/api/v1/vacations/:vacation_id/likes", RequireAuth(auth), RequireAdmin())
	admin.GET("", handler.listVacationLikes)

	own := e.Group("/api/v1/users/me/likes", RequireAuth(auth))
	own.GET("", handler.listOwnLikes)

	public := e.Group("/api/v1/vacations/:vacation_id/likes")
	public.GET("/count", handler.countLikes)
}

func (h *LikeHandler) likeVacation(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	vacationID, err := uuid.Parse(strings.TrimSpace(c.Param("vacation_id")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("vacation_id must be a valid UUID"))
	}

	result, err := h.likes.Like(c.Request().Context(), user, vacationID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVacationNotFound):
			return c.JSON(http.StatusNotFound, util.Error("vacation not found"))
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, util.Error("operation not permitted"))
		default:
			return internalError(c, err, "could not like vacation")
		}
	}

	// A repeat like is not an error; the status tells the caller whether
	// this request created the row.
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	return c.JSON(status, util.Envelope{
		"like": util.Envelope{
			"id":          result.Like.ID,
			"vacation_id": result.Like.VacationID,
			"liked_at":    result.Like.CreatedAt.UTC().Format(time.RFC3339),
		},
		"created": result.Created,
	})
}

func (h *LikeHandler) unlikeVacation(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	vacationID, err := uuid.Parse(strings.TrimSpace(c.Param("vacation_id")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("vacation_id must be a valid UUID"))
	}

	removed, err := h.likes.Unlike(c.Request().Context(), user, vacationID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVacationNotFound):
			return c.JSON(http.StatusNotFound, util.Error("vacation not found"))
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, util.Error("operation not permitted"))
		default:
			return internalError(c, err, "could not unlike vacation")
		}
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"vacation_id": vacationID,
		"removed":     removed,
	})
}

func (h *LikeHandler) listOwnLikes(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	limit, offset := parsePagination(c, 20, 0)
	result, err := h.likes.ListOwn(c.Request().Context(), user, limit, offset)
	if err != nil {
		return internalError(c, err, "unable to load likes")
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"items": result.Items,
		"pagination": util.Envelope{
			"limit":  result.Limit,
			"offset": result.Offset,
			"total":  result.Total,
			"count":  len(result.Items),
		},
	})
}

func (h *LikeHandler) listVacationLikes(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	vacationID, err := uuid.Parse(strings.TrimSpace(c.Param("vacation_id")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("vacation_id must be a valid UUID"))
	}

	limit, offset := parsePagination(c, 20, 0)
	result, err := h.likes.ListForVacation(c.Request().Context(), user, vacationID, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVacationNotFound):
			return c.JSON(http.StatusNotFound, util.Error("vacation not found"))
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, util.Error("admin privileges required"))
		default:
			return internalError(c, err, "unable to load likes")
		}
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"items": result.Items,
		"pagination": util.Envelope{
			"limit":  result.Limit,
			"offset": result.Offset,
			"total":  result.Total,
			"count":  len(result.Items),
		},
	})
}

func (h *LikeHandler) countLikes(c echo.Context) error {
	vacationID, err := uuid.Parse(strings.TrimSpace(c.Param("vacation_id")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("vacation_id must be a valid UUID"))
	}

	count, err := h.likes.Count(c.Request().Context(), vacationID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVacationNotFound):
			return c.JSON(http.StatusNotFound, util.Error("vacation not found"))
		default:
			return internalError(c, err, "unable to fetch like count")
		}
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"vacation_id": vacationID,
		"like_count":  count,
	})
}
