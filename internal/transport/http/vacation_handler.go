package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/roamly/vacations-api/internal/domain"
	"github.com/roamly/vacations-api/internal/service"
	"github.com/roamly/vacations-api/internal/util"
)

const dateLayout = "2006-01-02"

type VacationHandler struct {
	vacations *service.VacationService
}

func RegisterVacations(e *echo.Echo, auth *service.AuthService, vacations *service.VacationService) {
	handler := &VacationHandler{vacations: vacations}

	browse := e.Group("/api/v1/vacations", RequireAuth(auth))
	browse.GET("", handler.listVacations)
	browse.GET("/popular", handler.popularVacations)
	browse.GET("/:vacation_id", handler.getVacation)

	admin := e.Group("/api/v1/vacations", RequireAuth(auth), RequireAdmin())
	admin.POST("", handler.createVacation)
	admin.PUT("/:vacation_id", handler.updateVacation)
	admin.DELETE("/:vacation_id", handler.deleteVacation)
	admin.POST("/:vacation_id/image", handler.uploadImage)
}

type vacationRequest struct {
	CountryID   string  `json:"country_id"`
	Destination string  `json:"destination"`
	Description *string `json:"description"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Price       string  `json:"price"`
}

func (r vacationRequest) toInput() (service.VacationInput, error) {
	var input service.VacationInput

	countryID, err := uuid.Parse(strings.TrimSpace(r.CountryID))
	if err != nil {
		return input, errors.New("country_id must be a valid UUID")
	}
	startDate, err := time.Parse(dateLayout, strings.TrimSpace(r.StartDate))
	if err != nil {
		return input, errors.New("start_date must be YYYY-MM-DD")
	}
	endDate, err := time.Parse(dateLayout, strings.TrimSpace(r.EndDate))
	if err != nil {
		return input, errors.New("end_date must be YYYY-MM-DD")
	}
	price, err := domain.ParseMoney(r.Price)
	if err != nil {
		return input, errors.New("price must be a decimal with at most two places")
	}

	input.CountryID = countryID
	input.Destination = r.Destination
	input.Description = r.Description
	input.StartDate = startDate
	input.EndDate = endDate
	input.Price = price
	return input, nil
}

func (h *VacationHandler) listVacations(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	filter, err := parseVacationFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	limit, offset := parsePagination(c, 20, 0)
	result, err := h.vacations.List(c.Request().Context(), user, filter, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		default:
			return internalError(c, err, "unable to load vacations")
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

func (h *VacationHandler) popularVacations(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	limit, _ := parsePagination(c, 10, 0)
	items, err := h.vacations.Popular(c.Request().Context(), user, limit)
	if err != nil {
		return internalError(c, err, "unable to load popular vacations")
	}
	return c.JSON(http.StatusOK, util.Envelope{"items": items})
}

func (h *VacationHandler) getVacation(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	vacationID, err := uuid.Parse(strings.TrimSpace(c.Param("vacation_id")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("vacation_id must be a valid UUID"))
	}

	vacation, err := h.vacations.Get(c.Request().Context(), user, vacationID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVacationNotFound):
			return c.JSON(http.StatusNotFound, util.Error("vacation not found"))
		default:
			return internalError(c, err, "unable to load vacation")
		}
	}
	return c.JSON(http.StatusOK, util.Envelope{"vacation": vacation})
}

func (h *VacationHandler) createVacation(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req vacationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	input, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	vacation, err := h.vacations.Create(c.Request().Context(), user, input)
	if err != nil {
		return h.writeVacationError(c, err, "could not create vacation")
	}
	return c.JSON(http.StatusCreated, util.Envelope{"vacation": vacation})
}

func (h *VacationHandler) updateVacation(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	vacationID, err := uuid.Parse(strings.TrimSpace(c.Param("vacation_id")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("vacation_id must be a valid UUID"))
	}

	var req vacationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	input, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	vacation, err := h.vacations.Update(c.Request().Context(), user, vacationID, input)
	if err != nil {
		return h.writeVacationError(c, err, "could not update vacation")
	}
	return c.JSON(http.StatusOK, util.Envelope{"vacation": vacation})
}

func (h *VacationHandler) deleteVacation(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	vacationID, err := uuid.Parse(strings.TrimSpace(c.Param("vacation_id")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("vacation_id must be a valid UUID"))
	}

	if err := h.vacations.Delete(c.Request().Context(), user, vacationID); err != nil {
		switch {
		case errors.Is(err, service.ErrVacationNotFound):
			return c.JSON(http.StatusNotFound, util.Error("vacation not found"))
		case errors.Is(err, service.ErrVacationHasLikes):
			return c.JSON(http.StatusConflict, util.Error("vacation has likes and cannot be deleted"))
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, util.Error("admin privileges required"))
		default:
			return internalError(c, err, "could not delete vacation")
		}
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}

func (h *VacationHandler) uploadImage(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	vacationID, err := uuid.Parse(strings.TrimSpace(c.Param("vacation_id")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("vacation_id must be a valid UUID"))
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("image file is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read image file"))
	}
	defer file.Close()

	contentType := fileHeader.Header.Get(echo.HeaderContentType)
	vacation, err := h.vacations.UploadImage(c.Request().Context(), user, vacationID, contentType, file, fileHeader.Size)
	if err != nil {
		return h.writeVacationError(c, err, "could not upload image")
	}
	return c.JSON(http.StatusOK, util.Envelope{"vacation": vacation})
}

func (h *VacationHandler) writeVacationError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, util.Error("admin privileges required"))
	case errors.Is(err, service.ErrCountryNotFound):
		return c.JSON(http.StatusNotFound, util.Error("country not found"))
	case errors.Is(err, service.ErrVacationNotFound):
		return c.JSON(http.StatusNotFound, util.Error("vacation not found"))
	case errors.Is(err, service.ErrVacationAlreadyExists):
		return c.JSON(http.StatusConflict, util.Error("an identical vacation already exists"))
	case errors.Is(err, service.ErrStorageUnavailable):
		return c.JSON(http.StatusServiceUnavailable, util.Error("image storage unavailable"))
	default:
		return internalError(c, err, fallback)
	}
}

func parsePagination(c echo.Context, defaultLimit, defaultOffset int) (int, int) {
	limit := defaultLimit
	offset := defaultOffset
	if v := strings.TrimSpace(c.QueryParam("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if v := strings.TrimSpace(c.QueryParam("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}

func parseVacationFilter(c echo.Context) (domain.VacationListFilter, error) {
	var filter domain.VacationListFilter

	if v := strings.TrimSpace(c.QueryParam("country_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, errors.New("country_id must be a valid UUID")
		}
		filter.CountryID = &id
	}
	if v := strings.TrimSpace(c.QueryParam("start_from")); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, errors.New("start_from must be YYYY-MM-DD")
		}
		filter.StartFrom = &t
	}
	if v := strings.TrimSpace(c.QueryParam("start_to")); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, errors.New("start_to must be YYYY-MM-DD")
		}
		filter.StartTo = &t
	}
	if v := strings.TrimSpace(c.QueryParam("min_price")); v != "" {
		m, err := domain.ParseMoney(v)
		if err != nil {
			return filter, errors.New("min_price must be a decimal with at most two places")
		}
		filter.MinPrice = &m
	}
	if v := strings.TrimSpace(c.QueryParam("max_price")); v != "" {
		m, err := domain.ParseMoney(v)
		if err != nil {
			return filter, errors.New("max_price must be a decimal with at most two places")
		}
		filter.MaxPrice = &m
	}
	if v := strings.TrimSpace(c.QueryParam("query")); v != "" {
		filter.Query = &v
	}

	field, err := domain.ParseVacationSortField(c.QueryParam("sort_by"))
	if err != nil {
		return filter, err
	}
	filter.Sort.Field = field
	switch order := strings.ToLower(strings.TrimSpace(c.QueryParam("sort_order"))); order {
	case "", "asc":
	case "desc":
		filter.Sort.Desc = true
	default:
		return filter, errors.New("sort_order must be asc or desc")
	}
	return filter, nil
}
