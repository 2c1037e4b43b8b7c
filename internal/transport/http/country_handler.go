package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/roamly/vacations-api/internal/service"
	"github.com/roamly/vacations-api/internal/util"
)

type CountryHandler struct {
	countries *service.CountryService
}

func RegisterCountries(e *echo.Echo, auth *service.AuthService, countries *service.CountryService) {
	handler := &CountryHandler{countries: countries}

	browse := e.Group("/api/v1/countries", RequireAuth(auth))
	browse.GET("", handler.listCountries)
	browse.GET("/:country_id", handler.getCountry)

	admin := e.Group("/api/v1/countries", RequireAuth(auth), RequireAdmin())
	admin.POST("", handler.createCountry)
}

func (h *CountryHandler) listCountries(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	countries, err := h.countries.List(c.Request().Context(), user)
	if err != nil {
		return internalError(c, err, "unable to load countries")
	}
	return c.JSON(http.StatusOK, util.Envelope{"countries": countries})
}

func (h *CountryHandler) getCountry(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	countryID, err := uuid.Parse(strings.TrimSpace(c.Param("country_id")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("country_id must be a valid UUID"))
	}

	country, err := h.countries.Get(c.Request().Context(), user, countryID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCountryNotFound):
			return c.JSON(http.StatusNotFound, util.Error("country not found"))
		default:
			return internalError(c, err, "unable to load country")
		}
	}
	return c.JSON(http.StatusOK, util.Envelope{"country": country})
}

func (h *CountryHandler) createCountry(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req struct {
		Name string `json:"name"`
		Code string `json:"code"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	country, err := h.countries.Create(c.Request().Context(), user, req.Name, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, util.Error("admin privileges required"))
		case errors.Is(err, service.ErrCountryAlreadyExists):
			return c.JSON(http.StatusConflict, util.Error("country name or code already in use"))
		default:
			return internalError(c, err, "could not create country")
		}
	}
	return c.JSON(http.StatusCreated, util.Envelope{"country": country})
}
