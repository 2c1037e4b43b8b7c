package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/roamly/vacations-api/internal/domain"
)

func TestParseVacationFilter(t *testing.T) {
	e := echo.New()
	countryID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vacations", nil)
	q := req.URL.Query()
	q.Set("country_id", countryID.String())
	q.Set("start_from", "2026-06-01")
	q.Set("start_to", "2026-09-30")
	q.Set("min_price", "100.00")
	q.Set("max_price", "2500.50")
	q.Set("query", "santorini")
	q.Set("sort_by", "price")
	q.Set("sort_order", "desc")
	req.URL.RawQuery = q.Encode()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	filter, err := parseVacationFilter(c)
	if err != nil {
		t.Fatalf("parseVacationFilter returned error: %v", err)
	}

	if filter.CountryID == nil || *filter.CountryID != countryID {
		t.Fatalf("expected country %s, got %v", countryID, filter.CountryID)
	}
	if filter.StartFrom == nil || filter.StartFrom.Format(dateLayout) != "2026-06-01" {
		t.Fatalf("unexpected start_from: %v", filter.StartFrom)
	}
	if filter.StartTo == nil || filter.StartTo.Format(dateLayout) != "2026-09-30" {
		t.Fatalf("unexpected start_to: %v", filter.StartTo)
	}
	if filter.MinPrice == nil || *filter.MinPrice != domain.Money(10000) {
		t.Fatalf("unexpected min_price: %v", filter.MinPrice)
	}
	if filter.MaxPrice == nil || *filter.MaxPrice != domain.Money(250050) {
		t.Fatalf("unexpected max_price: %v", filter.MaxPrice)
	}
	if filter.Query == nil || *filter.Query != "santorini" {
		t.Fatalf("unexpected query: %v", filter.Query)
	}
	if filter.Sort.Field != domain.VacationSortPrice || !filter.Sort.Desc {
		t.Fatalf("unexpected sort: %+v", filter.Sort)
	}
}

func TestParseVacationFilterRejectsBadInput(t *testing.T) {
	e := echo.New()

	cases := []struct {
		name  string
		query string
	}{
		{"bad uuid", "country_id=not-a-uuid"},
		{"bad date", "start_from=June+1st"},
		{"bad price", "min_price=1.234"},
		{"bad sort field", "sort_by=email"},
		{"bad sort order", "sort_order=sideways"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/vacations?"+tc.query, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if _, err := parseVacationFilter(c); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestVacationRequestToInput(t *testing.T) {
	countryID := uuid.New()
	desc := "A week in the Cyclades"
	req := vacationRequest{
		CountryID:   countryID.String(),
		Destination: "Santorini",
		Description: &desc,
		StartDate:   "2026-06-01",
		EndDate:     "2026-06-08",
		Price:       "1299.00",
	}

	input, err := req.toInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.CountryID != countryID {
		t.Fatalf("unexpected country: %v", input.CountryID)
	}
	if input.Price != domain.Money(129900) {
		t.Fatalf("unexpected price: %v", input.Price)
	}
	if input.EndDate.Sub(input.StartDate).Hours() != 7*24 {
		t.Fatalf("unexpected date span: %v to %v", input.StartDate, input.EndDate)
	}

	t.Run("rejects malformed price", func(t *testing.T) {
		bad := req
		bad.Price = "12.345"
		if _, err := bad.toInput(); err == nil {
			t.Fatal("expected error for three decimal places")
		}
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		bad := req
		bad.StartDate = "01/06/2026"
		if _, err := bad.toInput(); err == nil {
			t.Fatal("expected error for non-ISO date")
		}
	})
}

func TestParsePagination(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vacations?limit=5&offset=30", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	limit, offset := parsePagination(c, 20, 0)
	if limit != 5 || offset != 30 {
		t.Fatalf("expected 5/30, got %d/%d", limit, offset)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/vacations?limit=-2&offset=abc", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	limit, offset = parsePagination(c, 20, 0)
	if limit != 20 || offset != 0 {
		t.Fatalf("expected defaults for bad values, got %d/%d", limit, offset)
	}
}
