package postgres

import (
	"testing"

	"github.com/roamly/vacations-api/internal/domain"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name string
		sort domain.VacationSort
		want string
	}{
		{"default", domain.VacationSort{}, "v.start_date ASC"},
		{"price descending", domain.VacationSort{Field: domain.VacationSortPrice, Desc: true}, "v.price DESC"},
		{"destination ascending", domain.VacationSort{Field: domain.VacationSortDestination}, "v.destination ASC"},
		{"unknown field falls back", domain.VacationSort{Field: "email"}, "v.start_date ASC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := orderClause(tt.sort); got != tt.want {
				t.Fatalf("orderClause = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscapeLikePattern(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"santorini", "santorini"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeLikePattern(tt.input); got != tt.want {
			t.Fatalf("escapeLikePattern(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
