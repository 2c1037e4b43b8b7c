package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Vacation struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CountryID   uuid.UUID `db:"country_id" json:"country_id"`
	Destination string    `db:"destination" json:"destination"`
	Description *string   `db:"description" json:"description,omitempty"`
	StartDate   time.Time `db:"start_date" json:"start_date"`
	EndDate     time.Time `db:"end_date" json:"end_date"`
	Price       Money     `db:"price" json:"price"`
	ImageURL    *string   `db:"image_url" json:"image_url,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	CountryName string `db:"country_name" json:"country_name,omitempty"`
	CountryCode string `db:"country_code" json:"country_code,omitempty"`
}

// VacationListItem is a vacation row enriched with engagement data for
// list and popular views.
type VacationListItem struct {
	Vacation
	LikeCount int64 `db:"like_count" json:"like_count"`
}

// VacationListFilter narrows List results. Zero values mean "no constraint".
type VacationListFilter struct {
	CountryID *uuid.UUID
	StartFrom *time.Time
	StartTo   *time.Time
	MinPrice  *Money
	MaxPrice  *Money
	// Query matches destination and description case-insensitively.
	Query *string

	Sort VacationSort
}

// VacationSortField names a sortable vacation column.
type VacationSortField string

const (
	VacationSortStartDate   VacationSortField = "start_date"
	VacationSortPrice       VacationSortField = "price"
	VacationSortDestination VacationSortField = "destination"
	VacationSortCreatedAt   VacationSortField = "created_at"
)

var ErrInvalidSortField = errors.New("sort field must be one of start_date, price, destination, created_at")

// ParseVacationSortField validates a caller-supplied sort key. An empty
// string means the default order (start date ascending).
func ParseVacationSortField(s string) (VacationSortField, error) {
	switch field := VacationSortField(strings.ToLower(strings.TrimSpace(s))); field {
	case "", VacationSortStartDate:
		return VacationSortStartDate, nil
	case VacationSortPrice, VacationSortDestination, VacationSortCreatedAt:
		return field, nil
	}
	return "", ErrInvalidSortField
}

// VacationSort is the requested list order. The zero value sorts by
// start date ascending.
type VacationSort struct {
	Field VacationSortField
	Desc  bool
}
