package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Country struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Code      string    `db:"code" json:"code"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

var ErrInvalidCountryCode = errors.New("country code must be exactly two letters")

// NormalizeCountryCode trims and uppercases an ISO-3166 alpha-2 code,
// rejecting anything that is not exactly two ASCII letters.
func NormalizeCountryCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return "", ErrInvalidCountryCode
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCountryCode
		}
	}
	return code, nil
}
