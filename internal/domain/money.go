package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is a fixed-point amount in cents. It scans from and stores to a
// NUMERIC(12,2) column and marshals as a two-decimal JSON number, so no
// floating-point rounding ever touches a price.
type Money int64

var ErrInvalidMoney = errors.New("amount must be a number with at most two decimal places")

// ParseMoney converts a decimal string such as "1700.00" into cents.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidMoney
	}
	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return 0, ErrInvalidMoney
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, ErrInvalidMoney
	}
	// Only bare digits from here on: ParseInt would otherwise accept a
	// second sign inside the number ("1.-5").
	if !allDigits(whole) || !allDigits(frac) {
		return 0, ErrInvalidMoney
	}
	for len(frac) < 2 {
		frac += "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidMoney
	}
	cents64 := int64(0)
	if frac != "00" {
		c, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, ErrInvalidMoney
		}
		cents64 = c
	}
	total := units*100 + cents64
	if neg {
		total = -total
	}
	return Money(total), nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (m Money) String() string {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value renders the amount as a decimal string the driver passes straight
// to the NUMERIC column.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = 0
		return nil
	case int64:
		*m = Money(v * 100)
		return nil
	case float64:
		*m = Money(math.Round(v * 100))
		return nil
	case []byte:
		parsed, err := ParseMoney(string(v))
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case string:
		parsed, err := ParseMoney(v)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}
	return fmt.Errorf("cannot scan %T into Money", src)
}
