package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cents is an amount of money in minor units.
type Cents int64

var (
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrOverflow is returned when an amount does not fit in int64 cents.
	ErrOverflow = errors.New("amount out of range")
)

// Times returns the amount multiplied by quantity.
func (c Cents) Times(quantity int) Cents {
	return c * Cents(quantity)
}

// MulChecked is Times that reports ErrOverflow instead of wrapping.
func (c Cents) MulChecked(quantity int) (Cents, error) {
	if c == 0 || quantity == 0 {
		return 0, nil
	}

	r := c * Cents(quantity)
	if r/Cents(quantity) != c || (quantity == -1 && c == math.MinInt64) {
		return 0, ErrOverflow
	}

	return r, nil
}

// AddChecked returns c+o, or ErrOverflow when the sum does not fit.
func (c Cents) AddChecked(o Cents) (Cents, error) {
	r := c + o
	if (o > 0 && r < c) || (o < 0 && r > c) {
		return 0, ErrOverflow
	}

	return r, nil
}

// String formats the amount with two decimal places, e.g. 1050 -> "10.50".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}

	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (c Cents) Value() (driver.Value, error) {
	return int64(c), nil
}

// ParseCents parses a decimal amount such as "10", "10.5" or "10.50".
// More than two fractional digits are rejected rather than rounded.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && !hasFrac {
		return 0, ErrInvalidAmount
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 || (hasFrac && frac == "") {
		return 0, ErrInvalidAmount
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	minor, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	total := units*100 + minor
	if neg {
		total = -total
	}

	return Cents(total), nil
}
