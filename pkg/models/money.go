package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in minor currency units (cents). Arithmetic happens
// on integers; the "$10.00" form the catalog displays is produced only at
// the presentation boundary via Display.
type Money int64

// ParsePrice converts a display price such as "$10.00" or "10.5" into cents.
func ParsePrice(s string) (Money, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if trimmed == "" {
		return 0, fmt.Errorf("empty price")
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return FromFloat(f), nil
}

// FromFloat converts a major-unit amount (10.00) into cents, rounding
// half away from zero.
func FromFloat(f float64) Money {
	return Money(math.Round(f * 100))
}

func (m Money) Float() float64 {
	return float64(m) / 100
}

// Display renders the amount the way the storefront shows prices.
func (m Money) Display() string {
	return "$" + strconv.FormatFloat(m.Float(), 'f', 2, 64)
}

func (m Money) Mul(quantity int) Money {
	return m * Money(quantity)
}

// MarshalJSON emits a plain two-decimal number (20.00), keeping the wire
// numeric while cents stay the internal representation.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(m.Float(), 'f', 2, 64)), nil
}

// UnmarshalJSON accepts the three shapes seen in checkout payloads: a
// formatted string ("$10.00"), a bare numeric string ("10.00"), or a
// JSON number (10 or 10.0).
func (m *Money) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, perr := ParsePrice(s)
		if perr != nil {
			return perr
		}
		*m = parsed
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("invalid money value %s", string(data))
	}
	*m = FromFloat(f)
	return nil
}
