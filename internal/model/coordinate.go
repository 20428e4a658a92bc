package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Coordinate is a latitude/longitude component stored as text with a fixed
// 8-decimal-place precision so persisted values never depend on the client's
// numeric formatting. JSON input may be a number or a string.
type Coordinate string

func NewCoordinate(value string) (Coordinate, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("invalid coordinate %q", value)
	}
	return Coordinate(d.StringFixed(8)), nil
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*c = ""
		return nil
	}

	s = strings.Trim(s, `"`)
	normalized, err := NewCoordinate(s)
	if err != nil {
		return err
	}

	*c = normalized
	return nil
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	if c == "" {
		return []byte("null"), nil
	}
	return []byte(`"` + string(c) + `"`), nil
}

func (c Coordinate) String() string {
	return string(c)
}
