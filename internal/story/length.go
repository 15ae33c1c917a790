package story

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Unit is the unit of a Length.
type Unit int

const (
	Pixels Unit = iota
	Percent
)

func (u Unit) String() string {
	if u == Percent {
		return "%"
	}
	return "px"
}

// Length is a CSS-like position or size value.
type Length struct {
	Value float64
	Unit  Unit
}

// Px returns a pixel length.
func Px(v float64) Length { return Length{Value: v, Unit: Pixels} }

// Pct returns a percentage length.
func Pct(v float64) Length { return Length{Value: v, Unit: Percent} }

func (l Length) String() string {
	return formatNumber(l.Value) + l.Unit.String()
}

// Resolve converts the length to pixels. Percentages are taken of extent.
func (l Length) Resolve(extent float64) float64 {
	if l.Unit == Percent {
		return l.Value * extent / 100
	}
	return l.Value
}

// ParseLength parses "50%", "12px" or a bare number (pixels).
func ParseLength(s string) (Length, error) {
	num := strings.TrimSpace(s)
	unit := Pixels
	switch {
	case strings.HasSuffix(num, "%"):
		unit = Percent
		num = strings.TrimSuffix(num, "%")
	case strings.HasSuffix(num, "px"):
		num = strings.TrimSuffix(num, "px")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q", s)
	}
	return Length{Value: v, Unit: unit}, nil
}

// UnmarshalJSON accepts a JSON number (pixels) or a string.
func (l *Length) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParseLength(s)
		if err != nil {
			return err
		}
		*l = v
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid length %s", data)
	}
	*l = Px(v)
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
