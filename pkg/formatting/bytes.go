// Package formatting converts byte sizes between counts and human-readable
// strings such as "64MB".
package formatting

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var units = []string{
	"B", "KB", "MB",
	"GB", "TB", "PB",
	"EB",
}

var bytesPattern = regexp.MustCompile(`^(\d+\.?\d*)\s*([A-Za-z]*)$`)

// FormatBytes renders n with base-1024 units. Negative precision is
// treated as zero.
func FormatBytes(n int64, precision int) string {
	if n <= 0 {
		return strconv.FormatInt(n, 10) + " B"
	}

	precision = max(precision, 0)

	f := float64(n)
	i := min(int(math.Floor(math.Log(f)/math.Log(1024))), len(units)-1)
	size := f / math.Pow(1024, float64(i))

	return strconv.FormatFloat(size, 'f', precision, 64) + " " + units[i]
}

// ParseBytes parses sizes like "512", "64KB", "1.5 mb", or "2MiB" into a
// byte count. Units are base-1024 and case-insensitive; a bare number is
// bytes.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	matches := bytesPattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size number: %w", err)
	}

	unit := strings.ToUpper(matches[2])
	if unit == "" {
		return int64(value), nil
	}
	if len(unit) == 3 && unit[1] == 'I' {
		unit = unit[:1] + "B"
	} else if len(unit) == 1 && unit != "B" {
		unit += "B"
	}

	idx := slices.Index(units, unit)
	if idx == -1 {
		return 0, fmt.Errorf("unknown byte size unit: %q", matches[2])
	}

	return int64(value * math.Pow(1024, float64(idx))), nil
}

// Size is a byte count that reads and writes as a human-readable string in
// TOML and JSON.
type Size int64

// Bytes returns the size as an int64.
func (s Size) Bytes() int64 {
	return int64(s)
}

// String renders the size with one decimal place.
func (s Size) String() string {
	return FormatBytes(int64(s), 1)
}

// MarshalText renders the size in the largest unit that divides it
// exactly, so the text parses back to the same count.
func (s Size) MarshalText() ([]byte, error) {
	n := int64(s)
	i := 0
	for n != 0 && n%1024 == 0 && i < len(units)-1 {
		n /= 1024
		i++
	}
	return []byte(strconv.FormatInt(n, 10) + units[i]), nil
}

// UnmarshalText parses a human-readable size.
func (s *Size) UnmarshalText(text []byte) error {
	n, err := ParseBytes(string(text))
	if err != nil {
		return err
	}
	*s = Size(n)
	return nil
}
