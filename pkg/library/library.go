// Package library holds the built-in collection of common patterns.
package library

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/regexlab/pkg/types"
)

// UnknownPatternError is returned when a name is not in the library.
type UnknownPatternError struct {
	Name string
}

func (e *UnknownPatternError) Error() string {
	return fmt.Sprintf("pattern %q not found in library (available: %s)", e.Name, strings.Join(SortedNames(), ", "))
}

var patterns = []types.PatternRecord{
	{
		Name:        "email",
		Pattern:     `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`,
		Description: "Standard email address format",
		Example:     "user@example.com",
	},
	{
		Name:        "url",
		Pattern:     `^https?://(?:www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b(?:[-a-zA-Z0-9()@:%_+.~#?&/=]*)$`,
		Description: "HTTP/HTTPS URL",
		Example:     "https://example.com/path",
	},
	{
		Name:        "phone_us",
		Pattern:     `^\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})$`,
		Description: "US phone number (various formats)",
		Example:     "(555) 123-4567",
	},
	{
		Name:        "ip_address",
		Pattern:     `^(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`,
		Description: "IPv4 address",
		Example:     "192.168.1.1",
	},
	{
		Name:        "date_iso",
		Pattern:     `^\d{4}-\d{2}-\d{2}$`,
		Description: "ISO date format (YYYY-MM-DD)",
		Example:     "2026-01-15",
	},
	{
		Name:        "time_24h",
		Pattern:     `^([01]?[0-9]|2[0-3]):[0-5][0-9]$`,
		Description: "24-hour time format (HH:MM)",
		Example:     "14:30",
	},
	{
		Name:        "hex_color",
		Pattern:     `^#?([a-fA-F0-9]{6}|[a-fA-F0-9]{3})$`,
		Description: "Hexadecimal color code",
		Example:     "#FF5733",
	},
	{
		Name:        "username",
		Pattern:     `^[a-zA-Z0-9_-]{3,16}$`,
		Description: "Username (3-16 chars, alphanumeric, underscore, hyphen)",
		Example:     "user_name-123",
	},
	{
		Name:        "password_strong",
		Pattern:     `^(?=.*[a-z])(?=.*[A-Z])(?=.*\d)(?=.*[@$!%*?&])[A-Za-z\d@$!%*?&]{8,}$`,
		Description: "Strong password (8+ chars, upper, lower, digit, special)",
		Example:     "Pass@word123",
	},
	{
		Name:        "credit_card",
		Pattern:     `^\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}$`,
		Description: "Credit card number (with optional separators)",
		Example:     "1234-5678-9012-3456",
	},
	{
		Name:        "ssn",
		Pattern:     `^\d{3}-\d{2}-\d{4}$`,
		Description: "US Social Security Number",
		Example:     "123-45-6789",
	},
	{
		Name:        "zip_code_us",
		Pattern:     `^\d{5}(?:-\d{4})?$`,
		Description: "US ZIP code (5 or 9 digits)",
		Example:     "12345-6789",
	},
}

// List returns every library pattern in definition order.
func List() []types.PatternRecord {
	out := make([]types.PatternRecord, len(patterns))
	copy(out, patterns)
	return out
}

// Sorted returns every library pattern ordered by name.
func Sorted() []types.PatternRecord {
	out := List()
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// SortedNames returns the library names ordered alphabetically.
func SortedNames() []string {
	names := make([]string, 0, len(patterns))
	for _, p := range patterns {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Get looks up a pattern by name.
func Get(name string) (types.PatternRecord, error) {
	for _, p := range patterns {
		if p.Name == name {
			return p, nil
		}
	}
	return types.PatternRecord{}, &UnknownPatternError{Name: name}
}
