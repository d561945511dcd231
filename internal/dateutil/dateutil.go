// Package dateutil resolves "auto" date metadata values against a clock.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// Key is the metadata entry that accepts "auto" values.
const Key = "date"

// MaxFormatLength limits format string length.
const MaxFormatLength = 50

// DefaultFormat is used for a bare "auto".
const DefaultFormat = "YYYY-MM-DD"

const autoPrefix = "auto:"

// tokens maps format tokens to Go layout components, longest first.
var tokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named formats accepted after "auto:".
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// Layout converts a token format such as "DD/MM/YYYY" to a Go time layout.
// Text inside brackets is copied literally: "[Day] D" keeps "Day".
func Layout(format string) (string, error) {
	switch {
	case format == "":
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	case len(format) > MaxFormatLength:
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxFormatLength)
	}

	var b strings.Builder
	rest := format
	for rest != "" {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			b.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}
		rest = writeToken(&b, rest)
	}
	return b.String(), nil
}

// writeToken writes the layout of the token at the start of s, or its first
// byte, and returns the remainder.
func writeToken(b *strings.Builder, s string) string {
	for _, t := range tokens {
		if strings.HasPrefix(s, t.token) {
			b.WriteString(t.layout)
			return s[len(t.token):]
		}
	}
	b.WriteByte(s[0])
	return s[1:]
}

// IsAuto reports whether value asks for the current date.
func IsAuto(value string) bool {
	lower := strings.ToLower(value)
	return lower == "auto" || strings.HasPrefix(lower, autoPrefix)
}

// Resolve formats now for "auto", "auto:FORMAT" or "auto:PRESET".
// Any other value is returned unchanged.
func Resolve(value string, now time.Time) (string, error) {
	if !IsAuto(value) {
		return value, nil
	}

	format := DefaultFormat
	if len(value) > len("auto") {
		format = value[len(autoPrefix):]
		if preset, ok := Presets[strings.ToLower(format)]; ok {
			format = preset
		}
	}

	layout, err := Layout(format)
	if err != nil {
		return "", fmt.Errorf("date %q: %w", value, err)
	}
	return now.Format(layout), nil
}

// ResolveMetadata replaces an "auto" date entry of metadata in place.
// On error the entry is left unchanged.
func ResolveMetadata(metadata map[string]string, now time.Time) error {
	value, ok := metadata[Key]
	if !ok {
		return nil
	}
	resolved, err := Resolve(value, now)
	if err != nil {
		return err
	}
	metadata[Key] = resolved
	return nil
}
