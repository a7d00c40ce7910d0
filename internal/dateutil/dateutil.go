// Package dateutil converts user-facing timestamp patterns into Go time
// layouts for naming history snapshots.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPattern indicates an invalid timestamp pattern string.
var ErrInvalidPattern = errors.New("invalid timestamp pattern")

// MaxPatternLength limits pattern string length to prevent abuse.
const MaxPatternLength = 50

// DefaultPattern stamps snapshots to the minute.
const DefaultPattern = "YYYY-MM-DD_HHmm"

// patternTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching; matching is
// case-sensitive, so MM is the month and mm the minute.
var patternTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"ss", "05"},
	{"M", "1"},
	{"D", "2"},
}

// PatternPresets provides named shortcuts for common snapshot stamps.
var PatternPresets = map[string]string{
	"iso":     "YYYY-MM-DD",
	"compact": "YYYYMMDD",
	"minute":  "YYYY-MM-DD_HHmm",
	"second":  "YYYY-MM-DD_HHmmss",
}

// ParsePattern converts a user-friendly pattern string to Go's time format.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, mm, ss
// Use brackets to escape literal text: [issue] preserves "issue" literally.
// Any non-token characters outside brackets are preserved as literals.
// Returns ErrInvalidPattern if the pattern is empty, too long, or has
// unclosed brackets.
func ParsePattern(pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("%w: pattern cannot be empty", ErrInvalidPattern)
	}
	if len(pattern) > MaxPatternLength {
		return "", fmt.Errorf("%w: pattern exceeds %d characters", ErrInvalidPattern, MaxPatternLength)
	}

	var result strings.Builder
	result.Grow(len(pattern) + 10)

	i := 0
	for i < len(pattern) {
		// Handle bracket-escaped literal text
		if pattern[i] == '[' {
			end := strings.Index(pattern[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidPattern, i)
			}
			result.WriteString(pattern[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range patternTokens {
			if strings.HasPrefix(pattern[i:], t.token) {
				result.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}

		if !matched {
			result.WriteByte(pattern[i])
			i++
		}
	}

	return result.String(), nil
}

// ResolvePattern maps a preset name or raw pattern to a Go time layout.
// An empty value falls back to DefaultPattern. Presets: iso, compact,
// minute, second (case-insensitive).
func ResolvePattern(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = DefaultPattern
	}
	if preset, ok := PatternPresets[strings.ToLower(value)]; ok {
		value = preset
	}
	return ParsePattern(value)
}
