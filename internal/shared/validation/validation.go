// Package validation provides input sanitization helpers shared by the handlers.
package validation

import (
	"strings"
	"unicode/utf8"
)

// weekdayNames is the accepted set of work-day tokens, lowercase.
var weekdayNames = map[string]bool{
	"mon": true, "tue": true, "wed": true, "thu": true,
	"fri": true, "sat": true, "sun": true,
}

// SanitizeString cleans a string input by trimming surrounding whitespace,
// removing null bytes and replacing invalid UTF-8 sequences. Special
// characters are preserved as raw text; they are stored safely via
// parameterized queries, not executed.
func SanitizeString(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")

	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}

	return strings.TrimSpace(s)
}

// NormalizeWorkDays lowercases, trims and validates a list of weekday tokens
// (mon..sun). It returns the normalized list, or false when any token is
// unknown or the list contains duplicates.
func NormalizeWorkDays(days []string) ([]string, bool) {
	seen := make(map[string]bool, len(days))
	out := make([]string, 0, len(days))

	for _, d := range days {
		d = strings.ToLower(SanitizeString(d))
		if !weekdayNames[d] || seen[d] {
			return nil, false
		}
		seen[d] = true
		out = append(out, d)
	}

	return out, true
}
