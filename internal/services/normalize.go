package services

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// whitespaceRE collapses consecutive whitespace to a single space.
var whitespaceRE = regexp.MustCompile(`\s+`)

// clean converts s to NFC, trims it and collapses inner whitespace. Names
// typed with combining accents then compare equal to precomposed ones.
func clean(s string) string {
	s = norm.NFC.String(s)
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
}

// cleanMultiline is clean without collapsing line breaks, for notes.
func cleanMultiline(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// optional returns nil for a blank value so it is stored as NULL.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := clean(*s)
	if v == "" {
		return nil
	}
	return &v
}

// optionalText is optional for multi-line text.
func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	v := cleanMultiline(*s)
	if v == "" {
		return nil
	}
	return &v
}
