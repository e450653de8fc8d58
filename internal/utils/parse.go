// Package utils provides small parsing helpers for request parameters.
package utils

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID reports a path id that is not a positive integer.
var ErrInvalidID = errors.New("id must be a positive integer")

// ParseID parses a positive row id from a path segment.
func ParseID(s string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 || n > uint64(^uint(0)) {
		return 0, ErrInvalidID
	}
	return uint(n), nil
}

// AtoiDefault converts s with strconv.Atoi, returning def when s is empty
// or not an integer.
//
//	n := utils.AtoiDefault("12", 6) // 12
//	n = utils.AtoiDefault("", 6)    // 6
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
