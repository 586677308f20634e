package helpers

import (
	"strconv"
	"strings"
)

// StringTrim normalizes path parameters that clients sometimes send quoted.
func StringTrim(s string) string {
	s = strings.TrimSpace(s)
	return strings.Trim(s, "\"'")
}

// ParseID parses a positive numeric record id.
func ParseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(StringTrim(raw), 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ParsePage parses a 1-based page number. An empty value means page 1.
func ParsePage(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}
