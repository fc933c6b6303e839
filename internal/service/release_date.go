package service

import (
	"regexp"
	"strings"
	"time"
)

var ordinalSuffix = regexp.MustCompile(`(\d)(st|nd|rd|th)\b`)

// ParseReleaseDate parses dates such as "1st January 2020". It returns nil
// for blank or unparsable input.
func ParseReleaseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	cleaned := ordinalSuffix.ReplaceAllString(raw, "${1}")
	t, err := time.Parse("2 January 2006", cleaned)
	if err != nil {
		return nil
	}
	return &t
}
