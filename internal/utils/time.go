package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// DateOnly trims a MySQL datetime string down to its date part.
func DateOnly(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= len(layoutDate) {
		return s[:len(layoutDate)]
	}
	return s
}
