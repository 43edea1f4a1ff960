package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// Today returns now() as a calendar date; a nil clock means time.Now.
func Today(now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	return FormatDate(now())
}
