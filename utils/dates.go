package utils

import (
	"strings"
	"time"
)

// MMDDYYYYToISO converts an upload date (MM/DD/YYYY) to ISO YYYY-MM-DD.
// Anything unparseable becomes "" — an unknown date, never an error. The
// quota engine sorts empty dates as least recent.
func MMDDYYYYToISO(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t, err := time.Parse("01/02/2006", s)
	if err != nil {
		// Already ISO? Keep it.
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t.Format("2006-01-02")
		}
		return ""
	}
	return t.Format("2006-01-02")
}
