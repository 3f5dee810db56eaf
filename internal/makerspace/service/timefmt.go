package service

import (
	"strings"
	"time"
)

// EventTimeLayout is the controller log timestamp format. Values are UTC.
const EventTimeLayout = "2006-01-02 15:04:05"

const dateLayout = "2006-01-02"

func parseEventTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{EventTimeLayout, time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseRangeBound accepts a date, a controller timestamp or RFC3339. A bare
// date used as an end bound covers the whole day.
func parseRangeBound(s string, isEnd bool) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		if isEnd {
			return t.Add(24*time.Hour - time.Millisecond), true
		}
		return t, true
	}
	return parseEventTime(s)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
