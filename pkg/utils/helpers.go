package utils

import (
	"strings"
	"time"
)

// ParseDuration safely parses duration strings like "5m"
func ParseDuration(d string) time.Duration {
	if d == "" {
		return 5 * time.Minute
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return 5 * time.Minute
	}
	return duration
}

// timestampLayouts are tried in order. The source workflow writes day-first
// German timestamps; ISO forms show up in re-exported files.
var timestampLayouts = []string{
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
}

// ParseTimestamp parses a timestamp cell using the day-first convention,
// falling back to ISO layouts. Returns nil when nothing matches.
func ParseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// ParseFlag interprets published-style flags: Ja/Nein from the German
// workflow plus the usual boolean spellings. Nil when the cell is empty
// or unrecognized.
func ParseFlag(s string) *bool {
	var v bool
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ja", "yes", "true", "1":
		v = true
	case "nein", "no", "false", "0":
		v = false
	default:
		return nil
	}
	return &v
}
