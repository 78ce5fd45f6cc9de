package repository

import (
	"fmt"
	"time"
)

// timestampLayout is fixed width, so text order in SQLite matches time order.
const timestampLayout = "2006-01-02 15:04:05.000000000"

// formatTimestamp stores t in UTC; zero times become now.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(timestampLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
