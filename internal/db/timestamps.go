package db

import (
	"fmt"
	"time"
)

// TimestampLayout is the stored representation of every instant. All values
// are UTC so lexical order in SQL matches chronological order.
const TimestampLayout = "2006-01-02T15:04:05Z"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func ParseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, value)
	if err != nil {
		// Rows written by hand may carry an offset.
		if alt, altErr := time.Parse(time.RFC3339, value); altErr == nil {
			return alt.UTC(), nil
		}
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return t, nil
}
