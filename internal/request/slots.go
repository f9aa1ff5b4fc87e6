package request

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/codr1/CourtPlay/internal/booking"
)

// SelectedSlot is one grid cell picked in the calendar. Duration is in
// minutes; zero means the form's duration.
type SelectedSlot struct {
	CourtID  int64  `json:"court_id"`
	Start    string `json:"start"`
	Duration int    `json:"duration"`
}

// ParseSelectedSlots decodes the selected_slots JSON array.
func ParseSelectedSlots(raw string) ([]SelectedSlot, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var slots []SelectedSlot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, booking.ValidationError{Field: "selected_slots", Reason: "must be a JSON array of slots"}
	}
	return slots, nil
}

// ParseSlotValues decodes checkbox values of the form "<court_id>@HH:MM".
func ParseSlotValues(values []string) ([]SelectedSlot, error) {
	slots := make([]SelectedSlot, 0, len(values))
	for _, value := range values {
		courtRaw, start, ok := strings.Cut(strings.TrimSpace(value), "@")
		courtID, err := strconv.ParseInt(courtRaw, 10, 64)
		if !ok || err != nil || courtID <= 0 {
			return nil, booking.ValidationError{Field: "slot", Reason: fmt.Sprintf("%q is not a court and start time", value)}
		}
		slots = append(slots, SelectedSlot{CourtID: courtID, Start: start})
	}
	return slots, nil
}

// ParseDuration reads a duration in minutes and checks it against the
// offered durations.
func ParseDuration(raw string, allowed []int) (int, error) {
	minutes, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || minutes <= 0 {
		return 0, booking.ValidationError{Field: "duration", Reason: "must be a positive number of minutes"}
	}
	if len(allowed) > 0 && !containsInt(allowed, minutes) {
		return 0, booking.ValidationError{Field: "duration", Reason: fmt.Sprintf("of %d minutes is not offered", minutes)}
	}
	return minutes, nil
}

// BatchItems turns selected cells on day into booking intervals.
func BatchItems(slots []SelectedSlot, day time.Time, duration int, loc *time.Location) ([]booking.BatchItem, error) {
	items := make([]booking.BatchItem, 0, len(slots))
	for i, slot := range slots {
		if slot.CourtID <= 0 {
			return nil, booking.BatchError{Item: i, Err: booking.ValidationError{Field: "court_id", Reason: "is required"}}
		}
		tod, err := booking.ParseTimeOfDay(strings.TrimSpace(slot.Start))
		if err != nil {
			return nil, booking.BatchError{Item: i, Err: booking.ValidationError{Field: "start", Reason: "must be HH:MM"}}
		}
		minutes := slot.Duration
		if minutes == 0 {
			minutes = duration
		}
		if minutes <= 0 {
			return nil, booking.BatchError{Item: i, Err: booking.ValidationError{Field: "duration", Reason: "must be a positive number of minutes"}}
		}
		start := tod.On(day, loc)
		items = append(items, booking.BatchItem{
			CourtID: slot.CourtID,
			Start:   start,
			End:     (tod + booking.TimeOfDay(minutes)).On(day, loc),
		})
	}
	return items, nil
}

func containsInt(values []int, target int) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
