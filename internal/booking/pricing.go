package booking

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	dbgen "github.com/codr1/CourtPlay/internal/db/generated"
)

// ResolvePrice returns the first entry, by ascending id, whose duration equals
// durationMin and whose [Opening, Closing] contains [start, end].
func ResolvePrice(entries []PriceEntry, durationMin int, start, end TimeOfDay) (PriceEntry, bool) {
	ordered := make([]PriceEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	for _, entry := range ordered {
		if entry.DurationMin != durationMin {
			continue
		}
		if start >= entry.Opening && end <= entry.Closing {
			return entry, true
		}
	}
	return PriceEntry{}, false
}

// ComputePrice applies the indoor multiplier to courts that are not outdoor.
// The result is rounded to whole minor units.
func ComputePrice(entry PriceEntry, court Court) int64 {
	multiplier := 1.0
	if !court.Outdoor {
		multiplier = entry.IndoorMultiplier
	}
	return int64(math.Round(float64(entry.BasePriceCents) * multiplier))
}

// CheckDuration rejects an interval whose length differs from the entry's.
func CheckDuration(entry PriceEntry, start, end time.Time) error {
	actual := end.Sub(start)
	if actual != time.Duration(entry.DurationMin)*time.Minute {
		return ValidationError{
			Field:  "duration",
			Reason: fmt.Sprintf("of %d minutes does not match the %d minute price", int(actual.Minutes()), entry.DurationMin),
		}
	}
	return nil
}

// ResolvePrice finds the price entry for [start, end) in the booking time
// zone. A missing entry is reported as a ValidationError with a message fit
// for the user.
func (m *Manager) ResolvePrice(ctx context.Context, start, end time.Time) (PriceEntry, error) {
	return m.resolvePrice(ctx, m.db.Queries, start, end)
}

type priceQueries interface {
	ListPriceListEntriesByDuration(ctx context.Context, durationMin int64) ([]dbgen.PriceListEntry, error)
}

func (m *Manager) resolvePrice(ctx context.Context, q priceQueries, start, end time.Time) (PriceEntry, error) {
	durationMin := int(end.Sub(start) / time.Minute)
	rows, err := q.ListPriceListEntriesByDuration(ctx, int64(durationMin))
	if err != nil {
		return PriceEntry{}, fmt.Errorf("list price entries: %w", err)
	}
	entries, err := priceEntriesFromDB(rows)
	if err != nil {
		return PriceEntry{}, err
	}

	from, to := spanOfDay(start, end, m.grid.Location)
	entry, ok := ResolvePrice(entries, durationMin, from, to)
	if !ok {
		return PriceEntry{}, ValidationError{
			Field:  "price",
			Reason: fmt.Sprintf("is not configured for %d minutes between %s and %s", durationMin, from, to),
		}
	}
	return entry, nil
}
