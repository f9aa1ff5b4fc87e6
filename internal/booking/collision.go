package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codr1/CourtPlay/internal/db"
	dbgen "github.com/codr1/CourtPlay/internal/db/generated"
)

// Overlaps applies the open-overlap rule: intervals that only touch at an
// endpoint do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ConflictQueries is the subset of generated queries the collision check runs.
type ConflictQueries interface {
	CountOverlappingReservations(ctx context.Context, arg dbgen.CountOverlappingReservationsParams) (int64, error)
	CountOverlappingTimeBlocks(ctx context.Context, arg dbgen.CountOverlappingTimeBlocksParams) (int64, error)
}

// noReservation never matches a stored id, so nothing is excluded.
const noReservation int64 = 0

// findConflict checks [start, end) on courtID against active reservations
// (other than excludeID) and every maintenance block. It returns a
// ConflictError when the interval is taken.
func findConflict(ctx context.Context, q ConflictQueries, courtID int64, start, end time.Time, excludeID int64) error {
	startText := db.FormatTimestamp(start)
	endText := db.FormatTimestamp(end)

	blocks, err := q.CountOverlappingTimeBlocks(ctx, dbgen.CountOverlappingTimeBlocksParams{
		CourtID:   courtID,
		EndTime:   endText,
		StartTime: startText,
	})
	if err != nil {
		return fmt.Errorf("count overlapping time blocks: %w", err)
	}
	if blocks > 0 {
		return ConflictError{CourtID: courtID, Start: start, End: end, Blocked: true}
	}

	reservations, err := q.CountOverlappingReservations(ctx, dbgen.CountOverlappingReservationsParams{
		CourtID:   courtID,
		ExcludeID: excludeID,
		EndTime:   endText,
		StartTime: startText,
	})
	if err != nil {
		return fmt.Errorf("count overlapping reservations: %w", err)
	}
	if reservations > 0 {
		return ConflictError{CourtID: courtID, Start: start, End: end}
	}
	return nil
}

// HasConflict reports whether [start, end) on courtID collides with an active
// reservation or a maintenance block.
func (m *Manager) HasConflict(ctx context.Context, courtID int64, start, end time.Time) (bool, error) {
	err := findConflict(ctx, m.db.Queries, courtID, start, end, noReservation)
	if err == nil {
		return false, nil
	}
	var conflict ConflictError
	if errors.As(err, &conflict) {
		return true, nil
	}
	return false, err
}

// ConflictsWith is the in-memory form of the collision rule: cancelled
// reservations never conflict and blocks always do.
func ConflictsWith(courtID int64, start, end time.Time, reservations []Reservation, blocks []TimeBlock) bool {
	for _, block := range blocks {
		if block.CourtID == courtID && Overlaps(start, end, block.Start, block.End) {
			return true
		}
	}
	for _, res := range reservations {
		if res.CourtID == courtID && res.State.Active() && Overlaps(start, end, res.Start, res.End) {
			return true
		}
	}
	return false
}
