package booking

import (
	"context"
	"fmt"

	"github.com/codr1/CourtPlay/internal/db"
	dbgen "github.com/codr1/CourtPlay/internal/db/generated"
)

// ReservationView is a reservation joined with the names a listing shows.
type ReservationView struct {
	Reservation
	CourtName string
	UserName  string
	UserEmail string
}

// DefaultListLimit caps the administrative listing.
const DefaultListLimit = 200

// ListForUser returns every reservation of userID, newest first.
func (m *Manager) ListForUser(ctx context.Context, userID int64) ([]ReservationView, error) {
	rows, err := m.db.Queries.ListReservationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reservations for user: %w", err)
	}
	views := make([]dbgen.ListReservationsRow, 0, len(rows))
	for _, row := range rows {
		views = append(views, dbgen.ListReservationsRow(row))
	}
	return viewsFromRows(views)
}

// ListUpcomingForUser returns the active reservations of userID that have
// not ended yet, soonest first.
func (m *Manager) ListUpcomingForUser(ctx context.Context, userID int64) ([]ReservationView, error) {
	rows, err := m.db.Queries.ListUpcomingReservationsByUser(ctx, dbgen.ListUpcomingReservationsByUserParams{
		UserID: userID,
		Now:    db.FormatTimestamp(m.clock.Now()),
	})
	if err != nil {
		return nil, fmt.Errorf("list upcoming reservations for user: %w", err)
	}
	views := make([]dbgen.ListReservationsRow, 0, len(rows))
	for _, row := range rows {
		views = append(views, dbgen.ListReservationsRow(row))
	}
	return viewsFromRows(views)
}

// ListUpcoming returns everyone's active reservations that have not ended.
func (m *Manager) ListUpcoming(ctx context.Context) ([]ReservationView, error) {
	rows, err := m.db.Queries.ListUpcomingReservations(ctx, db.FormatTimestamp(m.clock.Now()))
	if err != nil {
		return nil, fmt.Errorf("list upcoming reservations: %w", err)
	}
	views := make([]dbgen.ListReservationsRow, 0, len(rows))
	for _, row := range rows {
		views = append(views, dbgen.ListReservationsRow(row))
	}
	return viewsFromRows(views)
}

// ListRecent returns up to limit reservations in any state, newest first.
func (m *Manager) ListRecent(ctx context.Context, limit int) ([]ReservationView, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := m.db.Queries.ListReservations(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return viewsFromRows(rows)
}

func viewsFromRows(rows []dbgen.ListReservationsRow) ([]ReservationView, error) {
	views := make([]ReservationView, 0, len(rows))
	for _, row := range rows {
		start, err := db.ParseTimestamp(row.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := db.ParseTimestamp(row.EndTime)
		if err != nil {
			return nil, err
		}
		createdAt, err := db.ParseTimestamp(row.CreatedAt)
		if err != nil {
			return nil, err
		}
		views = append(views, ReservationView{
			Reservation: Reservation{
				ID:              row.ID,
				CourtID:         row.CourtID,
				UserID:          row.UserID,
				Start:           start,
				End:             end,
				PriceTotalCents: row.PriceTotalCents,
				State:           State(row.State),
				CreatedAt:       createdAt,
			},
			CourtName: row.CourtName,
			UserName:  row.UserName,
			UserEmail: row.UserEmail,
		})
	}
	return views, nil
}
