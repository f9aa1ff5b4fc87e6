package booking

import (
	"database/sql"
	"fmt"

	"github.com/codr1/CourtPlay/internal/db"
	dbgen "github.com/codr1/CourtPlay/internal/db/generated"
)

func courtFromDB(row dbgen.Court) Court {
	return Court{
		ID:      row.ID,
		Name:    row.Name,
		Outdoor: row.Outdoor,
		Status:  row.Status,
		Note:    row.Note.String,
	}
}

func courtsFromDB(rows []dbgen.Court) []Court {
	courts := make([]Court, 0, len(rows))
	for _, row := range rows {
		courts = append(courts, courtFromDB(row))
	}
	return courts
}

func priceEntryFromDB(row dbgen.PriceListEntry) (PriceEntry, error) {
	opening, err := ParseTimeOfDay(row.OpeningTime)
	if err != nil {
		return PriceEntry{}, fmt.Errorf("price entry %d opening: %w", row.ID, err)
	}
	closing, err := ParseTimeOfDay(row.ClosingTime)
	if err != nil {
		return PriceEntry{}, fmt.Errorf("price entry %d closing: %w", row.ID, err)
	}
	return PriceEntry{
		ID:               row.ID,
		DurationMin:      int(row.DurationMin),
		Opening:          opening,
		Closing:          closing,
		BasePriceCents:   row.BasePriceCents,
		IndoorMultiplier: row.IndoorMultiplier,
	}, nil
}

func priceEntriesFromDB(rows []dbgen.PriceListEntry) ([]PriceEntry, error) {
	entries := make([]PriceEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := priceEntryFromDB(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func timeBlockFromDB(row dbgen.TimeBlock) (TimeBlock, error) {
	start, err := db.ParseTimestamp(row.StartTime)
	if err != nil {
		return TimeBlock{}, err
	}
	end, err := db.ParseTimestamp(row.EndTime)
	if err != nil {
		return TimeBlock{}, err
	}
	return TimeBlock{
		ID:      row.ID,
		CourtID: row.CourtID,
		Start:   start,
		End:     end,
		Reason:  row.Reason.String,
	}, nil
}

func reservationFromDB(row dbgen.Reservation) (Reservation, error) {
	start, err := db.ParseTimestamp(row.StartTime)
	if err != nil {
		return Reservation{}, err
	}
	end, err := db.ParseTimestamp(row.EndTime)
	if err != nil {
		return Reservation{}, err
	}
	createdAt, err := db.ParseTimestamp(row.CreatedAt)
	if err != nil {
		return Reservation{}, err
	}
	return Reservation{
		ID:              row.ID,
		CourtID:         row.CourtID,
		UserID:          row.UserID,
		PriceEntryID:    row.PriceListEntryID,
		Start:           start,
		End:             end,
		PriceTotalCents: row.PriceTotalCents,
		State:           State(row.State),
		CreatedAt:       createdAt,
	}, nil
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
