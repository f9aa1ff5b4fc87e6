package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/codr1/CourtPlay/internal/db"
	dbgen "github.com/codr1/CourtPlay/internal/db/generated"
)

// Courts, price entries and maintenance blocks are plain rows, but their
// writes share the booking error types so handlers map them the same way.

func (m *Manager) ListCourts(ctx context.Context, env Environment) ([]Court, error) {
	rows, err := m.db.Queries.ListCourts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}
	return FilterCourts(courtsFromDB(rows), env), nil
}

func (m *Manager) GetCourt(ctx context.Context, id int64) (Court, error) {
	row, err := m.db.Queries.GetCourt(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Court{}, NotFoundError{Resource: "court", ID: id}
		}
		return Court{}, fmt.Errorf("load court: %w", err)
	}
	return courtFromDB(row), nil
}

func (m *Manager) CreateCourt(ctx context.Context, court Court) (Court, error) {
	if court.Status == "" {
		court.Status = "open"
	}
	if err := validateCourt(court); err != nil {
		return Court{}, err
	}
	row, err := m.db.Queries.CreateCourt(ctx, dbgen.CreateCourtParams{
		Name:    court.Name,
		Outdoor: court.Outdoor,
		Status:  court.Status,
		Note:    nullString(court.Note),
	})
	if err != nil {
		return Court{}, fmt.Errorf("create court: %w", err)
	}
	return courtFromDB(row), nil
}

func (m *Manager) UpdateCourt(ctx context.Context, id int64, patch CourtPatch) (Court, error) {
	var updated Court
	err := m.db.RunInTx(ctx, func(txdb *db.DB) error {
		row, err := txdb.Queries.GetCourt(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return NotFoundError{Resource: "court", ID: id}
			}
			return fmt.Errorf("load court: %w", err)
		}
		court, err := patch.Apply(courtFromDB(row))
		if err != nil {
			return err
		}
		row, err = txdb.Queries.UpdateCourt(ctx, dbgen.UpdateCourtParams{
			Name:    court.Name,
			Outdoor: court.Outdoor,
			Status:  court.Status,
			Note:    nullString(court.Note),
			ID:      id,
		})
		if err != nil {
			return fmt.Errorf("update court: %w", err)
		}
		updated = courtFromDB(row)
		return nil
	})
	return updated, err
}

func (m *Manager) DeleteCourt(ctx context.Context, id int64) error {
	affected, err := m.db.Queries.DeleteCourt(ctx, id)
	if err != nil {
		if db.IsConstraintViolation(err) {
			return ValidationError{Field: "court", Reason: "still has reservations"}
		}
		return fmt.Errorf("delete court: %w", err)
	}
	if affected == 0 {
		return NotFoundError{Resource: "court", ID: id}
	}
	return nil
}

func (m *Manager) ListPriceEntries(ctx context.Context) ([]PriceEntry, error) {
	rows, err := m.db.Queries.ListPriceListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list price entries: %w", err)
	}
	return priceEntriesFromDB(rows)
}

func (m *Manager) CreatePriceEntry(ctx context.Context, entry PriceEntry) (PriceEntry, error) {
	if err := validatePriceEntry(entry); err != nil {
		return PriceEntry{}, err
	}
	row, err := m.db.Queries.CreatePriceListEntry(ctx, dbgen.CreatePriceListEntryParams{
		DurationMin:      int64(entry.DurationMin),
		OpeningTime:      entry.Opening.String(),
		ClosingTime:      entry.Closing.String(),
		BasePriceCents:   entry.BasePriceCents,
		IndoorMultiplier: entry.IndoorMultiplier,
	})
	if err != nil {
		return PriceEntry{}, fmt.Errorf("create price entry: %w", err)
	}
	return priceEntryFromDB(row)
}

func (m *Manager) UpdatePriceEntry(ctx context.Context, id int64, patch PriceEntryPatch) (PriceEntry, error) {
	var updated PriceEntry
	err := m.db.RunInTx(ctx, func(txdb *db.DB) error {
		row, err := txdb.Queries.GetPriceListEntry(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return NotFoundError{Resource: "price entry", ID: id}
			}
			return fmt.Errorf("load price entry: %w", err)
		}
		current, err := priceEntryFromDB(row)
		if err != nil {
			return err
		}
		entry, err := patch.Apply(current)
		if err != nil {
			return err
		}
		row, err = txdb.Queries.UpdatePriceListEntry(ctx, dbgen.UpdatePriceListEntryParams{
			DurationMin:      int64(entry.DurationMin),
			OpeningTime:      entry.Opening.String(),
			ClosingTime:      entry.Closing.String(),
			BasePriceCents:   entry.BasePriceCents,
			IndoorMultiplier: entry.IndoorMultiplier,
			ID:               id,
		})
		if err != nil {
			return fmt.Errorf("update price entry: %w", err)
		}
		updated, err = priceEntryFromDB(row)
		return err
	})
	return updated, err
}

func (m *Manager) DeletePriceEntry(ctx context.Context, id int64) error {
	affected, err := m.db.Queries.DeletePriceListEntry(ctx, id)
	if err != nil {
		if db.IsConstraintViolation(err) {
			return ValidationError{Field: "price entry", Reason: "is used by existing reservations"}
		}
		return fmt.Errorf("delete price entry: %w", err)
	}
	if affected == 0 {
		return NotFoundError{Resource: "price entry", ID: id}
	}
	return nil
}

type TimeBlockView struct {
	TimeBlock
	CourtName string
}

func (m *Manager) ListTimeBlocks(ctx context.Context) ([]TimeBlockView, error) {
	rows, err := m.db.Queries.ListTimeBlocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list time blocks: %w", err)
	}
	views := make([]TimeBlockView, 0, len(rows))
	for _, row := range rows {
		block, err := timeBlockFromDB(dbgen.TimeBlock{
			ID:        row.ID,
			CourtID:   row.CourtID,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
			Reason:    row.Reason,
		})
		if err != nil {
			return nil, err
		}
		views = append(views, TimeBlockView{TimeBlock: block, CourtName: row.CourtName})
	}
	return views, nil
}

func (m *Manager) CreateTimeBlock(ctx context.Context, block TimeBlock) (TimeBlock, error) {
	if err := validateTimeBlock(block); err != nil {
		return TimeBlock{}, err
	}
	var created TimeBlock
	err := m.db.RunInTx(ctx, func(txdb *db.DB) error {
		if _, err := txdb.Queries.GetCourt(ctx, block.CourtID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return NotFoundError{Resource: "court", ID: block.CourtID}
			}
			return fmt.Errorf("load court: %w", err)
		}
		row, err := txdb.Queries.CreateTimeBlock(ctx, dbgen.CreateTimeBlockParams{
			CourtID:   block.CourtID,
			StartTime: db.FormatTimestamp(block.Start),
			EndTime:   db.FormatTimestamp(block.End),
			Reason:    nullString(block.Reason),
		})
		if err != nil {
			return fmt.Errorf("create time block: %w", err)
		}
		created, err = timeBlockFromDB(row)
		return err
	})
	return created, err
}

func (m *Manager) UpdateTimeBlock(ctx context.Context, id int64, patch TimeBlockPatch) (TimeBlock, error) {
	var updated TimeBlock
	err := m.db.RunInTx(ctx, func(txdb *db.DB) error {
		row, err := txdb.Queries.GetTimeBlock(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return NotFoundError{Resource: "time block", ID: id}
			}
			return fmt.Errorf("load time block: %w", err)
		}
		current, err := timeBlockFromDB(row)
		if err != nil {
			return err
		}
		block, err := patch.Apply(current)
		if err != nil {
			return err
		}
		if block.CourtID != current.CourtID {
			if _, err := txdb.Queries.GetCourt(ctx, block.CourtID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return NotFoundError{Resource: "court", ID: block.CourtID}
				}
				return fmt.Errorf("load court: %w", err)
			}
		}
		row, err = txdb.Queries.UpdateTimeBlock(ctx, dbgen.UpdateTimeBlockParams{
			CourtID:   block.CourtID,
			StartTime: db.FormatTimestamp(block.Start),
			EndTime:   db.FormatTimestamp(block.End),
			Reason:    nullString(block.Reason),
			ID:        id,
		})
		if err != nil {
			return fmt.Errorf("update time block: %w", err)
		}
		updated, err = timeBlockFromDB(row)
		return err
	})
	return updated, err
}

func (m *Manager) DeleteTimeBlock(ctx context.Context, id int64) error {
	affected, err := m.db.Queries.DeleteTimeBlock(ctx, id)
	if err != nil {
		return fmt.Errorf("delete time block: %w", err)
	}
	if affected == 0 {
		return NotFoundError{Resource: "time block", ID: id}
	}
	return nil
}

func (m *Manager) GetPriceEntry(ctx context.Context, id int64) (PriceEntry, error) {
	row, err := m.db.Queries.GetPriceListEntry(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PriceEntry{}, NotFoundError{Resource: "price entry", ID: id}
		}
		return PriceEntry{}, fmt.Errorf("load price entry: %w", err)
	}
	return priceEntryFromDB(row)
}

func (m *Manager) GetTimeBlock(ctx context.Context, id int64) (TimeBlock, error) {
	row, err := m.db.Queries.GetTimeBlock(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TimeBlock{}, NotFoundError{Resource: "time block", ID: id}
		}
		return TimeBlock{}, fmt.Errorf("load time block: %w", err)
	}
	return timeBlockFromDB(row)
}
