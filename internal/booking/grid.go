package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/codr1/CourtPlay/internal/db"
	dbgen "github.com/codr1/CourtPlay/internal/db/generated"
)

type SlotStatus string

const (
	SlotFree    SlotStatus = "free"
	SlotMine    SlotStatus = "mine"
	SlotBusy    SlotStatus = "busy"
	SlotBlocked SlotStatus = "blocked"
	SlotPast    SlotStatus = "past"
)

type Environment string

const (
	EnvAll     Environment = "all"
	EnvIndoor  Environment = "indoor"
	EnvOutdoor Environment = "outdoor"
)

// ParseEnvironment treats an empty value as EnvAll.
func ParseEnvironment(raw string) (Environment, error) {
	switch env := Environment(strings.ToLower(strings.TrimSpace(raw))); env {
	case "":
		return EnvAll, nil
	case EnvAll, EnvIndoor, EnvOutdoor:
		return env, nil
	}
	return "", ValidationError{Field: "env", Reason: "must be all, indoor or outdoor"}
}

// FilterCourts keeps the courts matching env, preserving order.
func FilterCourts(courts []Court, env Environment) []Court {
	if env == EnvAll || env == "" {
		return courts
	}
	wantOutdoor := env == EnvOutdoor
	filtered := make([]Court, 0, len(courts))
	for _, court := range courts {
		if court.Outdoor == wantOutdoor {
			filtered = append(filtered, court)
		}
	}
	return filtered
}

type GridConfig struct {
	Location    *time.Location
	Opening     TimeOfDay
	Closing     TimeOfDay
	SlotMinutes int
}

func (c GridConfig) validate() error {
	if c.Location == nil {
		return fmt.Errorf("grid location is required")
	}
	if c.SlotMinutes <= 0 {
		return fmt.Errorf("grid slot length must be positive")
	}
	if c.Opening >= c.Closing {
		return fmt.Errorf("grid opening %s must be before closing %s", c.Opening, c.Closing)
	}
	return nil
}

// Window returns the opening and closing instants of day.
func (c GridConfig) Window(day time.Time) (time.Time, time.Time) {
	return c.Opening.On(day, c.Location), c.Closing.On(day, c.Location)
}

type Slot struct {
	Label string
	Start time.Time
	End   time.Time
}

type Cell struct {
	Status SlotStatus
	// ReservationID is set on cells the viewer owns.
	ReservationID int64
}

type GridRow struct {
	Court Court
	Cells []Cell
}

type Grid struct {
	Day   time.Time
	Slots []Slot
	Rows  []GridRow
}

type GridInput struct {
	Day          time.Time
	Now          time.Time
	ViewerID     int64
	Courts       []Court
	Reservations []Reservation
	Blocks       []TimeBlock
}

// Slots steps from opening to closing (exclusive) in fixed increments.
// Boundaries are built from wall-clock times so a DST change inside the
// window still yields slots that start on the labelled hour.
func (c GridConfig) Slots(day time.Time) []Slot {
	var slots []Slot
	for t := c.Opening; t < c.Closing; t += TimeOfDay(c.SlotMinutes) {
		next := t + TimeOfDay(c.SlotMinutes)
		if next > c.Closing {
			next = c.Closing
		}
		slots = append(slots, Slot{
			Label: t.String(),
			Start: t.On(day, c.Location),
			End:   next.On(day, c.Location),
		})
	}
	return slots
}

// BuildGrid computes per-court slot statuses for one day.
//
// Blocks and reservations shade every slot they touch: rounding an interval
// outward to slot boundaries covers exactly the slots it overlaps.
// Precedence is blocked > mine/busy > past > free.
func BuildGrid(cfg GridConfig, in GridInput) Grid {
	slots := cfg.Slots(in.Day)
	grid := Grid{
		Day:   StartOfDay(in.Day, cfg.Location),
		Slots: slots,
		Rows:  make([]GridRow, 0, len(in.Courts)),
	}

	today := StartOfDay(in.Now, cfg.Location)
	dayInPast := grid.Day.Before(today)
	isToday := grid.Day.Equal(today)

	rowIndex := make(map[int64]int, len(in.Courts))
	for _, court := range in.Courts {
		cells := make([]Cell, len(slots))
		for i, slot := range slots {
			cells[i].Status = SlotFree
			if dayInPast || (isToday && !slot.Start.After(in.Now)) {
				cells[i].Status = SlotPast
			}
		}
		rowIndex[court.ID] = len(grid.Rows)
		grid.Rows = append(grid.Rows, GridRow{Court: court, Cells: cells})
	}

	for _, res := range in.Reservations {
		if !res.State.Active() {
			continue
		}
		idx, ok := rowIndex[res.CourtID]
		if !ok {
			continue
		}
		cells := grid.Rows[idx].Cells
		mine := in.ViewerID != 0 && res.UserID == in.ViewerID
		for i, slot := range slots {
			if !Overlaps(slot.Start, slot.End, res.Start, res.End) {
				continue
			}
			if cells[i].Status == SlotMine {
				continue
			}
			if mine {
				cells[i] = Cell{Status: SlotMine, ReservationID: res.ID}
			} else {
				cells[i] = Cell{Status: SlotBusy}
			}
		}
	}

	for _, block := range in.Blocks {
		idx, ok := rowIndex[block.CourtID]
		if !ok {
			continue
		}
		cells := grid.Rows[idx].Cells
		for i, slot := range slots {
			if Overlaps(slot.Start, slot.End, block.Start, block.End) {
				cells[i] = Cell{Status: SlotBlocked}
			}
		}
	}

	return grid
}

// DayGrid loads the courts matching env together with the day's active
// reservations and blocks and builds the grid as seen by viewerID.
func (m *Manager) DayGrid(ctx context.Context, day time.Time, env Environment, viewerID int64) (Grid, error) {
	dbCourts, err := m.db.Queries.ListCourts(ctx)
	if err != nil {
		return Grid{}, fmt.Errorf("list courts: %w", err)
	}
	courts := FilterCourts(courtsFromDB(dbCourts), env)

	windowStart, windowEnd := m.grid.Window(day)
	rangeStart := db.FormatTimestamp(windowStart)
	rangeEnd := db.FormatTimestamp(windowEnd)

	resRows, err := m.db.Queries.ListActiveReservationsInRange(ctx, dbgen.ListActiveReservationsInRangeParams{
		RangeEnd:   rangeEnd,
		RangeStart: rangeStart,
	})
	if err != nil {
		return Grid{}, fmt.Errorf("list reservations: %w", err)
	}
	reservations := make([]Reservation, 0, len(resRows))
	for _, row := range resRows {
		start, err := db.ParseTimestamp(row.StartTime)
		if err != nil {
			return Grid{}, err
		}
		end, err := db.ParseTimestamp(row.EndTime)
		if err != nil {
			return Grid{}, err
		}
		reservations = append(reservations, Reservation{
			ID:      row.ID,
			CourtID: row.CourtID,
			UserID:  row.UserID,
			Start:   start,
			End:     end,
			State:   State(row.State),
		})
	}

	blockRows, err := m.db.Queries.ListTimeBlocksInRange(ctx, dbgen.ListTimeBlocksInRangeParams{
		RangeEnd:   rangeEnd,
		RangeStart: rangeStart,
	})
	if err != nil {
		return Grid{}, fmt.Errorf("list time blocks: %w", err)
	}
	blocks := make([]TimeBlock, 0, len(blockRows))
	for _, row := range blockRows {
		block, err := timeBlockFromDB(row)
		if err != nil {
			return Grid{}, err
		}
		blocks = append(blocks, block)
	}

	return BuildGrid(m.grid, GridInput{
		Day:          day,
		Now:          m.clock.Now(),
		ViewerID:     viewerID,
		Courts:       courts,
		Reservations: reservations,
		Blocks:       blocks,
	}), nil
}
