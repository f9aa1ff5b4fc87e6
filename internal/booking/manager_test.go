package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/codr1/CourtPlay/internal/db"
	dbgen "github.com/codr1/CourtPlay/internal/db/generated"
	"github.com/codr1/CourtPlay/internal/models"
	"github.com/codr1/CourtPlay/internal/testutil"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

var testDay = time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC)

type managerFixture struct {
	manager *Manager
	db      *db.DB
	clock   *fakeClock
	player  Actor
	other   Actor
	staff   Actor
	admin   Actor
	indoor  dbgen.Court
	outdoor dbgen.Court
	hour    dbgen.PriceListEntry
}

func newManagerFixture(t *testing.T, policy StatePolicy) *managerFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	clock := &fakeClock{now: at(testDay, "07:30")}

	manager, err := NewManager(database, Config{Grid: testGrid, Policy: policy}, clock)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	player := testutil.CreateUser(t, database, "player@example.com", "USER")
	other := testutil.CreateUser(t, database, "other@example.com", "USER")
	staff := testutil.CreateUser(t, database, "staff@example.com", "MANAGER")
	admin := testutil.CreateUser(t, database, "admin@example.com", "ADMIN")

	return &managerFixture{
		manager: manager,
		db:      database,
		clock:   clock,
		player:  Actor{UserID: player.ID, Role: models.RoleUser},
		other:   Actor{UserID: other.ID, Role: models.RoleUser},
		staff:   Actor{UserID: staff.ID, Role: models.RoleManager},
		admin:   Actor{UserID: admin.ID, Role: models.RoleAdmin},
		indoor:  testutil.CreateCourt(t, database, "Hall", false),
		outdoor: testutil.CreateCourt(t, database, "Garden", true),
		hour:    testutil.CreatePriceEntry(t, database, 60, "08:00", "20:00", 500, 1.2),
	}
}

func (f *managerFixture) book(t *testing.T, actor Actor, courtID int64, start, end string) Reservation {
	t.Helper()
	res, err := f.manager.Create(context.Background(), CreateRequest{
		Actor:   actor,
		CourtID: courtID,
		Start:   at(testDay, start),
		End:     at(testDay, end),
		State:   StateConfirmed,
	})
	if err != nil {
		t.Fatalf("book %s-%s: %v", start, end, err)
	}
	return res
}

func TestCreatePricesIndoorAndOutdoorCourts(t *testing.T) {
	f := newManagerFixture(t, StatePolicy{})

	indoor := f.book(t, f.player, f.indoor.ID, "10:00", "11:00")
	if indoor.PriceTotalCents != 600 {
		t.Fatalf("indoor price: got %d want 600", indoor.PriceTotalCents)
	}
	if indoor.PriceEntryID != f.hour.ID {
		t.Fatalf("price entry: got %d want %d", indoor.PriceEntryID, f.hour.ID)
	}
	if !indoor.CreatedAt.Equal(f.clock.Now()) {
		t.Fatalf("created_at: got %v want %v", indoor.CreatedAt, f.clock.Now())
	}
	if indoor.State != StateConfirmed {
		t.Fatalf("state: got %s", indoor.State)
	}

	outdoor := f.book(t, f.player, f.outdoor.ID, "10:00", "11:00")
	if outdoor.PriceTotalCents != 500 {
		t.Fatalf("outdoor price: got %d want 500", outdoor.PriceTotalCents)
	}
}

func TestCreateRejectsOverlapAndAllowsAdjacent(t *testing.T) {
	f := newManagerFixture(t, StatePolicy{})
	ctx := context.Background()
	f.book(t, f.other, f.indoor.ID, "14:00", "15:00")

	_, err := f.manager.Create(ctx, CreateRequest{
		Actor:   f.player,
		CourtID: f.indoor.ID,
		Start:   at(testDay, "14:30"),
		End:     at(testDay, "15:30"),
	})
	var conflict ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.Blocked {
		t.Fatalf("conflict should come from a reservation")
	}

	before := f.book(t, f.player, f.indoor.ID, "13:00", "14:00")
	if before.ID == 0 {
		t.Fatalf("adjacent booking not created")
	}
	f.book(t, f.player, f.indoor.ID, "15:00", "16:00")

	// Another court is independent.
	f.book(t, f.player, f.outdoor.ID, "14:30", "15:30")
}

func TestCreateRejectsMaintenanceBlock(t *testing.T) {
	f := newManagerFixture(t, StatePolicy{})
	ctx := context.Background()
	if _, err := f.manager.CreateTimeBlock(ctx, TimeBlock{
		CourtID: f.indoor.ID,
		Start:   at(testDay, "09:45"),
		End:     at(testDay, "10:15"),
	}); err != nil {
		t.Fatalf("create block: %v", err)
	}

	_, err := f.manager.Create(ctx, CreateRequest{
		Actor:   f.player,
		CourtID: f.indoor.ID,
		Start:   at(testDay, "10:00"),
		End:     at(testDay, "11:00"),
	})
	var conflict ConflictError
	if !errors.As(err, &conflict) || !conflict.Blocked {
		t.Fatalf("expected blocked ConflictError, got %v", err)
	}

	conflicting, err := f.manager.HasConflict(ctx, f.indoor.ID, at(testDay, "09:00"), at(testDay, "09:45"))
	if err != nil || conflicting {
		t.Fatalf("touching block should not conflict: %v %v", conflicting, err)
	}
}

func TestCancelledReservationsNeverConflict(t *testing.T) {
	f := newManagerFixture(t, StatePolicy{})
	ctx := context.Background()
	res := f.book(t, f.other, f.indoor.ID, "10:00", "11:00")
	if _, err := f.manager.Cancel(ctx, f.other, res.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	conflicting, err := f.manager.HasConflict(ctx, f.indoor.ID, at(testDay, "10:00"), at(testDay, "11:00"))
	if err != nil {
		t.Fatalf("has conflict: %v", err)
	}
	if conflicting {
		t.Fatalf("cancelled reservation must not conflict")
	}
	f.book(t, f.player, f.indoor.ID, "10:00", "11:00")
}

func TestCreateValidation(t *testing.T) {
	f := newManagerFixture(t, StatePolicy{})
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateRequest
		want any
	}{
		{
			name: "end before start",
			req:  CreateRequest{Actor: f.player, CourtID: f.indoor.ID, Start: at(testDay, "11:00"), End: at(testDay, "10:00")},
			want: ValidationError{},
		},
		{
			name: "no price for evening",
			req:  CreateRequest{Actor: f.player, CourtID: f.indoor.ID, Start: at(testDay, "20:00"), End: at(testDay, "21:00")},
			want: ValidationError{},
		},
		{
			name: "no price for duration",
			req:  CreateRequest{Actor: f.player, CourtID: f.indoor.ID, Start: at(testDay, "10:00"), End: at(testDay, "11:30")},
			want: ValidationError{},
		},
		{
			name: "preselected entry with wrong duration",
			req:  CreateRequest{Actor: f.player, CourtID: f.indoor.ID, PriceEntryID: f.hour.ID, Start: at(testDay, "10:00"), End: at(testDay, "10:30")},
			want: ValidationError{},
		},
		{
			name: "preselected entry outside its hours",
			req:  CreateRequest{Actor: f.player, CourtID: f.indoor.ID, PriceEntryID: f.hour.ID, Start: at(testDay, "21:00"), End: at(testDay, "22:00")},
			want: ValidationError{},
		},
		{
			name: "in the past",
			req:  CreateRequest{Actor: f.player, CourtID: f.indoor.ID, Start: at(testDay.AddDate(0, 0, -1), "10:00"), End: at(testDay.AddDate(0, 0, -1), "11:00")},
			want: ValidationError{},
		},
		{
			name: "missing court",
			req:  CreateRequest{Actor: f.player, CourtID: 999, Start: at(testDay, "10:00"), End: at(testDay, "11:00")},
			want: NotFoundError{},
		},
		{
			name: "missing price entry",
			req:  CreateRequest{Actor: f.player, CourtID: f.indoor.ID, PriceEntryID: 999, Start: at(testDay, "10:00"), End: at(testDay, "11:00")},
			want: NotFoundError{},
		},
		{
			name: "player booking for someone else",
			req:  CreateRequest{Actor: f.player, OwnerID: f.other.UserID, CourtID: f.indoor.ID, Start: at(testDay, "10:00"), End: at(testDay, "11:00")},
			want: AuthorizationError{},
		},
		{
			name: "finished is not an initial state",
			req:  CreateRequest{Actor: f.player, CourtID: f.indoor.ID, Start: at(testDay, "10:00"), End: at(testDay, "11:00"), State: StateFinished},
			want: ValidationError{},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.manager.Create(ctx, tc.req)
			if err == nil {
				t.Fatalf("expected error")
			}
			switch tc.want.(type) {
			case ValidationError:
				var target ValidationError
				if !errors.As(err, &target) {
					t.Fatalf("expected ValidationError, got %T %v", err, err)
				}
			case NotFoundError:
				var target NotFoundError
				if !errors.As(err, &target) {
					t.Fatalf("expected NotFoundError, got %T %v", err, err)
				}
			case AuthorizationError:
				var target AuthorizationError
				if !errors.As(err, &target) {
					t.Fatalf("expected AuthorizationError, got %T %v", err, err)
				}
			}
		})
	}

	rows, err := f.db.Queries.ListReservations(ctx, 100)
	if err != nil {
		t.Fatalf("list reservations: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("failed creates must not persist, found %d rows", len(rows))
	}
}

func TestManagerBooksForAnotherUser(t *testing.T) {
	f := newManagerFixture(t, StatePolicy{})
	res, err := f.manager.Create(context.Background(), CreateRequest{
		Actor:   f.staff,
		OwnerID: f.player.UserID,
		CourtID: f.indoor.ID,
		Start:   at(testDay, "10:00"),
		End:     at(testDay, "11:00"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.UserID != f.player.UserID {
		t.Fatalf("owner: got %d want %d", res.UserID, f.player.UserID)
	}
	if res.State != StatePending {
		t.Fatalf("default state: got %s", res.State)
	}
}

func TestCreateBatchRollsBackOnConflict(t *testing.T) {
	f := newManagerFixture(t, StatePolicy{})
	ctx := context.Background()
	f.book(t, f.other, f.indoor.ID, "16:00", "17:00")

	_, err := f.manager.CreateBatch(ctx, f.player, []BatchItem{
		{CourtID: f.indoor.ID, Start: at(testDay, "10:00"), End: at(testDay, "11:00")},
		{CourtID: f.outdoor.ID, Start: at(testDay, "11:00"), End: at(testDay, "12:00")},
		{CourtID: f.indoor.ID, Start: at(testDay, "16:00"), End: at(testDay, "17:00")},
	}, StateConfirmed)

	var batchErr BatchError
	if !errors.As(err, &batchErr) {
		t.Fatalf("expected BatchError, got %v", err)
	}
	if batchErr.Item != 2 {
		t.Fatalf("failed item: got %d want 2", batchErr.Item)
	}
	var conflict ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected wrapped ConflictError, got %v", err)
	}

	rows, err := f.db.Queries.ListReservationsByUser(ctx, f.player.UserID)
	if err != nil {
		t.Fatalf("list reservations: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rolled back rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.State != string(StateCancelled) {
			t.Fatalf("reservation %d: state %s, want CANCELLED", row.ID, row.State)
		}
	}
}

func TestCreateBatchSucceeds(t *testing.T) {
	f := newManagerFixture(t, StatePolicy{})
	created, err := f.manager.CreateBatch(context.Background(), f.player, []BatchItem{
		{CourtID: f.indoor.ID, Start: at(testDay, "10:00"), End: at(testDay, "11:00")},
		{CourtID: f.indoor.ID, Start: at(testDay, "11:00"), End: at(testDay, "12:00")},
	}, StateConfirmed)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("created: got %d", len(created))
	}

	if _, err := f.manager.CreateBatch(context.Background(), f.player, nil, StateConfirmed); err == nil {
		t.Fatalf("expected error for empty batch")
	}
}

func TestCancel(t *testing.T) {
	f := newManagerFixture(t, StatePolicy{})
	ctx := context.Background()

	t.Run("owner cancels future reservation", func(t *testing.T) {
		res := f.book(t, f.player, f.indoor.ID, "10:00", "11:00")
		got, err := f.manager.Cancel(ctx, f.player, res.ID)
		if err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if got.State != StateCancelled {
			t.Fatalf("state: got %s", got.State)
		}
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		res := f.book(t, f.player, f.indoor.ID, "12:00", "13:00")
		first, err := f.manager.Cancel(ctx, f.player, res.ID)
		if err != nil {
			t.Fatalf("first cancel: %v", err)
		}
		second, err := f.manager.Cancel(ctx, f.player, res.ID)
		if err != nil {
			t.Fatalf("second cancel: %v", err)
		}
		if !first.Changed || first.From != StateConfirmed {
			t.Fatalf("first cancel should change CONFIRMED: %+v", first)
		}
		if second.Changed || second.From != StateCancelled {
			t.Fatalf("second cancel should not write: %+v", second)
		}
		if second.Reservation != first.Reservation {
			t.Fatalf("second cancel changed the reservation: %+v vs %+v", second, first)
		}
		if !second.CreatedAt.Equal(res.CreatedAt) || second.PriceTotalCents != res.PriceTotalCents {
			t.Fatalf("fields changed: %+v vs %+v", second, res)
		}
	})

	t.Run("other user is refused", func(t *testing.T) {
		res := f.book(t, f.player, f.indoor.ID, "14:00", "15:00")
		_, err := f.manager.Cancel(ctx, f.other, res.ID)
		var authz AuthorizationError
		if !errors.As(err, &authz) {
			t.Fatalf("expected AuthorizationError, got %v", err)
		}
		stored, err := f.manager.Get(ctx, res.ID)
		if err != nil || stored.State != StateConfirmed {
			t.Fatalf("reservation changed: %+v %v", stored, err)
		}
	})

	t.Run("manager cancels anyone's", func(t *testing.T) {
		res := f.book(t, f.player, f.indoor.ID, "16:00", "17:00")
		if _, err := f.manager.Cancel(ctx, f.staff, res.ID); err != nil {
			t.Fatalf("manager cancel: %v", err)
		}
	})

	t.Run("missing reservation", func(t *testing.T) {
		_, err := f.manager.Cancel(ctx, f.player, 9999)
		var notFound NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})
}

func TestCancelPastReservationFails(t *testing.T) {
	f := newManagerFixture(t, StatePolicy{})
	ctx := context.Background()
	res := f.book(t, f.player, f.indoor.ID, "10:00", "11:00")

	for _, now := range []string{"10:00", "10:30", "12:00"} {
		f.clock.Set(at(testDay, now))
		for _, actor := range []Actor{f.player, f.admin} {
			_, err := f.manager.Cancel(ctx, actor, res.ID)
			var validation ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("now %s: expected ValidationError, got %v", now, err)
			}
			if validation.Reason != "cannot cancel past reservation" {
				t.Fatalf("reason: got %q", validation.Reason)
			}
		}
	}

	stored, err := f.manager.Get(ctx, res.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.State != StateConfirmed {
		t.Fatalf("state changed to %s", stored.State)
	}
}

func TestChangeState(t *testing.T) {
	ctx := context.Background()

	t.Run("requires manager", func(t *testing.T) {
		f := newManagerFixture(t, StatePolicy{})
		res := f.book(t, f.player, f.indoor.ID, "10:00", "11:00")
		_, err := f.manager.ChangeState(ctx, f.player, res.ID, StateFinished)
		var authz AuthorizationError
		if !errors.As(err, &authz) {
			t.Fatalf("expected AuthorizationError, got %v", err)
		}
	})

	t.Run("rejects pending target", func(t *testing.T) {
		f := newManagerFixture(t, StatePolicy{})
		res := f.book(t, f.player, f.indoor.ID, "10:00", "11:00")
		_, err := f.manager.ChangeState(ctx, f.staff, res.ID, StatePending)
		var validation ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("unguarded cancel of past reservation", func(t *testing.T) {
		f := newManagerFixture(t, StatePolicy{})
		res := f.book(t, f.player, f.indoor.ID, "10:00", "11:00")
		f.clock.Set(at(testDay, "12:00"))
		got, err := f.manager.ChangeState(ctx, f.staff, res.ID, StateCancelled)
		if err != nil {
			t.Fatalf("change state: %v", err)
		}
		if got.State != StateCancelled {
			t.Fatalf("state: got %s", got.State)
		}
	})

	t.Run("guarded cancel of past reservation", func(t *testing.T) {
		f := newManagerFixture(t, StatePolicy{GuardPastCancellation: true})
		res := f.book(t, f.player, f.indoor.ID, "10:00", "11:00")
		f.clock.Set(at(testDay, "12:00"))
		_, err := f.manager.ChangeState(ctx, f.staff, res.ID, StateCancelled)
		var validation ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, err := f.manager.ChangeState(ctx, f.staff, res.ID, StateFinished); err != nil {
			t.Fatalf("finish: %v", err)
		}
	})

	t.Run("reactivation disabled", func(t *testing.T) {
		f := newManagerFixture(t, StatePolicy{})
		res := f.book(t, f.player, f.indoor.ID, "10:00", "11:00")
		if _, err := f.manager.Cancel(ctx, f.player, res.ID); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		_, err := f.manager.ChangeState(ctx, f.admin, res.ID, StateConfirmed)
		var validation ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("reactivation rechecks the slot", func(t *testing.T) {
		f := newManagerFixture(t, StatePolicy{AllowReactivation: true})
		res := f.book(t, f.player, f.indoor.ID, "10:00", "11:00")
		if _, err := f.manager.Cancel(ctx, f.player, res.ID); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if _, err := f.manager.ChangeState(ctx, f.admin, res.ID, StateConfirmed); err != nil {
			t.Fatalf("reactivate free slot: %v", err)
		}
		if _, err := f.manager.Cancel(ctx, f.player, res.ID); err != nil {
			t.Fatalf("cancel again: %v", err)
		}
		f.book(t, f.other, f.indoor.ID, "10:30", "11:30")
		_, err := f.manager.ChangeState(ctx, f.admin, res.ID, StateConfirmed)
		var conflict ConflictError
		if !errors.As(err, &conflict) {
			t.Fatalf("expected ConflictError, got %v", err)
		}
	})
}

func TestDeleteRequiresAdmin(t *testing.T) {
	f := newManagerFixture(t, StatePolicy{})
	ctx := context.Background()
	res := f.book(t, f.player, f.indoor.ID, "10:00", "11:00")

	var authz AuthorizationError
	if err := f.manager.Delete(ctx, f.staff, res.ID); !errors.As(err, &authz) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}
	if err := f.manager.Delete(ctx, f.admin, res.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var notFound NotFoundError
	if err := f.manager.Delete(ctx, f.admin, res.ID); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestFinishElapsed(t *testing.T) {
	f := newManagerFixture(t, StatePolicy{})
	ctx := context.Background()
	early := f.book(t, f.player, f.indoor.ID, "10:00", "11:00")
	late := f.book(t, f.player, f.indoor.ID, "15:00", "16:00")

	f.clock.Set(at(testDay, "12:00"))
	finished, err := f.manager.FinishElapsed(ctx)
	if err != nil {
		t.Fatalf("finish elapsed: %v", err)
	}
	if finished != 1 {
		t.Fatalf("finished: got %d want 1", finished)
	}

	if got, _ := f.manager.Get(ctx, early.ID); got.State != StateFinished {
		t.Fatalf("early state: got %s", got.State)
	}
	if got, _ := f.manager.Get(ctx, late.ID); got.State != StateConfirmed {
		t.Fatalf("late state: got %s", got.State)
	}
}

func TestDayGridFromDatabase(t *testing.T) {
	f := newManagerFixture(t, StatePolicy{})
	ctx := context.Background()
	mine := f.book(t, f.player, f.indoor.ID, "10:00", "11:00")
	f.book(t, f.other, f.outdoor.ID, "10:00", "11:00")
	if _, err := f.manager.CreateTimeBlock(ctx, TimeBlock{
		CourtID: f.indoor.ID,
		Start:   at(testDay, "10:30"),
		End:     at(testDay, "12:00"),
	}); err != nil {
		t.Fatalf("create block: %v", err)
	}

	grid, err := f.manager.DayGrid(ctx, testDay, EnvAll, f.player.UserID)
	if err != nil {
		t.Fatalf("day grid: %v", err)
	}
	if len(grid.Rows) != 2 {
		t.Fatalf("rows: got %d", len(grid.Rows))
	}
	ten := slotIndex(t, grid, "10:00")
	half := slotIndex(t, grid, "10:30")

	indoor := grid.Rows[0]
	if indoor.Cells[ten].Status != SlotMine || indoor.Cells[ten].ReservationID != mine.ID {
		t.Fatalf("10:00 indoor: %+v", indoor.Cells[ten])
	}
	if indoor.Cells[half].Status != SlotBlocked {
		t.Fatalf("10:30 indoor: %+v", indoor.Cells[half])
	}
	if grid.Rows[1].Cells[ten].Status != SlotBusy {
		t.Fatalf("10:00 outdoor: %+v", grid.Rows[1].Cells[ten])
	}
	if indoor.Cells[slotIndex(t, grid, "07:00")].Status != SlotPast {
		t.Fatalf("07:00 should be past at 07:30")
	}

	outdoorOnly, err := f.manager.DayGrid(ctx, testDay, EnvOutdoor, f.player.UserID)
	if err != nil {
		t.Fatalf("outdoor grid: %v", err)
	}
	if len(outdoorOnly.Rows) != 1 || outdoorOnly.Rows[0].Court.ID != f.outdoor.ID {
		t.Fatalf("outdoor filter: %+v", outdoorOnly.Rows)
	}
}

func TestConcurrentBookingsOnSameSlot(t *testing.T) {
	f := newManagerFixture(t, StatePolicy{})
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.manager.Create(ctx, CreateRequest{
				Actor:   f.player,
				CourtID: f.indoor.ID,
				Start:   at(testDay, "10:00"),
				End:     at(testDay, "11:00"),
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		var conflict ConflictError
		if !errors.As(err, &conflict) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one booking, got %d", succeeded)
	}
}

func TestCatalogPatches(t *testing.T) {
	f := newManagerFixture(t, StatePolicy{})
	ctx := context.Background()

	name := "Main hall"
	court, err := f.manager.UpdateCourt(ctx, f.indoor.ID, CourtPatch{Name: &name})
	if err != nil {
		t.Fatalf("update court: %v", err)
	}
	if court.Name != name || court.Outdoor || court.Status != "open" {
		t.Fatalf("patched court: %+v", court)
	}

	empty := " "
	var validation ValidationError
	if _, err := f.manager.UpdateCourt(ctx, f.indoor.ID, CourtPatch{Name: &empty}); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	closing := MustParseTimeOfDay("07:00")
	if _, err := f.manager.UpdatePriceEntry(ctx, f.hour.ID, PriceEntryPatch{Closing: &closing}); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	base := int64(800)
	entry, err := f.manager.UpdatePriceEntry(ctx, f.hour.ID, PriceEntryPatch{BasePriceCents: &base})
	if err != nil {
		t.Fatalf("update price entry: %v", err)
	}
	if entry.BasePriceCents != 800 || entry.DurationMin != 60 || entry.Opening.String() != "08:00" {
		t.Fatalf("patched entry: %+v", entry)
	}

	f.book(t, f.player, f.indoor.ID, "10:00", "11:00")
	if err := f.manager.DeleteCourt(ctx, f.indoor.ID); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError deleting referenced court, got %v", err)
	}
	if err := f.manager.DeletePriceEntry(ctx, f.hour.ID); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError deleting referenced price entry, got %v", err)
	}

	block, err := f.manager.CreateTimeBlock(ctx, TimeBlock{CourtID: f.outdoor.ID, Start: at(testDay, "08:00"), End: at(testDay, "09:00")})
	if err != nil {
		t.Fatalf("create block: %v", err)
	}
	end := at(testDay, "07:00")
	if _, err := f.manager.UpdateTimeBlock(ctx, block.ID, TimeBlockPatch{End: &end}); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if err := f.manager.DeleteTimeBlock(ctx, block.ID); err != nil {
		t.Fatalf("delete block: %v", err)
	}
}
