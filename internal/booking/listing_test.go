package booking

import (
	"context"
	"testing"
)

func TestListings(t *testing.T) {
	f := newManagerFixture(t, StatePolicy{})
	ctx := context.Background()

	early := f.book(t, f.player, f.indoor.ID, "09:00", "10:00")
	late := f.book(t, f.player, f.outdoor.ID, "15:00", "16:00")
	cancelled := f.book(t, f.player, f.indoor.ID, "12:00", "13:00")
	if _, err := f.manager.Cancel(ctx, f.player, cancelled.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	f.book(t, f.other, f.indoor.ID, "17:00", "18:00")

	mine, err := f.manager.ListForUser(ctx, f.player.UserID)
	if err != nil {
		t.Fatalf("list for user: %v", err)
	}
	if len(mine) != 3 {
		t.Fatalf("expected 3 reservations, got %d", len(mine))
	}
	if mine[0].ID != late.ID {
		t.Fatalf("expected newest first, got %d", mine[0].ID)
	}
	if mine[0].CourtName != "Garden" || mine[0].UserEmail != "player@example.com" {
		t.Fatalf("unexpected view: %+v", mine[0])
	}

	f.clock.Set(at(testDay, "10:00"))
	upcoming, err := f.manager.ListUpcomingForUser(ctx, f.player.UserID)
	if err != nil {
		t.Fatalf("list upcoming: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].ID != late.ID {
		t.Fatalf("expected only the 15:00 reservation, got %+v", upcoming)
	}

	all, err := f.manager.ListUpcoming(ctx)
	if err != nil {
		t.Fatalf("list all upcoming: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 upcoming reservations, got %d", len(all))
	}

	recent, err := f.manager.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("limit not applied: %d", len(recent))
	}
	for _, view := range recent {
		if view.ID == early.ID {
			t.Fatalf("oldest reservation should be cut by the limit")
		}
	}
}
