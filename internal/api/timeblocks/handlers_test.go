package timeblocks

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/codr1/CourtPlay/internal/api/authz"
	"github.com/codr1/CourtPlay/internal/booking"
	"github.com/codr1/CourtPlay/internal/db"
	"github.com/codr1/CourtPlay/internal/models"
	"github.com/codr1/CourtPlay/internal/testutil"
)

func setupTimeBlocksTest(t *testing.T) *db.DB {
	t.Helper()

	database := testutil.NewTestDB(t)
	m, err := booking.NewManager(database, booking.Config{
		Grid: booking.GridConfig{
			Location:    time.UTC,
			Opening:     booking.MustParseTimeOfDay("07:00"),
			Closing:     booking.MustParseTimeOfDay("22:00"),
			SlotMinutes: 30,
		},
	}, nil)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	manager = nil
	managerOnce = sync.Once{}
	InitHandlers(m)

	t.Cleanup(func() {
		manager = nil
		managerOnce = sync.Once{}
	})

	return database
}

func withManager(req *http.Request) *http.Request {
	user := &authz.AuthUser{ID: 1, Email: "staff@example.com", Name: "Staff", Role: models.RoleManager}
	return req.WithContext(authz.ContextWithUser(req.Context(), user))
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandleTimeBlockCreate(t *testing.T) {
	database := setupTimeBlocksTest(t)
	court := testutil.CreateCourt(t, database, "Hall", false)

	form := url.Values{}
	form.Set("court_id", strconv.FormatInt(court.ID, 10))
	form.Set("start", "2030-06-10T09:00")
	form.Set("end", "2030-06-10T12:00")
	form.Set("reason", "Resurfacing")

	rec := httptest.NewRecorder()
	HandleTimeBlockCreate(rec, withManager(postForm("/admin/time-blocks", form)))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	blocks, err := database.Queries.ListTimeBlocks(context.Background())
	if err != nil {
		t.Fatalf("list blocks: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].CourtName != "Hall" || blocks[0].Reason.String != "Resurfacing" {
		t.Fatalf("unexpected block: %+v", blocks[0])
	}
}

func TestHandleTimeBlockCreateRejectsEndBeforeStart(t *testing.T) {
	database := setupTimeBlocksTest(t)
	court := testutil.CreateCourt(t, database, "Hall", false)

	form := url.Values{}
	form.Set("court_id", strconv.FormatInt(court.ID, 10))
	form.Set("start", "2030-06-10T12:00")
	form.Set("end", "2030-06-10T12:00")

	rec := httptest.NewRecorder()
	HandleTimeBlockCreate(rec, withManager(postForm("/admin/time-blocks", form)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "end must be after start") {
		t.Fatalf("form error missing: %s", rec.Body.String())
	}
}

func TestHandleTimeBlockCreateUnknownCourt(t *testing.T) {
	setupTimeBlocksTest(t)

	form := url.Values{}
	form.Set("court_id", "42")
	form.Set("start", "2030-06-10T09:00")
	form.Set("end", "2030-06-10T10:00")

	rec := httptest.NewRecorder()
	HandleTimeBlockCreate(rec, withManager(postForm("/admin/time-blocks", form)))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "court 42 not found") {
		t.Fatalf("form error missing: %s", rec.Body.String())
	}
}

func TestHandleTimeBlockUpdateAndDelete(t *testing.T) {
	database := setupTimeBlocksTest(t)
	court := testutil.CreateCourt(t, database, "Hall", false)
	ctx := context.Background()

	block, err := manager.CreateTimeBlock(ctx, booking.TimeBlock{
		CourtID: court.ID,
		Start:   time.Date(2030, 6, 10, 9, 0, 0, 0, time.UTC),
		End:     time.Date(2030, 6, 10, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create block: %v", err)
	}
	id := strconv.FormatInt(block.ID, 10)

	form := url.Values{}
	form.Set("court_id", strconv.FormatInt(court.ID, 10))
	form.Set("start", "2030-06-10T09:00")
	form.Set("end", "2030-06-10T11:30")
	req := withManager(postForm("/admin/time-blocks/"+id, form))
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	HandleTimeBlockUpdate(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("update: expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	updated, err := manager.GetTimeBlock(ctx, block.ID)
	if err != nil {
		t.Fatalf("get block: %v", err)
	}
	if !updated.End.Equal(time.Date(2030, 6, 10, 11, 30, 0, 0, time.UTC)) {
		t.Fatalf("end not updated: %v", updated.End)
	}

	req = withManager(postForm("/admin/time-blocks/"+id+"/delete", url.Values{}))
	req.SetPathValue("id", id)
	rec = httptest.NewRecorder()
	HandleTimeBlockDelete(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("delete: expected 303, got %d", rec.Code)
	}
	if _, err := manager.GetTimeBlock(ctx, block.ID); err == nil {
		t.Fatalf("block not deleted")
	}
}
