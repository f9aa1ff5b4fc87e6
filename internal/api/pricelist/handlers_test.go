package pricelist

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

func setupPriceListTest(t *testing.T) *db.DB {
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

func withUser(req *http.Request, role models.Role) *http.Request {
	user := &authz.AuthUser{ID: 1, Email: "staff@example.com", Name: "Staff", Role: role}
	return req.WithContext(authz.ContextWithUser(req.Context(), user))
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func validForm() url.Values {
	form := url.Values{}
	form.Set("duration_min", "60")
	form.Set("opening_time", "08:00")
	form.Set("closing_time", "20:00")
	form.Set("base_price", "250,50")
	form.Set("indoor_multiplier", "1.2")
	return form
}

func TestHandlePriceEntryCreate(t *testing.T) {
	database := setupPriceListTest(t)

	rec := httptest.NewRecorder()
	HandlePriceEntryCreate(rec, withUser(postForm("/admin/price-list", validForm()), models.RoleManager))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	entries, err := database.Queries.ListPriceListEntries(context.Background())
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got := entries[0]
	if got.DurationMin != 60 || got.OpeningTime != "08:00" || got.ClosingTime != "20:00" ||
		got.BasePriceCents != 25050 || got.IndoorMultiplier != 1.2 {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestHandlePriceEntryCreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{name: "closing before opening", field: "closing_time", value: "07:00", want: "closing_time must be after opening_time"},
		{name: "zero duration", field: "duration_min", value: "0", want: "duration_min must be greater than 0"},
		{name: "bad time", field: "opening_time", value: "8am", want: "opening_time must be HH:MM"},
		{name: "bad price", field: "base_price", value: "12.345", want: "base_price must have at most two decimal places"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			database := setupPriceListTest(t)
			form := validForm()
			form.Set(tt.field, tt.value)

			rec := httptest.NewRecorder()
			HandlePriceEntryCreate(rec, withUser(postForm("/admin/price-list", form), models.RoleManager))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Fatalf("missing %q in %s", tt.want, rec.Body.String())
			}
			entries, err := database.Queries.ListPriceListEntries(context.Background())
			if err != nil {
				t.Fatalf("list entries: %v", err)
			}
			if len(entries) != 0 {
				t.Fatalf("invalid entry was stored")
			}
		})
	}
}

func TestHandlePriceEntryUpdate(t *testing.T) {
	database := setupPriceListTest(t)
	entry := testutil.CreatePriceEntry(t, database, 60, "08:00", "20:00", 500, 1.2)
	id := strconv.FormatInt(entry.ID, 10)

	form := validForm()
	form.Set("closing_time", "24:00")
	req := withUser(postForm("/admin/price-list/"+id, form), models.RoleManager)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	HandlePriceEntryUpdate(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	updated, err := database.Queries.GetPriceListEntry(context.Background(), entry.ID)
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if updated.ClosingTime != "24:00" || updated.BasePriceCents != 25050 {
		t.Fatalf("unexpected entry: %+v", updated)
	}
}

func TestHandlePriceEntryDeleteRequiresAdmin(t *testing.T) {
	database := setupPriceListTest(t)
	entry := testutil.CreatePriceEntry(t, database, 60, "08:00", "20:00", 500, 1.2)
	id := strconv.FormatInt(entry.ID, 10)

	req := withUser(postForm("/admin/price-list/"+id+"/delete", url.Values{}), models.RoleManager)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	HandlePriceEntryDelete(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("manager delete: expected 403, got %d", rec.Code)
	}

	req = withUser(postForm("/admin/price-list/"+id+"/delete", url.Values{}), models.RoleAdmin)
	req.SetPathValue("id", id)
	rec = httptest.NewRecorder()
	HandlePriceEntryDelete(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("admin delete: expected 303, got %d", rec.Code)
	}

	entries, err := database.Queries.ListPriceListEntries(context.Background())
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entry not deleted")
	}
}

func TestHandlePriceListPageHidesDeleteForManagers(t *testing.T) {
	database := setupPriceListTest(t)
	testutil.CreatePriceEntry(t, database, 90, "08:00", "20:00", 700, 1.0)

	rec := httptest.NewRecorder()
	HandlePriceListPage(rec, withUser(httptest.NewRequest(http.MethodGet, "/admin/price-list", nil), models.RoleManager))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "90 min") || !strings.Contains(body, "7.00 CZK") {
		t.Fatalf("entry not rendered: %s", body)
	}
	if strings.Contains(body, "/delete") {
		t.Fatalf("managers must not see delete buttons")
	}
}
