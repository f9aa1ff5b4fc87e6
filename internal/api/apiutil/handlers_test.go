package apiutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codr1/CourtPlay/internal/api/authz"
	"github.com/codr1/CourtPlay/internal/booking"
	"github.com/codr1/CourtPlay/internal/models"
)

func TestBookingErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", booking.ValidationError{Field: "end_time", Reason: "must be after start_time"}, http.StatusBadRequest, "end_time must be after start_time"},
		{"conflict", booking.ConflictError{CourtID: 1}, http.StatusConflict, "slot is already reserved"},
		{"blocked", booking.ConflictError{CourtID: 1, Blocked: true}, http.StatusConflict, "court is closed for maintenance at that time"},
		{"not found", booking.NotFoundError{Resource: "reservation", ID: 7}, http.StatusNotFound, "reservation 7 not found"},
		{"forbidden hides reason", booking.AuthorizationError{Reason: "not the owner"}, http.StatusForbidden, "Forbidden"},
		{"batch", booking.BatchError{Item: 1, Err: booking.ConflictError{}}, http.StatusConflict, "slot 2: slot is already reserved"},
		{"wrapped", fmt.Errorf("create: %w", booking.NotFoundError{Resource: "court", ID: 3}), http.StatusNotFound, "court 3 not found"},
		{"unknown", errors.New("disk full"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := BookingErrorStatus(tc.err)
			if status != tc.wantStatus || msg != tc.wantMsg {
				t.Fatalf("got (%d, %q), want (%d, %q)", status, msg, tc.wantStatus, tc.wantMsg)
			}
		})
	}
}

func TestWriteBookingErrorJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", nil)
	rec := httptest.NewRecorder()

	WriteBookingError(rec, req, booking.ConflictError{CourtID: 1}, "Failed to create reservation")

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "slot is already reserved" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRequireRole(t *testing.T) {
	t.Run("anonymous GET redirects to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/courts", nil)
		rec := httptest.NewRecorder()
		if _, ok := RequireRole(rec, req, models.RoleManager); ok {
			t.Fatal("expected denial")
		}
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d", rec.Code)
		}
		if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login?next=") {
			t.Fatalf("unexpected redirect %q", loc)
		}
	})

	t.Run("anonymous API call gets 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", nil)
		rec := httptest.NewRecorder()
		if _, ok := RequireRole(rec, req, models.RoleUser); ok {
			t.Fatal("expected denial")
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("user below minimum gets 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/users/1/role", nil)
		req = req.WithContext(authz.ContextWithUser(req.Context(), &authz.AuthUser{ID: 1, Role: models.RoleManager}))
		rec := httptest.NewRecorder()
		if _, ok := RequireRole(rec, req, models.RoleAdmin); ok {
			t.Fatal("expected denial")
		}
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("sufficient role passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/courts", nil)
		req = req.WithContext(authz.ContextWithUser(req.Context(), &authz.AuthUser{ID: 2, Role: models.RoleAdmin}))
		rec := httptest.NewRecorder()
		user, ok := RequireRole(rec, req, models.RoleManager)
		if !ok || user.ID != 2 {
			t.Fatalf("expected access, got ok=%v user=%v", ok, user)
		}
	})
}

func TestRedirectHTMX(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	Redirect(rec, req, "/dashboard")

	if rec.Code != http.StatusOK || rec.Header().Get("HX-Redirect") != "/dashboard" {
		t.Fatalf("unexpected HTMX redirect: %d %q", rec.Code, rec.Header().Get("HX-Redirect"))
	}
}
