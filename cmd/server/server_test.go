package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codr1/CourtPlay/internal/api/auth"
	"github.com/codr1/CourtPlay/internal/booking"
	"github.com/codr1/CourtPlay/internal/config"
	"github.com/codr1/CourtPlay/internal/email"
	"github.com/codr1/CourtPlay/internal/ratelimit"
	"github.com/codr1/CourtPlay/internal/testutil"
)

// NOTE: Tests cannot use t.Parallel() due to shared package state.

func TestServerRoutes(t *testing.T) {
	cfg := config.Default()
	cfg.App.Name = "CourtPlay Test"
	cfg.Features.EnableMetrics = true

	database := testutil.NewTestDB(t)
	bookingCfg, err := bookingConfig(cfg)
	if err != nil {
		t.Fatalf("booking config: %v", err)
	}
	manager, err := booking.NewManager(database, bookingCfg, nil)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	limiter := ratelimit.New(nil)
	t.Cleanup(limiter.Close)

	server := newServer(cfg, serverDeps{
		db:       database,
		manager:  manager,
		sessions: auth.NewMemoryStore(time.Hour, nil),
		limiter:  limiter,
		notifier: email.NewNotifier(database.Queries, nil, cfg.App.Name, bookingCfg.Grid.Location),
	})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
		wantLoc    string
	}{
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK, wantBody: "OK"},
		{name: "home", method: http.MethodGet, path: "/", wantStatus: http.StatusOK, wantBody: cfg.App.Name},
		{name: "login page", method: http.MethodGet, path: "/login", wantStatus: http.StatusOK, wantBody: `name="password"`},
		{name: "metrics", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK, wantBody: "go_goroutines"},
		{name: "reservations root anonymous", method: http.MethodGet, path: "/reservations", wantStatus: http.StatusSeeOther, wantLoc: "/login?next=/reservations/calendar"},
		{name: "calendar anonymous", method: http.MethodGet, path: "/reservations/calendar", wantStatus: http.StatusSeeOther, wantLoc: "/login?next="},
		{name: "admin anonymous", method: http.MethodGet, path: "/admin/users", wantStatus: http.StatusSeeOther, wantLoc: "/login?next="},
		{name: "unknown path", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound},
		{name: "wrong method", method: http.MethodDelete, path: "/health", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			server.Handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantBody != "" && !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Fatalf("body missing %q: %s", tt.wantBody, rec.Body.String())
			}
			if tt.wantLoc != "" && !strings.HasPrefix(rec.Header().Get("Location"), tt.wantLoc) {
				t.Fatalf("Location = %q, want prefix %q", rec.Header().Get("Location"), tt.wantLoc)
			}
			if rec.Header().Get("X-Request-ID") == "" {
				t.Fatalf("expected a request id header")
			}
		})
	}
}
