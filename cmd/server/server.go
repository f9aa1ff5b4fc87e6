// cmd/server/server.go
package main

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtPlay/internal/api"
	"github.com/codr1/CourtPlay/internal/api/account"
	"github.com/codr1/CourtPlay/internal/api/apiutil"
	"github.com/codr1/CourtPlay/internal/api/auth"
	"github.com/codr1/CourtPlay/internal/api/authz"
	"github.com/codr1/CourtPlay/internal/api/courts"
	"github.com/codr1/CourtPlay/internal/api/dashboard"
	"github.com/codr1/CourtPlay/internal/api/pricelist"
	"github.com/codr1/CourtPlay/internal/api/reservations"
	"github.com/codr1/CourtPlay/internal/api/timeblocks"
	"github.com/codr1/CourtPlay/internal/api/users"
	"github.com/codr1/CourtPlay/internal/booking"
	"github.com/codr1/CourtPlay/internal/config"
	"github.com/codr1/CourtPlay/internal/db"
	"github.com/codr1/CourtPlay/internal/email"
	"github.com/codr1/CourtPlay/internal/metrics"
	"github.com/codr1/CourtPlay/internal/ratelimit"
	"github.com/codr1/CourtPlay/internal/templates/layouts"
)

type serverDeps struct {
	db       *db.DB
	manager  *booking.Manager
	sessions auth.SessionStore
	limiter  *ratelimit.Limiter
	notifier *email.Notifier
}

func newServer(cfg *config.Config, deps serverDeps) *http.Server {
	router := http.NewServeMux()

	initHandlers(cfg, deps)
	registerRoutes(router, cfg.Features.EnableMetrics)

	// WithMetrics stays innermost so it sees the pattern ServeMux matched.
	handler := api.ChainMiddleware(
		router,
		api.WithMetrics,
		api.WithAuth(deps.sessions, deps.db.Queries),
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func initHandlers(cfg *config.Config, deps serverDeps) {
	apiutil.SetAppName(cfg.App.Name)
	auth.InitHandlers(deps.db.Queries, deps.sessions, deps.limiter, cfg.App.TrustProxy)
	account.InitHandlers(deps.db.Queries, deps.sessions, cfg.Profile.DefaultPhoneRegion)
	users.InitHandlers(deps.db.Queries, deps.sessions)
	courts.InitHandlers(deps.manager)
	pricelist.InitHandlers(deps.manager)
	timeblocks.InitHandlers(deps.manager)
	dashboard.InitHandlers(deps.manager)
	reservations.InitHandlers(deps.manager, deps.notifier, cfg.Booking.Durations)
}

func registerRoutes(mux *http.ServeMux, enableMetrics bool) {
	// Main page handler
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		signedIn := authz.UserFromContext(r.Context()) != nil
		apiutil.RenderPage(w, r, http.StatusOK, "", layouts.Home(apiutil.AppName(), signedIn), "Failed to render home page")
	})

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if enableMetrics {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	// Auth routes
	mux.HandleFunc("GET /login", auth.HandleLoginPage)
	mux.HandleFunc("POST /login", auth.HandleLogin)
	mux.HandleFunc("POST /logout", auth.HandleLogout)

	// Account routes
	mux.HandleFunc("GET /dashboard", dashboard.HandleDashboardPage)
	mux.HandleFunc("GET /profile", account.HandleProfilePage)
	mux.HandleFunc("POST /profile", account.HandleProfileUpdate)
	mux.HandleFunc("GET /profile/password", account.HandlePasswordPage)
	mux.HandleFunc("POST /profile/password", account.HandlePasswordChange)

	// Court routes
	mux.HandleFunc("GET /courts", courts.HandleCourtsPage)

	// Reservation routes
	mux.HandleFunc("GET /reservations", reservations.HandleReservationsRoot)
	mux.HandleFunc("GET /reservations/calendar", reservations.HandleCalendarPage)
	mux.HandleFunc("POST /reservations/batch", reservations.HandleBatchCreate)
	mux.HandleFunc("GET /reservations/mine", reservations.HandleMyReservations)
	mux.HandleFunc("POST /reservations/{id}/cancel", reservations.HandleCancel)
	mux.HandleFunc("GET /api/v1/reservations/calendar", reservations.HandleCalendarJSON)
	mux.HandleFunc("POST /api/v1/reservations", reservations.HandleReservationCreate)
	mux.HandleFunc("POST /api/v1/reservations/{id}/cancel", reservations.HandleReservationCancelJSON)

	// Staff routes
	mux.HandleFunc("GET /admin/courts", courts.HandleAdminCourtsPage)
	mux.HandleFunc("POST /admin/courts", courts.HandleCourtCreate)
	mux.HandleFunc("GET /admin/courts/{id}/edit", courts.HandleCourtEdit)
	mux.HandleFunc("POST /admin/courts/{id}", courts.HandleCourtUpdate)
	mux.HandleFunc("POST /admin/courts/{id}/delete", courts.HandleCourtDelete)

	mux.HandleFunc("GET /admin/price-list", pricelist.HandlePriceListPage)
	mux.HandleFunc("POST /admin/price-list", pricelist.HandlePriceEntryCreate)
	mux.HandleFunc("GET /admin/price-list/{id}/edit", pricelist.HandlePriceEntryEdit)
	mux.HandleFunc("POST /admin/price-list/{id}", pricelist.HandlePriceEntryUpdate)
	mux.HandleFunc("POST /admin/price-list/{id}/delete", pricelist.HandlePriceEntryDelete)

	mux.HandleFunc("GET /admin/time-blocks", timeblocks.HandleTimeBlocksPage)
	mux.HandleFunc("POST /admin/time-blocks", timeblocks.HandleTimeBlockCreate)
	mux.HandleFunc("GET /admin/time-blocks/{id}/edit", timeblocks.HandleTimeBlockEdit)
	mux.HandleFunc("POST /admin/time-blocks/{id}", timeblocks.HandleTimeBlockUpdate)
	mux.HandleFunc("POST /admin/time-blocks/{id}/delete", timeblocks.HandleTimeBlockDelete)

	mux.HandleFunc("GET /admin/reservations", reservations.HandleAdminReservationsPage)
	mux.HandleFunc("POST /admin/reservations/{id}/state", reservations.HandleAdminStateChange)
	mux.HandleFunc("POST /admin/reservations/{id}/delete", reservations.HandleAdminDelete)

	// Admin routes
	mux.HandleFunc("GET /admin/users", users.HandleUsersPage)
	mux.HandleFunc("POST /admin/users/{id}/role", users.HandleUserRoleUpdate)

	// Static file handling with logging and environment awareness
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		// Default to the build directory if not specified
		staticDir = "build/bin/static"
	}
	fs := http.FileServer(http.Dir(staticDir))

	mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Ctx(r.Context()).Debug().
			Str("path", r.URL.Path).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
