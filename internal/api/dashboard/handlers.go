// internal/api/dashboard/handlers.go
package dashboard

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtPlay/internal/api/apiutil"
	"github.com/codr1/CourtPlay/internal/booking"
	"github.com/codr1/CourtPlay/internal/models"
	dashboardtempl "github.com/codr1/CourtPlay/internal/templates/components/dashboard"
)

const (
	dashboardQueryTimeout = 5 * time.Second
	// Staff see this many upcoming reservations across all users.
	staffUpcomingLimit = 25
)

var (
	manager     *booking.Manager
	managerOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(m *booking.Manager) {
	if m == nil {
		log.Warn().Msg("InitHandlers called with nil manager; dashboard handlers will be unavailable")
		return
	}
	managerOnce.Do(func() {
		manager = m
	})
}

// HandleDashboardPage renders the dashboard page for GET /dashboard.
func HandleDashboardPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	user, ok := apiutil.RequireRole(w, r, models.RoleUser)
	if !ok {
		return
	}
	if manager == nil {
		logger.Error().Msg("Booking manager not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dashboardQueryTimeout)
	defer cancel()

	data := dashboardtempl.DashboardData{
		Name:     user.Name,
		ShowAll:  user.CanManage(),
		Location: manager.GridConfig().Location,
	}

	var err error
	if data.Courts, err = manager.ListCourts(ctx, booking.EnvAll); err != nil {
		logger.Error().Err(err).Msg("Failed to list courts for dashboard")
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}
	if data.Mine, err = manager.ListUpcomingForUser(ctx, user.ID); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to list upcoming reservations")
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}
	if data.ShowAll {
		all, err := manager.ListUpcoming(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to list all upcoming reservations")
			http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
			return
		}
		if len(all) > staffUpcomingLimit {
			all = all[:staffUpcomingLimit]
		}
		data.All = all
	}

	apiutil.RenderPage(w, r, http.StatusOK, "Dashboard", dashboardtempl.DashboardPage(data), "Failed to render dashboard")
}
