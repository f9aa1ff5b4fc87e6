// internal/api/courts/handlers.go
package courts

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtPlay/internal/api/apiutil"
	"github.com/codr1/CourtPlay/internal/booking"
	"github.com/codr1/CourtPlay/internal/models"
	"github.com/codr1/CourtPlay/internal/request"
	courtstempl "github.com/codr1/CourtPlay/internal/templates/components/courts"
)

var (
	manager     *booking.Manager
	managerOnce sync.Once
)

const courtsQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(m *booking.Manager) {
	if m == nil {
		return
	}
	managerOnce.Do(func() {
		manager = m
	})
}

func loadManager() *booking.Manager {
	return manager
}

// GET /courts
func HandleCourtsPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if _, ok := apiutil.RequireRole(w, r, models.RoleUser); !ok {
		return
	}

	m := loadManager()
	if m == nil {
		logger.Error().Msg("Booking manager not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	env := request.ParseEnvironment(r.URL.Query().Get("env"))
	list, err := m.ListCourts(ctx, env)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list courts")
		http.Error(w, "Failed to load courts", http.StatusInternalServerError)
		return
	}

	apiutil.RenderPage(w, r, http.StatusOK, "Courts", courtstempl.CourtsPage(courtstempl.ListData{Courts: list, Env: env}), "Failed to render courts page")
}

// GET /admin/courts
func HandleAdminCourtsPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := apiutil.RequireRole(w, r, models.RoleManager); !ok {
		return
	}
	message := ""
	if r.URL.Query().Get("saved") != "" {
		message = "Court saved"
	}
	renderAdminPage(w, r, http.StatusOK, courtstempl.CourtForm{}, message)
}

// GET /admin/courts/{id}/edit
func HandleCourtEdit(w http.ResponseWriter, r *http.Request) {
	if _, ok := apiutil.RequireRole(w, r, models.RoleManager); !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	court, err := loadManager().GetCourt(r.Context(), id)
	if err != nil {
		apiutil.WriteBookingError(w, r, err, "Failed to load court")
		return
	}

	renderAdminPage(w, r, http.StatusOK, courtstempl.CourtForm{
		ID:      court.ID,
		Name:    court.Name,
		Outdoor: court.Outdoor,
		Status:  court.Status,
		Note:    court.Note,
	}, "")
}

// POST /admin/courts
func HandleCourtCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if _, ok := apiutil.RequireRole(w, r, models.RoleManager); !ok {
		return
	}
	form, ok := parseCourtForm(w, r)
	if !ok {
		return
	}

	court, err := loadManager().CreateCourt(r.Context(), booking.Court{
		Name:    form.Name,
		Outdoor: form.Outdoor,
		Status:  form.Status,
		Note:    form.Note,
	})
	if err != nil {
		handleFormError(w, r, form, err, "Failed to create court")
		return
	}

	logger.Info().Int64("court_id", court.ID).Msg("Court created")
	apiutil.Redirect(w, r, "/admin/courts?saved=1")
}

// POST /admin/courts/{id}
func HandleCourtUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if _, ok := apiutil.RequireRole(w, r, models.RoleManager); !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	form, ok := parseCourtForm(w, r)
	if !ok {
		return
	}
	form.ID = id

	_, err = loadManager().UpdateCourt(r.Context(), id, booking.CourtPatch{
		Name:    &form.Name,
		Outdoor: &form.Outdoor,
		Status:  &form.Status,
		Note:    &form.Note,
	})
	if err != nil {
		handleFormError(w, r, form, err, "Failed to update court")
		return
	}

	logger.Info().Int64("court_id", id).Msg("Court updated")
	apiutil.Redirect(w, r, "/admin/courts?saved=1")
}

// POST /admin/courts/{id}/delete
func HandleCourtDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if _, ok := apiutil.RequireRole(w, r, models.RoleManager); !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := loadManager().DeleteCourt(r.Context(), id); err != nil {
		apiutil.WriteBookingError(w, r, err, "Failed to delete court")
		return
	}

	logger.Info().Int64("court_id", id).Msg("Court deleted")
	apiutil.Redirect(w, r, "/admin/courts")
}

func parseCourtForm(w http.ResponseWriter, r *http.Request) (courtstempl.CourtForm, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return courtstempl.CourtForm{}, false
	}
	return courtstempl.CourtForm{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Outdoor: r.FormValue("outdoor") == "true" || r.FormValue("outdoor") == "on",
		Status:  strings.TrimSpace(r.FormValue("status")),
		Note:    strings.TrimSpace(r.FormValue("note")),
	}, true
}

// handleFormError re-renders the form with the message for user errors.
func handleFormError(w http.ResponseWriter, r *http.Request, form courtstempl.CourtForm, err error, msg string) {
	status, message := apiutil.BookingErrorStatus(err)
	if status != http.StatusBadRequest {
		apiutil.WriteBookingError(w, r, err, msg)
		return
	}
	log.Ctx(r.Context()).Warn().Err(err).Msg(msg)
	form.Error = message
	renderAdminPage(w, r, status, form, "")
}

func renderAdminPage(w http.ResponseWriter, r *http.Request, status int, form courtstempl.CourtForm, message string) {
	logger := log.Ctx(r.Context())
	m := loadManager()
	if m == nil {
		logger.Error().Msg("Booking manager not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	list, err := m.ListCourts(ctx, booking.EnvAll)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list courts")
		http.Error(w, "Failed to load courts", http.StatusInternalServerError)
		return
	}

	data := courtstempl.AdminData{Courts: list, Form: form, Message: message}
	apiutil.RenderPage(w, r, status, "Manage courts", courtstempl.AdminPage(data), "Failed to render courts admin page")
}
