// internal/api/timeblocks/handlers.go
package timeblocks

import (
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtPlay/internal/api/apiutil"
	"github.com/codr1/CourtPlay/internal/booking"
	"github.com/codr1/CourtPlay/internal/models"
	timeblockstempl "github.com/codr1/CourtPlay/internal/templates/components/timeblocks"
)

var (
	manager     *booking.Manager
	managerOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(m *booking.Manager) {
	if m == nil {
		return
	}
	managerOnce.Do(func() {
		manager = m
	})
}

// GET /admin/time-blocks
func HandleTimeBlocksPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := apiutil.RequireRole(w, r, models.RoleManager); !ok {
		return
	}
	message := ""
	if r.URL.Query().Get("saved") != "" {
		message = "Time block saved"
	}
	renderAdminPage(w, r, http.StatusOK, timeblockstempl.BlockForm{}, message)
}

// GET /admin/time-blocks/{id}/edit
func HandleTimeBlockEdit(w http.ResponseWriter, r *http.Request) {
	if _, ok := apiutil.RequireRole(w, r, models.RoleManager); !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	block, err := manager.GetTimeBlock(r.Context(), id)
	if err != nil {
		apiutil.WriteBookingError(w, r, err, "Failed to load time block")
		return
	}
	renderAdminPage(w, r, http.StatusOK, timeblockstempl.FormFromBlock(block, manager.GridConfig().Location), "")
}

// POST /admin/time-blocks
func HandleTimeBlockCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if _, ok := apiutil.RequireRole(w, r, models.RoleManager); !ok {
		return
	}
	form, block, err := parseBlockForm(r)
	if err != nil {
		handleFormError(w, r, form, err, "Invalid time block")
		return
	}

	created, err := manager.CreateTimeBlock(r.Context(), block)
	if err != nil {
		handleFormError(w, r, form, err, "Failed to create time block")
		return
	}

	logger.Info().
		Int64("time_block_id", created.ID).
		Int64("court_id", created.CourtID).
		Time("start_time", created.Start).
		Time("end_time", created.End).
		Msg("Time block created")
	apiutil.Redirect(w, r, "/admin/time-blocks?saved=1")
}

// POST /admin/time-blocks/{id}
func HandleTimeBlockUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if _, ok := apiutil.RequireRole(w, r, models.RoleManager); !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	form, block, err := parseBlockForm(r)
	form.ID = id
	if err != nil {
		handleFormError(w, r, form, err, "Invalid time block")
		return
	}

	_, err = manager.UpdateTimeBlock(r.Context(), id, booking.TimeBlockPatch{
		CourtID: &block.CourtID,
		Start:   &block.Start,
		End:     &block.End,
		Reason:  &block.Reason,
	})
	if err != nil {
		handleFormError(w, r, form, err, "Failed to update time block")
		return
	}

	logger.Info().Int64("time_block_id", id).Msg("Time block updated")
	apiutil.Redirect(w, r, "/admin/time-blocks?saved=1")
}

// POST /admin/time-blocks/{id}/delete
func HandleTimeBlockDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if _, ok := apiutil.RequireRole(w, r, models.RoleManager); !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := manager.DeleteTimeBlock(r.Context(), id); err != nil {
		apiutil.WriteBookingError(w, r, err, "Failed to delete time block")
		return
	}

	logger.Info().Int64("time_block_id", id).Msg("Time block deleted")
	apiutil.Redirect(w, r, "/admin/time-blocks")
}

func parseBlockForm(r *http.Request) (timeblockstempl.BlockForm, booking.TimeBlock, error) {
	if err := r.ParseForm(); err != nil {
		return timeblockstempl.BlockForm{}, booking.TimeBlock{}, booking.ValidationError{Reason: "invalid form data"}
	}
	form := timeblockstempl.BlockForm{
		Start:  strings.TrimSpace(r.FormValue("start")),
		End:    strings.TrimSpace(r.FormValue("end")),
		Reason: strings.TrimSpace(r.FormValue("reason")),
	}

	var block booking.TimeBlock
	courtID, err := apiutil.ParsePositiveInt64Field(r.FormValue("court_id"), "court_id")
	if err != nil {
		return form, block, booking.ValidationError{Reason: err.Error()}
	}
	form.CourtID = courtID
	block.CourtID = courtID

	loc := manager.GridConfig().Location
	if block.Start, err = apiutil.ParseLocalDateTime(form.Start, "start", loc); err != nil {
		return form, block, booking.ValidationError{Reason: err.Error()}
	}
	if block.End, err = apiutil.ParseLocalDateTime(form.End, "end", loc); err != nil {
		return form, block, booking.ValidationError{Reason: err.Error()}
	}
	block.Reason = form.Reason
	return form, block, nil
}

// handleFormError re-renders the form for 400 and 404 responses, since a
// missing court is something the user picked.
func handleFormError(w http.ResponseWriter, r *http.Request, form timeblockstempl.BlockForm, err error, msg string) {
	status, message := apiutil.BookingErrorStatus(err)
	if status != http.StatusBadRequest && status != http.StatusNotFound {
		apiutil.WriteBookingError(w, r, err, msg)
		return
	}
	log.Ctx(r.Context()).Warn().Err(err).Msg(msg)
	form.Error = message
	renderAdminPage(w, r, status, form, "")
}

func renderAdminPage(w http.ResponseWriter, r *http.Request, status int, form timeblockstempl.BlockForm, message string) {
	logger := log.Ctx(r.Context())
	if manager == nil {
		logger.Error().Msg("Booking manager not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	blocks, err := manager.ListTimeBlocks(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list time blocks")
		http.Error(w, "Failed to load time blocks", http.StatusInternalServerError)
		return
	}
	courts, err := manager.ListCourts(r.Context(), booking.EnvAll)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list courts")
		http.Error(w, "Failed to load courts", http.StatusInternalServerError)
		return
	}

	data := timeblockstempl.AdminData{
		Blocks:   blocks,
		Courts:   courts,
		Form:     form,
		Message:  message,
		Location: manager.GridConfig().Location,
	}
	apiutil.RenderPage(w, r, status, "Time blocks", timeblockstempl.AdminPage(data), "Failed to render time blocks")
}
