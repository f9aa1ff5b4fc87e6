// internal/api/pricelist/handlers.go
package pricelist

import (
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtPlay/internal/api/apiutil"
	"github.com/codr1/CourtPlay/internal/api/authz"
	"github.com/codr1/CourtPlay/internal/booking"
	"github.com/codr1/CourtPlay/internal/models"
	pricelisttempl "github.com/codr1/CourtPlay/internal/templates/components/pricelist"
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

// GET /admin/price-list
func HandlePriceListPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := apiutil.RequireRole(w, r, models.RoleManager); !ok {
		return
	}
	message := ""
	if r.URL.Query().Get("saved") != "" {
		message = "Price saved"
	}
	renderAdminPage(w, r, http.StatusOK, pricelisttempl.EntryForm{}, message)
}

// GET /admin/price-list/{id}/edit
func HandlePriceEntryEdit(w http.ResponseWriter, r *http.Request) {
	if _, ok := apiutil.RequireRole(w, r, models.RoleManager); !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := manager.GetPriceEntry(r.Context(), id)
	if err != nil {
		apiutil.WriteBookingError(w, r, err, "Failed to load price entry")
		return
	}
	renderAdminPage(w, r, http.StatusOK, pricelisttempl.FormFromEntry(entry), "")
}

// POST /admin/price-list
func HandlePriceEntryCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if _, ok := apiutil.RequireRole(w, r, models.RoleManager); !ok {
		return
	}
	form, entry, err := parseEntryForm(r)
	if err != nil {
		handleFormError(w, r, form, err, "Invalid price entry")
		return
	}

	created, err := manager.CreatePriceEntry(r.Context(), entry)
	if err != nil {
		handleFormError(w, r, form, err, "Failed to create price entry")
		return
	}

	logger.Info().Int64("price_entry_id", created.ID).Int("duration_min", created.DurationMin).Msg("Price entry created")
	apiutil.Redirect(w, r, "/admin/price-list?saved=1")
}

// POST /admin/price-list/{id}
func HandlePriceEntryUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if _, ok := apiutil.RequireRole(w, r, models.RoleManager); !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	form, entry, err := parseEntryForm(r)
	form.ID = id
	if err != nil {
		handleFormError(w, r, form, err, "Invalid price entry")
		return
	}

	_, err = manager.UpdatePriceEntry(r.Context(), id, booking.PriceEntryPatch{
		DurationMin:      &entry.DurationMin,
		Opening:          &entry.Opening,
		Closing:          &entry.Closing,
		BasePriceCents:   &entry.BasePriceCents,
		IndoorMultiplier: &entry.IndoorMultiplier,
	})
	if err != nil {
		handleFormError(w, r, form, err, "Failed to update price entry")
		return
	}

	logger.Info().Int64("price_entry_id", id).Msg("Price entry updated")
	apiutil.Redirect(w, r, "/admin/price-list?saved=1")
}

// POST /admin/price-list/{id}/delete
func HandlePriceEntryDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if _, ok := apiutil.RequireRole(w, r, models.RoleAdmin); !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := manager.DeletePriceEntry(r.Context(), id); err != nil {
		apiutil.WriteBookingError(w, r, err, "Failed to delete price entry")
		return
	}

	logger.Info().Int64("price_entry_id", id).Msg("Price entry deleted")
	apiutil.Redirect(w, r, "/admin/price-list")
}

// parseEntryForm returns the raw form alongside the parsed entry. Parse
// failures come back as booking.ValidationError.
func parseEntryForm(r *http.Request) (pricelisttempl.EntryForm, booking.PriceEntry, error) {
	if err := r.ParseForm(); err != nil {
		return pricelisttempl.EntryForm{}, booking.PriceEntry{}, booking.ValidationError{Reason: "invalid form data"}
	}
	form := pricelisttempl.EntryForm{
		DurationMin:      strings.TrimSpace(r.FormValue("duration_min")),
		Opening:          strings.TrimSpace(r.FormValue("opening_time")),
		Closing:          strings.TrimSpace(r.FormValue("closing_time")),
		BasePrice:        strings.TrimSpace(r.FormValue("base_price")),
		IndoorMultiplier: strings.TrimSpace(r.FormValue("indoor_multiplier")),
	}

	var entry booking.PriceEntry
	duration, err := apiutil.ParsePositiveInt64Field(form.DurationMin, "duration_min")
	if err != nil {
		return form, entry, booking.ValidationError{Reason: err.Error()}
	}
	entry.DurationMin = int(duration)

	if entry.Opening, err = booking.ParseTimeOfDay(form.Opening); err != nil {
		return form, entry, booking.ValidationError{Field: "opening_time", Reason: "must be HH:MM"}
	}
	if entry.Closing, err = booking.ParseTimeOfDay(form.Closing); err != nil {
		return form, entry, booking.ValidationError{Field: "closing_time", Reason: "must be HH:MM"}
	}
	if entry.BasePriceCents, err = apiutil.ParsePriceCents(form.BasePrice, "base_price"); err != nil {
		return form, entry, booking.ValidationError{Reason: err.Error()}
	}
	if entry.IndoorMultiplier, err = apiutil.ParsePositiveFloatField(form.IndoorMultiplier, "indoor_multiplier"); err != nil {
		return form, entry, booking.ValidationError{Reason: err.Error()}
	}
	return form, entry, nil
}

func handleFormError(w http.ResponseWriter, r *http.Request, form pricelisttempl.EntryForm, err error, msg string) {
	status, message := apiutil.BookingErrorStatus(err)
	if status != http.StatusBadRequest {
		apiutil.WriteBookingError(w, r, err, msg)
		return
	}
	log.Ctx(r.Context()).Warn().Err(err).Msg(msg)
	form.Error = message
	renderAdminPage(w, r, status, form, "")
}

func renderAdminPage(w http.ResponseWriter, r *http.Request, status int, form pricelisttempl.EntryForm, message string) {
	logger := log.Ctx(r.Context())
	if manager == nil {
		logger.Error().Msg("Booking manager not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	entries, err := manager.ListPriceEntries(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list price entries")
		http.Error(w, "Failed to load price list", http.StatusInternalServerError)
		return
	}

	data := pricelisttempl.AdminData{
		Entries:   entries,
		Form:      form,
		Message:   message,
		CanDelete: authz.UserFromContext(r.Context()).IsAdmin(),
	}
	apiutil.RenderPage(w, r, status, "Price list", pricelisttempl.AdminPage(data), "Failed to render price list")
}
