package reservations

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtPlay/internal/api/apiutil"
	"github.com/codr1/CourtPlay/internal/booking"
	"github.com/codr1/CourtPlay/internal/metrics"
	"github.com/codr1/CourtPlay/internal/models"
	reservationstempl "github.com/codr1/CourtPlay/internal/templates/components/reservations"
)

// GET /admin/reservations
func HandleAdminReservationsPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	user, ok := apiutil.RequireRole(w, r, models.RoleManager)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	list, err := manager.ListRecent(ctx, booking.DefaultListLimit)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list reservations")
		http.Error(w, "Failed to load reservations", http.StatusInternalServerError)
		return
	}

	data := reservationstempl.AdminData{
		Reservations: list,
		Location:     manager.GridConfig().Location,
		States:       booking.AdminStates(),
		CanDelete:    user.IsAdmin(),
	}
	switch {
	case r.URL.Query().Get("updated") != "":
		data.Message = "Reservation updated"
	case r.URL.Query().Get("deleted") != "":
		data.Message = "Reservation deleted"
	}
	apiutil.RenderPage(w, r, http.StatusOK, "All reservations", reservationstempl.AdminPage(data), "Failed to render reservations")
}

// POST /admin/reservations/{id}/state
func HandleAdminStateChange(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	user, ok := apiutil.RequireRole(w, r, models.RoleManager)
	if !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := r.ParseForm(); err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Invalid form data")
		return
	}

	target, err := booking.ParseState(r.FormValue("state"))
	if err != nil {
		apiutil.WriteBookingError(w, r, err, "Invalid reservation state")
		return
	}

	tr, err := manager.ChangeState(r.Context(), user.Actor(), id, target)
	if err != nil {
		apiutil.WriteBookingError(w, r, err, "Failed to change reservation state")
		return
	}
	res := tr.Reservation

	if tr.Changed {
		metrics.ReservationTransitions.WithLabelValues(string(res.State)).Inc()
		if res.State == booking.StateCancelled {
			notifier.ReservationCancelled(r.Context(), res, user.ID)
		}
		logger.Info().
			Int64("reservation_id", res.ID).
			Str("from_state", string(tr.From)).
			Str("to_state", string(res.State)).
			Msg("Reservation state updated by staff")
	}

	if apiutil.WantsJSON(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, newReservationResponse(res)); err != nil {
			logger.Error().Err(err).Msg("Failed to write reservation response")
		}
		return
	}
	apiutil.Redirect(w, r, "/admin/reservations?updated=1")
}

// POST /admin/reservations/{id}/delete
func HandleAdminDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := apiutil.RequireRole(w, r, models.RoleAdmin)
	if !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := manager.Delete(r.Context(), user.Actor(), id); err != nil {
		apiutil.WriteBookingError(w, r, err, "Failed to delete reservation")
		return
	}
	apiutil.Redirect(w, r, "/admin/reservations?deleted=1")
}
