// internal/api/reservations/handlers.go
package reservations

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtPlay/internal/api/apiutil"
	"github.com/codr1/CourtPlay/internal/api/authz"
	"github.com/codr1/CourtPlay/internal/booking"
	"github.com/codr1/CourtPlay/internal/email"
	"github.com/codr1/CourtPlay/internal/metrics"
	"github.com/codr1/CourtPlay/internal/models"
	"github.com/codr1/CourtPlay/internal/request"
	reservationstempl "github.com/codr1/CourtPlay/internal/templates/components/reservations"
)

var (
	manager     *booking.Manager
	notifier    *email.Notifier
	durations   []int
	handlerOnce sync.Once
)

const reservationQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
// offered lists the booking durations in minutes; the first is the default.
func InitHandlers(m *booking.Manager, n *email.Notifier, offered []int) {
	if m == nil {
		return
	}
	handlerOnce.Do(func() {
		manager = m
		notifier = n
		durations = append([]int(nil), offered...)
		if len(durations) == 0 {
			durations = []int{60}
		}
	})
}

func defaultDuration() int {
	return durations[0]
}

// GET /reservations
func HandleReservationsRoot(w http.ResponseWriter, r *http.Request) {
	if authz.UserFromContext(r.Context()) == nil {
		http.Redirect(w, r, "/login?next=/reservations/calendar", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/reservations/calendar", http.StatusSeeOther)
}

// GET /reservations/calendar
func HandleCalendarPage(w http.ResponseWriter, r *http.Request) {
	user, ok := apiutil.RequireRole(w, r, models.RoleUser)
	if !ok {
		return
	}
	if manager == nil {
		log.Ctx(r.Context()).Error().Msg("Booking manager not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	loc := manager.GridConfig().Location
	params := request.CalendarParamsFromRequest(r, loc, manager.Now())
	duration, err := request.ParseDuration(r.URL.Query().Get("duration"), durations)
	if err != nil {
		duration = defaultDuration()
	}

	data := reservationstempl.CalendarData{Env: params.Env, Duration: duration, Durations: durations}
	if booked, err := strconv.Atoi(r.URL.Query().Get("booked")); err == nil && booked > 0 {
		data.Message = bookedMessage(booked)
	}
	renderCalendar(w, r, http.StatusOK, user, params.Day, data)
}

// POST /reservations/batch
func HandleBatchCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	user, ok := apiutil.RequireRole(w, r, models.RoleUser)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	loc := manager.GridConfig().Location
	day, dayOK := request.ParseDay(r.FormValue("date"), loc, manager.Now())
	env := request.ParseEnvironment(r.FormValue("env"))
	data := reservationstempl.CalendarData{Env: env, Duration: defaultDuration(), Durations: durations}

	fail := func(err error) {
		status, message := apiutil.BookingErrorStatus(err)
		if status >= http.StatusInternalServerError {
			apiutil.WriteBookingError(w, r, err, "Failed to create batch reservation")
			return
		}
		apiutil.ObserveBookingError(err)
		logger.Warn().Err(err).Int("status", status).Msg("Batch reservation rejected")
		data.Error = message
		renderCalendar(w, r, status, user, day, data)
	}

	if !dayOK {
		fail(booking.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"})
		return
	}
	duration, err := request.ParseDuration(r.FormValue("duration"), durations)
	if err != nil {
		fail(err)
		return
	}
	data.Duration = duration

	slots, err := selectedSlots(r)
	if err != nil {
		fail(err)
		return
	}
	items, err := request.BatchItems(slots, day, duration, loc)
	if err != nil {
		fail(err)
		return
	}

	created, err := manager.CreateBatch(r.Context(), user.Actor(), items, booking.StateConfirmed)
	if err != nil {
		fail(err)
		return
	}

	metrics.ReservationsCreated.WithLabelValues(string(booking.StateConfirmed)).Add(float64(len(created)))
	notifier.ReservationsConfirmed(r.Context(), user.ID, created)

	target := url.Values{}
	target.Set("date", request.FormatDay(day))
	target.Set("env", string(env))
	target.Set("duration", strconv.Itoa(duration))
	target.Set("booked", strconv.Itoa(len(created)))
	apiutil.Redirect(w, r, "/reservations/calendar?"+target.Encode())
}

// selectedSlots prefers the selected_slots JSON and falls back to the
// grid's checkbox values.
func selectedSlots(r *http.Request) ([]request.SelectedSlot, error) {
	slots, err := request.ParseSelectedSlots(r.FormValue("selected_slots"))
	if err != nil || len(slots) > 0 {
		return slots, err
	}
	return request.ParseSlotValues(r.Form["slot"])
}

// GET /reservations/mine
func HandleMyReservations(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	user, ok := apiutil.RequireRole(w, r, models.RoleUser)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	list, err := manager.ListForUser(ctx, user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list reservations")
		http.Error(w, "Failed to load reservations", http.StatusInternalServerError)
		return
	}

	data := reservationstempl.MineData{
		Reservations: list,
		Location:     manager.GridConfig().Location,
		Now:          manager.Now(),
	}
	if r.URL.Query().Get("cancelled") != "" {
		data.Message = "Reservation cancelled"
	}
	apiutil.RenderPage(w, r, http.StatusOK, "My reservations", reservationstempl.MinePage(data), "Failed to render reservations")
}

// POST /reservations/{id}/cancel
func HandleCancel(w http.ResponseWriter, r *http.Request) {
	user, ok := apiutil.RequireRole(w, r, models.RoleUser)
	if !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := cancelReservation(r.Context(), user, id); err != nil {
		apiutil.WriteBookingError(w, r, err, "Failed to cancel reservation")
		return
	}
	apiutil.Redirect(w, r, "/reservations/mine?cancelled=1")
}

// cancelReservation runs the self-service cancel and reports the change.
// Cancelling an already cancelled reservation sends nothing.
func cancelReservation(ctx context.Context, user *authz.AuthUser, id int64) (booking.Reservation, error) {
	tr, err := manager.Cancel(ctx, user.Actor(), id)
	if err != nil {
		return booking.Reservation{}, err
	}
	if tr.Changed {
		metrics.ReservationTransitions.WithLabelValues(string(booking.StateCancelled)).Inc()
		notifier.ReservationCancelled(ctx, tr.Reservation, user.ID)
	}
	return tr.Reservation, nil
}

func renderCalendar(w http.ResponseWriter, r *http.Request, status int, user *authz.AuthUser, day time.Time, data reservationstempl.CalendarData) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	grid, err := manager.DayGrid(ctx, day, data.Env, user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build calendar grid")
		http.Error(w, "Failed to load calendar", http.StatusInternalServerError)
		return
	}
	data.Grid = grid
	apiutil.RenderPage(w, r, status, "Book a court", reservationstempl.CalendarPage(data), "Failed to render calendar")
}

func bookedMessage(n int) string {
	if n == 1 {
		return "1 reservation booked"
	}
	return fmt.Sprintf("%d reservations booked", n)
}
