package reservations

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtPlay/internal/api/apiutil"
	"github.com/codr1/CourtPlay/internal/api/htmx"
	"github.com/codr1/CourtPlay/internal/booking"
	"github.com/codr1/CourtPlay/internal/metrics"
	"github.com/codr1/CourtPlay/internal/models"
	"github.com/codr1/CourtPlay/internal/request"
)

type slotResponse struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type cellResponse struct {
	Status        booking.SlotStatus `json:"status"`
	ReservationID int64              `json:"reservation_id,omitempty"`
}

type courtRowResponse struct {
	ID      int64          `json:"id"`
	Name    string         `json:"name"`
	Outdoor bool           `json:"outdoor"`
	Cells   []cellResponse `json:"cells"`
}

type calendarResponse struct {
	Date   string              `json:"date"`
	Env    booking.Environment `json:"env"`
	Slots  []slotResponse      `json:"slots"`
	Courts []courtRowResponse  `json:"courts"`
}

type reservationRequest struct {
	CourtID int64  `json:"court_id"`
	Start   string `json:"start"`
	End     string `json:"end"`
	State   string `json:"state,omitempty"`
}

type reservationResponse struct {
	ID              int64         `json:"id"`
	CourtID         int64         `json:"court_id"`
	UserID          int64         `json:"user_id"`
	PriceEntryID    int64         `json:"price_list_entry_id"`
	Start           time.Time     `json:"start"`
	End             time.Time     `json:"end"`
	PriceTotalCents int64         `json:"price_total_cents"`
	State           booking.State `json:"state"`
	CreatedAt       time.Time     `json:"created_at"`
}

func newReservationResponse(res booking.Reservation) reservationResponse {
	return reservationResponse{
		ID:              res.ID,
		CourtID:         res.CourtID,
		UserID:          res.UserID,
		PriceEntryID:    res.PriceEntryID,
		Start:           res.Start,
		End:             res.End,
		PriceTotalCents: res.PriceTotalCents,
		State:           res.State,
		CreatedAt:       res.CreatedAt,
	}
}

// GET /api/v1/reservations/calendar?date=...&env=...
func HandleCalendarJSON(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	user, ok := apiutil.RequireRole(w, r, models.RoleUser)
	if !ok {
		return
	}

	params := request.CalendarParamsFromRequest(r, manager.GridConfig().Location, manager.Now())

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	grid, err := manager.DayGrid(ctx, params.Day, params.Env, user.ID)
	if err != nil {
		apiutil.WriteBookingError(w, r, err, "Failed to build calendar grid")
		return
	}

	resp := calendarResponse{
		Date:   request.FormatDay(grid.Day),
		Env:    params.Env,
		Slots:  make([]slotResponse, 0, len(grid.Slots)),
		Courts: make([]courtRowResponse, 0, len(grid.Rows)),
	}
	for _, slot := range grid.Slots {
		resp.Slots = append(resp.Slots, slotResponse{Label: slot.Label, Start: slot.Start, End: slot.End})
	}
	for _, row := range grid.Rows {
		cells := make([]cellResponse, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, cellResponse{Status: cell.Status, ReservationID: cell.ReservationID})
		}
		resp.Courts = append(resp.Courts, courtRowResponse{
			ID:      row.Court.ID,
			Name:    row.Court.Name,
			Outdoor: row.Court.Outdoor,
			Cells:   cells,
		})
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write calendar response")
	}
}

// POST /api/v1/reservations
func HandleReservationCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	user, ok := apiutil.RequireRole(w, r, models.RoleUser)
	if !ok {
		return
	}

	var req reservationRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	loc := manager.GridConfig().Location
	start, err := apiutil.ParseLocalDateTime(req.Start, "start", loc)
	if err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	end, err := apiutil.ParseLocalDateTime(req.End, "end", loc)
	if err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	state := booking.StatePending
	if strings.TrimSpace(req.State) != "" {
		if state, err = booking.ParseState(req.State); err != nil {
			apiutil.WriteBookingError(w, r, err, "Invalid reservation state")
			return
		}
	}

	created, err := manager.Create(r.Context(), booking.CreateRequest{
		Actor:   user.Actor(),
		CourtID: req.CourtID,
		Start:   start,
		End:     end,
		State:   state,
	})
	if err != nil {
		apiutil.WriteBookingError(w, r, err, "Failed to create reservation")
		return
	}

	metrics.ReservationsCreated.WithLabelValues(string(created.State)).Inc()
	if created.State == booking.StateConfirmed {
		notifier.ReservationsConfirmed(r.Context(), user.ID, []booking.Reservation{created})
	}

	htmx.Trigger(w, htmx.CalendarRefreshEvent)
	if err := apiutil.WriteJSON(w, http.StatusCreated, newReservationResponse(created)); err != nil {
		logger.Error().Err(err).Int64("reservation_id", created.ID).Msg("Failed to write reservation response")
	}
}

// POST /api/v1/reservations/{id}/cancel
func HandleReservationCancelJSON(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	user, ok := apiutil.RequireRole(w, r, models.RoleUser)
	if !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := cancelReservation(r.Context(), user, id)
	if err != nil {
		apiutil.WriteBookingError(w, r, err, "Failed to cancel reservation")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, newReservationResponse(res)); err != nil {
		logger.Error().Err(err).Int64("reservation_id", res.ID).Msg("Failed to write reservation response")
	}
}
