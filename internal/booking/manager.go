package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtPlay/internal/db"
	dbgen "github.com/codr1/CourtPlay/internal/db/generated"
)

// Clock supplies the current time so time-dependent rules can be tested.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// StatePolicy controls the administrative state editor.
type StatePolicy struct {
	// GuardPastCancellation applies the self-service "start must be in the
	// future" rule to administrative cancellation.
	GuardPastCancellation bool
	// AllowReactivation lets a cancelled reservation be confirmed or
	// finished again, provided its slot is still free.
	AllowReactivation bool
}

type Config struct {
	Grid   GridConfig
	Policy StatePolicy
}

// Manager is the only path that creates or transitions reservations.
type Manager struct {
	db     *db.DB
	clock  Clock
	grid   GridConfig
	policy StatePolicy
}

func NewManager(database *db.DB, cfg Config, clock Clock) (*Manager, error) {
	if database == nil {
		return nil, errors.New("booking manager requires a database")
	}
	if err := cfg.Grid.validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = systemClock{}
	}
	return &Manager{
		db:     database,
		clock:  clock,
		grid:   cfg.Grid,
		policy: cfg.Policy,
	}, nil
}

func (m *Manager) GridConfig() GridConfig {
	return m.grid
}

func (m *Manager) Now() time.Time {
	return m.clock.Now()
}

type CreateRequest struct {
	Actor Actor
	// OwnerID books on behalf of another user. Zero means Actor.UserID.
	OwnerID int64
	CourtID int64
	// PriceEntryID pre-selects a price entry. Zero resolves one.
	PriceEntryID int64
	Start        time.Time
	End          time.Time
	// State is PENDING or CONFIRMED. Zero means PENDING.
	State State
}

// Create checks the slot, prices it and persists the reservation in one
// transaction, so nothing is written unless every step succeeds.
func (m *Manager) Create(ctx context.Context, req CreateRequest) (Reservation, error) {
	ownerID, state, err := m.validateCreate(req)
	if err != nil {
		return Reservation{}, err
	}

	logger := log.Ctx(ctx).With().
		Str("component", "booking_manager").
		Int64("user_id", ownerID).
		Int64("court_id", req.CourtID).
		Time("start_time", req.Start).
		Time("end_time", req.End).
		Logger()

	var created Reservation
	err = m.db.RunInTx(ctx, func(txdb *db.DB) error {
		if ownerID != req.Actor.UserID {
			if _, err := txdb.Queries.GetUserByID(ctx, ownerID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return NotFoundError{Resource: "user", ID: ownerID}
				}
				return fmt.Errorf("load user: %w", err)
			}
		}

		courtRow, err := txdb.Queries.GetCourt(ctx, req.CourtID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return NotFoundError{Resource: "court", ID: req.CourtID}
			}
			return fmt.Errorf("load court: %w", err)
		}
		court := courtFromDB(courtRow)

		if err := findConflict(ctx, txdb.Queries, court.ID, req.Start, req.End, noReservation); err != nil {
			return err
		}

		entry, err := m.priceFor(ctx, txdb.Queries, req)
		if err != nil {
			return err
		}
		if err := CheckDuration(entry, req.Start, req.End); err != nil {
			return err
		}

		row, err := txdb.Queries.CreateReservation(ctx, dbgen.CreateReservationParams{
			CourtID:          court.ID,
			UserID:           ownerID,
			PriceListEntryID: entry.ID,
			StartTime:        db.FormatTimestamp(req.Start),
			EndTime:          db.FormatTimestamp(req.End),
			PriceTotalCents:  ComputePrice(entry, court),
			State:            string(state),
			CreatedAt:        db.FormatTimestamp(m.clock.Now()),
		})
		if err != nil {
			return fmt.Errorf("insert reservation: %w", err)
		}
		created, err = reservationFromDB(row)
		return err
	})
	if err != nil {
		logDomainError(logger, err, "Failed to create reservation")
		return Reservation{}, err
	}

	logger.Info().
		Int64("reservation_id", created.ID).
		Int64("price_total_cents", created.PriceTotalCents).
		Str("state", string(created.State)).
		Msg("Reservation created")
	return created, nil
}

func (m *Manager) validateCreate(req CreateRequest) (int64, State, error) {
	if req.Actor.UserID == 0 {
		return 0, "", AuthorizationError{Reason: "anonymous actor"}
	}
	ownerID := req.OwnerID
	if ownerID == 0 {
		ownerID = req.Actor.UserID
	}
	if ownerID != req.Actor.UserID && !req.Actor.Role.CanManage() {
		return 0, "", AuthorizationError{Reason: "booking for another user"}
	}
	if req.CourtID <= 0 {
		return 0, "", ValidationError{Field: "court_id", Reason: "is required"}
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return 0, "", ValidationError{Field: "start", Reason: "and end are required"}
	}
	if !req.End.After(req.Start) {
		return 0, "", ValidationError{Field: "end", Reason: "must be after start"}
	}
	if req.Start.Before(m.clock.Now()) {
		return 0, "", ValidationError{Field: "start", Reason: "must not be in the past"}
	}

	state := req.State
	if state == "" {
		state = StatePending
	}
	if state != StatePending && state != StateConfirmed {
		return 0, "", ValidationError{Field: "state", Reason: "must be PENDING or CONFIRMED for a new reservation"}
	}
	return ownerID, state, nil
}

func (m *Manager) priceFor(ctx context.Context, q *dbgen.Queries, req CreateRequest) (PriceEntry, error) {
	if req.PriceEntryID == 0 {
		return m.resolvePrice(ctx, q, req.Start, req.End)
	}
	row, err := q.GetPriceListEntry(ctx, req.PriceEntryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PriceEntry{}, NotFoundError{Resource: "price entry", ID: req.PriceEntryID}
		}
		return PriceEntry{}, fmt.Errorf("load price entry: %w", err)
	}
	entry, err := priceEntryFromDB(row)
	if err != nil {
		return PriceEntry{}, err
	}
	if from, to := spanOfDay(req.Start, req.End, m.grid.Location); from < entry.Opening || to > entry.Closing {
		return PriceEntry{}, ValidationError{
			Field:  "price",
			Reason: fmt.Sprintf("entry %d only covers %s to %s, not %s to %s", entry.ID, entry.Opening, entry.Closing, from, to),
		}
	}
	return entry, nil
}

type BatchItem struct {
	CourtID int64
	Start   time.Time
	End     time.Time
}

// CreateBatch books every item in order. When an item fails, the
// reservations already created by this call are cancelled again and the
// item's error is returned inside a BatchError. Compensation is best effort:
// a failed rollback is logged and does not replace the original error.
func (m *Manager) CreateBatch(ctx context.Context, actor Actor, items []BatchItem, state State) ([]Reservation, error) {
	if len(items) == 0 {
		return nil, ValidationError{Field: "selected_slots", Reason: "must contain at least one slot"}
	}

	logger := log.Ctx(ctx).With().
		Str("component", "booking_manager").
		Int64("user_id", actor.UserID).
		Int("batch_size", len(items)).
		Logger()

	created := make([]Reservation, 0, len(items))
	for i, item := range items {
		res, err := m.Create(ctx, CreateRequest{
			Actor:   actor,
			CourtID: item.CourtID,
			Start:   item.Start,
			End:     item.End,
			State:   state,
		})
		if err != nil {
			m.compensate(ctx, logger, created)
			return nil, BatchError{Item: i, Err: err}
		}
		created = append(created, res)
	}

	logger.Info().Msg("Batch reservation created")
	return created, nil
}

func (m *Manager) compensate(ctx context.Context, logger zerolog.Logger, created []Reservation) {
	// The request may already be cancelled; the rollback must still run.
	ctx = context.WithoutCancel(ctx)
	for _, res := range created {
		_, err := m.db.Queries.UpdateReservationState(ctx, dbgen.UpdateReservationStateParams{
			State: string(StateCancelled),
			ID:    res.ID,
		})
		if err != nil {
			logger.Error().
				Err(err).
				Int64("reservation_id", res.ID).
				Msg("Failed to roll back batch reservation")
			continue
		}
		logger.Warn().
			Int64("reservation_id", res.ID).
			Msg("Rolled back batch reservation")
	}
}

// Cancel is the self-service cancel path. Owners may cancel their own future
// reservations; managers and admins may cancel anyone's. A reservation that
// has already started cannot be cancelled here by anybody. Cancelling an
// already cancelled reservation succeeds without writing.
func (m *Manager) Cancel(ctx context.Context, actor Actor, reservationID int64) (Transition, error) {
	logger := log.Ctx(ctx).With().
		Str("component", "booking_manager").
		Int64("user_id", actor.UserID).
		Int64("reservation_id", reservationID).
		Logger()

	var result Transition
	err := m.db.RunInTx(ctx, func(txdb *db.DB) error {
		res, err := loadReservation(ctx, txdb.Queries, reservationID)
		if err != nil {
			return err
		}
		if res.UserID != actor.UserID && !actor.Role.CanManage() {
			return AuthorizationError{Reason: "reservation owned by another user"}
		}
		result = Transition{Reservation: res, From: res.State}
		switch res.State {
		case StateCancelled:
			return nil
		case StateFinished:
			return ValidationError{Field: "state", Reason: "finished reservations cannot be cancelled"}
		}
		if !res.Start.After(m.clock.Now()) {
			return ValidationError{Reason: "cannot cancel past reservation"}
		}

		if err := setState(ctx, txdb.Queries, res.ID, StateCancelled); err != nil {
			return err
		}
		result.State = StateCancelled
		result.Changed = true
		return nil
	})
	if err != nil {
		logDomainError(logger, err, "Failed to cancel reservation")
		return Transition{}, err
	}

	if result.Changed {
		logger.Info().Msg("Reservation cancelled")
	}
	return result, nil
}

// ChangeState is the administrative state editor for managers and admins.
func (m *Manager) ChangeState(ctx context.Context, actor Actor, reservationID int64, target State) (Transition, error) {
	logger := log.Ctx(ctx).With().
		Str("component", "booking_manager").
		Int64("user_id", actor.UserID).
		Int64("reservation_id", reservationID).
		Str("target_state", string(target)).
		Logger()

	if !actor.Role.CanManage() {
		err := AuthorizationError{Reason: "state change requires manager role"}
		logDomainError(logger, err, "Failed to change reservation state")
		return Transition{}, err
	}
	switch target {
	case StateConfirmed, StateFinished, StateCancelled:
	default:
		return Transition{}, ValidationError{Field: "state", Reason: "must be CONFIRMED, FINISHED or CANCELLED"}
	}

	var result Transition
	err := m.db.RunInTx(ctx, func(txdb *db.DB) error {
		res, err := loadReservation(ctx, txdb.Queries, reservationID)
		if err != nil {
			return err
		}
		result = Transition{Reservation: res, From: res.State}
		if res.State == target {
			return nil
		}
		if target == StateCancelled && m.policy.GuardPastCancellation && !res.Start.After(m.clock.Now()) {
			return ValidationError{Reason: "cannot cancel past reservation"}
		}
		if res.State == StateCancelled {
			if !m.policy.AllowReactivation {
				return ValidationError{Field: "state", Reason: "cancelled reservations cannot be reactivated"}
			}
			if err := findConflict(ctx, txdb.Queries, res.CourtID, res.Start, res.End, res.ID); err != nil {
				return err
			}
		}

		if err := setState(ctx, txdb.Queries, res.ID, target); err != nil {
			return err
		}
		result.State = target
		result.Changed = true
		return nil
	})
	if err != nil {
		logDomainError(logger, err, "Failed to change reservation state")
		return Transition{}, err
	}

	if result.Changed {
		logger.Info().Str("from_state", string(result.From)).Msg("Reservation state changed")
	}
	return result, nil
}

// Delete removes the row entirely. Admin only.
func (m *Manager) Delete(ctx context.Context, actor Actor, reservationID int64) error {
	logger := log.Ctx(ctx).With().
		Str("component", "booking_manager").
		Int64("user_id", actor.UserID).
		Int64("reservation_id", reservationID).
		Logger()

	if !actor.Role.IsAdmin() {
		err := AuthorizationError{Reason: "delete requires admin role"}
		logDomainError(logger, err, "Failed to delete reservation")
		return err
	}

	affected, err := m.db.Queries.DeleteReservation(ctx, reservationID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to delete reservation")
		return fmt.Errorf("delete reservation: %w", err)
	}
	if affected == 0 {
		return NotFoundError{Resource: "reservation", ID: reservationID}
	}

	logger.Info().Msg("Reservation deleted")
	return nil
}

// FinishElapsed marks confirmed reservations whose end has passed as
// finished and returns how many changed.
func (m *Manager) FinishElapsed(ctx context.Context) (int64, error) {
	affected, err := m.db.Queries.FinishElapsedReservations(ctx, db.FormatTimestamp(m.clock.Now()))
	if err != nil {
		return 0, fmt.Errorf("finish elapsed reservations: %w", err)
	}
	return affected, nil
}

// Get loads one reservation.
func (m *Manager) Get(ctx context.Context, reservationID int64) (Reservation, error) {
	return loadReservation(ctx, m.db.Queries, reservationID)
}

func loadReservation(ctx context.Context, q *dbgen.Queries, id int64) (Reservation, error) {
	row, err := q.GetReservation(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Reservation{}, NotFoundError{Resource: "reservation", ID: id}
		}
		return Reservation{}, fmt.Errorf("load reservation: %w", err)
	}
	return reservationFromDB(row)
}

func setState(ctx context.Context, q *dbgen.Queries, id int64, state State) error {
	affected, err := q.UpdateReservationState(ctx, dbgen.UpdateReservationStateParams{
		State: string(state),
		ID:    id,
	})
	if err != nil {
		return fmt.Errorf("update reservation state: %w", err)
	}
	if affected == 0 {
		return NotFoundError{Resource: "reservation", ID: id}
	}
	return nil
}

// IsDomainError reports whether err is one of the expected, user-facing
// booking failures rather than an infrastructure fault.
func IsDomainError(err error) bool {
	var (
		validation ValidationError
		conflict   ConflictError
		notFound   NotFoundError
		authz      AuthorizationError
	)
	return errors.As(err, &validation) ||
		errors.As(err, &conflict) ||
		errors.As(err, &notFound) ||
		errors.As(err, &authz)
}

func logDomainError(logger zerolog.Logger, err error, msg string) {
	if IsDomainError(err) {
		logger.Warn().Err(err).Msg(msg)
		return
	}
	logger.Error().Err(err).Msg(msg)
}
