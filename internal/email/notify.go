package email

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtPlay/internal/booking"
	dbgen "github.com/codr1/CourtPlay/internal/db/generated"
)

const sendTimeout = 5 * time.Second

// Notifier turns reservation events into emails. A nil Notifier, or one
// without a sender, drops every message.
type Notifier struct {
	queries  *dbgen.Queries
	sender   EmailSender
	appName  string
	location *time.Location
	wg       sync.WaitGroup
}

func NewNotifier(q *dbgen.Queries, sender EmailSender, appName string, loc *time.Location) *Notifier {
	return &Notifier{queries: q, sender: sender, appName: appName, location: loc}
}

// Enabled reports whether messages are actually delivered.
func (n *Notifier) Enabled() bool {
	return n != nil && n.sender != nil && n.queries != nil
}

// Wait blocks until queued sends have finished.
func (n *Notifier) Wait() {
	if n != nil {
		n.wg.Wait()
	}
}

// ReservationsConfirmed mails the owner one message covering every
// reservation of a booking.
func (n *Notifier) ReservationsConfirmed(ctx context.Context, userID int64, reservations []booking.Reservation) {
	if !n.Enabled() || len(reservations) == 0 {
		return
	}
	user, ok := n.loadUser(ctx, userID)
	if !ok {
		return
	}
	details := BookingDetails{
		AppName:  n.appName,
		Name:     user.Name,
		Slots:    n.slotLines(ctx, reservations),
		Location: n.location,
	}
	n.send(ctx, user, BuildBookingConfirmation(details))
}

// ReservationCancelled tells the owner that res was cancelled. actorID is the
// user who cancelled it.
func (n *Notifier) ReservationCancelled(ctx context.Context, res booking.Reservation, actorID int64) {
	if !n.Enabled() {
		return
	}
	user, ok := n.loadUser(ctx, res.UserID)
	if !ok {
		return
	}
	details := BookingDetails{
		AppName:  n.appName,
		Name:     user.Name,
		Slots:    n.slotLines(ctx, []booking.Reservation{res}),
		Location: n.location,
	}
	n.send(ctx, user, BuildCancellationEmail(details, actorID != res.UserID))
}

func (n *Notifier) loadUser(ctx context.Context, userID int64) (dbgen.User, bool) {
	logger := log.Ctx(ctx)
	if userID <= 0 {
		logger.Warn().Int64("user_id", userID).Msg("Skipping email with invalid user ID")
		return dbgen.User{}, false
	}
	user, err := n.queries.GetUserByID(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to load user for email")
		return dbgen.User{}, false
	}
	if strings.TrimSpace(user.Email) == "" {
		return dbgen.User{}, false
	}
	return user, true
}

func (n *Notifier) slotLines(ctx context.Context, reservations []booking.Reservation) []SlotLine {
	names := make(map[int64]string)
	lines := make([]SlotLine, 0, len(reservations))
	for _, res := range reservations {
		name, ok := names[res.CourtID]
		if !ok {
			if court, err := n.queries.GetCourt(ctx, res.CourtID); err == nil {
				name = court.Name
			} else {
				log.Ctx(ctx).Warn().Err(err).Int64("court_id", res.CourtID).Msg("Failed to load court for email")
			}
			names[res.CourtID] = name
		}
		lines = append(lines, SlotLine{
			Court:      name,
			Start:      res.Start,
			End:        res.End,
			PriceCents: res.PriceTotalCents,
		})
	}
	return lines
}

// send delivers asynchronously. Cancellation of the request context is
// detached so a finished handler does not abort the send.
func (n *Notifier) send(ctx context.Context, user dbgen.User, message Message) {
	recipient := strings.TrimSpace(user.Email)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
		defer cancel()

		logger := log.Ctx(sendCtx)
		if err := n.sender.Send(sendCtx, recipient, message.Subject, message.Body); err != nil {
			logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to send email")
			return
		}
		logger.Info().Int64("user_id", user.ID).Str("subject", message.Subject).Msg("Email sent")
	}()
}
