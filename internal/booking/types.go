package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/codr1/CourtPlay/internal/models"
)

type State string

const (
	StatePending   State = "PENDING"
	StateConfirmed State = "CONFIRMED"
	StateCancelled State = "CANCELLED"
	StateFinished  State = "FINISHED"
)

func ParseState(raw string) (State, error) {
	switch s := State(strings.ToUpper(strings.TrimSpace(raw))); s {
	case StatePending, StateConfirmed, StateCancelled, StateFinished:
		return s, nil
	}
	return "", ValidationError{Field: "state", Reason: fmt.Sprintf("%q is not a reservation state", raw)}
}

// Active reports whether a reservation in this state occupies its slot.
func (s State) Active() bool {
	return s != StateCancelled
}

// AdminStates are the targets of the administrative state editor.
func AdminStates() []State {
	return []State{StateConfirmed, StateFinished, StateCancelled}
}

type Court struct {
	ID      int64
	Name    string
	Outdoor bool
	Status  string
	Note    string
}

type PriceEntry struct {
	ID               int64
	DurationMin      int
	Opening          TimeOfDay
	Closing          TimeOfDay
	BasePriceCents   int64
	IndoorMultiplier float64
}

type TimeBlock struct {
	ID      int64
	CourtID int64
	Start   time.Time
	End     time.Time
	Reason  string
}

type Reservation struct {
	ID              int64
	CourtID         int64
	UserID          int64
	PriceEntryID    int64
	Start           time.Time
	End             time.Time
	PriceTotalCents int64
	State           State
	CreatedAt       time.Time
}

// Transition is the result of a state change. From is the state read inside
// the same transaction as the write; Changed is false when the reservation
// was already in the requested state and nothing was written.
type Transition struct {
	Reservation
	From    State
	Changed bool
}

// Actor is the authenticated user on whose behalf an operation runs.
type Actor struct {
	UserID int64
	Role   models.Role
}
