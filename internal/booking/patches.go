package booking

import (
	"strings"
	"time"
)

// CourtPatch holds the court fields an update sets. Nil leaves a field as is.
type CourtPatch struct {
	Name    *string
	Outdoor *bool
	Status  *string
	Note    *string
}

func (p CourtPatch) Apply(court Court) (Court, error) {
	if p.Name != nil {
		court.Name = strings.TrimSpace(*p.Name)
	}
	if p.Outdoor != nil {
		court.Outdoor = *p.Outdoor
	}
	if p.Status != nil {
		court.Status = strings.TrimSpace(*p.Status)
	}
	if p.Note != nil {
		court.Note = strings.TrimSpace(*p.Note)
	}
	return court, validateCourt(court)
}

func validateCourt(court Court) error {
	if court.Name == "" {
		return ValidationError{Field: "name", Reason: "is required"}
	}
	if court.Status == "" {
		return ValidationError{Field: "status", Reason: "is required"}
	}
	return nil
}

type PriceEntryPatch struct {
	DurationMin      *int
	Opening          *TimeOfDay
	Closing          *TimeOfDay
	BasePriceCents   *int64
	IndoorMultiplier *float64
}

func (p PriceEntryPatch) Apply(entry PriceEntry) (PriceEntry, error) {
	if p.DurationMin != nil {
		entry.DurationMin = *p.DurationMin
	}
	if p.Opening != nil {
		entry.Opening = *p.Opening
	}
	if p.Closing != nil {
		entry.Closing = *p.Closing
	}
	if p.BasePriceCents != nil {
		entry.BasePriceCents = *p.BasePriceCents
	}
	if p.IndoorMultiplier != nil {
		entry.IndoorMultiplier = *p.IndoorMultiplier
	}
	return entry, validatePriceEntry(entry)
}

func validatePriceEntry(entry PriceEntry) error {
	switch {
	case entry.DurationMin <= 0:
		return ValidationError{Field: "duration_min", Reason: "must be greater than 0"}
	case entry.BasePriceCents <= 0:
		return ValidationError{Field: "base_price", Reason: "must be greater than 0"}
	case entry.IndoorMultiplier <= 0:
		return ValidationError{Field: "indoor_multiplier", Reason: "must be greater than 0"}
	case entry.Opening >= entry.Closing:
		return ValidationError{Field: "closing_time", Reason: "must be after opening_time"}
	}
	return nil
}

type TimeBlockPatch struct {
	CourtID *int64
	Start   *time.Time
	End     *time.Time
	Reason  *string
}

func (p TimeBlockPatch) Apply(block TimeBlock) (TimeBlock, error) {
	if p.CourtID != nil {
		block.CourtID = *p.CourtID
	}
	if p.Start != nil {
		block.Start = *p.Start
	}
	if p.End != nil {
		block.End = *p.End
	}
	if p.Reason != nil {
		block.Reason = strings.TrimSpace(*p.Reason)
	}
	return block, validateTimeBlock(block)
}

func validateTimeBlock(block TimeBlock) error {
	if block.CourtID <= 0 {
		return ValidationError{Field: "court_id", Reason: "is required"}
	}
	if block.Start.IsZero() || block.End.IsZero() {
		return ValidationError{Field: "start", Reason: "and end are required"}
	}
	if !block.End.After(block.Start) {
		return ValidationError{Field: "end", Reason: "must be after start"}
	}
	return nil
}

// UserProfile is the self-service part of a user record.
type UserProfile struct {
	Name  string
	Phone string
}

type UserPatch struct {
	Name  *string
	Phone *string
}

func (p UserPatch) Apply(profile UserProfile) (UserProfile, error) {
	if p.Name != nil {
		profile.Name = strings.TrimSpace(*p.Name)
	}
	if p.Phone != nil {
		profile.Phone = strings.TrimSpace(*p.Phone)
	}
	if profile.Name == "" {
		return profile, ValidationError{Field: "name", Reason: "is required"}
	}
	return profile, nil
}
