package request

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtPlay/internal/api/htmx"
	"github.com/codr1/CourtPlay/internal/booking"
)

const dayLayout = "2006-01-02"

// CalendarParams are the calendar view's query parameters.
type CalendarParams struct {
	Day time.Time
	Env booking.Environment
}

// ParseDay reads a YYYY-MM-DD value in loc. Empty or malformed values fall
// back to the day containing now.
func ParseDay(value string, loc *time.Location, now time.Time) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value != "" {
		if day, err := time.ParseInLocation(dayLayout, value, loc); err == nil {
			return day, true
		}
	}
	return booking.StartOfDay(now, loc), false
}

// ParseEnvironment falls back to all courts for empty or unknown values.
func ParseEnvironment(value string) booking.Environment {
	env, err := booking.ParseEnvironment(value)
	if err != nil {
		return booking.EnvAll
	}
	return env
}

// FormatDay renders a day the way ParseDay reads it.
func FormatDay(day time.Time) string {
	return day.Format(dayLayout)
}

// CalendarParamsFromRequest reads date and env from the query, falling back
// to HX-Current-URL so fragment requests keep the page's selection.
func CalendarParamsFromRequest(r *http.Request, loc *time.Location, now time.Time) CalendarParams {
	query := r.URL.Query()
	if query.Get("date") == "" && query.Get("env") == "" {
		if current := htmx.CurrentURL(r); current != "" {
			parsed, err := url.Parse(current)
			if err != nil {
				log.Ctx(r.Context()).
					Debug().
					Err(err).
					Str("hx_current_url", current).
					Msg("Failed to parse HX-Current-URL")
			} else {
				query = parsed.Query()
			}
		}
	}

	day, _ := ParseDay(query.Get("date"), loc, now)
	return CalendarParams{Day: day, Env: ParseEnvironment(query.Get("env"))}
}
