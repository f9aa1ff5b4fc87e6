// Package htmx reads and writes the HTMX request and response headers.
package htmx

import (
	"net/http"
	"strings"
)

const (
	headerRequest    = "HX-Request"
	headerCurrentURL = "HX-Current-URL"
	headerRedirect   = "HX-Redirect"
	headerTrigger    = "HX-Trigger"
)

// CalendarRefreshEvent tells the calendar grid to reload after a booking change.
const CalendarRefreshEvent = "refreshCourtsCalendar"

func IsRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(headerRequest), "true")
}

// CurrentURL is the browser URL of the page that issued the request, or "".
func CurrentURL(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerCurrentURL))
}

// Redirect makes HTMX navigate the whole page to target.
func Redirect(w http.ResponseWriter, target string) {
	w.Header().Set(headerRedirect, target)
}

// Trigger fires a client-side event once the response is swapped.
func Trigger(w http.ResponseWriter, event string) {
	w.Header().Set(headerTrigger, event)
}
