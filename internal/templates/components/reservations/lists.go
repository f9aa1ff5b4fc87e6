package reservations

import (
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/codr1/CourtPlay/internal/booking"
	"github.com/codr1/CourtPlay/internal/templates/markup"
)

type MineData struct {
	Reservations []booking.ReservationView
	Location     *time.Location
	Now          time.Time
	Message      string
	Error        string
}

var stateClasses = map[booking.State]string{
	booking.StatePending:   "bg-yellow-100 text-yellow-800",
	booking.StateConfirmed: "bg-green-100 text-green-800",
	booking.StateCancelled: "bg-gray-100 text-gray-600",
	booking.StateFinished:  "bg-blue-100 text-blue-800",
}

func stateBadge(state booking.State) string {
	return `<span class="rounded px-2 py-0.5 text-xs ` + stateClasses[state] + `">` + markup.E(string(state)) + `</span>`
}

func formatSpan(res booking.Reservation, loc *time.Location) string {
	start, end := res.Start.In(loc), res.End.In(loc)
	return start.Format("Mon 2 Jan 2006 15:04") + " - " + end.Format("15:04")
}

// Cancellable reports whether the owner may still cancel res at now.
func Cancellable(res booking.Reservation, now time.Time) bool {
	return res.State.Active() && res.State != booking.StateFinished && res.Start.After(now)
}

func MinePage(data MineData) templ.Component {
	return markup.Component(func(b *markup.Builder) {
		b.Raw(`<h1 class="mb-4 text-2xl font-semibold">My reservations</h1>`,
			markup.Alert("success", data.Message), markup.Alert("error", data.Error))
		if len(data.Reservations) == 0 {
			b.Raw(`<p class="text-gray-500">You have no reservations yet. <a class="text-blue-600" href="/reservations/calendar">Book a court</a>.</p>`)
			return
		}
		b.Raw(`<table class="w-full bg-white text-sm shadow"><thead><tr class="text-left">`,
			`<th class="p-2">Court</th><th class="p-2">When</th><th class="p-2">Price</th><th class="p-2">State</th><th></th></tr></thead><tbody>`)
		for _, res := range data.Reservations {
			b.Raw(`<tr class="border-t"><td class="p-2">`).Text(res.CourtName).
				Raw(`</td><td class="p-2">`).Text(formatSpan(res.Reservation, data.Location)).
				Raw(`</td><td class="p-2">`).Text(markup.Price(res.PriceTotalCents)).
				Raw(`</td><td class="p-2">`, stateBadge(res.State), `</td><td class="p-2 text-right">`)
			if Cancellable(res.Reservation, data.Now) {
				b.Raw(markup.PostButton("/reservations/"+strconv.FormatInt(res.ID, 10)+"/cancel", "Cancel", "text-red-600", "Cancel this reservation?"))
			}
			b.Raw(`</td></tr>`)
		}
		b.Raw(`</tbody></table>`)
	})
}

type AdminData struct {
	Reservations []booking.ReservationView
	Location     *time.Location
	States       []booking.State
	CanDelete    bool
	Message      string
}

func AdminPage(data AdminData) templ.Component {
	return markup.Component(func(b *markup.Builder) {
		b.Raw(`<h1 class="mb-4 text-2xl font-semibold">All reservations</h1>`, markup.Alert("success", data.Message))
		if len(data.Reservations) == 0 {
			b.Raw(`<p class="text-gray-500">No reservations.</p>`)
			return
		}
		b.Raw(`<table class="w-full bg-white text-sm shadow"><thead><tr class="text-left">`,
			`<th class="p-2">#</th><th class="p-2">Court</th><th class="p-2">Player</th><th class="p-2">When</th>`,
			`<th class="p-2">Price</th><th class="p-2">State</th><th></th></tr></thead><tbody>`)
		for _, res := range data.Reservations {
			id := strconv.FormatInt(res.ID, 10)
			b.Raw(`<tr class="border-t"><td class="p-2">`, id,
				`</td><td class="p-2">`).Text(res.CourtName).
				Raw(`</td><td class="p-2">`).Text(res.UserName).Raw(`<br><span class="text-xs text-gray-500">`).Text(res.UserEmail).
				Raw(`</span></td><td class="p-2">`).Text(formatSpan(res.Reservation, data.Location)).
				Raw(`</td><td class="p-2">`).Text(markup.Price(res.PriceTotalCents)).
				Raw(`</td><td class="p-2">`, stateBadge(res.State), `</td><td class="p-2 text-right">`,
					`<form method="post" action="/admin/reservations/`, id, `/state" class="inline-flex gap-1">`,
					`<select name="state" class="rounded border-gray-300 text-xs">`)
			for _, state := range data.States {
				sel := ""
				if state == res.State {
					sel = " selected"
				}
				b.Raw(`<option value="`, string(state), `"`, sel, `>`, string(state), `</option>`)
			}
			b.Raw(`</select><button type="submit" class="text-blue-600">Set</button></form> `)
			if data.CanDelete {
				b.Raw(markup.PostButton("/admin/reservations/"+id+"/delete", "Delete", "text-red-600", "Delete this reservation permanently?"))
			}
			b.Raw(`</td></tr>`)
		}
		b.Raw(`</tbody></table>`)
	})
}
