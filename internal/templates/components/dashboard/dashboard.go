package dashboard

import (
	"time"

	"github.com/a-h/templ"

	"github.com/codr1/CourtPlay/internal/booking"
	"github.com/codr1/CourtPlay/internal/templates/markup"
)

type DashboardData struct {
	Name   string
	Courts []booking.Court
	Mine   []booking.ReservationView
	// All is only filled for staff.
	All      []booking.ReservationView
	ShowAll  bool
	Location *time.Location
}

func when(res booking.Reservation, loc *time.Location) string {
	return res.Start.In(loc).Format("Mon 2 Jan 15:04") + " - " + res.End.In(loc).Format("15:04")
}

func DashboardPage(data DashboardData) templ.Component {
	return markup.Component(func(b *markup.Builder) {
		b.Raw(`<h1 class="mb-4 text-2xl font-semibold">Welcome, `).Text(data.Name).Raw(`</h1>`,
			`<div class="grid gap-6 md:grid-cols-2"><section class="rounded bg-white p-4 shadow">`,
			`<div class="mb-2 flex items-center justify-between"><h2 class="font-semibold">My upcoming reservations</h2>`,
			`<a class="text-sm text-blue-600" href="/reservations/calendar">Book a court</a></div>`)
		if len(data.Mine) == 0 {
			b.Raw(`<p class="text-sm text-gray-500">Nothing booked.</p>`)
		} else {
			b.Raw(`<ul class="space-y-1 text-sm">`)
			for _, res := range data.Mine {
				b.Raw(`<li>`).Text(res.CourtName).Raw(` <span class="text-gray-600">`).Text(when(res.Reservation, data.Location)).
					Raw(`</span> <span class="text-xs">`).Text(string(res.State)).Raw(`</span></li>`)
			}
			b.Raw(`</ul>`)
		}
		b.Raw(`</section><section class="rounded bg-white p-4 shadow"><h2 class="mb-2 font-semibold">Courts</h2><ul class="space-y-1 text-sm">`)
		for _, court := range data.Courts {
			kind := "indoor"
			if court.Outdoor {
				kind = "outdoor"
			}
			b.Raw(`<li>`).Text(court.Name).Raw(` <span class="text-gray-500">`).Text(kind + ", " + court.Status).Raw(`</span></li>`)
		}
		b.Raw(`</ul></section></div>`)

		if !data.ShowAll {
			return
		}
		b.Raw(`<section class="mt-6 rounded bg-white p-4 shadow"><div class="mb-2 flex items-center justify-between">`,
			`<h2 class="font-semibold">All upcoming reservations</h2><a class="text-sm text-blue-600" href="/admin/reservations">Manage</a></div>`)
		if len(data.All) == 0 {
			b.Raw(`<p class="text-sm text-gray-500">No upcoming reservations.</p></section>`)
			return
		}
		b.Raw(`<table class="w-full text-sm"><tbody>`)
		for _, res := range data.All {
			b.Raw(`<tr class="border-t"><td class="p-1">`).Text(res.CourtName).
				Raw(`</td><td class="p-1">`).Text(res.UserName).
				Raw(`</td><td class="p-1">`).Text(when(res.Reservation, data.Location)).
				Raw(`</td><td class="p-1">`).Text(string(res.State)).Raw(`</td></tr>`)
		}
		b.Raw(`</tbody></table></section>`)
	})
}
