package reservations

import (
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/codr1/CourtPlay/internal/booking"
	"github.com/codr1/CourtPlay/internal/templates/markup"
)

const dayLayout = "2006-01-02"

type CalendarData struct {
	Grid      booking.Grid
	Env       booking.Environment
	Duration  int
	Durations []int
	Message   string
	Error     string
}

func (d CalendarData) query(day time.Time) string {
	return "date=" + day.Format(dayLayout) + "&env=" + string(d.Env) + "&duration=" + strconv.Itoa(d.Duration)
}

var cellClasses = map[booking.SlotStatus]string{
	booking.SlotFree:    "bg-green-50",
	booking.SlotMine:    "bg-blue-200",
	booking.SlotBusy:    "bg-gray-300",
	booking.SlotBlocked: "bg-red-200",
	booking.SlotPast:    "bg-gray-100",
}

var cellLabels = map[booking.SlotStatus]string{
	booking.SlotMine:    "Mine",
	booking.SlotBusy:    "Booked",
	booking.SlotBlocked: "Closed",
}

// CalendarPage renders the day grid. Free cells are checkboxes; the whole
// table is one batch booking form.
func CalendarPage(data CalendarData) templ.Component {
	return markup.Component(func(b *markup.Builder) {
		day := data.Grid.Day
		b.Raw(`<div id="calendar" hx-get="/reservations/calendar" hx-trigger="refreshCourtsCalendar from:body" hx-swap="outerHTML">`,
			`<div class="mb-4 flex flex-wrap items-center gap-3">`,
			`<a class="rounded border px-3 py-1" href="/reservations/calendar?`, markup.E(data.query(day.AddDate(0, 0, -1))), `">&larr;</a>`,
			`<h1 class="text-2xl font-semibold">`).Text(day.Format("Monday, 2 Jan 2006")).Raw(`</h1>`,
			`<a class="rounded border px-3 py-1" href="/reservations/calendar?`, markup.E(data.query(day.AddDate(0, 0, 1))), `">&rarr;</a>`,
			`<form method="get" action="/reservations/calendar" class="ml-auto flex gap-2">`,
			`<input type="date" name="date" value="`, day.Format(dayLayout), `" class="rounded border-gray-300">`)
		b.Raw(markup.Select("Courts", "env", envOptions(data.Env)),
			`<input type="hidden" name="duration" value="`, strconv.Itoa(data.Duration), `">`,
			`<button type="submit" class="rounded border px-3 py-1">Show</button></form></div>`,
			markup.Alert("success", data.Message),
			markup.Alert("error", data.Error))

		if len(data.Grid.Rows) == 0 {
			b.Raw(`<p class="text-gray-500">No courts match this filter.</p></div>`)
			return
		}

		b.Raw(`<form method="post" action="/reservations/batch" hx-post="/reservations/batch" hx-target="#calendar" hx-swap="outerHTML">`,
			`<input type="hidden" name="date" value="`, day.Format(dayLayout), `">`,
			`<input type="hidden" name="env" value="`, markup.E(string(data.Env)), `">`,
			`<div class="mb-3 flex items-end gap-3">`,
			markup.Select("Duration", "duration", durationOptions(data.Durations, data.Duration)),
			`<button type="submit" class="rounded bg-blue-600 px-4 py-2 text-white">Book selected</button></div>`,
			`<div class="overflow-x-auto"><table class="bg-white text-xs shadow"><thead><tr><th class="p-1 text-left">Court</th>`)
		for _, slot := range data.Grid.Slots {
			b.Raw(`<th class="p-1">`).Text(slot.Label).Raw(`</th>`)
		}
		b.Raw(`</tr></thead><tbody>`)
		for _, row := range data.Grid.Rows {
			courtID := strconv.FormatInt(row.Court.ID, 10)
			b.Raw(`<tr class="border-t"><th class="p-1 text-left whitespace-nowrap">`).Text(row.Court.Name).Raw(`</th>`)
			for i, cell := range row.Cells {
				b.Raw(`<td class="p-1 text-center `, cellClasses[cell.Status], `" data-status="`, string(cell.Status), `">`)
				if cell.Status == booking.SlotFree {
					b.Raw(`<input type="checkbox" name="slot" value="`, courtID, `@`, data.Grid.Slots[i].Label,
						`" aria-label="`).Text(row.Court.Name+" "+data.Grid.Slots[i].Label).Raw(`">`)
				} else {
					b.Text(cellLabels[cell.Status])
				}
				b.Raw(`</td>`)
			}
			b.Raw(`</tr>`)
		}
		b.Raw(`</tbody></table></div></form></div>`)
	})
}

func envOptions(selected booking.Environment) []markup.Option {
	envs := []booking.Environment{booking.EnvAll, booking.EnvIndoor, booking.EnvOutdoor}
	options := make([]markup.Option, 0, len(envs))
	for _, env := range envs {
		options = append(options, markup.Option{Value: string(env), Label: string(env), Selected: env == selected})
	}
	return options
}

func durationOptions(durations []int, selected int) []markup.Option {
	options := make([]markup.Option, 0, len(durations))
	for _, d := range durations {
		options = append(options, markup.Option{
			Value:    strconv.Itoa(d),
			Label:    strconv.Itoa(d) + " min",
			Selected: d == selected,
		})
	}
	return options
}
