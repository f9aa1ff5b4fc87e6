package timeblocks

import (
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/codr1/CourtPlay/internal/booking"
	"github.com/codr1/CourtPlay/internal/templates/markup"
)

type BlockForm struct {
	ID      int64
	CourtID int64
	// Start and End hold datetime-local values.
	Start  string
	End    string
	Reason string
	Error  string
}

func (f BlockForm) action() string {
	if f.ID == 0 {
		return "/admin/time-blocks"
	}
	return "/admin/time-blocks/" + strconv.FormatInt(f.ID, 10)
}

func FormFromBlock(block booking.TimeBlock, loc *time.Location) BlockForm {
	return BlockForm{
		ID:      block.ID,
		CourtID: block.CourtID,
		Start:   markup.LocalDateTime(block.Start, loc),
		End:     markup.LocalDateTime(block.End, loc),
		Reason:  block.Reason,
	}
}

type AdminData struct {
	Blocks   []booking.TimeBlockView
	Courts   []booking.Court
	Form     BlockForm
	Message  string
	Location *time.Location
}

func AdminPage(data AdminData) templ.Component {
	return markup.Component(func(b *markup.Builder) {
		b.Raw(`<h1 class="mb-4 text-2xl font-semibold">Time blocks</h1>`, markup.Alert("success", data.Message),
			`<div class="grid gap-6 md:grid-cols-3"><div class="md:col-span-2">`,
			`<table class="w-full bg-white text-sm shadow"><thead><tr class="text-left">`,
			`<th class="p-2">Court</th><th class="p-2">From</th><th class="p-2">To</th><th class="p-2">Reason</th><th></th></tr></thead><tbody>`)
		if len(data.Blocks) == 0 {
			b.Raw(`<tr><td colspan="5" class="p-2 text-gray-500">No maintenance scheduled.</td></tr>`)
		}
		for _, block := range data.Blocks {
			id := strconv.FormatInt(block.ID, 10)
			b.Raw(`<tr class="border-t"><td class="p-2">`).Text(block.CourtName).
				Raw(`</td><td class="p-2">`).Text(block.Start.In(data.Location).Format("2006-01-02 15:04")).
				Raw(`</td><td class="p-2">`).Text(block.End.In(data.Location).Format("2006-01-02 15:04")).
				Raw(`</td><td class="p-2">`).Text(block.Reason).
				Raw(`</td><td class="p-2 text-right"><a class="text-blue-600" href="/admin/time-blocks/`, id, `/edit">Edit</a> `,
					markup.PostButton("/admin/time-blocks/"+id+"/delete", "Delete", "text-red-600", "Delete this block?"),
					`</td></tr>`)
		}
		b.Raw(`</tbody></table></div><div>`)
		writeBlockForm(b, data.Form, data.Courts)
		b.Raw(`</div></div>`)
	})
}

func writeBlockForm(b *markup.Builder, form BlockForm, courts []booking.Court) {
	title := "New block"
	if form.ID != 0 {
		title = "Edit block"
	}
	options := make([]markup.Option, 0, len(courts))
	for _, court := range courts {
		options = append(options, markup.Option{
			Value:    strconv.FormatInt(court.ID, 10),
			Label:    court.Name,
			Selected: court.ID == form.CourtID,
		})
	}
	b.Raw(`<form method="post" action="`, form.action(), `" class="space-y-3 rounded bg-white p-4 shadow">`,
		`<h2 class="font-semibold">`, title, `</h2>`,
		markup.Alert("error", form.Error),
		markup.Select("Court", "court_id", options),
		markup.Input("From", "start", "datetime-local", form.Start, true),
		markup.Input("To", "end", "datetime-local", form.End, true),
		markup.Input("Reason", "reason", "text", form.Reason, false),
		`<button type="submit" class="rounded bg-blue-600 px-4 py-2 text-white">Save</button></form>`)
}
