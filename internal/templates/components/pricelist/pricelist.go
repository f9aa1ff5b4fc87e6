package pricelist

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/codr1/CourtPlay/internal/booking"
	"github.com/codr1/CourtPlay/internal/templates/markup"
)

// EntryForm keeps the raw input so a rejected form shows what was typed.
type EntryForm struct {
	ID               int64
	DurationMin      string
	Opening          string
	Closing          string
	BasePrice        string
	IndoorMultiplier string
	Error            string
}

func (f EntryForm) action() string {
	if f.ID == 0 {
		return "/admin/price-list"
	}
	return "/admin/price-list/" + strconv.FormatInt(f.ID, 10)
}

// FormFromEntry fills the form with a stored entry.
func FormFromEntry(entry booking.PriceEntry) EntryForm {
	return EntryForm{
		ID:               entry.ID,
		DurationMin:      strconv.Itoa(entry.DurationMin),
		Opening:          entry.Opening.String(),
		Closing:          entry.Closing.String(),
		BasePrice:        strconv.FormatFloat(float64(entry.BasePriceCents)/100, 'f', 2, 64),
		IndoorMultiplier: strconv.FormatFloat(entry.IndoorMultiplier, 'f', -1, 64),
	}
}

type AdminData struct {
	Entries []booking.PriceEntry
	Form    EntryForm
	Message string
	// CanDelete is false for managers; only admins remove price entries.
	CanDelete bool
}

func AdminPage(data AdminData) templ.Component {
	return markup.Component(func(b *markup.Builder) {
		b.Raw(`<h1 class="mb-4 text-2xl font-semibold">Price list</h1>`, markup.Alert("success", data.Message),
			`<div class="grid gap-6 md:grid-cols-3"><div class="md:col-span-2">`,
			`<table class="w-full bg-white text-sm shadow"><thead><tr class="text-left">`,
			`<th class="p-2">Duration</th><th class="p-2">Window</th><th class="p-2">Base price</th><th class="p-2">Indoor x</th><th></th></tr></thead><tbody>`)
		if len(data.Entries) == 0 {
			b.Raw(`<tr><td colspan="5" class="p-2 text-gray-500">No prices configured.</td></tr>`)
		}
		for _, entry := range data.Entries {
			id := strconv.FormatInt(entry.ID, 10)
			b.Raw(`<tr class="border-t"><td class="p-2">`).Rawf("%d min", entry.DurationMin).
				Raw(`</td><td class="p-2">`).Text(entry.Opening.String()+" - "+entry.Closing.String()).
				Raw(`</td><td class="p-2">`).Text(markup.Price(entry.BasePriceCents)).
				Raw(`</td><td class="p-2">`).Text(strconv.FormatFloat(entry.IndoorMultiplier, 'f', -1, 64)).
				Raw(`</td><td class="p-2 text-right"><a class="text-blue-600" href="/admin/price-list/`, id, `/edit">Edit</a> `)
			if data.CanDelete {
				b.Raw(markup.PostButton("/admin/price-list/"+id+"/delete", "Delete", "text-red-600", "Delete this price?"))
			}
			b.Raw(`</td></tr>`)
		}
		b.Raw(`</tbody></table></div><div>`)
		writeEntryForm(b, data.Form)
		b.Raw(`</div></div>`)
	})
}

func writeEntryForm(b *markup.Builder, form EntryForm) {
	title := "New price"
	if form.ID != 0 {
		title = "Edit price"
	}
	b.Raw(`<form method="post" action="`, form.action(), `" class="space-y-3 rounded bg-white p-4 shadow">`,
		`<h2 class="font-semibold">`, title, `</h2>`,
		markup.Alert("error", form.Error),
		markup.Input("Duration (minutes)", "duration_min", "number", form.DurationMin, true),
		markup.Input("Opening", "opening_time", "text", form.Opening, true),
		markup.Input("Closing", "closing_time", "text", form.Closing, true),
		markup.Input("Base price (CZK)", "base_price", "text", form.BasePrice, true),
		markup.Input("Indoor multiplier", "indoor_multiplier", "text", form.IndoorMultiplier, true),
		`<button type="submit" class="rounded bg-blue-600 px-4 py-2 text-white">Save</button></form>`)
}
