package courts

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/codr1/CourtPlay/internal/booking"
	"github.com/codr1/CourtPlay/internal/templates/markup"
)

// Statuses are the values offered by the court form.
var Statuses = []string{"open", "closed", "maintenance"}

type ListData struct {
	Courts []booking.Court
	Env    booking.Environment
}

type CourtForm struct {
	ID      int64
	Name    string
	Outdoor bool
	Status  string
	Note    string
	Error   string
}

func (f CourtForm) action() string {
	if f.ID == 0 {
		return "/admin/courts"
	}
	return "/admin/courts/" + strconv.FormatInt(f.ID, 10)
}

type AdminData struct {
	Courts  []booking.Court
	Form    CourtForm
	Message string
}

func environmentLabel(outdoor bool) string {
	if outdoor {
		return "Outdoor"
	}
	return "Indoor"
}

func CourtsPage(data ListData) templ.Component {
	return markup.Component(func(b *markup.Builder) {
		b.Raw(`<h1 class="mb-4 text-2xl font-semibold">Courts</h1><div class="mb-4 flex gap-2">`)
		for _, env := range []booking.Environment{booking.EnvAll, booking.EnvIndoor, booking.EnvOutdoor} {
			class := "rounded border px-3 py-1 text-sm"
			if env == data.Env {
				class += " bg-blue-600 text-white"
			}
			b.Raw(`<a class="`, class, `" href="/courts?env=`, string(env), `">`).Text(string(env)).Raw(`</a>`)
		}
		b.Raw(`</div>`)
		if len(data.Courts) == 0 {
			b.Raw(`<p class="text-gray-500">No courts found.</p>`)
			return
		}
		b.Raw(`<div class="grid gap-4 md:grid-cols-3">`)
		for _, court := range data.Courts {
			b.Raw(`<div class="rounded bg-white p-4 shadow"><h2 class="font-semibold">`).Text(court.Name).Raw(`</h2>`,
				`<p class="text-sm text-gray-600">`).Text(environmentLabel(court.Outdoor)+" | "+court.Status).Raw(`</p>`)
			if court.Note != "" {
				b.Raw(`<p class="mt-2 text-sm">`).Text(court.Note).Raw(`</p>`)
			}
			b.Raw(`</div>`)
		}
		b.Raw(`</div>`)
	})
}

// AdminPage lists courts next to the create or edit form.
func AdminPage(data AdminData) templ.Component {
	return markup.Component(func(b *markup.Builder) {
		b.Raw(`<h1 class="mb-4 text-2xl font-semibold">Manage courts</h1>`, markup.Alert("success", data.Message),
			`<div class="grid gap-6 md:grid-cols-3"><div class="md:col-span-2">`,
			`<table class="w-full bg-white text-sm shadow"><thead><tr class="text-left">`,
			`<th class="p-2">Name</th><th class="p-2">Type</th><th class="p-2">Status</th><th class="p-2">Note</th><th></th></tr></thead><tbody>`)
		for _, court := range data.Courts {
			id := strconv.FormatInt(court.ID, 10)
			b.Raw(`<tr class="border-t"><td class="p-2">`).Text(court.Name).
				Raw(`</td><td class="p-2">`).Text(environmentLabel(court.Outdoor)).
				Raw(`</td><td class="p-2">`).Text(court.Status).
				Raw(`</td><td class="p-2">`).Text(court.Note).
				Raw(`</td><td class="p-2 text-right"><a class="text-blue-600" href="/admin/courts/`, id, `/edit">Edit</a> `,
					markup.PostButton("/admin/courts/"+id+"/delete", "Delete", "text-red-600", "Delete this court?"),
					`</td></tr>`)
		}
		b.Raw(`</tbody></table></div><div>`)
		writeCourtForm(b, data.Form)
		b.Raw(`</div></div>`)
	})
}

func writeCourtForm(b *markup.Builder, form CourtForm) {
	title := "New court"
	if form.ID != 0 {
		title = "Edit court"
	}
	status := form.Status
	if status == "" {
		status = "open"
	}
	options := make([]markup.Option, 0, len(Statuses))
	for _, s := range Statuses {
		options = append(options, markup.Option{Value: s, Label: s, Selected: s == status})
	}
	checked := ""
	if form.Outdoor {
		checked = " checked"
	}
	b.Raw(`<form method="post" action="`, form.action(), `" class="space-y-3 rounded bg-white p-4 shadow">`,
		`<h2 class="font-semibold">`, title, `</h2>`,
		markup.Alert("error", form.Error),
		markup.Input("Name", "name", "text", form.Name, true),
		`<label class="flex items-center gap-2 text-sm"><input type="checkbox" name="outdoor" value="true"`, checked, `> Outdoor</label>`,
		markup.Select("Status", "status", options),
		markup.Input("Note", "note", "text", form.Note, false),
		`<button type="submit" class="rounded bg-blue-600 px-4 py-2 text-white">Save</button></form>`)
}
